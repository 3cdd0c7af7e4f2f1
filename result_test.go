package safejson

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultJSONShape(t *testing.T) {
	doc := NewDocument()
	doc.Set("a", 1)

	raw, err := json.Marshal(success(doc, "/data/x.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success": true, "data": {"a": 1}, "file_path": "/data/x.json"}`, string(raw))

	raw, err = json.Marshal(failure(CodeNotFound, "", "file not found: x"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success": false, "code": "not_found", "error": "file not found: x"}`, string(raw))
}

func TestCodeOf(t *testing.T) {
	err := coded(CodeTooLarge, errors.New("boom"))
	assert.Equal(t, CodeTooLarge, codeOf(err, CodeReadError))
	assert.Equal(t, CodeReadError, codeOf(errors.New("plain"), CodeReadError))

	wrapped := fmt.Errorf("outer: %w", err)
	assert.Equal(t, CodeTooLarge, codeOf(wrapped, CodeReadError))
}

func TestFailureFromErr(t *testing.T) {
	res := failureFromErr(coded(CodeAccessDenied, errors.New("access denied: file outside base path")), CodeWriteError, "")
	assert.False(t, res.Success)
	assert.Equal(t, CodeAccessDenied, res.Code)
	require.NotNil(t, res.Error)
	assert.Equal(t, "access denied: file outside base path", *res.Error)
	assert.Empty(t, res.Path)

	res = failureFromErr(errors.New("disk on fire"), CodeWriteError, "/data/x.json")
	assert.Equal(t, CodeWriteError, res.Code)
	assert.Equal(t, "/data/x.json", res.Path)
}
