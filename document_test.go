package safejson

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocumentPreservesOrder(t *testing.T) {
	raw := []byte(`{"zeta": 1, "alpha": 2, "mike": 3}`)

	doc, err := ParseDocument(raw)
	require.NoError(t, err)

	var keys []string
	for pair := doc.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mike"}, keys)

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":1,"alpha":2,"mike":3}`, string(out))
}

func TestParseDocumentNested(t *testing.T) {
	doc, err := ParseDocument([]byte(`{"user": {"name": "John", "age": 30}, "tags": ["a", "b"]}`))
	require.NoError(t, err)

	user, ok := doc.Get("user")
	require.True(t, ok)
	nested, ok := user.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "John", nested["name"])
	assert.Equal(t, float64(30), nested["age"])

	tags, ok := doc.Get("tags")
	require.True(t, ok)
	assert.Equal(t, []any{"a", "b"}, tags)
}

func TestParseDocumentRejectsNonObjects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"array", `[1, 2]`},
		{"string", `"hello"`},
		{"number", `42`},
		{"null", `null`},
		{"empty", ``},
		{"trailing data", `{"a": 1} extra`},
		{"truncated", `{"a":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestDocumentFrom(t *testing.T) {
	doc := DocumentFrom(
		Pair{Key: "name", Value: "John"},
		Pair{Key: "age", Value: 30},
	)

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"John","age":30}`, string(out))
	assert.Equal(t, 0, DocumentFrom().Len())
}

func TestNewDocumentSetGet(t *testing.T) {
	doc := NewDocument()
	doc.Set("name", "John")
	doc.Set("age", 30)

	name, ok := doc.Get("name")
	require.True(t, ok)
	assert.Equal(t, "John", name)
	assert.Equal(t, 2, doc.Len())

	// Updating a key keeps its original position.
	doc.Set("name", "Jane")
	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Jane","age":30}`, string(out))
}
