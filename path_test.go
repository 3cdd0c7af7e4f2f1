package safejson

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePathExisting(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.json")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0o644))

	resolved, err := resolvePath(file)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(resolved))
	assert.Equal(t, "a.json", filepath.Base(resolved))
}

func TestResolvePathMissingTail(t *testing.T) {
	dir := t.TempDir()
	base, err := resolvePath(dir)
	require.NoError(t, err)

	resolved, err := resolvePath(filepath.Join(dir, "sub", "deep", "new.json"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "sub", "deep", "new.json"), resolved)
}

func TestResolvePathCollapsesDotDot(t *testing.T) {
	dir := t.TempDir()
	base, err := resolvePath(dir)
	require.NoError(t, err)

	resolved, err := resolvePath(filepath.Join(dir, "sub", "..", "x.json"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "x.json"), resolved)
}

func TestResolvePathFollowsSymlinks(t *testing.T) {
	target := t.TempDir()
	dir := t.TempDir()
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(target, link))

	resolvedTarget, err := resolvePath(target)
	require.NoError(t, err)

	resolved, err := resolvePath(filepath.Join(link, "file.json"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(resolvedTarget, "file.json"), resolved)
}

func TestResolvePathDanglingSymlink(t *testing.T) {
	dir := t.TempDir()
	base, err := resolvePath(dir)
	require.NoError(t, err)

	link := filepath.Join(dir, "link.json")
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing", "real.json"), link))

	resolved, err := resolvePath(link)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "missing", "real.json"), resolved)
}

func TestResolvePathDanglingSymlinkRelativeTarget(t *testing.T) {
	dir := t.TempDir()
	base, err := resolvePath(dir)
	require.NoError(t, err)

	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	link := filepath.Join(dir, "sub", "link.json")
	require.NoError(t, os.Symlink(filepath.Join("..", "other", "real.json"), link))

	resolved, err := resolvePath(link)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "other", "real.json"), resolved)
}

func TestContains(t *testing.T) {
	sep := string(filepath.Separator)
	base := sep + filepath.Join("srv", "data")
	s := &Store{base: base}

	tests := []struct {
		name     string
		resolved string
		want     bool
	}{
		{"base itself", base, true},
		{"direct child", filepath.Join(base, "a.json"), true},
		{"nested child", filepath.Join(base, "x", "y", "a.json"), true},
		{"parent", filepath.Dir(base), false},
		{"sibling prefix", base + "base", false},
		{"unrelated", sep + filepath.Join("tmp", "a.json"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.contains(tt.resolved))
		})
	}
}

func TestContainsNoBase(t *testing.T) {
	s := &Store{}
	assert.True(t, s.contains("/anywhere/at/all.json"))
}

func TestValidatePathSymlinkEscape(t *testing.T) {
	outside := t.TempDir()
	baseDir := t.TempDir()
	require.NoError(t, os.Symlink(outside, filepath.Join(baseDir, "escape")))

	s, err := New(Config{BasePath: baseDir})
	require.NoError(t, err)

	_, err = s.validatePath(filepath.Join(baseDir, "escape", "data.json"))
	require.Error(t, err)
	assert.Equal(t, CodeAccessDenied, codeOf(err, ""))
	assert.Contains(t, err.Error(), "outside base path")
}

func TestValidatePathDanglingSymlinkEscape(t *testing.T) {
	outside := t.TempDir()
	baseDir := t.TempDir()
	require.NoError(t, os.Symlink(filepath.Join(outside, "escaped.json"), filepath.Join(baseDir, "esc.json")))

	s, err := New(Config{BasePath: baseDir})
	require.NoError(t, err)

	_, err = s.validatePath(filepath.Join(baseDir, "esc.json"))
	require.Error(t, err)
	assert.Equal(t, CodeAccessDenied, codeOf(err, ""))
	assert.Contains(t, err.Error(), "outside base path")
}

func TestValidatePathDotDotEscape(t *testing.T) {
	baseDir := t.TempDir()
	s, err := New(Config{BasePath: baseDir})
	require.NoError(t, err)

	_, err = s.validatePath(filepath.Join(baseDir, "..", "outside.json"))
	require.Error(t, err)
	assert.Equal(t, CodeAccessDenied, codeOf(err, ""))
}

func TestValidatePathRelativeScopedToBase(t *testing.T) {
	baseDir := t.TempDir()
	s, err := New(Config{BasePath: baseDir})
	require.NoError(t, err)

	resolved, err := s.validatePath(filepath.Join("sub", "new.json"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.BasePath(), "sub", "new.json"), resolved)

	_, err = s.validatePath(filepath.Join("..", "outside.json"))
	require.Error(t, err)
	assert.Equal(t, CodeAccessDenied, codeOf(err, ""))
}

func TestValidatePathInside(t *testing.T) {
	baseDir := t.TempDir()
	s, err := New(Config{BasePath: baseDir})
	require.NoError(t, err)

	resolved, err := s.validatePath(filepath.Join(baseDir, "sub", "new.json"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.BasePath(), "sub", "new.json"), resolved)
}
