package safejson

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// maxLinkDepth caps symlink expansion while resolving a missing tail,
// mirroring the kernel's nesting limit.
const maxLinkDepth = 40

// resolvePath canonicalizes path: absolute, ".." collapsed, symlinks
// followed. Paths that do not exist yet resolve through their deepest
// existing ancestor so new files under a symlinked directory still
// canonicalize correctly.
func resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return resolveMissing(abs, 0)
}

// resolveMissing is EvalSymlinks with a fallback for paths whose tail
// does not exist: the deepest existing ancestor is resolved on disk and
// the missing components are reattached one by one. A reattached
// component that exists as a symlink is expanded through its target
// even when that target is absent, the way open would follow it, so a
// dangling link never hides where a write would actually land.
func resolveMissing(abs string, depth int) (string, error) {
	if depth > maxLinkDepth {
		return "", errors.New("too many levels of symbolic links")
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err == nil {
		return resolved, nil
	}
	if !notExist(err) {
		return "", err
	}

	var tail []string
	cur := abs
	for {
		parent := filepath.Dir(cur)
		if parent == cur {
			// Walked to the filesystem root without resolving.
			return abs, nil
		}
		tail = append(tail, filepath.Base(cur))
		resolved, err = filepath.EvalSymlinks(parent)
		if err == nil {
			break
		}
		if !notExist(err) {
			return "", err
		}
		cur = parent
	}
	for i := len(tail) - 1; i >= 0; i-- {
		next := filepath.Join(resolved, tail[i])
		fi, lerr := os.Lstat(next)
		if lerr != nil || fi.Mode()&fs.ModeSymlink == 0 {
			resolved = next
			continue
		}
		target, err := os.Readlink(next)
		if err != nil {
			return "", err
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(resolved, target)
		}
		for j := i - 1; j >= 0; j-- {
			target = filepath.Join(target, tail[j])
		}
		return resolveMissing(target, depth+1)
	}
	return resolved, nil
}

// notExist reports whether err means the path is absent. ENOTDIR
// (a path component is a regular file) counts as absent.
func notExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}

// validatePath resolves path and enforces the containment root.
// Relative paths are scoped to the base path when one is set, so
// callers address files the way they address keys.
func (s *Store) validatePath(path string) (string, error) {
	if s.base != "" && !filepath.IsAbs(path) {
		path = filepath.Join(s.base, path)
	}
	resolved, err := resolvePath(path)
	if err != nil {
		return "", coded(CodeAccessDenied, fmt.Errorf("path validation error: %v", err))
	}
	if !s.contains(resolved) {
		return "", coded(CodeAccessDenied, errors.New("access denied: file outside base path"))
	}
	return resolved, nil
}

// contains reports whether resolved is the base path or a descendant
// of it. Stores without a base path accept everything.
func (s *Store) contains(resolved string) bool {
	if s.base == "" {
		return true
	}
	rel, err := filepath.Rel(s.base, resolved)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
