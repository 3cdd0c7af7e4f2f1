package safejson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Write stores doc as JSON at path. A nil opts means
// DefaultWriteOptions. The sequence: path containment, schema
// validation (nothing touches disk before it passes), parent directory
// creation, optional backup of the existing target, then either an
// atomic temp-file-plus-rename or a direct write. A failure after the
// backup was taken restores the target from it, so a failed write
// never leaves the target corrupted or missing when Backup is on.
func (s *Store) Write(doc *Document, path string, opts *WriteOptions) Result {
	o := opts.orDefault()
	start := time.Now()
	res := s.doWrite(doc, path, o)
	s.observe("write", res, time.Since(start))
	return res
}

func (s *Store) doWrite(doc *Document, path string, o WriteOptions) Result {
	resolved, err := s.validatePath(path)
	if err != nil {
		s.log.Error("path validation failed", zap.String("path", path), zap.Error(err))
		return failureFromErr(err, CodeWriteError, "")
	}

	if schema := s.effectiveSchema(o.Schema); schema != nil {
		if err := schema.Validate(doc); err != nil {
			s.log.Error("schema validation failed", zap.String("path", resolved), zap.Error(err))
			return failureFromErr(err, CodeWriteError, resolved)
		}
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		s.log.Error("create parent directories failed", zap.String("path", resolved), zap.Error(err))
		return failure(CodeWriteError, resolved, fmt.Sprintf("error writing JSON: %v", err))
	}

	backupPath := ""
	if o.Backup {
		backupPath, err = s.backup(resolved)
		if err != nil {
			s.log.Error("backup failed", zap.String("path", resolved), zap.Error(err))
			return failure(CodeWriteError, resolved, fmt.Sprintf("error writing JSON: backup failed: %v", err))
		}
	}

	tmpPath, err := s.writeDocument(doc, resolved, o)
	if tmpPath != "" {
		s.cleanupTemp(tmpPath)
	}
	if err != nil {
		s.log.Error("write failed", zap.String("path", resolved), zap.Error(err))
		if backupPath != "" {
			s.restore(backupPath, resolved)
		}
		return failure(CodeWriteError, resolved, fmt.Sprintf("error writing JSON: %v", err))
	}

	s.log.Info("wrote JSON", zap.String("path", resolved))
	return success(doc, resolved)
}

// backup copies the existing file at path to path+".bak", keeping file
// mode and modification time. Returns "" when the target does not
// exist yet.
func (s *Store) backup(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if notExist(err) {
			return "", nil
		}
		return "", err
	}
	bak := path + ".bak"
	if err := copyFile(path, bak); err != nil {
		return "", err
	}
	s.log.Info("created backup", zap.String("path", bak))
	if s.metrics != nil {
		s.metrics.IncBackups()
	}
	return bak, nil
}

// writeDocument serializes doc and writes it at path. It returns the
// temp file path whenever one was created, success or not, so the
// caller can clean it up.
func (s *Store) writeDocument(doc *Document, path string, o WriteOptions) (string, error) {
	payload, err := s.encodePayload(doc, o)
	if err != nil {
		return "", err
	}

	if !o.Atomic {
		if err := os.WriteFile(path, payload, 0o644); err != nil {
			return "", err
		}
		if s.metrics != nil {
			s.metrics.AddBytesWritten(int64(len(payload)))
		}
		return "", nil
	}

	// Same directory as the target so the rename cannot cross a
	// filesystem boundary; unique name so concurrent writers never
	// share a temp file.
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", err
	}
	if _, err := f.Write(payload); err != nil {
		f.Close()
		return tmp, err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return tmp, err
	}
	if err := f.Close(); err != nil {
		return tmp, err
	}
	if err := os.Rename(tmp, path); err != nil {
		return tmp, err
	}
	if s.metrics != nil {
		s.metrics.AddBytesWritten(int64(len(payload)))
	}
	return tmp, nil
}

// encodePayload serializes doc with the configured indentation, ASCII
// policy, and store encoding, in that order.
func (s *Store) encodePayload(doc *Document, o WriteOptions) ([]byte, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	if o.Indent > 0 {
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", strings.Repeat(" ", o.Indent)); err != nil {
			return nil, err
		}
		raw = buf.Bytes()
	}
	if o.EnsureASCII {
		raw = escapeNonASCII(raw)
	}
	return s.encodeText(raw)
}

// cleanupTemp removes a leftover temp file. Removal failure is logged
// and otherwise ignored; it never changes the operation's outcome.
func (s *Store) cleanupTemp(tmp string) {
	if _, err := os.Lstat(tmp); err != nil {
		return
	}
	if err := os.Remove(tmp); err != nil {
		s.log.Warn("temp file cleanup failed", zap.String("path", tmp), zap.Error(err))
	}
}

// restore copies the backup back over the target after a failed write.
func (s *Store) restore(backupPath, target string) {
	if err := copyFile(backupPath, target); err != nil {
		s.log.Error("restore from backup failed",
			zap.String("backup", backupPath),
			zap.String("path", target),
			zap.Error(err))
		return
	}
	s.log.Info("restored backup", zap.String("path", target))
	if s.metrics != nil {
		s.metrics.IncRestores()
	}
}

// copyFile copies src to dst, preserving file mode and modification
// time.
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
