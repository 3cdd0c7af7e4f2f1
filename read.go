package safejson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
)

// Read loads the JSON document at path. A nil opts means an eager
// parse with the store-level schema. The guards run in order: path
// containment, existence, regular file, size cap, parse, schema; the
// first failure is returned as the Result. Reads have no side effects
// beyond log records.
func (s *Store) Read(path string, opts *ReadOptions) Result {
	o := opts.orDefault()
	start := time.Now()
	res := s.doRead(path, o)
	s.observe("read", res, time.Since(start))
	return res
}

func (s *Store) doRead(path string, o ReadOptions) Result {
	resolved, err := s.validatePath(path)
	if err != nil {
		s.log.Error("path validation failed", zap.String("path", path), zap.Error(err))
		return failureFromErr(err, CodeReadError, "")
	}

	info, err := os.Stat(resolved)
	if err != nil {
		if notExist(err) {
			s.log.Error("file not found", zap.String("path", resolved))
			return failure(CodeNotFound, resolved, fmt.Sprintf("file not found: %s", resolved))
		}
		s.log.Error("stat failed", zap.String("path", resolved), zap.Error(err))
		return failure(CodeReadError, resolved, fmt.Sprintf("error reading JSON: %v", err))
	}
	if !info.Mode().IsRegular() {
		s.log.Error("not a file", zap.String("path", resolved))
		return failure(CodeNotAFile, resolved, fmt.Sprintf("not a file: %s", resolved))
	}
	if info.Size() > s.maxSize {
		s.log.Error("file too large",
			zap.String("path", resolved),
			zap.Int64("size", info.Size()),
			zap.Int64("limit", s.maxSize))
		return failure(CodeTooLarge, resolved,
			fmt.Sprintf("file too large: %s (%d bytes exceeds limit %d)", resolved, info.Size(), s.maxSize))
	}

	var doc *Document
	if o.Streaming {
		doc, err = s.readStreaming(resolved)
	} else {
		doc, err = s.readEager(resolved)
	}
	if err != nil {
		s.log.Error("read failed", zap.String("path", resolved), zap.Error(err))
		var oe *opError
		if errors.As(err, &oe) {
			return failure(oe.code, resolved, oe.Error())
		}
		return failure(CodeReadError, resolved, fmt.Sprintf("error reading JSON: %v", err))
	}
	if s.metrics != nil {
		s.metrics.AddBytesRead(info.Size())
	}

	if schema := s.effectiveSchema(o.Schema); schema != nil {
		if err := schema.Validate(doc); err != nil {
			s.log.Error("schema validation failed", zap.String("path", resolved), zap.Error(err))
			return failureFromErr(err, CodeReadError, resolved)
		}
	}

	s.log.Info("read JSON", zap.String("path", resolved), zap.Int("keys", doc.Len()))
	return success(doc, resolved)
}

// readEager parses the whole file at once.
func (s *Store) readEager(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	raw, err = s.decodeText(raw)
	if err != nil {
		return nil, coded(CodeParseError, fmt.Errorf("invalid JSON: %v", err))
	}
	doc, err := ParseDocument(raw)
	if err != nil {
		return nil, coded(CodeParseError, fmt.Errorf("invalid JSON: %v", err))
	}
	return doc, nil
}

// readStreaming assembles the top-level object key by key from an
// incremental decoder, so the raw text and the document never sit in
// memory together. Accepts exactly the inputs readEager accepts.
func (s *Store) readStreaming(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := json.NewDecoder(s.decodeReader(f))
	tok, err := dec.Token()
	if err != nil {
		return nil, coded(CodeParseError, fmt.Errorf("invalid JSON: %v", err))
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, coded(CodeParseError, errors.New("invalid JSON: top-level value is not an object"))
	}

	doc := NewDocument()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, coded(CodeParseError, fmt.Errorf("invalid JSON: %v", err))
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, coded(CodeParseError, errors.New("invalid JSON: object key is not a string"))
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, coded(CodeParseError, fmt.Errorf("invalid JSON: %v", err))
		}
		doc.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, coded(CodeParseError, fmt.Errorf("invalid JSON: %v", err))
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, coded(CodeParseError, errors.New("invalid JSON: unexpected data after top-level object"))
	}
	return doc, nil
}
