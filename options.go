package safejson

// ReadOptions controls a single Read call. A nil *ReadOptions (or the
// zero value) means an eager parse with the store-level schema.
type ReadOptions struct {
	// Streaming parses the top-level object incrementally instead of
	// holding the raw file and the decoded document in memory at the
	// same time. Intended for large files; accepted inputs and the
	// decoded result are identical to an eager parse.
	Streaming bool

	// Schema replaces the store-level schema for this call. Nil keeps
	// the store default.
	Schema *Schema
}

// WriteOptions controls a single Write call. A nil *WriteOptions means
// DefaultWriteOptions; note the zero value instead disables
// indentation, backup, and atomic replace.
type WriteOptions struct {
	// Indent is the number of spaces per nesting level. Values < 1
	// produce compact output.
	Indent int

	// EnsureASCII escapes every character above U+007F as \uXXXX, so
	// the output is plain ASCII.
	EnsureASCII bool

	// Backup copies an existing target to "<name>.bak" before it is
	// replaced; a failed write is then restored from that copy.
	Backup bool

	// Atomic writes through a temp file in the target's directory and
	// renames it into place, so the target is never seen partially
	// written.
	Atomic bool

	// Schema replaces the store-level schema for this call. Nil keeps
	// the store default.
	Schema *Schema
}

// DefaultWriteOptions returns the write defaults: indent 4, non-ASCII
// preserved, backup and atomic replace enabled.
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{Indent: 4, Backup: true, Atomic: true}
}

func (o *ReadOptions) orDefault() ReadOptions {
	if o == nil {
		return ReadOptions{}
	}
	return *o
}

func (o *WriteOptions) orDefault() WriteOptions {
	if o == nil {
		return DefaultWriteOptions()
	}
	return *o
}
