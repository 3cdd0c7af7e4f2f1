package safejson

// Code classifies why an operation failed.
type Code string

// Failure codes carried in Result.Code.
const (
	CodeAccessDenied    Code = "access_denied"
	CodeNotFound        Code = "not_found"
	CodeNotAFile        Code = "not_a_file"
	CodeTooLarge        Code = "too_large"
	CodeParseError      Code = "parse_error"
	CodeSchemaViolation Code = "schema_violation"
	CodeWriteError      Code = "write_error"
	CodeReadError       Code = "read_error"
)

// Result is the outcome of a read or write. Every operation returns
// one; failures are reported here, never raised.
type Result struct {
	// Data holds the parsed document on a successful read and echoes
	// the input document on a successful write.
	Data *Document `json:"data,omitempty"`

	Success bool `json:"success"`

	// Code is the machine-readable failure class, empty on success.
	Code Code `json:"code,omitempty"`

	// Error is the human-readable failure message, nil on success.
	Error *string `json:"error,omitempty"`

	// Path is the resolved absolute path the operation acted on. Empty
	// only when path validation itself failed.
	Path string `json:"file_path,omitempty"`
}

// success helper
func success(data *Document, path string) Result {
	return Result{Success: true, Data: data, Path: path}
}

// failure helper
func failure(code Code, path, message string) Result {
	msg := message
	return Result{Success: false, Code: code, Error: &msg, Path: path}
}
