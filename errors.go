package safejson

import "errors"

// opError tags an internal failure with the Result code it should
// surface as, so helpers deep inside an operation classify errors once
// and the public boundary only converts them.
type opError struct {
	code Code
	err  error
}

func (e *opError) Error() string { return e.err.Error() }

func (e *opError) Unwrap() error { return e.err }

// coded wraps err with a result code.
func coded(code Code, err error) *opError {
	return &opError{code: code, err: err}
}

// codeOf extracts the code from err, falling back when err was never
// classified.
func codeOf(err error, fallback Code) Code {
	var oe *opError
	if errors.As(err, &oe) {
		return oe.code
	}
	return fallback
}

// failureFromErr converts an internal error to a failed Result.
func failureFromErr(err error, fallback Code, path string) Result {
	return failure(codeOf(err, fallback), path, err.Error())
}
