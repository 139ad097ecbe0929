// Package graberr defines the closed set of error codes surfaced to the UI
// and the wrapping error type used across the capture pipeline.
package graberr

import (
	"errors"
	"fmt"
)

// Code classifies a failure for presentation. Values are the wire form sent
// to the UI.
type Code string

const (
	CodePermissionDenied Code = "PERMISSION_DENIED"
	CodeSourceNotFound   Code = "SOURCE_NOT_FOUND"
	CodeCaptureFailed    Code = "CAPTURE_FAILED"
	CodeExportFailed     Code = "EXPORT_FAILED"
	CodeClipboardFailed  Code = "CLIPBOARD_FAILED"
	CodeInvalidRequest   Code = "INVALID_REQUEST"
	CodeCancelled        Code = "CANCELLED"
)

// phrase returns the human prefix used when rendering an error.
func (c Code) phrase() string {
	switch c {
	case CodePermissionDenied:
		return "permission denied"
	case CodeSourceNotFound:
		return "source not found"
	case CodeCaptureFailed:
		return "capture failed"
	case CodeExportFailed:
		return "export failed"
	case CodeClipboardFailed:
		return "clipboard operation failed"
	case CodeInvalidRequest:
		return "invalid request"
	case CodeCancelled:
		return "operation cancelled"
	default:
		return string(c)
	}
}

// Error carries a code, a message, and an optional cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Code.phrase(), e.Message, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Code.phrase(), e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Code.phrase(), e.Err)
	default:
		return e.Code.phrase()
	}
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is matches errors by code so callers can compare against constructed
// sentinels with errors.Is.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Code == other.Code
	}
	return false
}

// New creates an error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an error with a formatted message.
func Newf(code Code, format string, v ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, v...)}
}

// Wrap attaches a code and message to an underlying error. Returns nil when
// err is nil.
func Wrap(code Code, message string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Err: err}
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// CodeOf extracts the code from err. Unclassified errors report
// ExportFailed, matching how plain I/O and serialization failures are
// presented; image encoding and capture-backend failures are expected to be
// wrapped with CaptureFailed at their source.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeExportFailed
}

// Serializable is the `{code, message}` wire form sent to the UI.
type Serializable struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ToSerializable converts any error into its wire form.
func ToSerializable(err error) Serializable {
	return Serializable{
		Code:    string(CodeOf(err)),
		Message: err.Error(),
	}
}
