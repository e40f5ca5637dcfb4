package webtab

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINVALID    = "invalid"
	EINVALIDURL = "invalid_url"
	ERENDER     = "render_failed"
	EPLAINFETCH = "plain_fetch_failed"
	EFETCH      = "fetch_failed"
	EEMPTY      = "empty_content"
	EPARSE      = "parse_failed"
	ENOTFOUND   = "not_found"
	EINTERNAL   = "internal"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("webtab error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// FetchError reports a failure to retrieve a page. RenderErr and PlainErr
// hold the cause from each retrieval path that was attempted.
type FetchError struct {
	Code      string
	RenderErr error
	PlainErr  error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("webtab error: code=%s message=%s", e.Code, e.Message())
}

// Message returns a human-readable description of the failure.
func (e *FetchError) Message() string {
	switch {
	case e.Code == EEMPTY:
		return "no HTML content received"
	case e.RenderErr != nil && e.PlainErr != nil:
		return fmt.Sprintf("failed to load webpage with both browser and plain fetch: %v | %v", e.RenderErr, e.PlainErr)
	case e.RenderErr != nil:
		return fmt.Sprintf("failed to render webpage: %v", e.RenderErr)
	case e.PlainErr != nil:
		return fmt.Sprintf("failed to fetch webpage: %v", e.PlainErr)
	}
	return "failed to load webpage"
}

// Unwrap returns the underlying causes so errors.Is and errors.As can
// inspect both retrieval paths.
func (e *FetchError) Unwrap() []error {
	var errs []error
	if e.RenderErr != nil {
		errs = append(errs, e.RenderErr)
	}
	if e.PlainErr != nil {
		errs = append(errs, e.PlainErr)
	}
	return errs
}

// ErrorCode unwraps an application error and returns its code.
// Fetch errors take precedence over any application error they wrap.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	var fe *FetchError
	if err == nil {
		return ""
	} else if errors.As(err, &fe) {
		return fe.Code
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	var fe *FetchError
	if err == nil {
		return ""
	} else if errors.As(err, &fe) {
		return fe.Message()
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}
