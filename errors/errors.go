// Package errors provides unified error handling for the authkit modules.
// It implements structured error types with machine-readable error codes
// and HTTP status mapping.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// --- Authorization Resolution Errors ---

// AmbiguousRule creates a new AppError for conflicting rule declarations found
// for the same element. Sources identifies each conflicting declaration site.
func AmbiguousRule(element, kind string, sources []string) *AppError {
	return &AppError{
		Code: ErrCodeAmbiguousRule,
		Message: fmt.Sprintf("found more than one %s rule attributed to %s; remove the duplicate declarations",
			kind, element),
		HTTPStatus: http.StatusInternalServerError,
		Details: map[string]any{
			"element": element,
			"kind":    kind,
			"sources": sources,
		},
	}
}

// ExpressionCompile creates a new AppError for a rule expression that failed
// to compile.
func ExpressionCompile(expression string, cause error) *AppError {
	return &AppError{
		Code:       ErrCodeExpressionCompile,
		Message:    fmt.Sprintf("failed to compile authorization expression %q", expression),
		HTTPStatus: http.StatusInternalServerError,
		Details:    map[string]any{"expression": expression},
		Cause:      cause,
	}
}

// HandlerNotFound creates a new AppError for a designated denial handler type
// with no registered instance.
func HandlerNotFound(handlerType string) *AppError {
	return &AppError{
		Code:       ErrCodeHandlerConfiguration,
		Message:    fmt.Sprintf("could not find a registered instance of denial handler type %s", handlerType),
		HTTPStatus: http.StatusInternalServerError,
		Details:    map[string]any{"handler": handlerType},
	}
}

// HandlerAmbiguous creates a new AppError for a designated denial handler type
// with more than one registered instance.
func HandlerAmbiguous(handlerType string, candidates []string) *AppError {
	return &AppError{
		Code: ErrCodeHandlerConfiguration,
		Message: fmt.Sprintf("expected a single registered instance of denial handler type %s but found %d: [%s]",
			handlerType, len(candidates), strings.Join(candidates, ", ")),
		HTTPStatus: http.StatusInternalServerError,
		Details: map[string]any{
			"handler":    handlerType,
			"candidates": candidates,
		},
	}
}

// HandlerInvalid creates a new AppError for a registration that does not
// satisfy the denial handler contract.
func HandlerInvalid(handlerType, reason string) *AppError {
	return &AppError{
		Code:       ErrCodeHandlerConfiguration,
		Message:    fmt.Sprintf("denial handler type %s is invalid: %s", handlerType, reason),
		HTTPStatus: http.StatusInternalServerError,
		Details:    map[string]any{"handler": handlerType},
	}
}

// AccessDenied creates a new AppError for a denied authorization decision.
func AccessDenied(reason string) *AppError {
	if reason == "" {
		reason = "access denied"
	}
	return &AppError{
		Code:       ErrCodeAccessDenied,
		Message:    reason,
		HTTPStatus: http.StatusForbidden,
	}
}

// --- Common Error Constructors ---

// Validation creates a new AppError for invalid input.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NotFound creates a new AppError for a resource that was not found.
func NotFound(resource, id string) *AppError {
	details := map[string]any{"resource": resource}
	if id != "" {
		details["id"] = id
	}
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("The requested %s was not found.", resource),
		HTTPStatus: http.StatusNotFound, Details: details,
	}
}

// Internal creates a new AppError for an internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An internal error occurred.",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}

// Unauthorized creates a new AppError for an unauthorized request.
func Unauthorized(message string) *AppError {
	if message == "" {
		message = "Authentication required."
	}
	return &AppError{
		Code: ErrCodeUnauthorized, Message: message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Forbidden creates a new AppError for a forbidden request.
func Forbidden(message string) *AppError {
	if message == "" {
		message = "You don't have permission to perform this action."
	}
	return &AppError{
		Code: ErrCodeForbidden, Message: message,
		HTTPStatus: http.StatusForbidden,
	}
}

// --- Code Predicates ---

// CodeOf returns the ErrorCode of err if it is (or wraps) an AppError.
func CodeOf(err error) (ErrorCode, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code, true
	}
	return "", false
}

// hasCode reports whether err carries the given code.
func hasCode(err error, code ErrorCode) bool {
	c, ok := CodeOf(err)
	return ok && c == code
}

// IsAmbiguousRule reports whether err is an ambiguous rule declaration error.
func IsAmbiguousRule(err error) bool { return hasCode(err, ErrCodeAmbiguousRule) }

// IsExpressionCompile reports whether err is an expression compilation error.
func IsExpressionCompile(err error) bool { return hasCode(err, ErrCodeExpressionCompile) }

// IsHandlerConfiguration reports whether err is a denial handler configuration error.
func IsHandlerConfiguration(err error) bool { return hasCode(err, ErrCodeHandlerConfiguration) }

// IsAccessDenied reports whether err is a denied authorization decision.
func IsAccessDenied(err error) bool { return hasCode(err, ErrCodeAccessDenied) }
