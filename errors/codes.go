package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Authorization resolution errors
const (
	// ErrCodeAmbiguousRule indicates two or more independent rule declarations
	// apply to the same method and runtime type.
	ErrCodeAmbiguousRule ErrorCode = "AMBIGUOUS_RULE"
	// ErrCodeExpressionCompile indicates a rule expression failed to compile.
	ErrCodeExpressionCompile ErrorCode = "EXPRESSION_COMPILE"
	// ErrCodeHandlerConfiguration indicates a denial handler could not be
	// resolved to exactly one instance.
	ErrCodeHandlerConfiguration ErrorCode = "HANDLER_CONFIGURATION"
	// ErrCodeAccessDenied indicates an authorization rule evaluated to denied.
	ErrCodeAccessDenied ErrorCode = "ACCESS_DENIED"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// Resource errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeAlreadyExists indicates the resource already exists.
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
)

// Authentication/Authorization errors
const (
	// ErrCodeUnauthorized indicates the request is unauthorized.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeForbidden indicates the request is forbidden.
	ErrCodeForbidden ErrorCode = "FORBIDDEN"
)

// Internal errors
const (
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)
