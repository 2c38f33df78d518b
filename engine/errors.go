package engine

import "fmt"

// ErrorKind is the closed set of in-cell error kinds a formula evaluation
// can produce. Values flow through the evaluator like any other Value —
// they are never panicked or returned as Go errors from Evaluate.
type ErrorKind uint8

const (
	ErrName  ErrorKind = iota + 1 // #NAME? - unknown function name
	ErrRef                        // #REF! - malformed or cross-sheet range, out-of-bounds
	ErrValue                      // #VALUE! - non-numeric arithmetic, bad argument shape
	ErrDiv0                       // #DIV/0! - division by zero
	ErrNA                         // #N/A - lookup or match not found
	ErrNum                        // #NUM! - numeric domain violation
	ErrCycle                      // #CYCLE! - circular reference during evaluation
)

var errorCodes = map[ErrorKind]string{
	ErrName:  "#NAME?",
	ErrRef:   "#REF!",
	ErrValue: "#VALUE!",
	ErrDiv0:  "#DIV/0!",
	ErrNA:    "#N/A",
	ErrNum:   "#NUM!",
	ErrCycle: "#CYCLE!",
}

// Error is a spreadsheet error value. Built-in functions return it as an
// ordinary Value. It also implements Go's error interface, but callers
// displaying cell contents should use Code()/String(),
// not Error() — the two happen to agree here, but Error() exists only to
// satisfy the interface.
type Error struct {
	Kind    ErrorKind
	Message string
}

// NewError builds an *Error for kind, attaching an optional diagnostic
// message. An empty message falls back to the bare code.
func NewError(kind ErrorKind, message string) *Error {
	if message == "" {
		message = errorCodes[kind]
	}
	return &Error{Kind: kind, Message: message}
}

// Code returns the error's spreadsheet-convention code, e.g. "#CYCLE!".
func (e *Error) Code() string {
	return errorCodes[e.Kind]
}

// String renders the error as its code, matching spec.md's "the string
// form of any error is its code" rule.
func (e *Error) String() string {
	return e.Code()
}

func (e *Error) Error() string {
	return e.Code()
}

// APIErrorCode is the closed set of structural-failure codes an operation
// at the package boundary (not inside a formula) can raise. These mirror
// the gRPC-style codes the teacher repo used for the same purpose, trimmed
// to the subset this engine's surface actually needs.
type APIErrorCode int

const (
	CodeInvalidArgument APIErrorCode = iota + 1
	CodeNotFound
	CodeAlreadyExists
	CodeFailedPrecondition
	CodeInternal
)

// APIError represents a structural problem in how the caller invoked an
// operation — malformed A1/range syntax, a shape mismatch in SetRange, an
// unknown sheet at the range layer — as opposed to an in-cell formula
// problem. spec.md §7 draws this line explicitly: API errors are raised,
// not returned as cell values.
type APIError struct {
	Code    APIErrorCode
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

func NewAPIError(code APIErrorCode, format string, args ...any) *APIError {
	return &APIError{Code: code, Message: fmt.Sprintf(format, args...)}
}
