package schedule

import "fmt"

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	// ErrLexical: an expected digit, separator, or token was not found.
	ErrLexical ErrorKind = iota
	// ErrWildcardConflict: a field combines a bare wildcard with other entries.
	ErrWildcardConflict
	// ErrBounds: an entry's begin/end falls outside the field's range,
	// or end < begin.
	ErrBounds
	// ErrTrailingInput: input remains after a structurally complete parse.
	ErrTrailingInput
	// ErrOverflow: a digit run does not fit the native int.
	ErrOverflow
)

func (k ErrorKind) String() string {
	switch k {
	case ErrLexical:
		return "lexical"
	case ErrWildcardConflict:
		return "wildcard conflict"
	case ErrBounds:
		return "bounds"
	case ErrTrailingInput:
		return "trailing input"
	case ErrOverflow:
		return "overflow"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ParseError reports why an expression was rejected and the byte offset
// into the input where the problem applies. For semantic errors (bounds,
// wildcard conflicts) the offset points at the start of the offending
// field, not at a single character.
type ParseError struct {
	Kind   ErrorKind
	Offset int
	msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.msg, e.Offset)
}

func errAt(kind ErrorKind, offset int, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Offset: offset, msg: fmt.Sprintf(format, args...)}
}
