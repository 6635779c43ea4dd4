package pattern

import (
	"errors"
	"fmt"
)

// ErrorKind classifies pattern engine errors.
type ErrorKind uint8

const (
	// KindSyntax reports malformed pattern text.
	KindSyntax ErrorKind = iota

	// KindUnsupported reports valid-looking syntax the engine cannot express.
	KindUnsupported

	// KindInternal reports a broken engine invariant (programming error).
	KindInternal
)

// String returns a human-readable representation of the ErrorKind
func (k ErrorKind) String() string {
	switch k {
	case KindSyntax:
		return "syntax"
	case KindUnsupported:
		return "unsupported"
	case KindInternal:
		return "internal"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Syntax errors
var (
	ErrMissingParen        = errors.New("missing closing )")
	ErrUnexpectedParen     = errors.New("unexpected )")
	ErrMissingBracket      = errors.New("missing closing ]")
	ErrMissingBrace        = errors.New("missing closing }")
	ErrEmptyClass          = errors.New("empty character class")
	ErrInvalidRange        = errors.New("invalid character class range")
	ErrMisplacedNegation   = errors.New("misplaced negation ^ in character class")
	ErrMissingRepeatArg    = errors.New("missing argument to repetition operator")
	ErrInvalidNestedRepeat = errors.New("invalid nested repetition operator")
	ErrInvalidRepeatCount  = errors.New("invalid repeat count")
	ErrTrailingBackslash   = errors.New("trailing backslash at end of pattern")
	ErrEmptyGroup          = errors.New("empty group")
	ErrEmptyAlternative    = errors.New("empty alternative")
	ErrEmptyPattern        = errors.New("empty pattern")
	ErrNestingDepth        = errors.New("expression nests too deeply")
)

// Unsupported features
var (
	// ErrZeroRepeat is returned for {0} and {0,0}: a zero maximum encodes an
	// unbounded repetition.
	ErrZeroRepeat = errors.New("zero repetition count")
)

// ErrInvariant is wrapped by internal errors.
var ErrInvariant = errors.New("engine invariant violated")

// Error describes a failure to compile or run a pattern.
type Error struct {
	Kind    ErrorKind
	Pattern string
	Pos     int // rune offset of the offending character, -1 if unknown
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	switch e.Kind {
	case KindInternal:
		return fmt.Sprintf("pattern: internal error: %v", e.Err)
	case KindUnsupported:
		return fmt.Sprintf("error parsing pattern: unsupported %v: `%s`", e.Err, e.Pattern)
	default:
		return fmt.Sprintf("error parsing pattern: %v: `%s`", e.Err, e.Pattern)
	}
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// kindOf picks the kind matching a sentinel error.
func kindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrZeroRepeat):
		return KindUnsupported
	case errors.Is(err, ErrInvariant):
		return KindInternal
	default:
		return KindSyntax
	}
}

// invariant panics with an internal error.
func invariant(format string, args ...any) {
	panic(&Error{
		Kind: KindInternal,
		Pos:  -1,
		Err:  fmt.Errorf("%w: "+format, append([]any{ErrInvariant}, args...)...),
	})
}
