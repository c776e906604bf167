package domain

import "fmt"

type ErrorKind uint8

const (
	KindBadRequest ErrorKind = iota + 1
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindBadRequest:
		return "bad request"
	case KindNotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// Error is a recoverable failure the caller is expected to surface to the
// client: malformed input or a missing entity.
type Error struct {
	Kind    ErrorKind
	Message string
}

var (
	ErrBadRequest = &Error{Kind: KindBadRequest}
	ErrNotFound   = &Error{Kind: KindNotFound}
)

func BadRequest(format string, args ...any) error {
	return &Error{Kind: KindBadRequest, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Message
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound)
// works regardless of the message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}
