package proto

import "fmt"

// Error codes for protocol-level user errors.
const (
	CodeBadUser    = "BAD_USER"
	CodeBadRoom    = "BAD_ROOM"
	CodeBadTopic   = "BAD_TOPIC"
	CodeBadCount   = "BAD_COUNT"
	CodeNoMessage  = "NO_MSG"
	CodeBadCommand = "BAD_COMMAND"
)

// Error wraps a code and human-readable detail. Its string form is the
// exact diagnostic line written for a failed command.
type Error struct {
	Code   string
	Detail string
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Detail
}

// Errorf builds a protocol error with a formatted detail message.
func Errorf(code, format string, args ...any) *Error {
	return &Error{Code: code, Detail: fmt.Sprintf(format, args...)}
}
