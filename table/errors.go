package table

import "fmt"

// InvalidTuple - Custom error to inform that a tuple does not match the table schema
type InvalidTuple struct {
	msg string
}

// Error - Used to notify that a tuple was rejected by the type check
func (E InvalidTuple) Error() string {
	if E.msg == "" {
		return "invalid tuple"
	}
	return E.msg
}

// Is - Matches any InvalidTuple regardless of message
func (E InvalidTuple) Is(target error) bool {
	_, ok := target.(InvalidTuple)
	return ok
}

func newInvalidTuple(format string, a ...any) InvalidTuple {
	return InvalidTuple{msg: fmt.Sprintf(format, a...)}
}
