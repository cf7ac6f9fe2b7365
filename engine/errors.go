package engine

import "fmt"

// DuplicateKeyIgnored - Custom error to inform that a key already exists in the index and the insert was ignored
type DuplicateKeyIgnored struct {
	msg string
}

// Error - Used to notify that an insert was ignored due to a duplicate key
func (E DuplicateKeyIgnored) Error() string {
	if E.msg == "" {
		return "duplicate key ignored"
	}
	return E.msg
}

// Is - Matches any DuplicateKeyIgnored regardless of message
func (E DuplicateKeyIgnored) Is(target error) bool {
	_, ok := target.(DuplicateKeyIgnored)
	return ok
}

// NewDuplicateKeyIgnored - Returns a DuplicateKeyIgnored error naming the offending key
func NewDuplicateKeyIgnored(key any) DuplicateKeyIgnored {
	return DuplicateKeyIgnored{msg: fmt.Sprintf("duplicate key ignored: %v", key)}
}

// EmptyIndex - Custom error to inform that the index holds no entries
type EmptyIndex struct {
	msg string
}

// Error - Used to notify that first/last key was requested from an empty index
func (E EmptyIndex) Error() string {
	if E.msg == "" {
		return "index is empty"
	}
	return E.msg
}

// ConfigError - Custom error to inform that an index was given an invalid configuration
type ConfigError struct {
	msg string
}

// Error - Used to notify about invalid configuration
func (E ConfigError) Error() string {
	if E.msg == "" {
		return "invalid index configuration"
	}
	return E.msg
}

// Is - Matches any ConfigError regardless of message
func (E ConfigError) Is(target error) bool {
	_, ok := target.(ConfigError)
	return ok
}

// NewConfigError - Returns a ConfigError with a formatted message
func NewConfigError(format string, a ...any) ConfigError {
	return ConfigError{msg: fmt.Sprintf(format, a...)}
}
