package admin

import "errors"

// ErrUnknownCommand is returned when a command name has no handler.
var ErrUnknownCommand = errors.New("unknown command")

// ErrBadArguments is returned when a command is invoked with the wrong
// number of arguments.
var ErrBadArguments = errors.New("bad arguments")

// ErrNoData is returned when a command needs data the process does not
// currently have, such as an unset config file path.
var ErrNoData = errors.New("no data available")

// commandError carries the exact operator-facing message while staying
// matchable against the taxonomy sentinels with errors.Is.
type commandError struct {
	msg  string
	kind error
}

func (e *commandError) Error() string { return e.msg }
func (e *commandError) Unwrap() error { return e.kind }

func badArguments(msg string) error {
	return &commandError{msg: msg, kind: ErrBadArguments}
}

func noData(msg string) error {
	return &commandError{msg: msg, kind: ErrNoData}
}
