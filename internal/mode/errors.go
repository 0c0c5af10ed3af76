package mode

import (
	"errors"
	"fmt"
)

// Sentinel error kinds shared by the pipeline stages.
//
// ErrNoModes and ErrDuplicateMode mark corrupt or unusable input and abort the
// run. ErrExportWrite marks an I/O failure at the presentation boundary and is
// surfaced to the caller verbatim.
var (
	ErrNoModes       = errors.New("no vibrational modes found")
	ErrDuplicateMode = errors.New("duplicate mode index")
	ErrExportWrite   = errors.New("export write failed")
)

// InputError wraps a fatal input validation failure with its error kind.
type InputError struct {
	Kind error
	Msg  string
}

func (e *InputError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *InputError) Unwrap() error { return e.Kind }

// NoModesf builds an ErrNoModes input error.
func NoModesf(format string, args ...any) error {
	return &InputError{Kind: ErrNoModes, Msg: fmt.Sprintf(format, args...)}
}

// DuplicateModef builds an ErrDuplicateMode input error.
func DuplicateModef(format string, args ...any) error {
	return &InputError{Kind: ErrDuplicateMode, Msg: fmt.Sprintf(format, args...)}
}
