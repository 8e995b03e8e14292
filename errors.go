package nagp1250

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout implies the SBUSY line never cleared within the bound.
	// The in-flight command is lost and the protocol state may be
	// desynchronized; the caller must issue Reset before continuing.
	ErrTimeout = errors.New("nagp1250: busy timeout")

	// ErrInvalidArgument implies a parameter fell outside its documented
	// range. Nothing was transmitted.
	ErrInvalidArgument = errors.New("nagp1250: invalid argument")

	// ErrHalted implies the device was shut down with Halt and needs to be
	// re-initialized.
	ErrHalted = errors.New("nagp1250: halted")
)

// UnsupportedCharError reports a rune that has no mapping in the active
// character code page. Nothing is transmitted; the caller decides whether
// to skip, substitute or abort.
type UnsupportedCharError struct {
	Rune rune
	Pos  int // rune index within the rejected string
}

func (e *UnsupportedCharError) Error() string {
	return fmt.Sprintf("nagp1250: character %q at %d not in active code page", e.Rune, e.Pos)
}
