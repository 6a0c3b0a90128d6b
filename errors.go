package flash

import (
	"errors"
	"fmt"
)

// Predefined error types for robust error handling
var (
	ErrNoPorts            = errors.New("no serial ports found, plug in the ESP32 and try again")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrPlatformIONotFound = errors.New("PlatformIO not found, install it or add 'pio' to PATH")
	ErrInvalidConfig      = errors.New("invalid flash configuration")

	// Toolchain errors
	ErrDeviceListFailed = errors.New("pio device list failed")
)

// StepError reports the pipeline step that stopped a run.
type StepError struct {
	Step StepKind
	Err  error
}

func (e *StepError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s step failed: %v", e.Step, e.Err)
}

// Unwrap exposes the executor error.
func (e *StepError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
