package floating

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyRegistered is returned when a window with the same ID is
	// already part of the registry's live set.
	ErrAlreadyRegistered = errors.New("window already registered")

	// ErrAlreadyPresented is returned by Present on a handle that is
	// already on screen.
	ErrAlreadyPresented = errors.New("window already presented")

	// ErrDismissed is returned by Present on a handle that has been
	// dismissed. A dismissed handle cannot be presented again.
	ErrDismissed = errors.New("window dismissed")

	// ErrNoSurface is returned when Present has no host surface to attach to.
	ErrNoSurface = errors.New("no host surface")

	// ErrDuplicateCompletion is reported to the fault hook when an
	// animation runner calls a completion callback more than once.
	ErrDuplicateCompletion = errors.New("animation completion invoked more than once")
)

// RegistrationError describes a rejected Register call.
type RegistrationError struct {
	ID ID
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("register %s: %v", e.ID, ErrAlreadyRegistered)
}

func (e *RegistrationError) Unwrap() error { return ErrAlreadyRegistered }
