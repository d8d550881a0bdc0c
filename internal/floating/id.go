package floating

import "github.com/google/uuid"

// ID identifies a window for the lifetime of the process.
type ID string

func newID() ID {
	return ID(uuid.NewString())
}

func (id ID) String() string { return string(id) }

// Short returns the first eight characters of the ID, for logs and docks.
func (id ID) Short() string {
	if len(id) <= 8 {
		return string(id)
	}
	return string(id[:8])
}
