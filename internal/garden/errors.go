package garden

import "errors"

// Error kinds surfaced by garden operations. Callers match them with errors.Is.
var (
	// ErrAlreadyInitialized is returned when Initialize is called on a garden
	// that already holds states.
	ErrAlreadyInitialized = errors.New("garden already initialized")

	// ErrEmptyGarden is returned by operations that need at least one state.
	ErrEmptyGarden = errors.New("garden has no states")

	// ErrIndexOutOfRange is returned for a bad state index or an out-of-grid
	// planting coordinate.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrMutation is returned by MutatePlant for a glyph outside the
	// recognized symbol set.
	ErrMutation = errors.New("no mutation rule for glyph")

	// ErrNotFound is returned by Load when the save file does not exist.
	ErrNotFound = errors.New("save file not found")

	// ErrCorruptData is returned by Load when the save file cannot be parsed
	// or fails validation.
	ErrCorruptData = errors.New("corrupt save data")
)
