package engine

import "errors"

// Rejection classes. Every class collapses to the same Invalid output line;
// the distinction exists for tests and debug logging only.
var (
	// ErrMalformed covers wrong token counts, unknown commands and bad
	// flag syntax.
	ErrMalformed = errors.New("malformed command")

	// ErrValidation covers field charset, length and format violations.
	ErrValidation = errors.New("invalid field")

	// ErrDenied covers insufficient privilege, bad credentials and
	// privilege-ordering violations.
	ErrDenied = errors.New("permission denied")

	// ErrConflict covers uniqueness violations, insufficient stock,
	// nonexistent references and missing selections.
	ErrConflict = errors.New("conflicting state")
)

// class names the rejection class of err for debug logging. Anything not
// tagged with an engine sentinel is a persistence failure.
func class(err error) string {
	switch {
	case errors.Is(err, ErrMalformed):
		return "malformed"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrDenied):
		return "denied"
	case errors.Is(err, ErrConflict):
		return "conflict"
	default:
		return "persistence"
	}
}
