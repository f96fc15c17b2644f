package domain

import "errors"

var (
	// ErrValidation is the kind shared by every ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound indicates that a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrBadArgument indicates a structurally valid but unusable parameter.
	ErrBadArgument = errors.New("bad argument")
	// ErrConflict indicates that an entity is still referenced and cannot be removed.
	ErrConflict = errors.New("conflict")
)

// ValidationError reports a single violated domain rule.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return e.Msg }

// Unwrap makes every ValidationError match ErrValidation.
func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Msg: msg}
}

// Rule-specific validation errors. Callers match them with errors.Is.
var (
	ErrIDMissing = invalid("id", "id is required for update")

	ErrEmailBlank       = invalid("email", "email must not be blank")
	ErrEmailNoAt        = invalid("email", "email must contain @")
	ErrLoginBlank       = invalid("login", "login must not be blank")
	ErrLoginWhitespace  = invalid("login", "login must not contain whitespace")
	ErrBirthdayMissing  = invalid("birthday", "birthday is required")
	ErrBirthdayInFuture = invalid("birthday", "birthday must not be in the future")

	ErrNameBlank           = invalid("name", "name must not be blank")
	ErrDescriptionTooLong  = invalid("description", "description must be at most 200 characters")
	ErrReleaseDateMissing  = invalid("releaseDate", "release date is required")
	ErrReleaseDateTooEarly = invalid("releaseDate", "release date must not be before 1895-12-28")
	ErrDurationNotPositive = invalid("duration", "duration must be positive")
	ErrRatingMissing       = invalid("rating", "rating is required")
)
