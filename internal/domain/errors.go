package domain

import "errors"

var (
	// ErrNotFound is returned when a property, item or template id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks a missing or out-of-range field.
	ErrValidation = errors.New("validation failed")

	// ErrMigrationState is returned when the store is in a shape the migrator
	// does not recognize. Migration aborts without modifying anything.
	ErrMigrationState = errors.New("unexpected schema state")

	// ErrConstraintViolation marks an operation the store refuses, such as
	// deleting the default template.
	ErrConstraintViolation = errors.New("constraint violation")
)
