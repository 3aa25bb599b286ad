package progress

import "errors"

var (
	// ErrInvalidReference is returned when a module, section or quiz ID does not
	// belong to the enrollment's course.
	ErrInvalidReference = errors.New("module, section or quiz does not belong to this course")

	// ErrAlreadyCompleted is returned when a mutation is attempted on an
	// enrollment that has already reached COMPLETED status.
	ErrAlreadyCompleted = errors.New("enrollment is already completed")

	// ErrMalformedAnswer is returned when a quiz submission references a
	// question or option that does not exist. The whole submission is rejected.
	ErrMalformedAnswer = errors.New("answer references a nonexistent question or option")

	// ErrNotEligible is returned when a certificate is issued for an enrollment
	// that never became eligible.
	ErrNotEligible = errors.New("enrollment is not eligible for certification")
)
