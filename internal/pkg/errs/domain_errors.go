package errs

import cr "github.com/cockroachdb/errors"

// Category markers. Concrete sentinels in domain and usecase packages are
// marked with one of these so the handler can map them to a status code.
var (
	ErrValidation      = New("validation error")
	ErrNotFound        = New("not found")
	ErrEligibility     = New("eligibility error")
	ErrConflict        = New("conflict")
	ErrExternalService = New("external service error")
	ErrReconciliation  = New("reconciliation error")
	ErrDataIntegrity   = New("data integrity anomaly")
)

// sentinel keeps its own identity under Is. A bare Mark result would compare
// equal to every other error carrying the same category mark.
type sentinel struct {
	cause error
}

func (s *sentinel) Error() string { return s.cause.Error() }
func (s *sentinel) Unwrap() error { return s.cause }

// Sentinel returns a package-level error named msg and marked with each category.
func Sentinel(msg string, categories ...error) error {
	err := cr.New(msg)
	for _, c := range categories {
		err = cr.Mark(err, c)
	}
	return &sentinel{cause: err}
}

// Validation returns a sentinel marked as a validation error.
func Validation(msg string) error {
	return Sentinel(msg, ErrValidation)
}

func NotFound(msg string) error {
	return Sentinel(msg, ErrNotFound)
}

func Eligibility(msg string) error {
	return Sentinel(msg, ErrEligibility)
}

func Conflict(msg string) error {
	return Sentinel(msg, ErrConflict)
}
