// backend/src/engine/errors.go
package engine

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// ErrInvalidModel is the INVALID_MODEL sentinel (spec §7.1). Its text
// prefixes every ValidationError message; the individual problems are
// held in ValidationError.Err, a *multierror.Error, and are returned by
// Problems(). ValidationError does not wrap this sentinel, so
// errors.Is(verr, ErrInvalidModel) reports false.
var ErrInvalidModel = errors.New("invalid project model")

// ErrNotConverged marks an IRR computation that could not bracket a
// root within the iteration budget (spec §7.2). It is never
// returned by ProjectModel validation; it is surfaced through
// FinancialIndicators.IRRConverged instead, but kept here so callers
// that want to treat non-convergence as an error can wrap it.
var ErrNotConverged = errors.New("indicator did not converge")

// ValidationError aggregates one or more structural problems found
// while validating a ProjectModel, in the shape spec §7.1 asks for: a
// single INVALID_MODEL failure carrying a list of problems.
type ValidationError struct {
	Err *multierror.Error
}

func newValidationError() *ValidationError {
	return &ValidationError{Err: &multierror.Error{
		ErrorFormat: func(errs []error) string {
			msg := fmt.Sprintf("%s: %d problem(s) found", ErrInvalidModel, len(errs))
			for _, e := range errs {
				msg += "\n  - " + e.Error()
			}
			return msg
		},
	}}
}

// Error implements the error interface, delegating to the aggregated
// *multierror.Error.
func (v *ValidationError) Error() string {
	return v.Err.Error()
}

func (v *ValidationError) add(format string, args ...any) {
	v.Err = multierror.Append(v.Err, fmt.Errorf(format, args...))
}

// Problems returns the individual validation failures collected, or
// nil if there weren't any.
func (v *ValidationError) Problems() []error {
	if v == nil || v.Err == nil {
		return nil
	}
	return v.Err.Errors
}

// HasProblems reports whether any structural problem was recorded.
func (v *ValidationError) HasProblems() bool {
	return v != nil && v.Err != nil && len(v.Err.Errors) > 0
}
