package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalid wraps input rejected before reaching the store.
	ErrInvalid = errors.New("invalid input")
	// ErrAlreadyCertified is returned when a course already has a certification.
	ErrAlreadyCertified = errors.New("course already has a certification")
	// ErrNoCertification is returned when issuing for a course without one.
	ErrNoCertification = errors.New("course has no certification")
	// ErrCourseIncomplete is returned when issuing before every activity is done.
	ErrCourseIncomplete = errors.New("course is not complete")
)

func formatValidationErrors(what string, errs []error) error {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = "  - " + e.Error()
	}
	return fmt.Errorf("%w: %s validation failed (%d errors):\n%s", ErrInvalid, what, len(errs), strings.Join(msgs, "\n"))
}
