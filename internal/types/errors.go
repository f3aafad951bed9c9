package types

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("requested item not found")
	ErrBadRequest = errors.New("bad request")

	// Configuration errors.
	ErrMissingAICredential   = errors.New("generative AI API key not configured")
	ErrInvalidAICredential   = errors.New("generative AI API key rejected")
	ErrMissingMapsCredential = errors.New("maps API key not configured")

	// Generation errors.
	ErrGeneration = errors.New("trip plan generation failed")

	// Validation errors. ErrPlanParse covers malformed JSON, ErrInvalidPlan a
	// well-formed document with the wrong shape.
	ErrPlanParse   = errors.New("trip plan response is not valid JSON")
	ErrInvalidPlan = errors.New("trip plan response has an invalid structure")

	// Persistence errors.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	ErrCorruptPlan   = errors.New("stored trip plan is corrupt")
)

// ParseError is returned when the AI response cannot be decoded as JSON.
// Raw keeps the untouched response for diagnostics only.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", ErrPlanParse.Error(), e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrPlanParse, e.Err}
}

// ValidationError is returned when the decoded response fails a structural check.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidPlan.Error(), e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidPlan
}
