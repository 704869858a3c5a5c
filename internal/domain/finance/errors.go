package finance

import "errors"

// ErrInvalidComputation marks a precondition violation in the pipeline.
// It signals a data-integrity problem upstream, never a steady-state condition.
var ErrInvalidComputation = errors.New("invalid computation")

var (
	// ErrDivisionByZero is returned when a ratio's denominator is exactly zero
	ErrDivisionByZero = fmtInvalid("division by zero")

	// ErrMissingPrice is returned when a configured token has no quote in the price book
	ErrMissingPrice = fmtInvalid("missing price")

	// ErrInvalidDomain is returned for an empty or inverted histogram domain
	ErrInvalidDomain = fmtInvalid("invalid histogram domain")

	// ErrInvalidBucketCount is returned when a histogram is asked for fewer than one bucket
	ErrInvalidBucketCount = fmtInvalid("bucket count must be positive")
)

type invalidComputationError struct {
	msg string
}

func fmtInvalid(msg string) error {
	return &invalidComputationError{msg: msg}
}

func (e *invalidComputationError) Error() string {
	return e.msg
}

// Is lets callers match any pipeline precondition error against ErrInvalidComputation
func (e *invalidComputationError) Is(target error) bool {
	return target == ErrInvalidComputation
}
