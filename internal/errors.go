package internal

import "errors"

var (
	// ErrConfiguration marks a statistics configuration that is missing a required
	// field or mixes single- and multi-dimensional settings.
	ErrConfiguration = errors.New("invalid statistics configuration")

	// ErrArithmetic marks a value that cannot be interpreted as a decimal.
	ErrArithmetic = errors.New("arithmetic error")

	// ErrUnsupportedUnit marks a TimeUnit outside the closed set of calendar units.
	ErrUnsupportedUnit = errors.New("unsupported time unit")
)
