package packer

import "errors"

var (
	// ErrInvalidCapacity is returned when a bin is created with a non-positive capacity.
	ErrInvalidCapacity = errors.New("capacity must be greater than 0")
	// ErrEmptyInput is returned when Pack is called without any values.
	ErrEmptyInput = errors.New("values list cannot be empty")
	// ErrCapacityTooSmall is returned when a single value is larger than the bin size.
	ErrCapacityTooSmall = errors.New("bin size too small")
)
