package config

import "errors"

var (
	// ErrEmptyDataDir indicates the data directory path is empty.
	ErrEmptyDataDir = errors.New("config: data directory must not be empty")

	// ErrInvalidMaxPayout indicates the payout recipient limit is zero.
	ErrInvalidMaxPayout = errors.New("config: max payout recipients must be at least 1")

	// ErrInvalidByteCost indicates the storage byte cost is not a
	// non-negative decimal integer.
	ErrInvalidByteCost = errors.New("config: invalid storage byte cost")
)
