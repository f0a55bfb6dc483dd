package model

import "errors"

// Errors are grouped by the taxonomy the engine reports: validation before
// any state read, not-found vs conflict on state access, authorization last.
var (
	ErrInvalidTickRange = errors.New("tick lower must be less than tick upper")
	ErrTickOutOfRange   = errors.New("tick outside supported range")
	ErrInvalidFeeTier   = errors.New("unknown fee tier")
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrInvalidSqrtPrice = errors.New("sqrt price outside supported range")
	ErrSamePairToken    = errors.New("pool tokens must differ")

	ErrPoolNotFound     = errors.New("pool not found")
	ErrPositionNotFound = errors.New("position not found")

	ErrPoolExists            = errors.New("pool already exists")
	ErrInsufficientLiquidity = errors.New("insufficient position liquidity")
	ErrInsufficientBalance   = errors.New("insufficient balance")

	ErrUnauthorized = errors.New("caller not authorized")
)
