package types

import "github.com/pkg/errors"

// Sentinel errors returned synchronously by the matching core. None of
// these are ever panics: each is a structured negative outcome on the same
// return path the caller already reads trades/bools from. Only broken
// internal invariants (index vs. ladder divergence) are fatal.
var (
	ErrUnknownSymbol         = errors.New("unknown symbol")
	ErrInvalidQuantity       = errors.New("quantity must be positive")
	ErrInvalidPrice          = errors.New("price must be positive for this order type")
	ErrInsufficientLiquidity = errors.New("fill-or-kill: insufficient opposite-side liquidity")
)
