package matching

import (
	"github.com/Rijish13Ahuja/goQuant/num"
	"github.com/Rijish13Ahuja/goQuant/types"
)

// validateOrder runs the synchronous checks §7 calls "Validation" kind
// errors: non-positive quantity, or non-positive price on a type that
// requires one. Unknown-symbol is checked a layer up, by the engine, which
// owns the symbol -> book map; o.Symbol is not compared with the book's own
// symbol here.
func validateOrder(o *types.Order) error {
	if !num.IsPositive(o.Quantity) {
		return types.ErrInvalidQuantity
	}
	if o.Type != types.Market && !num.IsPositive(o.Price) {
		return types.ErrInvalidPrice
	}
	return nil
}
