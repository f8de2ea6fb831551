package wallet

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"
)

var lovelacePerAda = uint256.NewInt(LovelacePerAda)

/*
FormatLovelace converts a lovelace quantity (decimal string) to an ADA
amount of the form "<ada>.<fraction>" with the fraction always padded to
6 digits, e.g. "1000000" -> "1.000000" and "1" -> "0.000001".

The conversion is done with integer arithmetic only so large balances do
not lose precision. Malformed or empty input normalizes to zero.
*/
func FormatLovelace(quantity string) string {
	amount, err := uint256.FromDecimal(strings.TrimSpace(quantity))
	if err != nil {
		amount = uint256.NewInt(0)
	}
	ada := new(uint256.Int).Div(amount, lovelacePerAda)
	fraction := new(uint256.Int).Mod(amount, lovelacePerAda)
	return fmt.Sprintf("%s.%06d", ada.Dec(), fraction.Uint64())
}

/*
SumLovelace adds up the native asset entries of a balance returned by
the wallet capability. Non lovelace units and malformed quantities are
skipped.
*/
func SumLovelace(assets []Asset) string {
	total := uint256.NewInt(0)
	for _, asset := range assets {
		if asset.Unit != UnitLovelace {
			continue
		}
		quantity, err := uint256.FromDecimal(strings.TrimSpace(asset.Quantity))
		if err != nil {
			continue
		}
		total.Add(total, quantity)
	}
	return total.Dec()
}
