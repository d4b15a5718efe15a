package transferwatch

import (
	"fmt"
	"math/big"
)

// nativeDecimals is the fixed decimal exponent of the chain's native unit.
const nativeDecimals = 18

// amountDecimals is the number of fractional digits rendered in TransferRecord.Amount.
const amountDecimals = 2

var (
	// centsDivisor scales a smallest-unit value down to hundredths of the native unit.
	centsDivisor = new(big.Int).Exp(big.NewInt(10), big.NewInt(nativeDecimals-amountDecimals), nil)

	// halfCentsDivisor is half of centsDivisor, used for the rounding tie check.
	halfCentsDivisor = new(big.Int).Rsh(centsDivisor, 1)

	hundred = big.NewInt(100)
)

// Classify decides whether tx qualifies as a large transfer.
//
// A transaction qualifies iff its Value is present and greater than or equal to
// threshold (both in the smallest unit). A nil threshold is treated as zero.
// When it qualifies, the returned TransferRecord carries the transaction identity
// and the human-scaled amount produced by FormatAmount.
//
// Classify is pure: it performs no I/O and does not modify its inputs.
func Classify(tx Transaction, threshold *big.Int) (TransferRecord, bool) {
	if tx.Value == nil {
		return TransferRecord{}, false
	}

	if threshold != nil && tx.Value.Cmp(threshold) < 0 {
		return TransferRecord{}, false
	}

	return TransferRecord{
		TxHash:      tx.Hash,
		From:        tx.From,
		To:          tx.To,
		Amount:      FormatAmount(tx.Value),
		BlockHeight: tx.BlockHeight,
	}, true
}

// FormatAmount renders value / 10^18 with exactly two fractional digits.
//
// The conversion is exact: the value is divided into hundredths with integer
// arithmetic and the remainder is rounded half to even, so 1.005 renders as
// "1.00" and 1.015 as "1.02". Formatting a float64 quotient would not agree on
// ties, since 1.015 has no exact binary representation and prints as "1.01".
// Negative values are rendered with a leading minus sign; a nil value renders
// as "0.00".
func FormatAmount(value *big.Int) string {
	if value == nil {
		return "0.00"
	}

	abs := new(big.Int).Abs(value)

	cents, rem := new(big.Int).QuoRem(abs, centsDivisor, new(big.Int))
	switch rem.Cmp(halfCentsDivisor) {
	case 1:
		cents.Add(cents, big.NewInt(1))
	case 0:
		if cents.Bit(0) == 1 {
			cents.Add(cents, big.NewInt(1))
		}
	}

	whole, frac := new(big.Int).QuoRem(cents, hundred, new(big.Int))

	sign := ""
	if value.Sign() < 0 && cents.Sign() != 0 {
		sign = "-"
	}

	return fmt.Sprintf("%s%s.%02d", sign, whole.String(), frac.Int64())
}
