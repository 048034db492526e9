package settlement

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Rates are fixed platform policy. The merchant bonus is the only
// per-merchant knob and is additive on top of the base cashback.
var (
	platformFeeRate  = decimal.NewFromFloat(0.05)
	baseCashbackRate = decimal.NewFromFloat(0.02)
	referralRate     = decimal.NewFromFloat(0.01)
	maxBonusRate     = decimal.NewFromFloat(0.10)
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDiscount  = errors.New("invalid discount")
	ErrInvalidBonusRate = errors.New("invalid bonus rate")
)

// ValidationError reports which input field failed validation and the
// value it carried. It unwraps to one of the sentinel errors above.
type ValidationError struct {
	Err   error
	Field string
	Value float64
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s=%v", e.Err.Error(), e.Field, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Result is the settlement breakdown for a single sale. All monetary
// fields are rounded to 2 decimal places independently, so platformFee
// and merchantReceives may disagree with netAmount by one minor unit.
type Result struct {
	NetAmount          float64
	PlatformFee        float64
	CashbackAmount     float64
	MerchantReceives   float64
	ReferralCommission float64
}

// Compute calculates the settlement breakdown for a sale. It is a pure
// function: no I/O, no balance mutation; the caller applies the result.
func Compute(grossAmount, discount, merchantBonusRate float64, referrerPresent bool) (*Result, error) {
	gross := decimal.NewFromFloat(grossAmount)
	disc := decimal.NewFromFloat(discount)
	bonus := decimal.NewFromFloat(merchantBonusRate)

	if gross.LessThanOrEqual(decimal.Zero) {
		return nil, &ValidationError{Err: ErrInvalidAmount, Field: "grossAmount", Value: grossAmount}
	}
	if disc.IsNegative() || disc.GreaterThan(gross) {
		return nil, &ValidationError{Err: ErrInvalidDiscount, Field: "discount", Value: discount}
	}
	if bonus.IsNegative() || bonus.GreaterThan(maxBonusRate) {
		return nil, &ValidationError{Err: ErrInvalidBonusRate, Field: "merchantBonusRate", Value: merchantBonusRate}
	}

	net := gross.Sub(disc)

	commission := decimal.Zero
	if referrerPresent {
		commission = net.Mul(referralRate)
	}

	// Each output is rounded from the exact value, never derived by
	// subtracting another rounded output.
	return &Result{
		NetAmount:          round(net),
		PlatformFee:        round(net.Mul(platformFeeRate)),
		CashbackAmount:     round(net.Mul(baseCashbackRate.Add(bonus))),
		MerchantReceives:   round(net.Sub(net.Mul(platformFeeRate))),
		ReferralCommission: round(commission),
	}, nil
}

// round to the currency minor unit, half-up.
func round(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
