package kernel

import (
	"fmt"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const moneyScale = 2

var (
	ErrMoneyIsNotConstructed   = errs.NewValueIsRequiredError("money must be created via NewMoney, MoneyFromString or ZeroMoney")
	ErrVatRateIsNotConstructed = errs.NewValueIsRequiredError("VAT rate must be created via NewVatRate or VatRateFromString")
)

var (
	vatRateMin = decimal.Zero
	vatRateMax = decimal.NewFromInt(100)
)

// Money is a non-negative monetary amount rounded half-up to two fractional digits.
// Currency is implicit: the service prices everything in one currency.
type Money struct { //nolint:recvcheck //using for validation
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

// NewMoney rounds amount to two digits and rejects negative values.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"money",
			fmt.Errorf("%s is negative", amount.String()),
		)
	}

	return Money{
		amount: amount.Round(moneyScale),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// MoneyFromString parses a decimal string such as "12.50".
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money", err)
	}
	return NewMoney(amount)
}

// ZeroMoney returns a constructed zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero, guard: guard.NewConstructorGuard()}
}

func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the decimal value.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount), guard: guard.NewConstructorGuard()}
}

// Multiply returns m × quantity. A negative quantity is rejected.
func (m Money) Multiply(quantity int) (Money, error) {
	if quantity < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 0, "unbounded")
	}
	q := decimal.NewFromInt(int64(quantity))
	return Money{amount: m.amount.Mul(q).Round(moneyScale), guard: guard.NewConstructorGuard()}, nil
}

// Percent returns the share of m given by rate, rounded half-up to two digits.
func (m Money) Percent(rate VatRate) Money {
	share := m.amount.Mul(rate.percent).Div(vatRateMax).Round(moneyScale)
	return Money{amount: share, guard: guard.NewConstructorGuard()}
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual compares amounts, ignoring trailing zeros.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String renders the amount with exactly two fractional digits.
func (m Money) String() string {
	return m.amount.StringFixed(moneyScale)
}

// VatRate is a VAT percentage between 0 and 100 inclusive (20 means 20%).
type VatRate struct { //nolint:recvcheck //using for validation
	percent decimal.Decimal
	guard   guard.ConstructorGuard
}

func NewVatRate(percent decimal.Decimal) (VatRate, error) {
	if percent.LessThan(vatRateMin) || percent.GreaterThan(vatRateMax) {
		return VatRate{}, errs.NewValueIsOutOfRangeError("vat rate", percent.String(), vatRateMin.String(), vatRateMax.String())
	}

	return VatRate{percent: percent, guard: guard.NewConstructorGuard()}, nil
}

// VatRateFromString parses a percentage such as "20" or "8.5".
func VatRateFromString(s string) (VatRate, error) {
	percent, err := decimal.NewFromString(s)
	if err != nil {
		return VatRate{}, errs.NewValueIsInvalidErrorWithCause("vat rate", err)
	}
	return NewVatRate(percent)
}

func (r VatRate) Validate() error {
	return r.guard.Validate(ErrVatRateIsNotConstructed)
}

func (r VatRate) Percent() decimal.Decimal {
	return r.percent
}

func (r VatRate) IsEqual(other VatRate) bool {
	return r.percent.Equal(other.percent)
}

func (r VatRate) String() string {
	return r.percent.String()
}
