package utils

import (
	"github.com/segyhp/debt-ledger/internal/domain"
	customError "github.com/segyhp/debt-ledger/pkg/errors"

	"github.com/shopspring/decimal"
)

const (
	// MoneyPlaces is the number of decimal places monetary amounts are kept at
	MoneyPlaces = 2
	// RatePlaces is the precision of a monthly interest rate in percent
	RatePlaces = 4
	// MaxPeriodMonths bounds a loan to one hundred years
	MaxPeriodMonths = 1200
)

// InterestResult is the outcome of an interest calculation
type InterestResult struct {
	Interest decimal.Decimal
	Total    decimal.Decimal
}

// CalculateInterest computes interest and total for a loan.
//
//	simple:   interest = principal * rate/100 * periods
//	compound: total    = principal * (1 + rate/100)^periods
//
// Amounts are rounded to cents and total - interest == principal always holds.
// Inputs must already be validated with ValidateTerms.
func CalculateInterest(principal, ratePercent decimal.Decimal, periods int, scheme domain.InterestType) InterestResult {
	rate := ratePercent.Shift(-2)

	if scheme == domain.InterestCompound {
		// base >= 1 and periods > 0, PowInt32 cannot fail here
		factor, _ := decimal.NewFromInt(1).Add(rate).PowInt32(int32(periods))
		total := principal.Mul(factor).Round(MoneyPlaces)
		return InterestResult{Interest: total.Sub(principal), Total: total}
	}

	interest := principal.Mul(rate).Mul(decimal.NewFromInt(int64(periods))).Round(MoneyPlaces)
	return InterestResult{Interest: interest, Total: principal.Add(interest)}
}

// Installment splits the total evenly over the periods
func (r InterestResult) Installment(periods int) decimal.Decimal {
	if periods <= 0 {
		return r.Total
	}
	return r.Total.Div(decimal.NewFromInt(int64(periods))).Round(MoneyPlaces)
}

// ValidateTerms is the pre-check run before CalculateInterest
func ValidateTerms(principal, ratePercent decimal.Decimal, periods int, scheme domain.InterestType) error {
	switch {
	case !principal.IsPositive():
		return customError.WrapInvalidTerms("principal must be greater than 0")
	case !ratePercent.IsPositive():
		return customError.WrapInvalidTerms("interest rate must be greater than 0")
	case !FitsPlaces(principal, MoneyPlaces):
		return customError.WrapInvalidTerms("principal must have at most 2 decimal places")
	case !FitsPlaces(ratePercent, RatePlaces):
		return customError.WrapInvalidTerms("interest rate must have at most 4 decimal places")
	case periods <= 0:
		return customError.WrapInvalidTerms("period must be at least one month")
	case periods > MaxPeriodMonths:
		return customError.WrapInvalidTerms("period must be at most 1200 months")
	case !scheme.Valid():
		return customError.WrapInvalidTerms("interest type must be simple or compound")
	}
	return nil
}

// FitsPlaces reports whether d has no digits beyond the given decimal places
func FitsPlaces(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Round(places))
}
