package utils

import (
	"strings"

	"github.com/segyhp/debt-ledger/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	currencySymbol = "R$"
	// pt-BR puts a non-breaking space between symbol and amount
	currencySpace = "\u00a0"
	displayDate   = "02/01/2006"
)

// FormatCurrency renders an amount as pt-BR BRL, e.g. "R$ 1.234,56"
func FormatCurrency(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	fixed := amount.StringFixed(MoneyPlaces)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	return sign + currencySymbol + currencySpace + groupThousands(intPart, ".") + "," + fracPart
}

func groupThousands(digits, sep string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatDate renders a calendar date in day/month/year order
func FormatDate(d domain.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(displayDate)
}
