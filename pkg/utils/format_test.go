package utils

import (
	"testing"
	"time"

	"github.com/segyhp/debt-ledger/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   decimal.Decimal
		expected string
	}{
		{name: "zero", amount: decimal.Zero, expected: "R$\u00a00,00"},
		{name: "cents", amount: decimal.RequireFromString("0.5"), expected: "R$\u00a00,50"},
		{name: "hundreds", amount: decimal.NewFromInt(900), expected: "R$\u00a0900,00"},
		{name: "thousands", amount: decimal.NewFromInt(5900), expected: "R$\u00a05.900,00"},
		{name: "rounds to cents", amount: decimal.RequireFromString("16138.6658"), expected: "R$\u00a016.138,67"},
		{name: "millions", amount: decimal.RequireFromString("1234567.89"), expected: "R$\u00a01.234.567,89"},
		{name: "exactly three digits group", amount: decimal.NewFromInt(250000), expected: "R$\u00a0250.000,00"},
		{name: "negative", amount: decimal.RequireFromString("-1500.1"), expected: "-R$\u00a01.500,10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCurrency(tt.amount))
		})
	}
}

func TestFormatCurrency_Idempotent(t *testing.T) {
	amount := decimal.RequireFromString("9373.28")
	assert.Equal(t, FormatCurrency(amount), FormatCurrency(amount))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "15/03/2026", FormatDate(domain.NewDate(2026, time.March, 15)))
	assert.Equal(t, "01/12/2025", FormatDate(domain.NewDate(2025, time.December, 1)))
	assert.Equal(t, "", FormatDate(domain.Date{}))
}
