package domain

import "github.com/shopspring/decimal"

type StatusTotal struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Count    int             `json:"count"`
}

// Metrics are the portfolio totals of the full ledger
type Metrics struct {
	InvestedCapital    decimal.Decimal `json:"invested_capital"`
	TotalReceivable    decimal.Decimal `json:"total_receivable"`
	TotalInterest      decimal.Decimal `json:"total_interest"`
	CollateralCoverage decimal.Decimal `json:"collateral_coverage"`
	Pending            StatusTotal     `json:"pending"`
	Paid               StatusTotal     `json:"paid"`
	Overdue            StatusTotal     `json:"overdue"`
}

// ByStatus returns the subtotal bucket of s; unknown statuses have none
func (m Metrics) ByStatus(s Status) StatusTotal {
	switch s {
	case StatusPending:
		return m.Pending
	case StatusPaid:
		return m.Paid
	case StatusOverdue:
		return m.Overdue
	}
	return StatusTotal{}
}
