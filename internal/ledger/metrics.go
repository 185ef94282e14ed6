package ledger

import (
	"github.com/segyhp/debt-ledger/internal/domain"

	"github.com/shopspring/decimal"
)

// Aggregate reduces the full ledger into portfolio totals.
// Sums are exact; an empty ledger yields zero metrics.
func Aggregate(debtors []domain.Debtor) domain.Metrics {
	m := domain.Metrics{
		InvestedCapital:    decimal.Zero,
		TotalReceivable:    decimal.Zero,
		TotalInterest:      decimal.Zero,
		CollateralCoverage: decimal.Zero,
		Pending:            domain.StatusTotal{Subtotal: decimal.Zero},
		Paid:               domain.StatusTotal{Subtotal: decimal.Zero},
		Overdue:            domain.StatusTotal{Subtotal: decimal.Zero},
	}

	for _, d := range debtors {
		m.InvestedCapital = m.InvestedCapital.Add(d.Principal)
		m.TotalReceivable = m.TotalReceivable.Add(d.Total)
		m.TotalInterest = m.TotalInterest.Add(d.Interest)

		if d.HasCollateral() && d.CollateralValue.Valid {
			m.CollateralCoverage = m.CollateralCoverage.Add(d.CollateralValue.Decimal)
		}

		var bucket *domain.StatusTotal
		switch d.Status {
		case domain.StatusPending:
			bucket = &m.Pending
		case domain.StatusPaid:
			bucket = &m.Paid
		case domain.StatusOverdue:
			bucket = &m.Overdue
		default:
			continue
		}
		bucket.Subtotal = bucket.Subtotal.Add(d.Total)
		bucket.Count++
	}

	return m
}
