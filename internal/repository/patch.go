package repository

import "github.com/segyhp/debt-ledger/internal/domain"

type column struct {
	name  string
	value any
}

// patchColumns lists the supplied fields of p under their storage names,
// in a fixed order so generated statements are stable
func patchColumns(p domain.DebtorPatch) []column {
	var cols []column
	add := func(name string, value any) {
		cols = append(cols, column{name: name, value: value})
	}

	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Principal != nil {
		add("principal", *p.Principal)
	}
	if p.InterestRate != nil {
		add("interest_rate", *p.InterestRate)
	}
	if p.PeriodMonths != nil {
		add("period_months", *p.PeriodMonths)
	}
	if p.Interest != nil {
		add("interest", *p.Interest)
	}
	if p.Total != nil {
		add("total", *p.Total)
	}
	if p.DueDate != nil {
		add("due_date", *p.DueDate)
	}
	if p.Status != nil {
		add("status", string(*p.Status))
	}
	if p.CollateralDescription != nil {
		add("collateral_description", *p.CollateralDescription)
	}
	if p.CollateralValue != nil {
		add("collateral_value", *p.CollateralValue)
	}
	if p.Notes != nil {
		add("notes", *p.Notes)
	}

	return cols
}
