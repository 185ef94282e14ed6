package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Status is the payment status of a debtor
type Status string

const (
	StatusPending Status = "pendente"
	StatusOverdue Status = "atrasado"
	StatusPaid    Status = "pago"
)

// StatusAll is the filter value that disables status filtering
const StatusAll = "all"

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusOverdue, StatusPaid:
		return true
	}
	return false
}

// Label returns the display label of the status
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pendente"
	case StatusOverdue:
		return "Atrasado"
	case StatusPaid:
		return "Pago"
	}
	return string(s)
}

// InterestType is the interest scheme of a loan
type InterestType string

const (
	InterestSimple   InterestType = "simple"
	InterestCompound InterestType = "compound"
)

func (t InterestType) Valid() bool {
	return t == InterestSimple || t == InterestCompound
}

// DebtorFields holds everything a debtor record carries except its identity
type DebtorFields struct {
	Name                  string              `json:"name" db:"name"`
	Principal             decimal.Decimal     `json:"principal" db:"principal"`
	InterestRate          decimal.Decimal     `json:"interest_rate" db:"interest_rate"`
	InterestType          InterestType        `json:"interest_type" db:"interest_type"`
	PeriodMonths          int                 `json:"period_months" db:"period_months"`
	Interest              decimal.Decimal     `json:"interest" db:"interest"`
	Total                 decimal.Decimal     `json:"total" db:"total"`
	DueDate               Date                `json:"due_date" db:"due_date"`
	Status                Status              `json:"status" db:"status"`
	CollateralDescription string              `json:"collateral_description" db:"collateral_description"`
	CollateralValue       decimal.NullDecimal `json:"collateral_value" db:"collateral_value"`
	Notes                 string              `json:"notes" db:"notes"`
}

// Debtor represents one loan record of the ledger
type Debtor struct {
	ID string `json:"id" db:"id"`
	DebtorFields
}

// NewDebtor is a record about to be created; the id is assigned by the ledger
type NewDebtor = DebtorFields

// HasCollateral reports whether an asset was pledged against the loan
func (d DebtorFields) HasCollateral() bool {
	return strings.TrimSpace(d.CollateralDescription) != ""
}

// DebtorPatch is a partial update; nil fields are left untouched.
// InterestType is absent on purpose: the scheme is fixed at creation.
type DebtorPatch struct {
	Name                  *string
	Principal             *decimal.Decimal
	InterestRate          *decimal.Decimal
	PeriodMonths          *int
	Interest              *decimal.Decimal
	Total                 *decimal.Decimal
	DueDate               *Date
	Status                *Status
	CollateralDescription *string
	CollateralValue       *decimal.NullDecimal
	Notes                 *string
}

// Apply returns a copy of d with the supplied fields merged in
func (p DebtorPatch) Apply(d Debtor) Debtor {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Principal != nil {
		d.Principal = *p.Principal
	}
	if p.InterestRate != nil {
		d.InterestRate = *p.InterestRate
	}
	if p.PeriodMonths != nil {
		d.PeriodMonths = *p.PeriodMonths
	}
	if p.Interest != nil {
		d.Interest = *p.Interest
	}
	if p.Total != nil {
		d.Total = *p.Total
	}
	if p.DueDate != nil {
		d.DueDate = *p.DueDate
	}
	if p.Status != nil {
		d.Status = *p.Status
	}
	if p.CollateralDescription != nil {
		d.CollateralDescription = *p.CollateralDescription
	}
	if p.CollateralValue != nil {
		d.CollateralValue = *p.CollateralValue
	}
	if p.Notes != nil {
		d.Notes = *p.Notes
	}
	return d
}

// TouchesTerms reports whether the patch changes an input of the interest calculation
func (p DebtorPatch) TouchesTerms() bool {
	return p.Principal != nil || p.InterestRate != nil || p.PeriodMonths != nil
}

func (p DebtorPatch) IsEmpty() bool {
	return p == DebtorPatch{}
}

// StatusPatch builds a patch that only sets the status
func StatusPatch(s Status) DebtorPatch {
	return DebtorPatch{Status: &s}
}
