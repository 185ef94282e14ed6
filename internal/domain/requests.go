package domain

import (
	"github.com/shopspring/decimal"
)

// DTOs for requests and responses

type QuoteRequest struct {
	Principal    decimal.Decimal `json:"principal" validate:"decimal_gt=0,decimal_places=2"`
	InterestRate decimal.Decimal `json:"interest_rate" validate:"decimal_gt=0,decimal_places=4"`
	PeriodMonths int             `json:"period_months" validate:"required,gt=0,lte=1200"`
	InterestType InterestType    `json:"interest_type" validate:"required,oneof=simple compound"`
}

type Quote struct {
	Principal    decimal.Decimal `json:"principal"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	PeriodMonths int             `json:"period_months"`
	InterestType InterestType    `json:"interest_type"`
	Interest     decimal.Decimal `json:"interest"`
	Total        decimal.Decimal `json:"total"`
	Installment  decimal.Decimal `json:"installment"`
}

// OriginateRequest is the "calculate and add as debtor" flow.
// DueDate defaults to today plus the period; Status defaults to pendente.
type OriginateRequest struct {
	Name string `json:"name" validate:"required,max=200"`
	QuoteRequest
	DueDate               *Date               `json:"due_date,omitempty"`
	Status                Status              `json:"status,omitempty" validate:"omitempty,oneof=pendente atrasado pago"`
	CollateralDescription string              `json:"collateral_description,omitempty" validate:"max=500"`
	CollateralValue       decimal.NullDecimal `json:"collateral_value" validate:"omitempty,decimal_gte=0,decimal_places=2"`
	Notes                 string              `json:"notes,omitempty"`
}

type UpdateDebtorRequest struct {
	Name                  *string          `json:"name,omitempty" validate:"omitempty,max=200"`
	Principal             *decimal.Decimal `json:"principal,omitempty" validate:"omitempty,decimal_gt=0,decimal_places=2"`
	InterestRate          *decimal.Decimal `json:"interest_rate,omitempty" validate:"omitempty,decimal_gt=0,decimal_places=4"`
	PeriodMonths          *int             `json:"period_months,omitempty" validate:"omitempty,gt=0,lte=1200"`
	DueDate               *Date            `json:"due_date,omitempty"`
	Status                *Status          `json:"status,omitempty" validate:"omitempty,oneof=pendente atrasado pago"`
	CollateralDescription *string          `json:"collateral_description,omitempty" validate:"omitempty,max=500"`
	CollateralValue       OptionalDecimal  `json:"collateral_value" validate:"omitempty,decimal_gte=0,decimal_places=2"`
	Notes                 *string          `json:"notes,omitempty"`
}

// OptionalDecimal tells an absent JSON field apart from an explicit null.
// Set is true whenever the field was present, null included.
type OptionalDecimal struct {
	Set   bool
	Value decimal.NullDecimal
}

// SetDecimal returns a present, non-null OptionalDecimal
func SetDecimal(d decimal.Decimal) OptionalDecimal {
	return OptionalDecimal{Set: true, Value: decimal.NewNullDecimal(d)}
}

func (o *OptionalDecimal) UnmarshalJSON(b []byte) error {
	o.Set = true
	return o.Value.UnmarshalJSON(b)
}

func (o OptionalDecimal) MarshalJSON() ([]byte, error) {
	return o.Value.MarshalJSON()
}

// ToPatch converts the request; interest and total are never client supplied.
// A null collateral_value clears the stored value.
func (r UpdateDebtorRequest) ToPatch() DebtorPatch {
	patch := DebtorPatch{
		Name:                  r.Name,
		Principal:             r.Principal,
		InterestRate:          r.InterestRate,
		PeriodMonths:          r.PeriodMonths,
		DueDate:               r.DueDate,
		Status:                r.Status,
		CollateralDescription: r.CollateralDescription,
		Notes:                 r.Notes,
	}
	if r.CollateralValue.Set {
		value := r.CollateralValue.Value
		patch.CollateralValue = &value
	}
	return patch
}

// DebtorRow is a debtor as presented in the ledger table
type DebtorRow struct {
	Debtor
	StatusLabel   string        `json:"status_label"`
	HasCollateral bool          `json:"has_collateral"`
	Display       DebtorDisplay `json:"display"`
}

type DebtorDisplay struct {
	Principal       string `json:"principal"`
	Interest        string `json:"interest"`
	Total           string `json:"total"`
	DueDate         string `json:"due_date"`
	CollateralValue string `json:"collateral_value,omitempty"`
}

type LedgerView struct {
	Debtors []DebtorRow `json:"debtors"`
	Count   int         `json:"count"`
	Metrics Metrics     `json:"metrics"`
}
