package service

import (
	"time"

	"github.com/segyhp/debt-ledger/internal/domain"

	"github.com/shopspring/decimal"
)

// SampleDebtors is the demo ledger loaded by SEED_SAMPLE_DATA.
// Interest and total are stored as recorded, not recomputed.
func SampleDebtors() []domain.NewDebtor {
	money := decimal.RequireFromString
	collateral := func(v string) decimal.NullDecimal {
		return decimal.NewNullDecimal(money(v))
	}

	return []domain.NewDebtor{
		{
			Name: "João Silva", Principal: money("5000"), InterestRate: money("3"),
			InterestType: domain.InterestSimple, PeriodMonths: 6,
			Interest: money("900"), Total: money("5900"),
			DueDate: domain.NewDate(2026, time.March, 15), Status: domain.StatusPending,
			CollateralDescription: "Veículo - Honda Civic 2020", CollateralValue: collateral("85000"),
			Notes: "Cliente com bom histórico. Prometeu pagamento parcial em março.",
		},
		{
			Name: "Maria Oliveira", Principal: money("12000"), InterestRate: money("2.5"),
			InterestType: domain.InterestCompound, PeriodMonths: 12,
			Interest: money("4120.76"), Total: money("16120.76"),
			DueDate: domain.NewDate(2026, time.January, 10), Status: domain.StatusOverdue,
			CollateralDescription: "Imóvel - Apartamento Centro", CollateralValue: collateral("250000"),
			Notes: "Em atraso desde janeiro. Contato realizado em 05/02 sem retorno.",
		},
		{
			Name: "Carlos Santos", Principal: money("3000"), InterestRate: money("4"),
			InterestType: domain.InterestSimple, PeriodMonths: 3,
			Interest: money("360"), Total: money("3360"),
			DueDate: domain.NewDate(2025, time.December, 20), Status: domain.StatusPaid,
			Notes: "Pagamento quitado integralmente em 18/12/2025.",
		},
		{
			Name: "Ana Costa", Principal: money("8000"), InterestRate: money("2"),
			InterestType: domain.InterestCompound, PeriodMonths: 8,
			Interest: money("1365.69"), Total: money("9365.69"),
			DueDate: domain.NewDate(2026, time.April, 1), Status: domain.StatusPending,
			CollateralDescription: "Veículo - Toyota Corolla 2022", CollateralValue: collateral("120000"),
		},
		{
			Name: "Pedro Souza", Principal: money("15000"), InterestRate: money("1.5"),
			InterestType: domain.InterestSimple, PeriodMonths: 10,
			Interest: money("2250"), Total: money("17250"),
			DueDate: domain.NewDate(2025, time.November, 30), Status: domain.StatusPaid,
			CollateralDescription: "Imóvel - Casa Residencial", CollateralValue: collateral("320000"),
			Notes: "Quitado antecipadamente. Excelente pagador.",
		},
	}
}
