package service

import (
	"context"
	"fmt"
	"time"

	"github.com/segyhp/debt-ledger/internal/domain"
	"github.com/segyhp/debt-ledger/internal/ledger"
	customError "github.com/segyhp/debt-ledger/pkg/errors"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Devedores"

type exportColumn struct {
	Header string
	Value  func(r domain.DebtorRow) any
}

var exportColumns = []exportColumn{
	{Header: "Nome", Value: func(r domain.DebtorRow) any { return r.Name }},
	{Header: "Valor emprestado", Value: func(r domain.DebtorRow) any { return r.Principal.InexactFloat64() }},
	{Header: "Taxa (%)", Value: func(r domain.DebtorRow) any { return r.InterestRate.InexactFloat64() }},
	{Header: "Tipo de juros", Value: func(r domain.DebtorRow) any { return string(r.InterestType) }},
	{Header: "Meses", Value: func(r domain.DebtorRow) any { return r.PeriodMonths }},
	{Header: "Juros", Value: func(r domain.DebtorRow) any { return r.Interest.InexactFloat64() }},
	{Header: "Total", Value: func(r domain.DebtorRow) any { return r.Total.InexactFloat64() }},
	{Header: "Vencimento", Value: func(r domain.DebtorRow) any { return r.Display.DueDate }},
	{Header: "Status", Value: func(r domain.DebtorRow) any { return r.StatusLabel }},
	{Header: "Garantia", Value: func(r domain.DebtorRow) any { return r.CollateralDescription }},
	{Header: "Valor da garantia", Value: func(r domain.DebtorRow) any {
		if !r.HasCollateral || !r.CollateralValue.Valid {
			return ""
		}
		return r.CollateralValue.Decimal.InexactFloat64()
	}},
	{Header: "Observações", Value: func(r domain.DebtorRow) any { return r.Notes }},
}

type ExportService struct {
	ledger *LedgerService
	now    func() time.Time
}

func NewExportService(ledger *LedgerService) *ExportService {
	return &ExportService{ledger: ledger, now: time.Now}
}

// ExportXLSX renders the filtered ledger view as a spreadsheet and returns
// its bytes together with a timestamped file name
func (s *ExportService) ExportXLSX(ctx context.Context, filter ledger.Filter) ([]byte, string, error) {
	view, err := s.ledger.View(ctx, filter)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return nil, "", customError.WrapExportError(err)
	}

	for i, col := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, col.Header); err != nil {
			return nil, "", customError.WrapExportError(err)
		}
	}

	for rowIdx, row := range view.Debtors {
		for colIdx, col := range exportColumns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(exportSheet, cell, col.Value(row)); err != nil {
				return nil, "", customError.WrapExportError(err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", customError.WrapExportError(err)
	}

	fileName := fmt.Sprintf("devedores_%s.xlsx", s.now().Format("20060102_150405"))
	return buf.Bytes(), fileName, nil
}
