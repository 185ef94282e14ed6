package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/segyhp/debt-ledger/internal/domain"
	"github.com/segyhp/debt-ledger/internal/ledger"
	"github.com/segyhp/debt-ledger/internal/repository"
	customError "github.com/segyhp/debt-ledger/pkg/errors"
	"github.com/segyhp/debt-ledger/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LedgerService struct {
	store  repository.Store
	loc    *time.Location
	logger *slog.Logger
	now    func() time.Time
}

// NewLedgerService wires the ledger to a store; loc decides what "today" is
func NewLedgerService(store repository.Store, loc *time.Location, logger *slog.Logger) *LedgerService {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LedgerService{
		store:  store,
		loc:    loc,
		logger: logger,
		now:    time.Now,
	}
}

// Today returns the current calendar date of the ledger
func (s *LedgerService) Today() domain.Date {
	return domain.DateOf(s.now().In(s.loc))
}

// List returns the full ledger as persisted
func (s *LedgerService) List(ctx context.Context) ([]domain.Debtor, error) {
	debtors, err := s.store.List(ctx)
	if err != nil {
		return nil, customError.WrapStorageError(err)
	}
	return debtors, nil
}

// Create stores a new debtor with the interest and total given by the caller
func (s *LedgerService) Create(ctx context.Context, fields domain.NewDebtor) (*domain.Debtor, error) {
	fields = normalize(fields)
	if err := validateNew(fields); err != nil {
		return nil, err
	}

	debtor := &domain.Debtor{
		ID:           uuid.NewString(),
		DebtorFields: fields,
	}

	if err := s.store.Create(ctx, debtor); err != nil {
		return nil, customError.WrapStorageError(err)
	}

	s.logger.InfoContext(ctx, "debtor created",
		slog.String("debtor_id", debtor.ID),
		slog.String("status", string(debtor.Status)),
	)

	return debtor, nil
}

// Update merges patch into the debtor. When principal, rate or period change
// the interest and total are recomputed with the debtor's interest type.
// An unknown id is a no-op.
func (s *LedgerService) Update(ctx context.Context, id string, patch domain.DebtorPatch) error {
	if patch.IsEmpty() {
		return nil
	}
	patch = normalizePatch(patch)
	if err := validatePatch(patch); err != nil {
		return err
	}

	if patch.TouchesTerms() {
		current, err := s.find(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return nil
		}

		merged := patch.Apply(*current)
		if err := utils.ValidateTerms(merged.Principal, merged.InterestRate, merged.PeriodMonths, merged.InterestType); err != nil {
			return err
		}
		result := utils.CalculateInterest(merged.Principal, merged.InterestRate, merged.PeriodMonths, merged.InterestType)
		patch.Interest = &result.Interest
		patch.Total = &result.Total
	}

	if err := s.store.Update(ctx, id, patch); err != nil {
		return customError.WrapStorageError(err)
	}
	return nil
}

// Delete removes a debtor; an unknown id is a no-op
func (s *LedgerService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return customError.WrapStorageError(err)
	}
	return nil
}

// MarkPaid sets the status of the debtor to pago
func (s *LedgerService) MarkPaid(ctx context.Context, id string) error {
	return s.Update(ctx, id, domain.StatusPatch(domain.StatusPaid))
}

// Get returns one debtor or a not found error
func (s *LedgerService) Get(ctx context.Context, id string) (*domain.Debtor, error) {
	debtor, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if debtor == nil {
		return nil, customError.WrapDebtorNotFound(id)
	}
	return debtor, nil
}

// Quote runs the interest calculator without touching the ledger
func (s *LedgerService) Quote(req domain.QuoteRequest) (*domain.Quote, error) {
	if err := utils.ValidateTerms(req.Principal, req.InterestRate, req.PeriodMonths, req.InterestType); err != nil {
		return nil, err
	}

	result := utils.CalculateInterest(req.Principal, req.InterestRate, req.PeriodMonths, req.InterestType)

	return &domain.Quote{
		Principal:    req.Principal,
		InterestRate: req.InterestRate,
		PeriodMonths: req.PeriodMonths,
		InterestType: req.InterestType,
		Interest:     result.Interest,
		Total:        result.Total,
		Installment:  result.Installment(req.PeriodMonths),
	}, nil
}

// Originate quotes the loan and adds it to the ledger. The due date defaults
// to today plus the period and the status to pendente.
func (s *LedgerService) Originate(ctx context.Context, req domain.OriginateRequest) (*domain.Debtor, error) {
	quote, err := s.Quote(req.QuoteRequest)
	if err != nil {
		return nil, err
	}

	dueDate := s.Today().AddMonths(req.PeriodMonths)
	if req.DueDate != nil && !req.DueDate.IsZero() {
		dueDate = *req.DueDate
	}
	status := req.Status
	if status == "" {
		status = domain.StatusPending
	}

	return s.Create(ctx, domain.NewDebtor{
		Name:                  req.Name,
		Principal:             quote.Principal,
		InterestRate:          quote.InterestRate,
		InterestType:          quote.InterestType,
		PeriodMonths:          quote.PeriodMonths,
		Interest:              quote.Interest,
		Total:                 quote.Total,
		DueDate:               dueDate,
		Status:                status,
		CollateralDescription: req.CollateralDescription,
		CollateralValue:       req.CollateralValue,
		Notes:                 req.Notes,
	})
}

// View lists the ledger once and derives the filtered rows and the metrics
// of the whole ledger
func (s *LedgerService) View(ctx context.Context, f ledger.Filter) (*domain.LedgerView, error) {
	debtors, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	selected := ledger.Query(debtors, f)
	rows := make([]domain.DebtorRow, 0, len(selected))
	for _, d := range selected {
		rows = append(rows, ToRow(d))
	}

	return &domain.LedgerView{
		Debtors: rows,
		Count:   len(rows),
		Metrics: ledger.Aggregate(debtors),
	}, nil
}

// Metrics aggregates the full ledger
func (s *LedgerService) Metrics(ctx context.Context) (*domain.Metrics, error) {
	debtors, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	m := ledger.Aggregate(debtors)
	return &m, nil
}

// SweepOverdue moves every pendente debtor due before today to atrasado
func (s *LedgerService) SweepOverdue(ctx context.Context, today domain.Date) (int, error) {
	debtors, err := s.List(ctx)
	if err != nil {
		return 0, err
	}

	swept := 0
	for _, d := range debtors {
		if d.Status != domain.StatusPending || d.DueDate.IsZero() || !d.DueDate.Before(today) {
			continue
		}
		if err := s.store.Update(ctx, d.ID, domain.StatusPatch(domain.StatusOverdue)); err != nil {
			return swept, customError.WrapStorageError(err)
		}
		swept++
	}

	if swept > 0 {
		s.logger.InfoContext(ctx, "overdue sweep finished",
			slog.Int("swept", swept),
			slog.String("today", today.String()),
		)
	}

	return swept, nil
}

// Seed creates the given debtors only when the ledger is empty
func (s *LedgerService) Seed(ctx context.Context, debtors []domain.NewDebtor) (int, error) {
	existing, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for i, d := range debtors {
		if _, err := s.Create(ctx, d); err != nil {
			return i, err
		}
	}
	return len(debtors), nil
}

func (s *LedgerService) find(ctx context.Context, id string) (*domain.Debtor, error) {
	debtors, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range debtors {
		if debtors[i].ID == id {
			return &debtors[i], nil
		}
	}
	return nil, nil
}

// ToRow decorates a debtor with its display values
func ToRow(d domain.Debtor) domain.DebtorRow {
	row := domain.DebtorRow{
		Debtor:        d,
		StatusLabel:   d.Status.Label(),
		HasCollateral: d.HasCollateral(),
		Display: domain.DebtorDisplay{
			Principal: utils.FormatCurrency(d.Principal),
			Interest:  utils.FormatCurrency(d.Interest),
			Total:     utils.FormatCurrency(d.Total),
			DueDate:   utils.FormatDate(d.DueDate),
		},
	}
	if row.HasCollateral && d.CollateralValue.Valid {
		row.Display.CollateralValue = utils.FormatCurrency(d.CollateralValue.Decimal)
	}
	return row
}

func normalize(f domain.NewDebtor) domain.NewDebtor {
	f.Name = strings.TrimSpace(f.Name)
	f.CollateralDescription = strings.TrimSpace(f.CollateralDescription)
	f.Notes = strings.TrimSpace(f.Notes)
	return f
}

func normalizePatch(p domain.DebtorPatch) domain.DebtorPatch {
	trim := func(s *string) *string {
		if s == nil {
			return nil
		}
		v := strings.TrimSpace(*s)
		return &v
	}
	p.Name = trim(p.Name)
	p.CollateralDescription = trim(p.CollateralDescription)
	p.Notes = trim(p.Notes)
	return p
}

func validateNew(f domain.NewDebtor) error {
	if f.Name == "" {
		return customError.WrapInvalidDebtor("name is required")
	}
	if err := utils.ValidateTerms(f.Principal, f.InterestRate, f.PeriodMonths, f.InterestType); err != nil {
		return err
	}
	if !f.Status.Valid() {
		return customError.WrapInvalidDebtor("status must be pendente, atrasado or pago")
	}
	if !utils.FitsPlaces(f.Interest, utils.MoneyPlaces) || !utils.FitsPlaces(f.Total, utils.MoneyPlaces) {
		return customError.WrapInvalidDebtor("interest and total must have at most 2 decimal places")
	}
	return validateCollateral(f.CollateralValue)
}

func validateCollateral(v decimal.NullDecimal) error {
	switch {
	case !v.Valid:
		return nil
	case v.Decimal.IsNegative():
		return customError.WrapInvalidDebtor("collateral value cannot be negative")
	case !utils.FitsPlaces(v.Decimal, utils.MoneyPlaces):
		return customError.WrapInvalidDebtor("collateral value must have at most 2 decimal places")
	}
	return nil
}

func validatePatch(p domain.DebtorPatch) error {
	switch {
	case p.Name != nil && *p.Name == "":
		return customError.WrapInvalidDebtor("name cannot be empty")
	case p.Principal != nil && !p.Principal.IsPositive():
		return customError.WrapInvalidTerms("principal must be greater than 0")
	case p.Principal != nil && !utils.FitsPlaces(*p.Principal, utils.MoneyPlaces):
		return customError.WrapInvalidTerms("principal must have at most 2 decimal places")
	case p.InterestRate != nil && !p.InterestRate.IsPositive():
		return customError.WrapInvalidTerms("interest rate must be greater than 0")
	case p.InterestRate != nil && !utils.FitsPlaces(*p.InterestRate, utils.RatePlaces):
		return customError.WrapInvalidTerms("interest rate must have at most 4 decimal places")
	case p.PeriodMonths != nil && (*p.PeriodMonths <= 0 || *p.PeriodMonths > utils.MaxPeriodMonths):
		return customError.WrapInvalidTerms("period must be between 1 and 1200 months")
	case p.Status != nil && !p.Status.Valid():
		return customError.WrapInvalidDebtor("status must be pendente, atrasado or pago")
	case p.CollateralValue != nil:
		return validateCollateral(*p.CollateralValue)
	}
	return nil
}
