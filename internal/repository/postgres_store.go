package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/segyhp/debt-ledger/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const debtorColumns = `id, name, principal, interest_rate, interest_type, period_months, interest, total,
	due_date, status, collateral_description, collateral_value, notes`

type postgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore keeps one row per debtor in the debtors table
func NewPostgresStore(db *sqlx.DB) Store {
	return &postgresStore{db: db}
}

func (r *postgresStore) List(ctx context.Context) ([]domain.Debtor, error) {
	query := `SELECT ` + debtorColumns + ` FROM debtors ORDER BY created_at, id`

	debtors := make([]domain.Debtor, 0)
	if err := r.db.SelectContext(ctx, &debtors, query); err != nil {
		return nil, err
	}

	return debtors, nil
}

func (r *postgresStore) Create(ctx context.Context, debtor *domain.Debtor) error {
	query := `
		INSERT INTO debtors (` + debtorColumns + `, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
	`

	_, err := r.db.ExecContext(ctx, query,
		debtor.ID,
		debtor.Name,
		debtor.Principal,
		debtor.InterestRate,
		string(debtor.InterestType),
		debtor.PeriodMonths,
		debtor.Interest,
		debtor.Total,
		debtor.DueDate,
		string(debtor.Status),
		debtor.CollateralDescription,
		debtor.CollateralValue,
		debtor.Notes,
	)

	return err
}

func (r *postgresStore) Update(ctx context.Context, id string, patch domain.DebtorPatch) error {
	if !isRowID(id) {
		return nil
	}
	query, args, ok := buildUpdate(id, patch)
	if !ok {
		return nil
	}

	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *postgresStore) Delete(ctx context.Context, id string) error {
	if !isRowID(id) {
		return nil
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM debtors WHERE id = $1`, id)
	return err
}

// isRowID reports whether id can match the UUID primary key; anything else
// matches no row and would otherwise fail the cast in Postgres
func isRowID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (r *postgresStore) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// buildUpdate sets only the supplied columns; ok is false for an empty patch
func buildUpdate(id string, patch domain.DebtorPatch) (string, []any, bool) {
	cols := patchColumns(patch)
	if len(cols) == 0 {
		return "", nil, false
	}

	sets := make([]string, 0, len(cols)+1)
	args := make([]any, 0, len(cols)+1)
	for i, c := range cols {
		sets = append(sets, fmt.Sprintf("%s = $%d", c.name, i+1))
		args = append(args, c.value)
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf("UPDATE debtors SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))
	return query, args, true
}
