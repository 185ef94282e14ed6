// Package ledger derives display views and portfolio totals from a ledger snapshot.
// Everything here is pure: inputs are never mutated.
package ledger

import (
	"sort"
	"strings"

	"github.com/segyhp/debt-ledger/internal/domain"
	customError "github.com/segyhp/debt-ledger/pkg/errors"
)

// Filter narrows the ledger view; zero values disable the step
type Filter struct {
	Name    string
	Status  string
	DueDate *domain.Date
}

// ParseFilter builds a Filter from raw query values. The name is kept as
// typed, so "ana " only matches names containing "ana " with the space.
func ParseFilter(name, status, dueDate string) (Filter, error) {
	f := Filter{Name: name, Status: strings.TrimSpace(status)}

	if f.Status != "" && f.Status != domain.StatusAll && !domain.Status(f.Status).Valid() {
		return Filter{}, customError.WrapInvalidFilter("status must be one of all, pendente, atrasado, pago")
	}

	if dueDate = strings.TrimSpace(dueDate); dueDate != "" {
		d, err := domain.ParseDate(dueDate)
		if err != nil {
			return Filter{}, customError.WrapInvalidFilter("due_date must be formatted as YYYY-MM-DD")
		}
		f.DueDate = &d
	}

	return f, nil
}

var statusPriority = map[domain.Status]int{
	domain.StatusOverdue: 0,
	domain.StatusPending: 1,
	domain.StatusPaid:    2,
}

// unknown statuses sort after every known one
const unknownPriority = 9

// Priority returns the sort rank of a status
func Priority(s domain.Status) int {
	if p, ok := statusPriority[s]; ok {
		return p
	}
	return unknownPriority
}

// Query filters the ledger by name, status and due date (all conjunctive)
// and orders the result overdue first, then pending, then paid.
// Records of equal priority keep their relative order.
func Query(debtors []domain.Debtor, f Filter) []domain.Debtor {
	name := strings.ToLower(f.Name)

	out := make([]domain.Debtor, 0, len(debtors))
	for _, d := range debtors {
		if name != "" && !strings.Contains(strings.ToLower(d.Name), name) {
			continue
		}
		if f.Status != "" && f.Status != domain.StatusAll && string(d.Status) != f.Status {
			continue
		}
		if f.DueDate != nil && !d.DueDate.Equal(*f.DueDate) {
			continue
		}
		out = append(out, d)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return Priority(out[i].Status) < Priority(out[j].Status)
	})

	return out
}
