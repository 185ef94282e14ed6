package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/segyhp/debt-ledger/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDebtor(id, name string) *domain.Debtor {
	return &domain.Debtor{
		ID: id,
		DebtorFields: domain.DebtorFields{
			Name:         name,
			Principal:    decimal.RequireFromString("5000"),
			InterestRate: decimal.RequireFromString("3"),
			InterestType: domain.InterestSimple,
			PeriodMonths: 6,
			Interest:     decimal.RequireFromString("900"),
			Total:        decimal.RequireFromString("5900"),
			DueDate:      domain.NewDate(2025, time.March, 15),
			Status:       domain.StatusPending,
		},
	}
}

func blobBackends(t *testing.T) map[string]BlobBackend {
	fileBlob, err := NewFileBlob(filepath.Join(t.TempDir(), "nested", "ledger.json"))
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return map[string]BlobBackend{
		"memory": NewMemoryBlob(),
		"file":   fileBlob,
		"redis":  NewRedisBlob(client, "debt-ledger:debtors"),
	}
}

func TestLedgerStore_RoundTrip(t *testing.T) {
	for name, backend := range blobBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := NewLedgerStore(backend)

			debtors, err := store.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, debtors)

			ana := sampleDebtor("a", "Ana")
			ana.CollateralDescription = "Moto Honda CG"
			ana.CollateralValue = decimal.NewNullDecimal(decimal.RequireFromString("8000.50"))
			require.NoError(t, store.Create(ctx, ana))
			require.NoError(t, store.Create(ctx, sampleDebtor("b", "Bruno")))

			debtors, err = store.List(ctx)
			require.NoError(t, err)
			require.Len(t, debtors, 2)

			got := debtors[0]
			assert.Equal(t, "a", got.ID)
			assert.Equal(t, "Ana", got.Name)
			assert.True(t, got.Principal.Equal(ana.Principal))
			assert.True(t, got.Total.Equal(ana.Total))
			assert.Equal(t, ana.DueDate, got.DueDate)
			assert.True(t, got.CollateralValue.Valid)
			assert.True(t, got.CollateralValue.Decimal.Equal(decimal.RequireFromString("8000.50")))
			assert.False(t, debtors[1].CollateralValue.Valid)
		})
	}
}

func TestLedgerStore_UpdateOnlyTouchesSuppliedFields(t *testing.T) {
	ctx := context.Background()
	store := NewLedgerStore(NewMemoryBlob())
	require.NoError(t, store.Create(ctx, sampleDebtor("a", "Ana")))

	require.NoError(t, store.Update(ctx, "a", domain.StatusPatch(domain.StatusPaid)))

	debtors, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, debtors, 1)
	assert.Equal(t, domain.StatusPaid, debtors[0].Status)
	assert.Equal(t, "Ana", debtors[0].Name)
	assert.True(t, debtors[0].Interest.Equal(decimal.RequireFromString("900")))
}

func TestLedgerStore_MissingIDIsNoop(t *testing.T) {
	ctx := context.Background()
	store := NewLedgerStore(NewMemoryBlob())
	require.NoError(t, store.Create(ctx, sampleDebtor("a", "Ana")))

	assert.NoError(t, store.Update(ctx, "missing", domain.StatusPatch(domain.StatusPaid)))
	assert.NoError(t, store.Delete(ctx, "missing"))

	debtors, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, debtors, 1)
	assert.Equal(t, domain.StatusPending, debtors[0].Status)
}

func TestLedgerStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewLedgerStore(NewMemoryBlob())
	require.NoError(t, store.Create(ctx, sampleDebtor("a", "Ana")))
	require.NoError(t, store.Create(ctx, sampleDebtor("b", "Bruno")))

	require.NoError(t, store.Delete(ctx, "a"))

	debtors, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, debtors, 1)
	assert.Equal(t, "b", debtors[0].ID)
}

type failingBlob struct{ err error }

func (b failingBlob) Load(context.Context) ([]byte, error) { return nil, b.err }
func (b failingBlob) Save(context.Context, []byte) error   { return b.err }

func TestLedgerStore_BackendFailure(t *testing.T) {
	boom := errors.New("disk on fire")
	store := NewLedgerStore(failingBlob{err: boom})

	_, err := store.List(context.Background())
	assert.ErrorIs(t, err, boom)

	err = store.Create(context.Background(), sampleDebtor("a", "Ana"))
	assert.ErrorIs(t, err, boom)
}

func TestLedgerStore_CorruptBlob(t *testing.T) {
	blob := NewMemoryBlob()
	require.NoError(t, blob.Save(context.Background(), []byte("{not json")))

	_, err := NewLedgerStore(blob).List(context.Background())
	assert.ErrorContains(t, err, "decode ledger")
}

func TestFileBlob_MissingFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	blob, err := NewFileBlob(path)
	require.NoError(t, err)

	data, err := blob.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, blob.Save(context.Background(), []byte("[]")))
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestRedisBlob_PingAndStorage(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewLedgerStore(NewRedisBlob(client, "ledger"))
	require.NoError(t, store.Ping(context.Background()))
	require.NoError(t, store.Create(context.Background(), sampleDebtor("a", "Ana")))

	raw, err := mr.Get("ledger")
	require.NoError(t, err)
	assert.Contains(t, raw, `"name":"Ana"`)
	assert.Contains(t, raw, `"due_date":"2025-03-15"`)
}
