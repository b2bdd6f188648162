package store_test

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/lib/pq"
	"github.com/lumberg/petitions/internal/fixtures"
	"github.com/lumberg/petitions/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testStore opens a store against the database named by PETITIONS_TEST_DSN.
// Integration coverage, skipped in short mode and when no database is
// configured.
func testStore(t *testing.T) *store.Store {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	dsn := os.Getenv("PETITIONS_TEST_DSN")
	if dsn == "" {
		t.Skip("PETITIONS_TEST_DSN not set, skipping integration test")
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s, err := store.New(db)
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))

	for _, table := range []string{"signatures_pending", "validations", "validations_processed"} {
		_, err := db.Exec("TRUNCATE TABLE " + table)
		require.NoError(t, err)
	}

	return s
}

func TestInsertAndListPendingSignatures(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	first := fixtures.PendingSignature("petition-1", fixtures.WithName("Jane", "Public"))
	second := fixtures.PendingSignature("petition-1", fixtures.WithSignup())
	other := fixtures.PendingSignature("petition-2")

	require.NoError(t, s.InsertPendingSignature(ctx, first))
	require.NoError(t, s.InsertPendingSignature(ctx, second))
	require.NoError(t, s.InsertPendingSignature(ctx, other))

	total, err := s.CountPendingSignatures(ctx, "petition-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	rows, err := s.ListPendingSignatures(ctx, store.SignatureFilters{
		PetitionID: "petition-1",
		Limit:      10,
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Newest first.
	assert.Greater(t, rows[0].ID, rows[1].ID)
	assert.Equal(t, 1, rows[0].Signup)
	assert.Equal(t, "Jane", rows[1].FirstName)
}

func TestInsertPendingSignatureDuplicateKey(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	rec := fixtures.PendingSignature("petition-1", fixtures.WithSecretKey("dup-key"))
	require.NoError(t, s.InsertPendingSignature(ctx, rec))

	dup := fixtures.PendingSignature("petition-1", fixtures.WithSecretKey("dup-key"))
	require.Error(t, s.InsertPendingSignature(ctx, dup))
}

func TestValidationLedger(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	processed, err := s.ValidationProcessed(ctx, "key-1")
	require.NoError(t, err)
	assert.False(t, processed)

	require.NoError(t, s.RecordProcessedValidation(ctx, "key-1"))

	processed, err = s.ValidationProcessed(ctx, "key-1")
	require.NoError(t, err)
	assert.True(t, processed)

	// Recording twice is a no-op.
	require.NoError(t, s.RecordProcessedValidation(ctx, "key-1"))
}

func TestInsertValidation(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	rec := fixtures.Validation("petition-1")
	require.NoError(t, s.InsertValidation(ctx, rec))

	var count int64
	require.NoError(t, s.DB().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM validations WHERE petition_id = $1`, "petition-1",
	).Scan(&count))
	assert.Equal(t, int64(1), count)
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.Migrate(context.Background()))
	require.NoError(t, s.Migrate(context.Background()))
}
