package signatures_test

import (
	"context"
	"testing"
	"time"

	"github.com/lumberg/petitions/internal/services/signatures"
	"github.com/lumberg/petitions/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReader struct {
	rows    []store.PendingSignatureRow
	total   int64
	filters store.SignatureFilters
}

func (s *stubReader) ListPendingSignatures(_ context.Context, f store.SignatureFilters) ([]store.PendingSignatureRow, error) {
	s.filters = f
	return s.rows, nil
}

func (s *stubReader) CountPendingSignatures(_ context.Context, _ string) (int64, error) {
	return s.total, nil
}

func TestListPendingSignaturesDefaults(t *testing.T) {
	reader := &stubReader{
		rows: []store.PendingSignatureRow{
			{ID: 2, PetitionID: "petition-1", SubmittedAt: time.Now()},
			{ID: 1, PetitionID: "petition-1", SubmittedAt: time.Now()},
		},
		total: 2,
	}

	svc := signatures.NewService(reader)

	list, err := svc.ListPendingSignatures(context.Background(), signatures.Filters{PetitionID: "petition-1"})
	require.NoError(t, err)

	assert.Equal(t, int64(2), list.Total)
	assert.Equal(t, signatures.DefaultLimit, list.Limit)
	assert.Equal(t, 0, list.Offset)
	assert.Len(t, list.Results, 2)

	assert.Equal(t, "petition-1", reader.filters.PetitionID)
	assert.Equal(t, signatures.DefaultLimit, reader.filters.Limit)
}

func TestListPendingSignaturesClampsLimit(t *testing.T) {
	reader := &stubReader{}
	svc := signatures.NewService(reader)

	_, err := svc.ListPendingSignatures(context.Background(), signatures.Filters{
		Limit:  signatures.MaxLimit * 10,
		Offset: -5,
	})
	require.NoError(t, err)

	assert.Equal(t, signatures.MaxLimit, reader.filters.Limit)
	assert.Equal(t, 0, reader.filters.Offset)
}
