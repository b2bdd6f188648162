package signatures

import (
	"context"
	"fmt"

	"github.com/lumberg/petitions/internal/store"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultLimit applies when no limit is requested.
	DefaultLimit = 100
	// MaxLimit caps a single page.
	MaxLimit = 1000
)

// Reader is the storage surface this service reads from.
type Reader interface {
	ListPendingSignatures(ctx context.Context, f store.SignatureFilters) ([]store.PendingSignatureRow, error)
	CountPendingSignatures(ctx context.Context, petitionID string) (int64, error)
}

// Filters narrows a pending-signature listing.
type Filters struct {
	PetitionID string
	Limit      int
	Offset     int
}

// List is one page of pending signatures plus the unpaged total.
type List struct {
	Total   int64
	Limit   int
	Offset  int
	Results []store.PendingSignatureRow
}

// Service lists persisted pending signatures for the read-only API.
type Service interface {
	ListPendingSignatures(ctx context.Context, f Filters) (*List, error)
}

type service struct {
	reader Reader
}

// NewService creates a signatures service.
func NewService(reader Reader) Service {
	return &service{reader: reader}
}

func (s *service) ListPendingSignatures(ctx context.Context, f Filters) (*List, error) {
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	total, err := s.reader.CountPendingSignatures(ctx, f.PetitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending signatures: %w", err)
	}

	rows, err := s.reader.ListPendingSignatures(ctx, store.SignatureFilters{
		PetitionID: f.PetitionID,
		Limit:      f.Limit,
		Offset:     f.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pending signatures: %w", err)
	}

	log.Debug().
		Str("petition_id", f.PetitionID).
		Int("limit", f.Limit).
		Int("offset", f.Offset).
		Int64("total", total).
		Msg("Listed pending signatures")

	return &List{
		Total:   total,
		Limit:   f.Limit,
		Offset:  f.Offset,
		Results: rows,
	}, nil
}
