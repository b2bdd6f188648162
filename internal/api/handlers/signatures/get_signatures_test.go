package signatures_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	handler "github.com/lumberg/petitions/internal/api/handlers/signatures"
	"github.com/lumberg/petitions/internal/services/signatures"
	"github.com/lumberg/petitions/internal/store"
	"github.com/lumberg/petitions/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
)

type stubService struct {
	list    *signatures.List
	err     error
	filters signatures.Filters
}

func (s *stubService) ListPendingSignatures(_ context.Context, f signatures.Filters) (*signatures.List, error) {
	s.filters = f
	return s.list, s.err
}

func performGetSignatures(t *testing.T, svc signatures.Service, query string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/signatures"+query, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.NewHandler(svc).GetSignatures(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}

	return rec
}

func TestGetSignatures(t *testing.T) {
	submitted := time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)
	svc := &stubService{
		list: &signatures.List{
			Total:  2,
			Limit:  100,
			Offset: 0,
			Results: []store.PendingSignatureRow{
				{
					ID:          2,
					PetitionID:  "petition-1",
					FirstName:   "Jane",
					LastName:    "Public",
					Zip:         null.StringFrom("20500"),
					Signup:      1,
					SubmittedAt: submitted,
					CreatedAt:   submitted,
				},
				{
					ID:          1,
					PetitionID:  "petition-1",
					FirstName:   "John",
					LastName:    "Doe",
					SubmittedAt: submitted,
					CreatedAt:   submitted,
				},
			},
		},
	}

	rec := performGetSignatures(t, svc, "?petition_id=petition-1&limit=25&offset=5")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "petition-1", svc.filters.PetitionID)
	assert.Equal(t, 25, svc.filters.Limit)
	assert.Equal(t, 5, svc.filters.Offset)

	var response types.SignatureListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))

	require.NotNil(t, response.Metadata)
	assert.Equal(t, int64(2), response.Metadata.Count)
	require.Len(t, response.Results, 2)
	assert.Equal(t, "Jane", response.Results[0].FirstName)
	assert.Equal(t, "20500", response.Results[0].Zip)
	assert.True(t, response.Results[0].Signup)
	assert.Empty(t, response.Results[1].Zip)
}

func TestGetSignaturesInvalidLimit(t *testing.T) {
	svc := &stubService{list: &signatures.List{}}

	rec := performGetSignatures(t, svc, "?limit=many")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = performGetSignatures(t, svc, "?offset=-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSignaturesServiceError(t *testing.T) {
	svc := &stubService{err: assert.AnError}

	rec := performGetSignatures(t, svc, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
