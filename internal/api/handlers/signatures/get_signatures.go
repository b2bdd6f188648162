package signatures

import (
	"net/http"
	"strconv"

	"github.com/go-openapi/strfmt"
	"github.com/labstack/echo/v4"
	"github.com/lumberg/petitions/internal/api"
	"github.com/lumberg/petitions/internal/services/signatures"
	"github.com/lumberg/petitions/internal/types"
	"github.com/lumberg/petitions/internal/util"
)

// GetSignaturesRoute creates the route for listing pending signatures
func GetSignaturesRoute(s *api.Server) *echo.Route {
	handler := NewHandler(s.SignaturesService)
	return s.Router.APIV1Signatures.GET("", handler.GetSignatures)
}

// GetSignatures handles GET /api/v1/signatures requests
func (h *Handler) GetSignatures(c echo.Context) error {
	ctx := c.Request().Context()
	log := util.LogFromContext(ctx)

	filters := signatures.Filters{
		PetitionID: c.QueryParam("petition_id"),
	}

	if limitStr := c.QueryParam("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid limit parameter")
		}
		filters.Limit = limit
	}

	if offsetStr := c.QueryParam("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid offset parameter")
		}
		filters.Offset = offset
	}

	list, err := h.signaturesService.ListPendingSignatures(ctx, filters)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list pending signatures")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve signatures")
	}

	results := make([]*types.SignatureResponse, len(list.Results))
	for i, row := range list.Results {
		sig := &types.SignatureResponse{
			ID:          row.ID,
			PetitionID:  row.PetitionID,
			FirstName:   row.FirstName,
			LastName:    row.LastName,
			Signup:      row.Signup != 0,
			SubmittedAt: strfmt.DateTime(row.SubmittedAt),
			CreatedAt:   strfmt.DateTime(row.CreatedAt),
		}

		if row.Zip.Valid {
			sig.Zip = row.Zip.String
		}

		results[i] = sig
	}

	response := &types.SignatureListResponse{
		Metadata: &types.SignatureListMetadata{
			Count:  list.Total,
			Limit:  list.Limit,
			Offset: list.Offset,
		},
		Results: results,
	}

	log.Info().
		Str("petition_id", filters.PetitionID).
		Int("results", len(results)).
		Int64("total", list.Total).
		Msg("Retrieved pending signatures")

	return c.JSON(http.StatusOK, response)
}
