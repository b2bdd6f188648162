package signatures

import (
	"github.com/lumberg/petitions/internal/services/signatures"
)

// Handler handles read-only signature requests
type Handler struct {
	signaturesService signatures.Service
}

// NewHandler creates a new signatures handler
func NewHandler(signaturesService signatures.Service) *Handler {
	return &Handler{
		signaturesService: signaturesService,
	}
}
