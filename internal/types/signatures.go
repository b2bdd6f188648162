package types

import "github.com/go-openapi/strfmt"

// SignatureResponse is one pending signature as exposed by the read-only
// API. Email addresses are deliberately not exposed.
type SignatureResponse struct {
	ID          int64           `json:"id"`
	PetitionID  string          `json:"petition_id"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Zip         string          `json:"zip,omitempty"`
	Signup      bool            `json:"signup"`
	SubmittedAt strfmt.DateTime `json:"submitted_at"`
	CreatedAt   strfmt.DateTime `json:"created_at"`
}

// SignatureListMetadata describes the page returned by a signature listing.
type SignatureListMetadata struct {
	Count  int64 `json:"count"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// SignatureListResponse is the paginated pending-signature listing.
type SignatureListResponse struct {
	Metadata *SignatureListMetadata `json:"metadata"`
	Results  []*SignatureResponse   `json:"results"`
}

// QueueDepthResponse is the observed depth of one queue.
type QueueDepthResponse struct {
	Name    string `json:"name"`
	Depth   int    `json:"depth"`
	Healthy bool   `json:"healthy"`
}

// QueueStatusResponse reports the depth of every workflow queue.
type QueueStatusResponse struct {
	Queues []*QueueDepthResponse `json:"queues"`
}
