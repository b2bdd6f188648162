// Package fixtures provides builders for petition domain objects used by
// package tests and by the queues seed command.
package fixtures

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lumberg/petitions/internal/records"
	"github.com/volatiletech/null/v8"
)

// PendingSignatureOption mutates a pending signature fixture.
type PendingSignatureOption func(*records.PendingSignature)

// ValidationOption mutates a validation fixture.
type ValidationOption func(*records.Validation)

// PendingSignature builds a valid pending signature for the given petition
// with unique email and secret key.
func PendingSignature(petitionID string, opts ...PendingSignatureOption) *records.PendingSignature {
	id := uuid.New().String()

	rec := &records.PendingSignature{
		PetitionID:          petitionID,
		Email:               fmt.Sprintf("signer-%s@example.org", id[:8]),
		FirstName:           "Jane",
		LastName:            "Public",
		Zip:                 null.StringFrom("20500"),
		Signup:              records.SignupFlag(0),
		ClientIP:            null.StringFrom("203.0.113.10"),
		SecretValidationKey: id,
		SubmittedAt:         time.Now().Unix(),
		ValidationCloseAt:   time.Now().Add(48 * time.Hour).Unix(),
	}

	for _, opt := range opts {
		opt(rec)
	}

	return rec
}

// WithEmail overrides the fixture email.
func WithEmail(email string) PendingSignatureOption {
	return func(r *records.PendingSignature) { r.Email = email }
}

// WithName overrides the fixture name.
func WithName(first, last string) PendingSignatureOption {
	return func(r *records.PendingSignature) {
		r.FirstName = first
		r.LastName = last
	}
}

// WithSignup marks the fixture as opted in to updates.
func WithSignup() PendingSignatureOption {
	return func(r *records.PendingSignature) { r.Signup = 1 }
}

// WithSecretKey overrides the fixture secret validation key.
func WithSecretKey(key string) PendingSignatureOption {
	return func(r *records.PendingSignature) { r.SecretValidationKey = key }
}

// Validation builds a valid validation record for the given petition with a
// unique secret key.
func Validation(petitionID string, opts ...ValidationOption) *records.Validation {
	id := uuid.New().String()

	rec := &records.Validation{
		SecretValidationKey: id,
		PetitionID:          petitionID,
		Email:               null.StringFrom(fmt.Sprintf("signer-%s@example.org", id[:8])),
		ClientIP:            null.StringFrom("203.0.113.10"),
		ValidatedAt:         time.Now().Unix(),
	}

	for _, opt := range opts {
		opt(rec)
	}

	return rec
}

// WithValidationSecretKey overrides the validation fixture secret key.
func WithValidationSecretKey(key string) ValidationOption {
	return func(r *records.Validation) { r.SecretValidationKey = key }
}
