package records

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/volatiletech/null/v8"
)

// SignupFlag is the opt-in-to-updates flag of a pending signature. Producers
// have historically sent it as a bool, a string or a number; it is coerced
// to 0/1 on decode and persisted as an integer.
type SignupFlag int

// UnmarshalJSON coerces bool, string and numeric representations to 0/1.
func (s *SignupFlag) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*s = 0
		return nil
	}

	switch trimmed[0] {
	case '"':
		var str string
		if err := json.Unmarshal(trimmed, &str); err != nil {
			return err
		}
		*s = coerceSignupString(str)
	case 't', 'f':
		var v bool
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return err
		}
		if v {
			*s = 1
		} else {
			*s = 0
		}
	default:
		var v float64
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return fmt.Errorf("invalid signup flag %q: %w", string(trimmed), err)
		}
		if v != 0 {
			*s = 1
		} else {
			*s = 0
		}
	}

	return nil
}

func coerceSignupString(str string) SignupFlag {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "", "0", "false", "no", "off":
		return 0
	}
	if n, err := strconv.ParseFloat(str, 64); err == nil && n == 0 {
		return 0
	}
	return 1
}

// PendingSignature is a petition signature awaiting email validation,
// produced by the signature form and drained into the signatures_pending
// table.
type PendingSignature struct {
	PetitionID          string      `json:"petition_id"`
	Email               string      `json:"email"`
	FirstName           string      `json:"first_name"`
	LastName            string      `json:"last_name"`
	Zip                 null.String `json:"zip"`
	Signup              SignupFlag  `json:"signup"`
	ClientIP            null.String `json:"client_ip"`
	SourceAPIKey        null.String `json:"signature_source_api_key"`
	SecretValidationKey string      `json:"secret_validation_key"`
	SubmittedAt         int64       `json:"timestamp_submitted"`
	ValidationCloseAt   int64       `json:"timestamp_validation_close"`
}

// Validate reports whether all required fields are present.
func (r *PendingSignature) Validate() error {
	if r.PetitionID == "" {
		return fmt.Errorf("pending signature: missing petition_id")
	}
	if r.Email == "" {
		return fmt.Errorf("pending signature: missing email")
	}
	if r.SecretValidationKey == "" {
		return fmt.Errorf("pending signature: missing secret_validation_key")
	}
	if r.SubmittedAt <= 0 {
		return fmt.Errorf("pending signature: missing timestamp_submitted")
	}
	return nil
}

// Validation is a confirmed signature validation, produced by the email
// validation callback and drained into the validations table.
type Validation struct {
	SecretValidationKey string      `json:"secret_validation_key"`
	PetitionID          string      `json:"petition_id"`
	Email               null.String `json:"email"`
	ClientIP            null.String `json:"client_ip"`
	ValidatedAt         int64       `json:"timestamp_received_signature_validation"`
}

// Validate reports whether all required fields are present.
func (r *Validation) Validate() error {
	if r.SecretValidationKey == "" {
		return fmt.Errorf("validation: missing secret_validation_key")
	}
	if r.PetitionID == "" {
		return fmt.Errorf("validation: missing petition_id")
	}
	if r.ValidatedAt <= 0 {
		return fmt.Errorf("validation: missing timestamp_received_signature_validation")
	}
	return nil
}

// DecodePendingSignature decodes a queue item body into a PendingSignature.
// Unknown fields and missing required fields are rejected so malformed
// producer artifacts surface on claim instead of as silent column drops.
func DecodePendingSignature(body []byte) (*PendingSignature, error) {
	var rec PendingSignature
	if err := decodeStrict(body, &rec); err != nil {
		return nil, err
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return &rec, nil
}

// DecodeValidation decodes a queue item body into a Validation.
func DecodeValidation(body []byte) (*Validation, error) {
	var rec Validation
	if err := decodeStrict(body, &rec); err != nil {
		return nil, err
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return &rec, nil
}

func decodeStrict(body []byte, out interface{}) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return fmt.Errorf("empty queue item body")
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()

	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("failed to decode queue item: %w", err)
	}

	return nil
}
