package records_test

import (
	"encoding/json"
	"testing"

	"github.com/lumberg/petitions/internal/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupFlagCoercion(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected records.SignupFlag
	}{
		{"bool true", `true`, 1},
		{"bool false", `false`, 0},
		{"string one", `"1"`, 1},
		{"string zero", `"0"`, 0},
		{"string true", `"true"`, 1},
		{"string false", `"false"`, 0},
		{"string yes", `"yes"`, 1},
		{"string no", `"no"`, 0},
		{"number one", `1`, 1},
		{"number zero", `0`, 0},
		{"empty string", `""`, 0},
		{"null", `null`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var flag records.SignupFlag
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &flag))
			assert.Equal(t, tt.expected, flag)
		})
	}
}

func TestDecodePendingSignature(t *testing.T) {
	body := []byte(`{
		"petition_id": "petition-1",
		"email": "jane@example.org",
		"first_name": "Jane",
		"last_name": "Public",
		"zip": "20500",
		"signup": "1",
		"secret_validation_key": "key-1",
		"timestamp_submitted": 1700000000,
		"timestamp_validation_close": 1700172800
	}`)

	rec, err := records.DecodePendingSignature(body)
	require.NoError(t, err)

	assert.Equal(t, "petition-1", rec.PetitionID)
	assert.Equal(t, "jane@example.org", rec.Email)
	assert.Equal(t, records.SignupFlag(1), rec.Signup)
	assert.Equal(t, "20500", rec.Zip.String)
	assert.Equal(t, int64(1700000000), rec.SubmittedAt)
}

func TestDecodePendingSignatureRejectsUnknownShape(t *testing.T) {
	// Unknown fields are rejected early instead of silently dropped.
	body := []byte(`{
		"petition_id": "petition-1",
		"email": "jane@example.org",
		"secret_validation_key": "key-1",
		"timestamp_submitted": 1700000000,
		"favorite_color": "green"
	}`)

	_, err := records.DecodePendingSignature(body)
	require.Error(t, err)
}

func TestDecodePendingSignatureRejectsMissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ``},
		{"json null", `null`},
		{"missing email", `{"petition_id":"p","secret_validation_key":"k","timestamp_submitted":1}`},
		{"missing petition", `{"email":"a@b.c","secret_validation_key":"k","timestamp_submitted":1}`},
		{"missing secret key", `{"petition_id":"p","email":"a@b.c","timestamp_submitted":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := records.DecodePendingSignature([]byte(tt.body))
			require.Error(t, err)
		})
	}
}

func TestDecodeValidation(t *testing.T) {
	body := []byte(`{
		"secret_validation_key": "key-1",
		"petition_id": "petition-1",
		"email": "jane@example.org",
		"client_ip": "203.0.113.10",
		"timestamp_received_signature_validation": 1700000100
	}`)

	rec, err := records.DecodeValidation(body)
	require.NoError(t, err)

	assert.Equal(t, "key-1", rec.SecretValidationKey)
	assert.Equal(t, "petition-1", rec.PetitionID)
	assert.Equal(t, int64(1700000100), rec.ValidatedAt)
}

func TestDecodeValidationRejectsMissingSecretKey(t *testing.T) {
	body := []byte(`{
		"petition_id": "petition-1",
		"timestamp_received_signature_validation": 1700000100
	}`)

	_, err := records.DecodeValidation(body)
	require.Error(t, err)
}

func TestValidateMappings(t *testing.T) {
	require.NoError(t, records.ValidateMappings())
}

func TestRowMatchesColumns(t *testing.T) {
	sig := &records.PendingSignature{SubmittedAt: 1700000000}
	assert.Len(t, sig.Row(), len(sig.Columns()))

	val := &records.Validation{ValidatedAt: 1700000100}
	assert.Len(t, val.Row(), len(val.Columns()))
}

func TestPendingSignatureRowCoercesTypes(t *testing.T) {
	rec, err := records.DecodePendingSignature([]byte(`{
		"petition_id": "petition-1",
		"email": "jane@example.org",
		"signup": true,
		"secret_validation_key": "key-1",
		"timestamp_submitted": 1700000000
	}`))
	require.NoError(t, err)

	row := rec.Row()
	cols := rec.Columns()

	byName := make(map[string]interface{}, len(cols))
	for i, col := range cols {
		byName[col] = row[i]
	}

	// Signup is persisted as an integer.
	assert.Equal(t, 1, byName["signup"])
}
