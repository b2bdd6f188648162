package fixtures_test

import (
	"testing"

	"github.com/lumberg/petitions/internal/fixtures"
	"github.com/lumberg/petitions/internal/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingSignatureFixtureIsValid(t *testing.T) {
	rec := fixtures.PendingSignature("petition-1")

	require.NoError(t, rec.Validate())
	assert.Equal(t, "petition-1", rec.PetitionID)
	assert.NotEmpty(t, rec.SecretValidationKey)
}

func TestPendingSignatureFixtureOptions(t *testing.T) {
	rec := fixtures.PendingSignature("petition-1",
		fixtures.WithEmail("custom@example.org"),
		fixtures.WithName("John", "Doe"),
		fixtures.WithSignup(),
		fixtures.WithSecretKey("fixed-key"),
	)

	assert.Equal(t, "custom@example.org", rec.Email)
	assert.Equal(t, "John", rec.FirstName)
	assert.Equal(t, records.SignupFlag(1), rec.Signup)
	assert.Equal(t, "fixed-key", rec.SecretValidationKey)
}

func TestFixturesProduceUniqueSecretKeys(t *testing.T) {
	a := fixtures.PendingSignature("petition-1")
	b := fixtures.PendingSignature("petition-1")

	assert.NotEqual(t, a.SecretValidationKey, b.SecretValidationKey)
	assert.NotEqual(t, a.Email, b.Email)
}

func TestValidationFixtureIsValid(t *testing.T) {
	rec := fixtures.Validation("petition-1", fixtures.WithValidationSecretKey("fixed-key"))

	require.NoError(t, rec.Validate())
	assert.Equal(t, "fixed-key", rec.SecretValidationKey)
}
