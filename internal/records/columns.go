package records

import (
	"fmt"
	"time"

	"github.com/volatiletech/null/v8"
)

// MappingVersion identifies the record-to-column mappings below. Bump it
// whenever a destination table gains or loses a column so mismatched
// deployments fail loudly at startup instead of dropping fields.
const MappingVersion = 1

// Destination table names.
const (
	TableSignaturesPending    = "signatures_pending"
	TableValidations          = "validations"
	TableValidationsProcessed = "validations_processed"
)

var pendingSignatureColumns = []string{
	"petition_id",
	"email",
	"first_name",
	"last_name",
	"zip",
	"signup",
	"client_ip",
	"signature_source_api_key",
	"secret_validation_key",
	"submitted_at",
	"validation_close_at",
}

var validationColumns = []string{
	"secret_validation_key",
	"petition_id",
	"email",
	"client_ip",
	"validated_at",
}

// Columns returns the signatures_pending column list in insert order.
func (r *PendingSignature) Columns() []string { return pendingSignatureColumns }

// Row returns the values matching Columns, with queue-side representations
// converted to their column types (unix seconds to timestamps, signup flag
// to an integer).
func (r *PendingSignature) Row() []interface{} {
	return []interface{}{
		r.PetitionID,
		r.Email,
		r.FirstName,
		r.LastName,
		r.Zip,
		int(r.Signup),
		r.ClientIP,
		r.SourceAPIKey,
		r.SecretValidationKey,
		time.Unix(r.SubmittedAt, 0).UTC(),
		unixOrNull(r.ValidationCloseAt),
	}
}

// Columns returns the validations column list in insert order.
func (r *Validation) Columns() []string { return validationColumns }

// Row returns the values matching Columns.
func (r *Validation) Row() []interface{} {
	return []interface{}{
		r.SecretValidationKey,
		r.PetitionID,
		r.Email,
		r.ClientIP,
		time.Unix(r.ValidatedAt, 0).UTC(),
	}
}

func unixOrNull(ts int64) null.Time {
	if ts <= 0 {
		return null.Time{}
	}
	return null.TimeFrom(time.Unix(ts, 0).UTC())
}

// ValidateMappings checks the static record-to-column mappings for internal
// consistency. Called once at startup.
func ValidateMappings() error {
	mappings := map[string]struct {
		columns []string
		row     []interface{}
	}{
		TableSignaturesPending: {pendingSignatureColumns, (&PendingSignature{SubmittedAt: 1}).Row()},
		TableValidations:       {validationColumns, (&Validation{ValidatedAt: 1}).Row()},
	}

	for table, m := range mappings {
		if len(m.columns) == 0 {
			return fmt.Errorf("mapping for table %s has no columns", table)
		}
		if len(m.columns) != len(m.row) {
			return fmt.Errorf("mapping for table %s has %d columns but %d row values", table, len(m.columns), len(m.row))
		}

		seen := make(map[string]bool, len(m.columns))
		for _, col := range m.columns {
			if seen[col] {
				return fmt.Errorf("mapping for table %s repeats column %s", table, col)
			}
			seen[col] = true
		}
	}

	return nil
}
