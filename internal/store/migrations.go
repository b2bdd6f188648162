package store

// Schema for the signature and validation tables. Column sets must stay in
// lockstep with the mappings in internal/records (records.MappingVersion).
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS signatures_pending (
		id BIGSERIAL PRIMARY KEY,
		petition_id TEXT NOT NULL,
		email TEXT NOT NULL,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		zip TEXT,
		signup SMALLINT NOT NULL DEFAULT 0,
		client_ip TEXT,
		signature_source_api_key TEXT,
		secret_validation_key TEXT NOT NULL UNIQUE,
		submitted_at TIMESTAMPTZ NOT NULL,
		validation_close_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_signatures_pending_petition
		ON signatures_pending (petition_id, id DESC)`,

	`CREATE TABLE IF NOT EXISTS validations (
		id BIGSERIAL PRIMARY KEY,
		secret_validation_key TEXT NOT NULL UNIQUE,
		petition_id TEXT NOT NULL,
		email TEXT,
		client_ip TEXT,
		validated_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_validations_petition
		ON validations (petition_id)`,

	`CREATE TABLE IF NOT EXISTS validations_processed (
		secret_validation_key TEXT PRIMARY KEY,
		processed_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}
