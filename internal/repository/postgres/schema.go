package postgres

import "context"

// schema is applied idempotently at startup. Cascading deletes keep API keys,
// files, and usage events referentially tied to their project and owner.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	subject     TEXT PRIMARY KEY,
	email       TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS projects (
	id             UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	name           TEXT NOT NULL,
	description    TEXT,
	owner_subject  TEXT NOT NULL REFERENCES users(subject) ON DELETE CASCADE,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_projects_owner ON projects(owner_subject);

CREATE TABLE IF NOT EXISTS api_keys (
	id             UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	key_hash       TEXT NOT NULL UNIQUE,
	key_prefix     TEXT NOT NULL,
	is_active      BOOLEAN NOT NULL DEFAULT TRUE,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	last_used_at   TIMESTAMPTZ,
	owner_subject  TEXT NOT NULL REFERENCES users(subject) ON DELETE CASCADE,
	project_id     UUID NOT NULL REFERENCES projects(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_api_keys_owner ON api_keys(owner_subject);
CREATE INDEX IF NOT EXISTS idx_api_keys_project ON api_keys(project_id);

CREATE TABLE IF NOT EXISTS files (
	id             UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	filename       TEXT NOT NULL,
	size_bytes     BIGINT NOT NULL,
	mime_type      TEXT NOT NULL,
	storage_key    TEXT NOT NULL,
	owner_subject  TEXT NOT NULL REFERENCES users(subject) ON DELETE CASCADE,
	project_id     UUID NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_files_owner ON files(owner_subject);
CREATE INDEX IF NOT EXISTS idx_files_project ON files(project_id);

CREATE TABLE IF NOT EXISTS api_usage (
	id               UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	timestamp        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	endpoint         TEXT NOT NULL,
	response_time_ms DOUBLE PRECISION NOT NULL,
	status_code      INTEGER NOT NULL,
	owner_subject    TEXT NOT NULL REFERENCES users(subject) ON DELETE CASCADE,
	project_id       UUID NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	api_key_id       UUID NOT NULL REFERENCES api_keys(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_api_usage_owner_ts ON api_usage(owner_subject, timestamp);
CREATE INDEX IF NOT EXISTS idx_api_usage_key_ts ON api_usage(api_key_id, timestamp);
`

// ApplySchema creates the tables if they do not exist yet.
func (db *DB) ApplySchema(ctx context.Context) error {
	if _, err := db.Pool.Exec(ctx, schema); err != nil {
		return errFailedApplySchema(err)
	}
	return nil
}
