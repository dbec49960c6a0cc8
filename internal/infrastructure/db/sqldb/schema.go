package sqldb

import (
	"fmt"
	"strings"

	"github.com/hirepipe/ats/internal/core/domain"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS users (
	id       BIGSERIAL PRIMARY KEY,
	username TEXT NOT NULL,
	password TEXT NOT NULL,
	role     TEXT NOT NULL CHECK (role IN ('recruiter', 'manager')),
	CONSTRAINT users_username_key UNIQUE (username)
);

CREATE TABLE IF NOT EXISTS jobs (
	id           BIGSERIAL PRIMARY KEY,
	title        TEXT NOT NULL,
	description  TEXT NOT NULL,
	requirements TEXT NOT NULL,
	manager_id   BIGINT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS candidates (
	id           BIGSERIAL PRIMARY KEY,
	job_id       BIGINT NOT NULL REFERENCES jobs (id),
	recruiter_id BIGINT NOT NULL,
	name         TEXT NOT NULL,
	email        TEXT NOT NULL,
	email_key    TEXT NOT NULL,
	phone        TEXT NOT NULL,
	resume_url   TEXT NOT NULL,
	stage        TEXT NOT NULL DEFAULT 'Submitted' CHECK (stage IN (%[1]s)),
	notes        TEXT,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE UNIQUE INDEX IF NOT EXISTS candidates_job_email_key ON candidates (job_id, email_key);
CREATE INDEX IF NOT EXISTS candidates_job_created_idx ON candidates (job_id, created_at);

CREATE TABLE IF NOT EXISTS sessions (
	sid        TEXT PRIMARY KEY,
	user_id    BIGINT NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS sessions_expires_at_idx ON sessions (expires_at);
`

// AUTOINCREMENT keeps SQLite from reusing ids of deleted rows, matching the
// PostgreSQL sequences.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL,
	role     TEXT NOT NULL CHECK (role IN ('recruiter', 'manager'))
);

CREATE TABLE IF NOT EXISTS jobs (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	title        TEXT NOT NULL,
	description  TEXT NOT NULL,
	requirements TEXT NOT NULL,
	manager_id   INTEGER NOT NULL,
	created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS candidates (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	job_id       INTEGER NOT NULL REFERENCES jobs (id),
	recruiter_id INTEGER NOT NULL,
	name         TEXT NOT NULL,
	email        TEXT NOT NULL,
	email_key    TEXT NOT NULL,
	phone        TEXT NOT NULL,
	resume_url   TEXT NOT NULL,
	stage        TEXT NOT NULL DEFAULT 'Submitted' CHECK (stage IN (%[1]s)),
	notes        TEXT,
	created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX IF NOT EXISTS candidates_job_email_key ON candidates (job_id, email_key);
CREATE INDEX IF NOT EXISTS candidates_job_created_idx ON candidates (job_id, created_at);

CREATE TABLE IF NOT EXISTS sessions (
	sid        TEXT PRIMARY KEY,
	user_id    INTEGER NOT NULL,
	expires_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS sessions_expires_at_idx ON sessions (expires_at);
`

func schemaFor(driver string) string {
	tmpl := postgresSchema
	if driver == DriverSQLite {
		tmpl = sqliteSchema
	}
	return fmt.Sprintf(tmpl, stageList())
}

// stageList renders the pipeline as a quoted SQL list for the CHECK constraint.
func stageList() string {
	quoted := make([]string, len(domain.Stages))
	for i, s := range domain.Stages {
		quoted[i] = "'" + strings.ReplaceAll(string(s), "'", "''") + "'"
	}
	return strings.Join(quoted, ", ")
}
