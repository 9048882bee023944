package repositories

import "database/sql"

const authSchema = `
CREATE TABLE IF NOT EXISTS auth_credentials (
	id                         TEXT PRIMARY KEY,
	user_id                    TEXT NOT NULL,
	email                      TEXT NOT NULL UNIQUE,
	password_hash              TEXT NOT NULL,
	refresh_token              TEXT,
	failed_login_attempts      INT  NOT NULL DEFAULT 0,
	last_login_at              TIMESTAMPTZ,
	is_active                  BOOLEAN NOT NULL DEFAULT TRUE,
	is_verified                BOOLEAN NOT NULL DEFAULT FALSE,
	account_locked_until       TIMESTAMPTZ,
	password_reset_token       TEXT,
	password_reset_expires     TIMESTAMPTZ,
	email_verification_token   TEXT,
	email_verification_expires TIMESTAMPTZ,
	created_at                 TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at                 TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_auth_credentials_user_id ON auth_credentials (user_id);
`

const userSchema = `
CREATE TABLE IF NOT EXISTS users (
	id         TEXT PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name  TEXT NOT NULL,
	email      TEXT NOT NULL UNIQUE,
	is_active  BOOLEAN NOT NULL DEFAULT TRUE,
	is_deleted BOOLEAN NOT NULL DEFAULT FALSE,
	deleted_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// MigrateAuth creates the auth service schema if it does not exist yet.
func MigrateAuth(db *sql.DB) error {
	_, err := db.Exec(authSchema)
	return err
}

// MigrateUsers creates the user service schema if it does not exist yet.
func MigrateUsers(db *sql.DB) error {
	_, err := db.Exec(userSchema)
	return err
}
