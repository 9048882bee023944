package repositories

import (
	"database/sql"
	"time"

	"accounthub/internal/models"
)

type CredentialRepository interface {
	Create(c *models.AuthCredential) error
	GetByEmail(email string) (*models.AuthCredential, error)
	GetByUserID(userID string) (*models.AuthCredential, error)

	// refresh handling
	UpdateRefreshToken(id string, token string) error
	RecordLoginSuccess(id string, refreshToken string, at time.Time) error
	IncrementFailedAttempts(id string) error

	// password / verification bookkeeping
	UpdatePasswordByUserID(userID string, hash string) error
	SetPasswordResetToken(id string, token string, expires time.Time) error
	SetEmailVerificationToken(id string, token string, expires time.Time) error
	MarkVerified(id string) error
}

type credentialRepository struct {
	DB *sql.DB
}

func NewCredentialRepository(db *sql.DB) CredentialRepository {
	return &credentialRepository{DB: db}
}

const credentialColumns = `
	id, user_id, email, password_hash, refresh_token,
	failed_login_attempts, last_login_at, is_active, is_verified,
	account_locked_until, password_reset_token, password_reset_expires,
	email_verification_token, email_verification_expires,
	created_at, updated_at
`

func scanCredential(row *sql.Row) (*models.AuthCredential, error) {
	c := &models.AuthCredential{}
	var (
		rt          sql.NullString
		lastLogin   sql.NullTime
		lockedUntil sql.NullTime
		prToken     sql.NullString
		prExpires   sql.NullTime
		evToken     sql.NullString
		evExpires   sql.NullTime
	)
	err := row.Scan(
		&c.ID, &c.UserID, &c.Email, &c.PasswordHash, &rt,
		&c.FailedLoginAttempts, &lastLogin, &c.IsActive, &c.IsVerified,
		&lockedUntil, &prToken, &prExpires,
		&evToken, &evExpires,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if rt.Valid {
		s := rt.String
		c.RefreshToken = &s
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		c.LastLoginAt = &t
	}
	if lockedUntil.Valid {
		t := lockedUntil.Time
		c.AccountLockedUntil = &t
	}
	if prToken.Valid {
		s := prToken.String
		c.PasswordResetToken = &s
	}
	if prExpires.Valid {
		t := prExpires.Time
		c.PasswordResetExpires = &t
	}
	if evToken.Valid {
		s := evToken.String
		c.EmailVerificationToken = &s
	}
	if evExpires.Valid {
		t := evExpires.Time
		c.EmailVerificationExpires = &t
	}
	return c, nil
}

func (r *credentialRepository) Create(c *models.AuthCredential) error {
	const q = `
		INSERT INTO auth_credentials (
			id, user_id, email, password_hash, refresh_token,
			failed_login_attempts, is_active, is_verified
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at, updated_at
	`
	return r.DB.QueryRow(q,
		c.ID,
		c.UserID,
		c.Email,
		c.PasswordHash,
		c.RefreshToken,
		c.FailedLoginAttempts,
		c.IsActive,
		c.IsVerified,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (r *credentialRepository) GetByEmail(email string) (*models.AuthCredential, error) {
	const q = `SELECT ` + credentialColumns + ` FROM auth_credentials WHERE email = $1`
	return scanCredential(r.DB.QueryRow(q, email))
}

func (r *credentialRepository) GetByUserID(userID string) (*models.AuthCredential, error) {
	const q = `SELECT ` + credentialColumns + ` FROM auth_credentials WHERE user_id = $1`
	return scanCredential(r.DB.QueryRow(q, userID))
}

func (r *credentialRepository) UpdateRefreshToken(id string, token string) error {
	const q = `UPDATE auth_credentials SET refresh_token=$1, updated_at=now() WHERE id=$2`
	_, err := r.DB.Exec(q, token, id)
	return err
}

// RecordLoginSuccess resets the failure counter, stamps last_login_at
// and rotates the stored refresh token in one write.
func (r *credentialRepository) RecordLoginSuccess(id string, refreshToken string, at time.Time) error {
	const q = `
		UPDATE auth_credentials
		SET failed_login_attempts=0, last_login_at=$1, refresh_token=$2, updated_at=now()
		WHERE id=$3
	`
	_, err := r.DB.Exec(q, at, refreshToken, id)
	return err
}

func (r *credentialRepository) IncrementFailedAttempts(id string) error {
	const q = `
		UPDATE auth_credentials
		SET failed_login_attempts = failed_login_attempts + 1, updated_at=now()
		WHERE id=$1
	`
	_, err := r.DB.Exec(q, id)
	return err
}

func (r *credentialRepository) UpdatePasswordByUserID(userID string, hash string) error {
	const q = `UPDATE auth_credentials SET password_hash=$1, updated_at=now() WHERE user_id=$2`
	_, err := r.DB.Exec(q, hash, userID)
	return err
}

func (r *credentialRepository) SetPasswordResetToken(id string, token string, expires time.Time) error {
	const q = `
		UPDATE auth_credentials
		SET password_reset_token=$1, password_reset_expires=$2, updated_at=now()
		WHERE id=$3
	`
	_, err := r.DB.Exec(q, token, expires, id)
	return err
}

func (r *credentialRepository) SetEmailVerificationToken(id string, token string, expires time.Time) error {
	const q = `
		UPDATE auth_credentials
		SET email_verification_token=$1, email_verification_expires=$2, updated_at=now()
		WHERE id=$3
	`
	_, err := r.DB.Exec(q, token, expires, id)
	return err
}

func (r *credentialRepository) MarkVerified(id string) error {
	const q = `
		UPDATE auth_credentials
		SET is_verified=TRUE, email_verification_token=NULL, email_verification_expires=NULL, updated_at=now()
		WHERE id=$1
	`
	_, err := r.DB.Exec(q, id)
	return err
}
