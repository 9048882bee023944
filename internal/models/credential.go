package models

import "time"

// AuthCredential is the auth record paired with a User profile. The
// profile itself lives in the user service; UserID is a foreign
// reference, not owned here.
type AuthCredential struct {
	ID           string `json:"id"`
	UserID       string `json:"userId"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // never serialized

	// Exactly one live refresh token per credential; rotation
	// invalidates the previous value.
	RefreshToken *string `json:"-"`

	FailedLoginAttempts int        `json:"failedLoginAttempts"`
	LastLoginAt         *time.Time `json:"lastLoginAt,omitempty"`
	IsActive            bool       `json:"isActive"`
	IsVerified          bool       `json:"isVerified"`

	AccountLockedUntil       *time.Time `json:"-"`
	PasswordResetToken       *string    `json:"-"`
	PasswordResetExpires     *time.Time `json:"-"`
	EmailVerificationToken   *string    `json:"-"`
	EmailVerificationExpires *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AuthSession is the success payload for register/login/refresh:
// the credential (password stripped by json tags) plus a fresh pair.
type AuthSession struct {
	User         *AuthCredential `json:"user"`
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
}
