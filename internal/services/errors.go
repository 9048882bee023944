package services

import "errors"

// Workflow errors form a closed set; handlers translate them into
// envelope codes and status codes.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidCredentials   = errors.New("incorrect credentials")
	ErrAccountInactive      = errors.New("account is inactive")
	ErrDuplicateEmail       = errors.New("email is already in use")
	ErrRefreshTokenExpired  = errors.New("refresh token has expired")
	ErrInvalidRefreshToken  = errors.New("invalid refresh token")
	ErrTokenExpired         = errors.New("token has expired")
	ErrInvalidToken         = errors.New("invalid token provided")
	ErrWrongTokenType       = errors.New("token was issued for a different purpose")
	ErrNewPasswordSameAsOld = errors.New("new password should be different from old password")
	ErrPasswordMismatch     = errors.New("passwords do not match")
	ErrEmailAlreadyVerified = errors.New("email is already verified")
)
