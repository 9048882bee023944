package services

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"accounthub/internal/models"
	"accounthub/internal/repositories"
	"accounthub/internal/token"
	"accounthub/internal/utils"
)

// bcrypt cost used for every stored password hash.
const hashCost = 12

// AuthService orchestrates the credential/token lifecycle: short-lived
// sagas for registration, login, refresh and the password-reset and
// email-verification flows.
type AuthService interface {
	FindByEmail(email string) (*models.AuthCredential, error)
	Register(req models.RegisterAuthRequest) (*models.AuthSession, error)
	Login(req models.LoginRequest) (*models.AuthSession, error)
	Refresh(oldRefreshToken string) (*models.AuthSession, error)
	RequestPasswordReset(email string) (string, error)
	VerifyResetToken(resetToken string) (*token.Claims, error)
	SetNewPassword(req models.SetNewPasswordInternalRequest) error
	RequestEmailVerification(email string) (string, error)
	VerifyEmail(verificationToken string) (*models.AuthCredential, error)
}

type authService struct {
	creds  repositories.CredentialRepository
	tokens *token.Service
	emails EmailService // optional; nil disables delivery
	log    *zap.SugaredLogger
}

func NewAuthService(creds repositories.CredentialRepository, tokens *token.Service, emails EmailService, log *zap.SugaredLogger) AuthService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &authService{creds: creds, tokens: tokens, emails: emails, log: log}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) FindByEmail(email string) (*models.AuthCredential, error) {
	return s.creds.GetByEmail(normalizeEmail(email))
}

// Register creates the credential for an already-existing user profile.
// The uniqueness check runs before any mutation: on duplicate no
// partial credential exists.
func (s *authService) Register(req models.RegisterAuthRequest) (*models.AuthSession, error) {
	email := normalizeEmail(req.Email)

	existing, err := s.creds.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), hashCost)
	if err != nil {
		return nil, err
	}

	cred := &models.AuthCredential{
		ID:           utils.NewID(),
		UserID:       req.UserID,
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
		IsVerified:   false,
	}
	if err := s.creds.Create(cred); err != nil {
		return nil, err
	}

	pair, err := s.tokens.IssuePair(cred.UserID, cred.Email)
	if err != nil {
		return nil, err
	}
	if err := s.creds.UpdateRefreshToken(cred.ID, pair.RefreshToken); err != nil {
		return nil, err
	}
	cred.RefreshToken = &pair.RefreshToken

	s.log.Infow("credential registered", "userId", cred.UserID, "email", cred.Email)
	return &models.AuthSession{User: cred, AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}

// Login verifies the password and rotates the refresh token
// unconditionally: a successful login always invalidates the previous
// refresh token, including one held by another device.
func (s *authService) Login(req models.LoginRequest) (*models.AuthSession, error) {
	email := normalizeEmail(req.Email)

	cred, err := s.creds.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, ErrUserNotFound
	}
	if !cred.IsActive {
		return nil, ErrAccountInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(req.Password)); err != nil {
		// the counter is persisted even though no lockout threshold
		// gates subsequent logins
		if incErr := s.creds.IncrementFailedAttempts(cred.ID); incErr != nil {
			s.log.Errorw("failed to persist login attempt counter", "credentialId", cred.ID, "err", incErr)
		}
		return nil, ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(cred.UserID, cred.Email)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.creds.RecordLoginSuccess(cred.ID, pair.RefreshToken, now); err != nil {
		return nil, err
	}
	cred.FailedLoginAttempts = 0
	cred.LastLoginAt = &now
	cred.RefreshToken = &pair.RefreshToken

	s.log.Infow("login successful", "userId", cred.UserID, "email", cred.Email)
	return &models.AuthSession{User: cred, AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}

// Refresh rotates a refresh token. Beyond signature and expiry, the
// presented token must equal the stored one byte for byte; a
// rotated-out token is rejected even while cryptographically valid.
func (s *authService) Refresh(oldRefreshToken string) (*models.AuthSession, error) {
	claims, err := s.tokens.Verify(oldRefreshToken, token.KindRefresh)
	if err != nil {
		switch {
		case errors.Is(err, token.ErrExpired):
			return nil, ErrRefreshTokenExpired
		default:
			return nil, ErrInvalidRefreshToken
		}
	}

	cred, err := s.creds.GetByUserID(claims.Subject)
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, ErrUserNotFound
	}
	if cred.RefreshToken == nil || *cred.RefreshToken != oldRefreshToken {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(cred.UserID, cred.Email)
	if err != nil {
		return nil, err
	}
	if err := s.creds.UpdateRefreshToken(cred.ID, pair.RefreshToken); err != nil {
		return nil, err
	}
	cred.RefreshToken = &pair.RefreshToken

	s.log.Infow("refresh token rotated", "userId", cred.UserID)
	return &models.AuthSession{User: cred, AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}

// RequestPasswordReset issues a password_reset token and records it on
// the credential. The token is returned to the caller for delivery;
// email delivery is best effort and never fails the flow.
func (s *authService) RequestPasswordReset(email string) (string, error) {
	cred, err := s.creds.GetByEmail(normalizeEmail(email))
	if err != nil {
		return "", err
	}
	if cred == nil {
		return "", ErrUserNotFound
	}

	resetToken, err := s.tokens.Issue(token.KindPasswordReset, cred.UserID, cred.Email)
	if err != nil {
		return "", err
	}
	expires := time.Now().UTC().Add(s.tokens.TTL(token.KindPasswordReset))
	if err := s.creds.SetPasswordResetToken(cred.ID, resetToken, expires); err != nil {
		return "", err
	}

	if s.emails != nil {
		if err := s.emails.SendPasswordResetEmail(cred.Email, resetToken); err != nil {
			s.log.Warnw("failed to send password reset email", "email", cred.Email, "err", err)
		}
	}
	return resetToken, nil
}

func (s *authService) VerifyResetToken(resetToken string) (*token.Claims, error) {
	claims, err := s.tokens.Verify(resetToken, token.KindPasswordReset)
	if err != nil {
		switch {
		case errors.Is(err, token.ErrExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, token.ErrWrongKind):
			return nil, ErrWrongTokenType
		default:
			return nil, ErrInvalidToken
		}
	}
	return claims, nil
}

// SetNewPassword applies a verified password reset. The same-as-old
// guard compares the candidate against the stored hash as-is, and the
// refresh token is left untouched, so existing sessions survive.
func (s *authService) SetNewPassword(req models.SetNewPasswordInternalRequest) error {
	cred, err := s.creds.GetByUserID(req.UserID)
	if err != nil {
		return err
	}
	if cred == nil {
		return ErrUserNotFound
	}

	if cred.PasswordHash == req.NewPassword {
		return ErrNewPasswordSameAsOld
	}
	if req.NewPassword != req.ConfirmPassword {
		return ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), hashCost)
	if err != nil {
		return err
	}
	if err := s.creds.UpdatePasswordByUserID(req.UserID, string(hash)); err != nil {
		return err
	}

	s.log.Infow("password updated", "userId", req.UserID)
	return nil
}

// RequestEmailVerification issues an email_verification token and
// records it on the credential.
func (s *authService) RequestEmailVerification(email string) (string, error) {
	cred, err := s.creds.GetByEmail(normalizeEmail(email))
	if err != nil {
		return "", err
	}
	if cred == nil {
		return "", ErrUserNotFound
	}
	if cred.IsVerified {
		return "", ErrEmailAlreadyVerified
	}

	verificationToken, err := s.tokens.Issue(token.KindEmailVerification, cred.UserID, cred.Email)
	if err != nil {
		return "", err
	}
	expires := time.Now().UTC().Add(s.tokens.TTL(token.KindEmailVerification))
	if err := s.creds.SetEmailVerificationToken(cred.ID, verificationToken, expires); err != nil {
		return "", err
	}

	if s.emails != nil {
		if err := s.emails.SendVerificationEmail(cred.Email, verificationToken); err != nil {
			s.log.Warnw("failed to send verification email", "email", cred.Email, "err", err)
		}
	}
	return verificationToken, nil
}

// VerifyEmail flips isVerified. The stored token must match the
// presented one, so a token already consumed (or superseded by a
// newer request) is rejected.
func (s *authService) VerifyEmail(verificationToken string) (*models.AuthCredential, error) {
	claims, err := s.tokens.Verify(verificationToken, token.KindEmailVerification)
	if err != nil {
		switch {
		case errors.Is(err, token.ErrExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, token.ErrWrongKind):
			return nil, ErrWrongTokenType
		default:
			return nil, ErrInvalidToken
		}
	}

	cred, err := s.creds.GetByUserID(claims.Subject)
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, ErrUserNotFound
	}
	if cred.IsVerified {
		return nil, ErrEmailAlreadyVerified
	}
	if cred.EmailVerificationToken == nil || *cred.EmailVerificationToken != verificationToken {
		return nil, ErrInvalidToken
	}

	if err := s.creds.MarkVerified(cred.ID); err != nil {
		return nil, err
	}
	cred.IsVerified = true
	cred.EmailVerificationToken = nil
	cred.EmailVerificationExpires = nil

	s.log.Infow("email verified", "userId", cred.UserID)
	return cred, nil
}
