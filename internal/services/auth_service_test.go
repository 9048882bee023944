package services_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"accounthub/internal/models"
	"accounthub/internal/services"
	"accounthub/internal/token"
)

// fakeCredentialRepo is an in-memory CredentialRepository. Lookups
// return copies so callers never share state with the store, matching
// how rows come back from the database.
type fakeCredentialRepo struct {
	byID map[string]*models.AuthCredential
}

func newFakeCredentialRepo() *fakeCredentialRepo {
	return &fakeCredentialRepo{byID: map[string]*models.AuthCredential{}}
}

func (r *fakeCredentialRepo) Create(c *models.AuthCredential) error {
	cp := *c
	r.byID[c.ID] = &cp
	return nil
}

func (r *fakeCredentialRepo) GetByEmail(email string) (*models.AuthCredential, error) {
	for _, c := range r.byID {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCredentialRepo) GetByUserID(userID string) (*models.AuthCredential, error) {
	for _, c := range r.byID {
		if c.UserID == userID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCredentialRepo) get(id string) (*models.AuthCredential, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("credential %s not found", id)
	}
	return c, nil
}

func (r *fakeCredentialRepo) UpdateRefreshToken(id string, tok string) error {
	c, err := r.get(id)
	if err != nil {
		return err
	}
	c.RefreshToken = &tok
	return nil
}

func (r *fakeCredentialRepo) RecordLoginSuccess(id string, refreshToken string, at time.Time) error {
	c, err := r.get(id)
	if err != nil {
		return err
	}
	c.FailedLoginAttempts = 0
	c.LastLoginAt = &at
	c.RefreshToken = &refreshToken
	return nil
}

func (r *fakeCredentialRepo) IncrementFailedAttempts(id string) error {
	c, err := r.get(id)
	if err != nil {
		return err
	}
	c.FailedLoginAttempts++
	return nil
}

func (r *fakeCredentialRepo) UpdatePasswordByUserID(userID string, hash string) error {
	for _, c := range r.byID {
		if c.UserID == userID {
			c.PasswordHash = hash
			return nil
		}
	}
	return fmt.Errorf("credential for user %s not found", userID)
}

func (r *fakeCredentialRepo) SetPasswordResetToken(id string, tok string, expires time.Time) error {
	c, err := r.get(id)
	if err != nil {
		return err
	}
	c.PasswordResetToken = &tok
	c.PasswordResetExpires = &expires
	return nil
}

func (r *fakeCredentialRepo) SetEmailVerificationToken(id string, tok string, expires time.Time) error {
	c, err := r.get(id)
	if err != nil {
		return err
	}
	c.EmailVerificationToken = &tok
	c.EmailVerificationExpires = &expires
	return nil
}

func (r *fakeCredentialRepo) MarkVerified(id string) error {
	c, err := r.get(id)
	if err != nil {
		return err
	}
	c.IsVerified = true
	c.EmailVerificationToken = nil
	c.EmailVerificationExpires = nil
	return nil
}

func newAuthFixture(t *testing.T, opts token.Options) (services.AuthService, *fakeCredentialRepo, *token.Service) {
	t.Helper()
	repo := newFakeCredentialRepo()
	tokens := token.NewService("auth-unit-test-secret", opts)
	return services.NewAuthService(repo, tokens, nil, nil), repo, tokens
}

func register(t *testing.T, svc services.AuthService, email, password, userID string) *models.AuthSession {
	t.Helper()
	session, err := svc.Register(models.RegisterAuthRequest{
		Email:           email,
		Password:        password,
		ConfirmPassword: password,
		UserID:          userID,
	})
	if err != nil {
		t.Fatalf("Register(%s): %v", email, err)
	}
	return session
}

func TestRegisterThenLogin(t *testing.T) {
	svc, repo, tokens := newAuthFixture(t, token.Options{})

	session := register(t, svc, "Bob@Example.COM ", "secret123", "user-1")
	if session.User.Email != "bob@example.com" {
		t.Errorf("stored email = %q, want normalized lowercase", session.User.Email)
	}
	if session.AccessToken == "" || session.RefreshToken == "" {
		t.Fatal("registration returned an incomplete token pair")
	}
	if _, err := tokens.Verify(session.RefreshToken, token.KindRefresh); err != nil {
		t.Errorf("refresh token invalid: %v", err)
	}

	stored, _ := repo.GetByUserID("user-1")
	if stored == nil || stored.RefreshToken == nil || *stored.RefreshToken != session.RefreshToken {
		t.Error("refresh token was not persisted on register")
	}

	// login with a differently-cased email resolves the same credential
	loggedIn, err := svc.Login(models.LoginRequest{Email: "BOB@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if loggedIn.User.UserID != "user-1" {
		t.Errorf("login resolved userId = %q", loggedIn.User.UserID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, repo, _ := newAuthFixture(t, token.Options{})
	register(t, svc, "dup@example.com", "secret123", "user-1")

	_, err := svc.Register(models.RegisterAuthRequest{
		Email:           "DUP@example.com",
		Password:        "other456",
		ConfirmPassword: "other456",
		UserID:          "user-2",
	})
	if !errors.Is(err, services.ErrDuplicateEmail) {
		t.Fatalf("Register(duplicate) = %v, want ErrDuplicateEmail", err)
	}
	// the rejected attempt must leave no partial credential behind
	if len(repo.byID) != 1 {
		t.Errorf("store holds %d credentials after duplicate register, want 1", len(repo.byID))
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t, token.Options{})

	_, err := svc.Login(models.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	if !errors.Is(err, services.ErrUserNotFound) {
		t.Fatalf("Login(unknown) = %v, want ErrUserNotFound", err)
	}
}

func TestLoginWrongPasswordCountsAttempts(t *testing.T) {
	svc, repo, _ := newAuthFixture(t, token.Options{})
	register(t, svc, "carol@example.com", "secret123", "user-1")

	for i := 1; i <= 3; i++ {
		_, err := svc.Login(models.LoginRequest{Email: "carol@example.com", Password: "wrong"})
		if !errors.Is(err, services.ErrInvalidCredentials) {
			t.Fatalf("Login(wrong password) = %v, want ErrInvalidCredentials", err)
		}
		stored, _ := repo.GetByUserID("user-1")
		if stored.FailedLoginAttempts != i {
			t.Fatalf("failed attempts = %d after %d bad logins", stored.FailedLoginAttempts, i)
		}
	}

	// the counter never locks the account; a correct password still works
	// and resets it
	if _, err := svc.Login(models.LoginRequest{Email: "carol@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("Login after failures: %v", err)
	}
	stored, _ := repo.GetByUserID("user-1")
	if stored.FailedLoginAttempts != 0 {
		t.Errorf("failed attempts = %d after success, want 0", stored.FailedLoginAttempts)
	}
	if stored.LastLoginAt == nil {
		t.Error("lastLoginAt not stamped on success")
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	svc, repo, _ := newAuthFixture(t, token.Options{})
	register(t, svc, "dan@example.com", "secret123", "user-1")

	stored, _ := repo.GetByUserID("user-1")
	repo.byID[stored.ID].IsActive = false

	// inactive wins over the password check either way
	if _, err := svc.Login(models.LoginRequest{Email: "dan@example.com", Password: "secret123"}); !errors.Is(err, services.ErrAccountInactive) {
		t.Errorf("Login(inactive, right password) = %v, want ErrAccountInactive", err)
	}
	if _, err := svc.Login(models.LoginRequest{Email: "dan@example.com", Password: "wrong"}); !errors.Is(err, services.ErrAccountInactive) {
		t.Errorf("Login(inactive, wrong password) = %v, want ErrAccountInactive", err)
	}
}

func TestLoginRotatesRefreshToken(t *testing.T) {
	svc, _, _ := newAuthFixture(t, token.Options{})
	session := register(t, svc, "eve@example.com", "secret123", "user-1")
	first := session.RefreshToken

	time.Sleep(1100 * time.Millisecond) // second-granularity iat, force distinct tokens

	again, err := svc.Login(models.LoginRequest{Email: "eve@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if again.RefreshToken == first {
		t.Fatal("login did not rotate the refresh token")
	}

	// the rotated-out token is cryptographically valid but no longer
	// stored, so replaying it must fail
	if _, err := svc.Refresh(first); !errors.Is(err, services.ErrInvalidCredentials) {
		t.Errorf("Refresh(superseded) = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Refresh(again.RefreshToken); err != nil {
		t.Errorf("Refresh(current) = %v", err)
	}
}

func TestRefreshRejectsBadTokens(t *testing.T) {
	svc, _, tokens := newAuthFixture(t, token.Options{})
	register(t, svc, "frank@example.com", "secret123", "user-1")

	if _, err := svc.Refresh("not-a-token"); !errors.Is(err, services.ErrInvalidRefreshToken) {
		t.Errorf("Refresh(garbage) = %v, want ErrInvalidRefreshToken", err)
	}

	// an access token is the wrong kind, not merely invalid bytes
	access, err := tokens.Issue(token.KindAccess, "user-1", "frank@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := svc.Refresh(access); !errors.Is(err, services.ErrInvalidRefreshToken) {
		t.Errorf("Refresh(access token) = %v, want ErrInvalidRefreshToken", err)
	}

	// valid refresh token for a subject with no credential
	orphan, err := tokens.Issue(token.KindRefresh, "user-gone", "gone@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := svc.Refresh(orphan); !errors.Is(err, services.ErrUserNotFound) {
		t.Errorf("Refresh(unknown subject) = %v, want ErrUserNotFound", err)
	}
}

func TestRefreshExpired(t *testing.T) {
	svc, _, _ := newAuthFixture(t, token.Options{RefreshTTL: -time.Minute})
	session := register(t, svc, "gina@example.com", "secret123", "user-1")

	if _, err := svc.Refresh(session.RefreshToken); !errors.Is(err, services.ErrRefreshTokenExpired) {
		t.Fatalf("Refresh(expired) = %v, want ErrRefreshTokenExpired", err)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	svc, repo, tokens := newAuthFixture(t, token.Options{})
	register(t, svc, "hank@example.com", "secret123", "user-1")

	if _, err := svc.RequestPasswordReset("nobody@example.com"); !errors.Is(err, services.ErrUserNotFound) {
		t.Fatalf("RequestPasswordReset(unknown) = %v, want ErrUserNotFound", err)
	}

	resetToken, err := svc.RequestPasswordReset("hank@example.com")
	if err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}
	stored, _ := repo.GetByUserID("user-1")
	if stored.PasswordResetToken == nil || *stored.PasswordResetToken != resetToken {
		t.Error("reset token was not recorded on the credential")
	}

	claims, err := svc.VerifyResetToken(resetToken)
	if err != nil {
		t.Fatalf("VerifyResetToken: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("reset claims subject = %q", claims.Subject)
	}

	// wrong kind and garbage map to distinct errors
	access, _ := tokens.Issue(token.KindAccess, "user-1", "hank@example.com")
	if _, err := svc.VerifyResetToken(access); !errors.Is(err, services.ErrWrongTokenType) {
		t.Errorf("VerifyResetToken(access) = %v, want ErrWrongTokenType", err)
	}
	if _, err := svc.VerifyResetToken("junk"); !errors.Is(err, services.ErrInvalidToken) {
		t.Errorf("VerifyResetToken(junk) = %v, want ErrInvalidToken", err)
	}
}

func TestSetNewPassword(t *testing.T) {
	svc, repo, _ := newAuthFixture(t, token.Options{})
	session := register(t, svc, "iris@example.com", "secret123", "user-1")
	oldRefresh := session.RefreshToken

	if err := svc.SetNewPassword(models.SetNewPasswordInternalRequest{
		UserID: "user-gone", NewPassword: "next456", ConfirmPassword: "next456",
	}); !errors.Is(err, services.ErrUserNotFound) {
		t.Fatalf("SetNewPassword(unknown) = %v, want ErrUserNotFound", err)
	}

	// the same-as-old guard compares against the stored hash verbatim
	// and runs before the confirmation check
	stored, _ := repo.GetByUserID("user-1")
	if err := svc.SetNewPassword(models.SetNewPasswordInternalRequest{
		UserID: "user-1", NewPassword: stored.PasswordHash, ConfirmPassword: "does-not-match",
	}); !errors.Is(err, services.ErrNewPasswordSameAsOld) {
		t.Fatalf("SetNewPassword(hash as password) = %v, want ErrNewPasswordSameAsOld", err)
	}

	if err := svc.SetNewPassword(models.SetNewPasswordInternalRequest{
		UserID: "user-1", NewPassword: "next456", ConfirmPassword: "other",
	}); !errors.Is(err, services.ErrPasswordMismatch) {
		t.Fatalf("SetNewPassword(mismatch) = %v, want ErrPasswordMismatch", err)
	}

	if err := svc.SetNewPassword(models.SetNewPasswordInternalRequest{
		UserID: "user-1", NewPassword: "next456", ConfirmPassword: "next456",
	}); err != nil {
		t.Fatalf("SetNewPassword: %v", err)
	}

	if _, err := svc.Login(models.LoginRequest{Email: "iris@example.com", Password: "secret123"}); !errors.Is(err, services.ErrInvalidCredentials) {
		t.Error("old password still accepted after reset")
	}
	if _, err := svc.Login(models.LoginRequest{Email: "iris@example.com", Password: "next456"}); err != nil {
		t.Errorf("new password rejected: %v", err)
	}

	// a reset does not revoke the live session
	if _, err := svc.Refresh(oldRefresh); err != nil {
		t.Errorf("refresh token revoked by password reset: %v", err)
	}
}

func TestEmailVerificationFlow(t *testing.T) {
	svc, repo, _ := newAuthFixture(t, token.Options{})
	register(t, svc, "judy@example.com", "secret123", "user-1")

	first, err := svc.RequestEmailVerification("judy@example.com")
	if err != nil {
		t.Fatalf("RequestEmailVerification: %v", err)
	}

	time.Sleep(1100 * time.Millisecond)
	second, err := svc.RequestEmailVerification("judy@example.com")
	if err != nil {
		t.Fatalf("RequestEmailVerification(again): %v", err)
	}
	if first == second {
		t.Fatal("re-request did not supersede the verification token")
	}

	// only the latest recorded token verifies
	if _, err := svc.VerifyEmail(first); !errors.Is(err, services.ErrInvalidToken) {
		t.Errorf("VerifyEmail(superseded) = %v, want ErrInvalidToken", err)
	}

	cred, err := svc.VerifyEmail(second)
	if err != nil {
		t.Fatalf("VerifyEmail: %v", err)
	}
	if !cred.IsVerified {
		t.Error("credential not marked verified")
	}
	stored, _ := repo.GetByUserID("user-1")
	if stored.EmailVerificationToken != nil {
		t.Error("verification token not cleared after use")
	}

	// both replay and a fresh request hit the already-verified guard
	if _, err := svc.VerifyEmail(second); !errors.Is(err, services.ErrEmailAlreadyVerified) {
		t.Errorf("VerifyEmail(replay) = %v, want ErrEmailAlreadyVerified", err)
	}
	if _, err := svc.RequestEmailVerification("judy@example.com"); !errors.Is(err, services.ErrEmailAlreadyVerified) {
		t.Errorf("RequestEmailVerification(verified) = %v, want ErrEmailAlreadyVerified", err)
	}
}
