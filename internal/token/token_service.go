// Package token issues and verifies the four token kinds used by the
// platform. It is pure signing/verification against a shared secret:
// no I/O, no storage.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Kind string

const (
	KindAccess            Kind = "access"
	KindRefresh           Kind = "refresh"
	KindPasswordReset     Kind = "password_reset"
	KindEmailVerification Kind = "email_verification"
)

var (
	// ErrExpired - signature is fine but the token is past its expiry.
	ErrExpired = errors.New("token has expired")
	// ErrMalformed - the token could not be parsed or its signature is wrong.
	ErrMalformed = errors.New("invalid token format")
	// ErrWrongKind - a well-formed, unexpired token presented for a
	// purpose other than the one it was issued for.
	ErrWrongKind = errors.New("wrong token type")
)

// Claims is the payload carried by every token.
type Claims struct {
	Email string `json:"email"`
	Type  Kind   `json:"type"`
	jwt.RegisteredClaims
}

// Options carries the per-kind TTLs. Zero values fall back to the
// defaults below.
type Options struct {
	AccessTTL       time.Duration
	RefreshTTL      time.Duration
	ResetTTL        time.Duration
	VerificationTTL time.Duration
}

const (
	defaultAccessTTL       = 15 * time.Minute
	defaultRefreshTTL      = 7 * 24 * time.Hour
	defaultResetTTL        = time.Hour
	defaultVerificationTTL = 24 * time.Hour
)

type Service struct {
	secret []byte
	opts   Options
}

func NewService(secret string, opts Options) *Service {
	if opts.AccessTTL == 0 {
		opts.AccessTTL = defaultAccessTTL
	}
	if opts.RefreshTTL == 0 {
		opts.RefreshTTL = defaultRefreshTTL
	}
	if opts.ResetTTL == 0 {
		opts.ResetTTL = defaultResetTTL
	}
	if opts.VerificationTTL == 0 {
		opts.VerificationTTL = defaultVerificationTTL
	}
	return &Service{secret: []byte(secret), opts: opts}
}

func (s *Service) ttl(kind Kind) time.Duration {
	switch kind {
	case KindRefresh:
		return s.opts.RefreshTTL
	case KindPasswordReset:
		return s.opts.ResetTTL
	case KindEmailVerification:
		return s.opts.VerificationTTL
	default:
		return s.opts.AccessTTL
	}
}

func audience(kind Kind) string {
	switch kind {
	case KindPasswordReset:
		return "password"
	case KindEmailVerification:
		return "email"
	default:
		return "auth"
	}
}

// TTL exposes the configured lifetime for a kind (used when stamping
// expiry bookkeeping fields on credentials).
func (s *Service) TTL(kind Kind) time.Duration {
	return s.ttl(kind)
}

// Issue builds, signs and returns a token of the given kind.
func (s *Service) Issue(kind Kind, subject, email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: email,
		Type:  kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Audience:  jwt.ClaimStrings{audience(kind)},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl(kind))),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify validates signature and expiry first, then checks that the
// token was issued for the expected kind. A valid signature alone is
// never sufficient.
func (s *Service) Verify(tokenStr string, expected Kind) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrMalformed
	}
	if !tok.Valid {
		return nil, ErrMalformed
	}
	if claims.Type != expected {
		return nil, ErrWrongKind
	}
	return claims, nil
}

// Pair is an access/refresh token pair sharing subject and email.
type Pair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// IssuePair composes two Issue calls for the login/register/refresh flows.
func (s *Service) IssuePair(subject, email string) (Pair, error) {
	access, err := s.Issue(KindAccess, subject, email)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := s.Issue(KindRefresh, subject, email)
	if err != nil {
		return Pair{}, err
	}
	return Pair{AccessToken: access, RefreshToken: refresh}, nil
}
