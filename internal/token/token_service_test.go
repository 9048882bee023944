package token_test

import (
	"errors"
	"testing"
	"time"

	"accounthub/internal/token"
)

const testSecret = "unit-test-secret"

func newTestService() *token.Service {
	return token.NewService(testSecret, token.Options{})
}

func TestIssueAndVerifyEachKind(t *testing.T) {
	svc := newTestService()

	kinds := []token.Kind{
		token.KindAccess,
		token.KindRefresh,
		token.KindPasswordReset,
		token.KindEmailVerification,
	}

	for _, kind := range kinds {
		tok, err := svc.Issue(kind, "user-1", "a@x.com")
		if err != nil {
			t.Fatalf("Issue(%s): %v", kind, err)
		}

		claims, err := svc.Verify(tok, kind)
		if err != nil {
			t.Fatalf("Verify(%s): %v", kind, err)
		}
		if claims.Subject != "user-1" {
			t.Errorf("kind %s: subject = %q, want user-1", kind, claims.Subject)
		}
		if claims.Email != "a@x.com" {
			t.Errorf("kind %s: email = %q, want a@x.com", kind, claims.Email)
		}
		if claims.Type != kind {
			t.Errorf("kind %s: type = %q", kind, claims.Type)
		}
	}
}

func TestVerifyWrongKind(t *testing.T) {
	svc := newTestService()

	// a perfectly valid access token must never pass as anything else
	access, err := svc.Issue(token.KindAccess, "user-1", "a@x.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	for _, expected := range []token.Kind{token.KindRefresh, token.KindPasswordReset, token.KindEmailVerification} {
		if _, err := svc.Verify(access, expected); !errors.Is(err, token.ErrWrongKind) {
			t.Errorf("Verify(access as %s) = %v, want ErrWrongKind", expected, err)
		}
	}
}

func TestVerifyExpired(t *testing.T) {
	svc := token.NewService(testSecret, token.Options{ResetTTL: -time.Minute})

	tok, err := svc.Issue(token.KindPasswordReset, "user-1", "a@x.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := svc.Verify(tok, token.KindPasswordReset); !errors.Is(err, token.ErrExpired) {
		t.Errorf("Verify(expired) = %v, want ErrExpired", err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	svc := newTestService()

	cases := []struct {
		name string
		tok  string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
	}
	for _, tc := range cases {
		if _, err := svc.Verify(tc.tok, token.KindAccess); !errors.Is(err, token.ErrMalformed) {
			t.Errorf("%s: Verify = %v, want ErrMalformed", tc.name, err)
		}
	}
}

func TestVerifyForeignSignature(t *testing.T) {
	svc := newTestService()
	other := token.NewService("some-other-secret", token.Options{})

	tok, err := other.Issue(token.KindAccess, "user-1", "a@x.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := svc.Verify(tok, token.KindAccess); !errors.Is(err, token.ErrMalformed) {
		t.Errorf("Verify(foreign signature) = %v, want ErrMalformed", err)
	}
}

func TestIssuePair(t *testing.T) {
	svc := newTestService()

	pair, err := svc.IssuePair("user-1", "a@x.com")
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Fatal("access and refresh tokens are identical")
	}

	if _, err := svc.Verify(pair.AccessToken, token.KindAccess); err != nil {
		t.Errorf("access token invalid: %v", err)
	}
	if _, err := svc.Verify(pair.RefreshToken, token.KindRefresh); err != nil {
		t.Errorf("refresh token invalid: %v", err)
	}
}
