package envelope_test

import (
	"net/http"
	"testing"

	"accounthub/internal/envelope"
)

func TestFactorySuccess(t *testing.T) {
	f := envelope.NewFactory("auth-service")

	sr := f.Success(map[string]string{"id": "abc"}, "done", "req-1")
	if !sr.Success || sr.StatusCode != http.StatusOK {
		t.Errorf("success envelope = %+v", sr)
	}
	if sr.Meta.Service != "auth-service" || sr.Meta.RequestID != "req-1" {
		t.Errorf("meta = %+v", sr.Meta)
	}
	if sr.Meta.Timestamp == "" {
		t.Error("timestamp missing")
	}
}

func TestFactoryError(t *testing.T) {
	f := envelope.NewFactory("auth-service")

	sr := f.Error("INVALID_CREDENTIALS", "bad password", http.StatusUnauthorized, nil, "req-2")
	if sr.Success {
		t.Error("error envelope marked success")
	}
	if sr.Error == nil || sr.Error.Code != "INVALID_CREDENTIALS" {
		t.Errorf("error body = %+v", sr.Error)
	}
	if sr.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d", sr.StatusCode)
	}

	ise := f.ServerError("something went wrong", "details", "req-3")
	if ise.Error.Code != "INTERNAL_ERROR" || ise.StatusCode != http.StatusInternalServerError {
		t.Errorf("server error = %+v", ise)
	}
}

func TestFromServiceSuccess(t *testing.T) {
	f := envelope.NewFactory("user-service")
	sr := f.Success(map[string]string{"id": "u1"}, "internal message", "req-4")

	api := envelope.FromService(&sr, "User fetched successfully", "/public/users/u1")
	if !api.Success || api.StatusCode != http.StatusOK {
		t.Errorf("api envelope = %+v", api)
	}
	// the public message is the gateway's, not the downstream one
	if api.Message != "User fetched successfully" {
		t.Errorf("message = %q", api.Message)
	}
	if api.Meta == nil || api.Meta.Service != "user-service" || api.Meta.RequestID != "req-4" {
		t.Errorf("meta = %+v", api.Meta)
	}
}

func TestFromServiceFailure(t *testing.T) {
	f := envelope.NewFactory("auth-service")
	sr := f.Error("USER_NOT_FOUND", "User with this email not found", http.StatusNotFound, nil, "req-5")

	api := envelope.FromService(&sr, "ignored", "/public/auth/login")
	if api.Success {
		t.Error("failure translated to success")
	}
	if api.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", api.StatusCode)
	}
	if api.Message != "User with this email not found" {
		t.Errorf("message = %q", api.Message)
	}
	if api.Path != "/public/auth/login" {
		t.Errorf("path = %q", api.Path)
	}
	if api.Meta == nil || api.Meta.ErrorCode != "USER_NOT_FOUND" {
		t.Errorf("meta = %+v", api.Meta)
	}
}

func TestFromServiceNil(t *testing.T) {
	api := envelope.FromService(nil, "ignored", "/public/auth/login")
	if api.Success {
		t.Error("nil envelope translated to success")
	}
	if api.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", api.StatusCode)
	}
	if api.Message != "Service unavailable" {
		t.Errorf("message = %q", api.Message)
	}
}
