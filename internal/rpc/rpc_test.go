package rpc_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"accounthub/internal/envelope"
	"accounthub/internal/rpc"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEchoServer() *rpc.Server {
	s := rpc.NewServer("test-service", nil)
	factory := envelope.NewFactory("test-service")
	s.Handle("echo", func(requestID string, data json.RawMessage) envelope.ServiceResponse {
		var payload map[string]any
		_ = json.Unmarshal(data, &payload)
		return factory.Success(payload, "echoed", requestID)
	})
	s.Handle("reject", func(requestID string, data json.RawMessage) envelope.ServiceResponse {
		return factory.Error("SOME_FAILURE", "rejected on purpose", http.StatusConflict, nil, requestID)
	})
	return s
}

func TestDispatchRoundTrip(t *testing.T) {
	ts := httptest.NewServer(newEchoServer().Engine())
	defer ts.Close()

	client := rpc.NewServiceClient("test-service", ts.URL, time.Second, nil)
	defer client.Close()

	sr, err := client.Send(context.Background(), "echo", map[string]any{"value": "hello"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !sr.Success {
		t.Fatalf("echo rejected: %+v", sr)
	}
	data, ok := sr.Data.(map[string]any)
	if !ok || data["value"] != "hello" {
		t.Errorf("data = %v", sr.Data)
	}
	if sr.Meta.Service != "test-service" {
		t.Errorf("meta service = %q", sr.Meta.Service)
	}
	if !strings.HasPrefix(sr.Meta.RequestID, "req-") {
		t.Errorf("request id = %q, want req- prefix", sr.Meta.RequestID)
	}
}

// Business failures ride inside a 200 reply; the transport error stays nil.
func TestDispatchBusinessFailure(t *testing.T) {
	ts := httptest.NewServer(newEchoServer().Engine())
	defer ts.Close()

	client := rpc.NewServiceClient("test-service", ts.URL, time.Second, nil)
	defer client.Close()

	sr, err := client.Send(context.Background(), "reject", struct{}{})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if sr.Success {
		t.Fatal("expected a rejection envelope")
	}
	if sr.Error == nil || sr.Error.Code != "SOME_FAILURE" {
		t.Errorf("error body = %+v", sr.Error)
	}
	if sr.StatusCode != http.StatusConflict {
		t.Errorf("status = %d, want 409", sr.StatusCode)
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	ts := httptest.NewServer(newEchoServer().Engine())
	defer ts.Close()

	client := rpc.NewServiceClient("test-service", ts.URL, time.Second, nil)
	defer client.Close()

	sr, err := client.Send(context.Background(), "no_such_command", struct{}{})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if sr.Success || sr.Error == nil || sr.Error.Code != "UNKNOWN_COMMAND" {
		t.Errorf("unknown command reply = %+v", sr)
	}
}

func TestDispatchMalformedMessage(t *testing.T) {
	ts := httptest.NewServer(newEchoServer().Engine())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/rpc", "application/json", strings.NewReader(`{"data": {}}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	// transport stays 200 even for a message without a cmd
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("http status = %d, want 200", resp.StatusCode)
	}
	var sr envelope.ServiceResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sr.Success || sr.Error == nil || sr.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("malformed message reply = %+v", sr)
	}
}

func TestSendUnreachable(t *testing.T) {
	ts := httptest.NewServer(newEchoServer().Engine())
	ts.Close() // nothing is listening anymore

	client := rpc.NewServiceClient("test-service", ts.URL, time.Second, nil)
	defer client.Close()

	sr, err := client.Send(context.Background(), "echo", struct{}{})
	if !errors.Is(err, rpc.ErrUnavailable) {
		t.Fatalf("Send(unreachable) = %v, want ErrUnavailable", err)
	}
	if sr != nil {
		t.Errorf("got envelope %+v from an unreachable service", sr)
	}
}

func TestSendNon200Status(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer ts.Close()

	client := rpc.NewServiceClient("test-service", ts.URL, time.Second, nil)
	defer client.Close()

	if _, err := client.Send(context.Background(), "echo", struct{}{}); !errors.Is(err, rpc.ErrUnavailable) {
		t.Fatalf("Send(502) = %v, want ErrUnavailable", err)
	}
}

func TestSendTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	client := rpc.NewServiceClient("test-service", ts.URL, 50*time.Millisecond, nil)
	defer client.Close()

	if _, err := client.Send(context.Background(), "echo", struct{}{}); !errors.Is(err, rpc.ErrUnavailable) {
		t.Fatalf("Send(slow downstream) = %v, want ErrUnavailable", err)
	}
}
