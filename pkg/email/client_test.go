package email

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/delanoso/safetyhub/pkg/config"
)

func TestSendPostsSendGridPayload(t *testing.T) {
	var got sendRequest
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != sendPath {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := NewClient(config.EmailConfig{
		SendgridAPIKey: "SG.key",
		FromEmail:      "noreply@safetyhub.test",
		FromName:       "SafetyHub",
		BaseURL:        server.URL,
	})
	msg := SignatureRequest("appointee@example.com", "appointee", "First Aider", "https://app/sign/abc")
	if err := client.Send(context.Background(), msg); err != nil {
		t.Fatalf("send: %v", err)
	}

	if auth != "Bearer SG.key" {
		t.Fatalf("unexpected auth header %q", auth)
	}
	if got.From.Email != "noreply@safetyhub.test" || got.Personalizations[0].To[0].Email != "appointee@example.com" {
		t.Fatalf("unexpected addresses %+v", got)
	}
	if got.Subject != "Signature requested: First Aider appointment" {
		t.Fatalf("unexpected subject %q", got.Subject)
	}
	if len(got.Content) != 1 || got.Content[0].Type != "text/plain" {
		t.Fatalf("unexpected content %+v", got.Content)
	}
}

func TestSendSurfacesProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":[{"message":"bad key"}]}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(config.EmailConfig{SendgridAPIKey: "k", FromEmail: "a@b.c", BaseURL: server.URL})
	if err := client.Send(context.Background(), Message{To: "x@y.z", Text: "hi"}); err == nil {
		t.Fatal("expected error for 401")
	}
}

func TestUnconfiguredClient(t *testing.T) {
	client := NewClient(config.EmailConfig{BaseURL: "http://unused"})
	if client.Configured() {
		t.Fatal("client without key must not be configured")
	}
	if err := client.Send(context.Background(), Message{To: "x@y.z", Text: "hi"}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
