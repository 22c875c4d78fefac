package gcs

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/delanoso/safetyhub/pkg/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(context.Background(),
		config.GCSConfig{BucketName: "safety-files"},
		config.GCPConfig{},
		nil,
		WithAPIBase(server.URL),
		WithTokenSource(StaticToken("test-token")),
	)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestUploadSendsMediaRequest(t *testing.T) {
	var gotPath, gotName, gotAuth, gotType, gotBody string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotName = r.URL.Query().Get("name")
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"name":"ok"}`))
	})

	url, err := client.Upload(context.Background(), "incidents/3/abc-photo 1.png", "image/png", []byte("png-bytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if gotPath != "/upload/storage/v1/b/safety-files/o" {
		t.Fatalf("unexpected path %s", gotPath)
	}
	if gotName != "incidents/3/abc-photo 1.png" {
		t.Fatalf("unexpected object name %s", gotName)
	}
	if gotAuth != "Bearer test-token" {
		t.Fatalf("unexpected auth header %s", gotAuth)
	}
	if gotType != "image/png" || gotBody != "png-bytes" {
		t.Fatalf("unexpected payload %s %s", gotType, gotBody)
	}
	if url != "https://storage.googleapis.com/safety-files/incidents/3/abc-photo%201.png" {
		t.Fatalf("unexpected public url %s", url)
	}

	name, ok := client.ObjectName(url)
	if !ok || name != "incidents/3/abc-photo 1.png" {
		t.Fatalf("object name round trip failed: %q %v", name, ok)
	}
}

func TestUploadSurfacesAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	})
	if _, err := client.Upload(context.Background(), "a.txt", "text/plain", []byte("x")); err == nil {
		t.Fatal("expected error on 403")
	}
}

func TestDeleteIgnoresMissingObject(t *testing.T) {
	var gotMethod, gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusNotFound)
	})
	if err := client.Delete(context.Background(), "library/1/file.pdf"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if gotMethod != http.MethodDelete {
		t.Fatalf("unexpected method %s", gotMethod)
	}
	if gotPath != "/storage/v1/b/safety-files/o/library%2F1%2Ffile.pdf" {
		t.Fatalf("unexpected path %s", gotPath)
	}
}

func TestPing(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("maxResults") != "1" {
			t.Errorf("expected maxResults=1")
		}
		_, _ = w.Write([]byte(`{"items":[]}`))
	})
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestObjectNameRejectsForeignURL(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	if _, ok := client.ObjectName("https://example.com/other.png"); ok {
		t.Fatal("expected foreign url to be rejected")
	}
}

func TestNewClientRequiresBucket(t *testing.T) {
	if _, err := NewClient(context.Background(), config.GCSConfig{}, config.GCPConfig{}, nil); err == nil {
		t.Fatal("expected error without bucket")
	}
}
