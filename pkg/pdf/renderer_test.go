package pdf

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/delanoso/safetyhub/pkg/config"
)

func TestNewRendererUnconfigured(t *testing.T) {
	r := NewRenderer(config.PDFConfig{}, "http://localhost:8080")
	if r != nil {
		t.Fatal("expected nil renderer without browser path")
	}
	if _, err := r.Render(context.Background(), "/print/incident/1", nil); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestRenderBuildsTargetAndForwardsCookies(t *testing.T) {
	r := NewRenderer(config.PDFConfig{BrowserPath: "/usr/bin/chromium"}, "http://localhost:8080/")
	if r.timeout != defaultTimeout {
		t.Fatalf("expected default timeout, got %s", r.timeout)
	}

	var gotTarget string
	var gotCookies []*http.Cookie
	var hadDeadline bool
	r.print = func(ctx context.Context, target string, cookies []*http.Cookie) ([]byte, error) {
		gotTarget, gotCookies = target, cookies
		_, hadDeadline = ctx.Deadline()
		return []byte("%PDF-1.7"), nil
	}

	cookies := []*http.Cookie{{Name: "session", Value: "tok"}, {Name: "role", Value: "admin"}}
	data, err := r.Render(context.Background(), "/print/appointment/9", cookies)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(data) != "%PDF-1.7" {
		t.Fatalf("unexpected data %q", data)
	}
	if gotTarget != "http://localhost:8080/print/appointment/9" {
		t.Fatalf("unexpected target %s", gotTarget)
	}
	if len(gotCookies) != 2 || !hadDeadline {
		t.Fatalf("cookies or deadline not forwarded: %d %v", len(gotCookies), hadDeadline)
	}
}

func TestRenderReportsTimeout(t *testing.T) {
	r := NewRenderer(config.PDFConfig{BrowserPath: "chrome", RenderTimeout: 10 * time.Millisecond, PrintBaseURL: "http://internal:8080"}, "")
	r.print = func(ctx context.Context, target string, cookies []*http.Cookie) ([]byte, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if _, err := r.Render(context.Background(), "/print/ncr/1", nil); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestCookieParams(t *testing.T) {
	params := cookieParams("http://internal/print/x/1", []*http.Cookie{{Name: "session", Value: "v"}})
	if len(params) != 1 || params[0].URL != "http://internal/print/x/1" || !params[0].HTTPOnly {
		t.Fatalf("unexpected params %+v", params[0])
	}
}
