package pdf

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/delanoso/safetyhub/pkg/config"
)

// ErrNotConfigured is returned when no browser executable is set.
var ErrNotConfigured = errors.New("pdf rendering is not configured")

const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
	marginInches   = 0.4
	defaultTimeout = 60 * time.Second
)

type printFunc func(ctx context.Context, target string, cookies []*http.Cookie) ([]byte, error)

// Renderer launches a headless browser per request and prints an internal
// print view to A4 PDF. Browsers are never pooled.
type Renderer struct {
	baseURL string
	timeout time.Duration
	print   printFunc
}

// NewRenderer returns nil when no browser path is configured. fallbackBase is
// used when PrintBaseURL is unset, normally the local listener.
func NewRenderer(cfg config.PDFConfig, fallbackBase string) *Renderer {
	if !cfg.Configured() {
		return nil
	}
	base := cfg.PrintBaseURL
	if base == "" {
		base = fallbackBase
	}
	timeout := cfg.RenderTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Renderer{
		baseURL: strings.TrimRight(base, "/"),
		timeout: timeout,
		print:   chromePrinter(cfg.BrowserPath),
	}
}

// Render prints path (for example /print/incident/4) with the caller's cookies.
func (r *Renderer) Render(ctx context.Context, path string, cookies []*http.Cookie) ([]byte, error) {
	if r == nil || r.print == nil {
		return nil, ErrNotConfigured
	}
	target, err := url.JoinPath(r.baseURL, path)
	if err != nil {
		return nil, fmt.Errorf("build print url: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	data, err := r.print(ctx, target, cookies)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("pdf render exceeded %s: %w", r.timeout, err)
		}
		return nil, fmt.Errorf("pdf render: %w", err)
	}
	return data, nil
}

func chromePrinter(execPath string) printFunc {
	return func(ctx context.Context, target string, cookies []*http.Cookie) ([]byte, error) {
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.ExecPath(execPath),
			chromedp.NoSandbox,
			chromedp.DisableGPU,
		)
		allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
		defer cancelAlloc()
		browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
		defer cancelBrowser()

		// start the browser so the target exists before listening on it
		if err := chromedp.Run(browserCtx); err != nil {
			return nil, fmt.Errorf("launch browser: %w", err)
		}

		idle := waitNetworkIdle(browserCtx)
		var out []byte
		err := chromedp.Run(browserCtx,
			network.Enable(),
			network.SetCookies(cookieParams(target, cookies)),
			page.SetLifecycleEventsEnabled(true),
			chromedp.Navigate(target),
			chromedp.ActionFunc(func(ctx context.Context) error {
				select {
				case <-idle:
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			}),
			chromedp.ActionFunc(func(ctx context.Context) error {
				data, _, err := page.PrintToPDF().
					WithPrintBackground(true).
					WithPaperWidth(a4WidthInches).
					WithPaperHeight(a4HeightInches).
					WithMarginTop(marginInches).
					WithMarginBottom(marginInches).
					WithMarginLeft(marginInches).
					WithMarginRight(marginInches).
					Do(ctx)
				out = data
				return err
			}),
		)
		if err != nil {
			return nil, err
		}
		return out, nil
	}
}

// waitNetworkIdle signals once the page reports networkIdle after a navigation starts.
func waitNetworkIdle(ctx context.Context) <-chan struct{} {
	idle := make(chan struct{}, 1)
	started := false
	chromedp.ListenTarget(ctx, func(ev any) {
		e, ok := ev.(*page.EventLifecycleEvent)
		if !ok {
			return
		}
		switch e.Name {
		case "init":
			started = true
		case "networkIdle":
			if started {
				select {
				case idle <- struct{}{}:
				default:
				}
			}
		}
	})
	return idle
}

func cookieParams(target string, cookies []*http.Cookie) []*network.CookieParam {
	params := make([]*network.CookieParam, 0, len(cookies))
	for _, c := range cookies {
		params = append(params, &network.CookieParam{
			Name:     c.Name,
			Value:    c.Value,
			URL:      target,
			HTTPOnly: true,
		})
	}
	return params
}
