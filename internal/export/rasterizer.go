package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Options controls a single capture.
type Options struct {
	// Background fills the capture. Always an opaque color; transparent
	// captures are never produced regardless of the page's own
	// background.
	Background string `json:"background"`

	// StyleOverrides is CSS injected for the duration of the capture
	// only. The pipeline uses it to neutralize editor chrome.
	StyleOverrides string `json:"styleOverrides,omitempty"`

	// KeepDecoration reports whether a node's decoration is intentional
	// and must survive neutralization. Implementations that walk the
	// subtree consult it per node; remote implementations get the same
	// rule via StyleOverrides.
	KeepDecoration func(attrs map[string]string) bool `json:"-"`
}

// Rasterizer converts a rendered region into PNG bytes at the region's
// natural pixel dimensions. Rasterization is inherently flaky I/O and is
// expected to fail sometimes; callers treat errors as per-region, not
// fatal.
type Rasterizer interface {
	Rasterize(ctx context.Context, html string, opts Options) ([]byte, error)
}

// HTTPRasterizer sends regions to an external rendering service, typically
// a headless browser behind a small HTTP shim, and reads PNG bytes back.
type HTTPRasterizer struct {
	endpoint string
	client   *http.Client
}

// NewHTTPRasterizer points at a rendering service endpoint.
func NewHTTPRasterizer(endpoint string) *HTTPRasterizer {
	return &HTTPRasterizer{
		endpoint: endpoint,
		// A generous ceiling; a stuck capture blocks only its own
		// export, and the batch loop carries on without it.
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

type rasterRequest struct {
	HTML string `json:"html"`
	Options
}

// Rasterize posts the region and capture options as JSON and expects a
// image/png response body.
func (r *HTTPRasterizer) Rasterize(ctx context.Context, html string, opts Options) ([]byte, error) {
	body, err := json.Marshal(rasterRequest{HTML: html, Options: opts})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal raster request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build raster request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rasterizer unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("rasterizer returned %d: %s", resp.StatusCode, msg)
	}

	png, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read raster response: %w", err)
	}
	if len(png) == 0 {
		return nil, fmt.Errorf("rasterizer returned empty image")
	}
	return png, nil
}
