package metrics

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/planweave/planweave/internal/ipfilter"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewServerDefaults(t *testing.T) {
	s := NewServer(New(), "", "", nil, testLogger())
	if s.addr != ":9090" {
		t.Errorf("addr = %q, want :9090", s.addr)
	}
	if s.path != "/metrics" {
		t.Errorf("path = %q, want /metrics", s.path)
	}
	if s.filter.Enabled() {
		t.Error("filter enabled without allowed IPs")
	}
}

func TestServerIPFiltering(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("no filtering when empty", func(t *testing.T) {
		s := NewServer(New(), ":9090", "/metrics", nil, testLogger())

		req := httptest.NewRequest("GET", "/metrics", nil)
		req.RemoteAddr = "1.2.3.4:12345"
		rec := httptest.NewRecorder()

		s.filter.HTTPMiddleware(handler).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
		}
	})

	t.Run("allowed IP", func(t *testing.T) {
		s := NewServer(New(), ":9090", "/metrics", []string{"192.168.1.0/24"}, testLogger())

		req := httptest.NewRequest("GET", "/metrics", nil)
		req.RemoteAddr = "192.168.1.100:12345"
		rec := httptest.NewRecorder()

		s.filter.HTTPMiddleware(handler).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
		}
	})

	t.Run("denied IP", func(t *testing.T) {
		s := NewServer(New(), ":9090", "/metrics", []string{"192.168.1.0/24"}, testLogger())

		req := httptest.NewRequest("GET", "/metrics", nil)
		req.RemoteAddr = "10.0.0.1:12345"
		rec := httptest.NewRecorder()

		s.filter.HTTPMiddleware(handler).ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("expected status %d, got %d", http.StatusForbidden, rec.Code)
		}
	})
}

func TestServerFilterParsing(t *testing.T) {
	tests := []struct {
		name       string
		allowedIPs []string
		wantCount  int
	}{
		{name: "empty list", allowedIPs: nil, wantCount: 0},
		{name: "single IP", allowedIPs: []string{"192.168.1.1"}, wantCount: 1},
		{name: "CIDR notation", allowedIPs: []string{"192.168.0.0/16", "10.0.0.0/8"}, wantCount: 2},
		{name: "with invalid", allowedIPs: []string{"192.168.1.1", "invalid", "10.0.0.1"}, wantCount: 2},
		{name: "IPv6", allowedIPs: []string{"::1", "fe80::/10"}, wantCount: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ipfilter.New(tt.allowedIPs, testLogger())
			if f.Count() != tt.wantCount {
				t.Errorf("expected %d allowed networks, got %d", tt.wantCount, f.Count())
			}
		})
	}
}
