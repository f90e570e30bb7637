// Package ipfilter restricts HTTP endpoints to a set of allowed
// networks. The editor API and the metrics server both mount it when
// their allowed_ips config is non-empty.
package ipfilter

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
)

// Filter holds the allowed networks. A Filter built from an empty list
// admits every client.
type Filter struct {
	nets   []*net.IPNet
	logger *slog.Logger
}

// New builds a filter from a mixed list of single IPs and CIDR ranges.
// Entries that do not parse are logged and skipped rather than failing
// the whole list.
func New(allowed []string, logger *slog.Logger) *Filter {
	f := &Filter{logger: logger}
	for _, entry := range allowed {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		ipNet, err := parseNet(entry)
		if err != nil {
			logger.Warn("skipping invalid allowed_ips entry", "entry", entry, "error", err)
			continue
		}
		f.nets = append(f.nets, ipNet)
	}
	return f
}

// parseNet accepts "10.0.0.0/8" as well as bare addresses, which get a
// host mask.
func parseNet(entry string) (*net.IPNet, error) {
	if strings.Contains(entry, "/") {
		_, ipNet, err := net.ParseCIDR(entry)
		return ipNet, err
	}
	ip := net.ParseIP(entry)
	if ip == nil {
		return nil, &net.ParseError{Type: "IP address", Text: entry}
	}
	bits := 128
	if ip.To4() != nil {
		bits = 32
	}
	return &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)}, nil
}

// Enabled reports whether any networks are configured.
func (f *Filter) Enabled() bool {
	return len(f.nets) > 0
}

// Count returns how many networks survived parsing.
func (f *Filter) Count() int {
	return len(f.nets)
}

// IsAllowed reports whether ip falls inside any configured network. An
// empty filter allows everything.
func (f *Filter) IsAllowed(ip net.IP) bool {
	if len(f.nets) == 0 {
		return true
	}
	for _, n := range f.nets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// ClientIP resolves the client address of a request, trusting
// X-Forwarded-For (first hop) and X-Real-IP before RemoteAddr.
func ClientIP(r *http.Request) net.IP {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		if ip := net.ParseIP(strings.TrimSpace(xri)); ip != nil {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return net.ParseIP(r.RemoteAddr)
	}
	return net.ParseIP(host)
}

// HTTPMiddleware rejects requests from outside the allowed networks
// with 403. With no networks configured it passes everything through.
func (f *Filter) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !f.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		ip := ClientIP(r)
		if ip == nil {
			f.logger.Warn("could not resolve client IP", "remote_addr", r.RemoteAddr)
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		if !f.IsAllowed(ip) {
			f.logger.Warn("request blocked by IP filter", "ip", ip.String(), "path", r.URL.Path)
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
