package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"
)

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"bytes", ww.BytesWritten(),
			"remote_addr", r.RemoteAddr,
		)
	})
}

// authMiddleware checks API key or basic-auth credentials
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := s.config.Auth
		if auth.APIKey == "" && auth.PasswordHash == "" {
			// Nothing configured, allow all
			next.ServeHTTP(w, r)
			return
		}

		if auth.APIKey != "" {
			key := r.Header.Get("Authorization")
			if key == "" {
				key = r.Header.Get("X-API-Key")
			}
			key = strings.TrimPrefix(key, "Bearer ")
			if key == auth.APIKey {
				next.ServeHTTP(w, r)
				return
			}
		}

		if auth.PasswordHash != "" {
			if _, password, ok := r.BasicAuth(); ok {
				if bcrypt.CompareHashAndPassword([]byte(auth.PasswordHash), []byte(password)) == nil {
					next.ServeHTTP(w, r)
					return
				}
			}
		}

		s.logger.Warn("unauthorized API request",
			"remote_addr", r.RemoteAddr,
			"path", r.URL.Path,
		)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	})
}
