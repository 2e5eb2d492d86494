package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/rosterhq-dev/employee-manager/backend/internal/auth"
	"github.com/rosterhq-dev/employee-manager/backend/internal/domain"
)

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		slog.Info("request handled", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				stackTrace := string(debug.Stack())
				fmt.Print(stackTrace) // slog would mangle the multi-line trace
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// auth extracts the bearer token, verifies it and attaches the resulting
// Identity to the request context. Every failure short-circuits with 401.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			h.unauthorized(w, r, "No token provided")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			h.unauthorized(w, r, "No token provided")
			return
		}

		claims, err := h.tokenManager.Verify(tokenString)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrTokenExpired):
				h.unauthorized(w, r, "Session expired. Please login again.")
			default:
				h.unauthorized(w, r, "Invalid token. Please login again.")
			}
			return
		}

		accountID, err := claims.AccountID()
		if err != nil {
			h.unauthorized(w, r, "Invalid token. Please login again.")
			return
		}

		identity := &Identity{
			AccountID: accountID,
			Role:      domain.Role(claims.Role),
			Username:  claims.Username,
		}

		ctx := context.WithValue(r.Context(), IdentityCtxKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin assumes auth already ran; admin-gated routes always compose
// both middlewares in order.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := r.Context().Value(IdentityCtxKey).(*Identity)
		if identity.Role != domain.RoleAdmin {
			h.forbidden(w, r, "Access denied. Admins only.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
