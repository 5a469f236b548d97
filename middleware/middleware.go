// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/danielhkuo/grocery-list/models"
	"github.com/danielhkuo/grocery-list/session"
)

const RequestIDHeader = "X-Request-ID"

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// WithLogging wraps a handler with request logging. Every response carries
// an X-Request-ID, reusing the caller's when it is a valid UUID.
func WithLogging(logger *zap.Logger, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)

		logger.Info("request completed",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", GetClientIP(r)),
			zap.Int("status", rec.status),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
	}
}

// Recover turns a panic in next into a 500 response.
func Recover(logger *zap.Logger, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rv := recover()
			if rv == nil {
				return
			}
			if rv == http.ErrAbortHandler {
				panic(rv)
			}
			logger.Error("panic while handling request",
				zap.Any("panic", rv),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Stack("stack"),
			)
			ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		}()
		next(w, r)
	}
}

// RequireLogin redirects anonymous callers to the login form. The original
// target is passed along as ?next= so login can return there.
func RequireLogin(sessions *session.Manager, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessions.Identity(r).Authenticated() {
			next(w, r)
			return
		}

		sessions.AddFlash(w, r, "Please log in to access this page.")
		http.Redirect(w, r, LoginURL(r), http.StatusSeeOther)
	}
}

// LoginURL is the login form with ?next= pointing back at r's target.
func LoginURL(r *http.Request) string {
	return "/auth/login?next=" + url.QueryEscape(returnTarget(r))
}

// returnTarget is where a caller should land after logging in. Form posts
// return to the page that holds the form.
func returnTarget(r *http.Request) string {
	if r.Method == http.MethodGet {
		return r.URL.RequestURI()
	}
	path := r.URL.Path
	if i := strings.Index(path, "/delete/"); i >= 0 {
		path = path[:i]
	}
	return path
}

// SafeRedirect returns target when it is a local path and fallback otherwise.
func SafeRedirect(target, fallback string) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") ||
		strings.Contains(target, "\\") {
		return fallback
	}
	u, err := url.Parse(target)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return fallback
	}
	return target
}

// JSONResponse writes a JSON response
func JSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Error("failed to encode JSON response", zap.Error(err))
	}
}

// ErrorResponse writes a JSON error response
func ErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	JSONResponse(w, statusCode, models.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}

// ValidationResponse writes a 422 listing each invalid field.
func ValidationResponse(w http.ResponseWriter, verr *models.ValidationError) {
	JSONResponse(w, http.StatusUnprocessableEntity, models.ErrorResponse{
		Error:   http.StatusText(http.StatusUnprocessableEntity),
		Message: "validation failed",
		Fields:  verr.Fields,
	})
}

// GetClientIP extracts the client IP address
// Checks X-Forwarded-For, X-Real-IP, then falls back to RemoteAddr
func GetClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	addr := r.RemoteAddr
	if i := strings.LastIndex(addr, ":"); i >= 0 {
		return addr[:i]
	}
	return addr
}
