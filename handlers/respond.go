// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/danielhkuo/grocery-list/middleware"
	"github.com/danielhkuo/grocery-list/models"
	"github.com/danielhkuo/grocery-list/session"
)

// responder holds what every handler needs to answer a request.
type responder struct {
	sessions *session.Manager
	logger   *zap.Logger
}

// redirect flashes message (when set) and answers 303 to location.
func (h responder) redirect(w http.ResponseWriter, r *http.Request, location, message string) {
	if message != "" {
		if err := h.sessions.AddFlash(w, r, message); err != nil {
			h.logger.Error("failed to save flash", zap.Error(err))
		}
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// flashes pops pending messages for a view.
func (h responder) flashes(w http.ResponseWriter, r *http.Request) []string {
	messages, err := h.sessions.Flashes(w, r)
	if err != nil {
		h.logger.Error("failed to read flashes", zap.Error(err))
	}
	return messages
}

// userID is the signed-in caller. Routes using it sit behind RequireLogin.
func (h responder) userID(r *http.Request) int64 {
	return h.sessions.Identity(r).UserID
}

// pathID parses a positive decimal path value. Only the canonical form is
// accepted, so "010", "+1" and "0x1" do not alias id 1. ok is false when the
// value is malformed, in which case a 404 has been written.
func (h responder) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 || strconv.FormatInt(id, 10) != raw {
		middleware.ErrorResponse(w, http.StatusNotFound, "Not found")
		return 0, false
	}
	return id, true
}

// writeError maps a service error onto its HTTP response. denied is the
// flash shown when the caller does not own the resource.
func (h responder) writeError(w http.ResponseWriter, r *http.Request, err error, denied string) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		middleware.ValidationResponse(w, verr)
	case errors.Is(err, models.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Not found")
	case errors.Is(err, models.ErrPermission):
		h.redirect(w, r, "/shopping_list", denied)
	case errors.Is(err, models.ErrInvalidCredentials):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid username or password.")
	case errors.Is(err, models.ErrLoginRequired):
		http.Redirect(w, r, middleware.LoginURL(r), http.StatusSeeOther)
	default:
		h.logger.Error("request failed",
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
	}
}

// parseBody decodes the request body into v, writing a 400 on failure.
func (h responder) parseBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := middleware.ParseBody(w, r, v); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
