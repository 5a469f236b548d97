// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/danielhkuo/grocery-list/auth"
	"github.com/danielhkuo/grocery-list/middleware"
	"github.com/danielhkuo/grocery-list/models"
	"github.com/danielhkuo/grocery-list/session"
)

type AuthHandler struct {
	responder
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service, sessions *session.Manager, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{responder: responder{sessions: sessions, logger: logger}, svc: svc}
}

// SignUpForm handles GET /auth/signup
func (h *AuthHandler) SignUpForm(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.FormView{
		Form:    "signup",
		Flashes: h.flashes(w, r),
	})
}

// SignUp handles POST /auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var in models.SignUpInput
	if !h.parseBody(w, r, &in) {
		return
	}

	if _, err := h.svc.SignUp(r.Context(), in); err != nil {
		h.writeError(w, r, err, "")
		return
	}

	h.redirect(w, r, "/auth/login", "Account created successfully.")
}

// LoginForm handles GET /auth/login
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.FormView{
		Form:    "login",
		Next:    middleware.SafeRedirect(r.URL.Query().Get("next"), ""),
		Flashes: h.flashes(w, r),
	})
}

// LogIn handles POST /auth/login
// On success redirects to ?next= (or the next form field) when it is a local
// path, otherwise to /
func (h *AuthHandler) LogIn(w http.ResponseWriter, r *http.Request) {
	var in models.LoginInput
	if !h.parseBody(w, r, &in) {
		return
	}

	user, err := h.svc.LogIn(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}

	if err := h.sessions.SignIn(w, r, user.ID); err != nil {
		h.writeError(w, r, err, "")
		return
	}

	next := r.URL.Query().Get("next")
	if next == "" {
		next = in.Next
	}
	http.Redirect(w, r, middleware.SafeRedirect(next, "/"), http.StatusSeeOther)
}

// LogOut handles GET /auth/logout
func (h *AuthHandler) LogOut(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.SignOut(w, r); err != nil {
		h.writeError(w, r, err, "")
		return
	}

	h.redirect(w, r, "/", "You have been logged out.")
}
