// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/danielhkuo/grocery-list/models"
	"github.com/danielhkuo/grocery-list/testutil"
)

func TestSignUp(t *testing.T) {
	env := newTestEnv(t)
	testutil.CreateTestUser(t, env.db, "taken", "secret1")

	tests := []struct {
		name           string
		form           url.Values
		expectedStatus int
		wantField      string
	}{
		{
			name:           "valid account",
			form:           url.Values{"username": {"alice"}, "password": {"secret1"}, "confirm_password": {"secret1"}},
			expectedStatus: http.StatusSeeOther,
		},
		{
			name:           "username taken",
			form:           url.Values{"username": {"taken"}, "password": {"secret1"}, "confirm_password": {"secret1"}},
			expectedStatus: http.StatusUnprocessableEntity,
			wantField:      "username",
		},
		{
			name:           "short password",
			form:           url.Values{"username": {"carol"}, "password": {"abc"}, "confirm_password": {"abc"}},
			expectedStatus: http.StatusUnprocessableEntity,
			wantField:      "password",
		},
		{
			name:           "mismatched confirmation",
			form:           url.Values{"username": {"dave"}, "password": {"secret1"}, "confirm_password": {"secret2"}},
			expectedStatus: http.StatusUnprocessableEntity,
			wantField:      "confirm_password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			env.auth.SignUp(w, testutil.MakeFormRequest("POST", "/auth/signup", tt.form))

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.wantField != "" {
				var resp models.ErrorResponse
				testutil.AssertJSON(t, w, &resp)
				if _, ok := resp.Fields[tt.wantField]; !ok {
					t.Errorf("Expected error on %s, got %v", tt.wantField, resp.Fields)
				}
			}
		})
	}
}

func TestSignUp_RedirectsToLogin(t *testing.T) {
	env := newTestEnv(t)

	w := httptest.NewRecorder()
	env.auth.SignUp(w, testutil.MakeFormRequest("POST", "/auth/signup", url.Values{
		"username": {"alice"}, "password": {"secret1"}, "confirm_password": {"secret1"},
	}))

	testutil.AssertRedirect(t, w, "/auth/login")
	assertFlash(t, env.flashesFrom(t, w), "Account created successfully.")
}

func TestLogIn(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateTestUser(t, env.db, "alice", "secret1")

	tests := []struct {
		name     string
		path     string
		form     url.Values
		location string
	}{
		{"no next", "/auth/login", url.Values{"username": {"alice"}, "password": {"secret1"}}, "/"},
		{"next in query", "/auth/login?next=%2Fshopping_list%2F3", url.Values{"username": {"alice"}, "password": {"secret1"}}, "/shopping_list/3"},
		{"next in form", "/auth/login", url.Values{"username": {"alice"}, "password": {"secret1"}, "next": {"/shopping_list"}}, "/shopping_list"},
		{"external next", "/auth/login?next=https%3A%2F%2Fevil.example", url.Values{"username": {"alice"}, "password": {"secret1"}}, "/"},
		{"protocol relative next", "/auth/login?next=%2F%2Fevil.example", url.Values{"username": {"alice"}, "password": {"secret1"}}, "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			env.auth.LogIn(w, testutil.MakeFormRequest("POST", tt.path, tt.form))

			testutil.AssertRedirect(t, w, tt.location)

			req := httptest.NewRequest("GET", "/", nil)
			for _, c := range w.Result().Cookies() {
				req.AddCookie(c)
			}
			if got := env.sessions.Identity(req).UserID; got != user.ID {
				t.Errorf("Expected session for user %d, got %d", user.ID, got)
			}
		})
	}
}

func TestLogIn_InvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	testutil.CreateTestUser(t, env.db, "alice", "secret1")

	tests := []struct {
		name string
		form url.Values
	}{
		{"wrong password", url.Values{"username": {"alice"}, "password": {"nope123"}}},
		{"unknown user", url.Values{"username": {"mallory"}, "password": {"secret1"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			env.auth.LogIn(w, testutil.MakeFormRequest("POST", "/auth/login", tt.form))

			testutil.AssertStatus(t, w, http.StatusUnauthorized)
			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Message != "Invalid username or password." {
				t.Errorf("Expected generic credentials message, got %q", resp.Message)
			}
			if len(w.Result().Cookies()) != 0 {
				t.Error("Expected no session cookie on failed login")
			}
		})
	}
}

func TestLoginForm_SanitizesNext(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		query string
		want  string
	}{
		{"?next=%2Fshopping_list", "/shopping_list"},
		{"?next=https%3A%2F%2Fevil.example", ""},
		{"", ""},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		env.auth.LoginForm(w, testutil.MakeRequest("GET", "/auth/login"+tt.query, nil, nil))

		var view models.FormView
		testutil.AssertJSON(t, w, &view)
		if view.Form != "login" || view.Next != tt.want {
			t.Errorf("query %q: got form %q next %q, want next %q", tt.query, view.Form, view.Next, tt.want)
		}
	}
}

func TestLogOut(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateTestUser(t, env.db, "alice", "secret1")

	w := httptest.NewRecorder()
	env.auth.LogOut(w, env.asUser(t, testutil.MakeRequest("GET", "/auth/logout", nil, nil), user.ID))

	testutil.AssertRedirect(t, w, "/")
	assertFlash(t, env.flashesFrom(t, w), "You have been logged out.")

	req := httptest.NewRequest("GET", "/", nil)
	latest := make(map[string]*http.Cookie)
	for _, c := range w.Result().Cookies() {
		latest[c.Name] = c
	}
	for _, c := range latest {
		req.AddCookie(c)
	}
	if env.sessions.Identity(req).Authenticated() {
		t.Error("Expected session to be cleared after logout")
	}
}
