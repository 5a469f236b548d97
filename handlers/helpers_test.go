// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap/zaptest"

	"github.com/danielhkuo/grocery-list/auth"
	"github.com/danielhkuo/grocery-list/grocery"
	"github.com/danielhkuo/grocery-list/repository"
	"github.com/danielhkuo/grocery-list/session"
	"github.com/danielhkuo/grocery-list/testutil"
)

type testEnv struct {
	db       *sqlx.DB
	sessions *session.Manager
	stores   *StoreHandler
	items    *ItemHandler
	lists    *ShoppingListHandler
	auth     *AuthHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	logger := zaptest.NewLogger(t)
	repo := repository.New(db)
	sessions := session.NewManager([]byte(cfg.SessionSecret), false)

	authService, err := auth.NewService(repo, auth.BcryptHasher{Cost: cfg.BcryptCost}, logger)
	if err != nil {
		t.Fatalf("Failed to create auth service: %v", err)
	}
	groceryService := grocery.NewService(repo, logger)

	return &testEnv{
		db:       db,
		sessions: sessions,
		stores:   NewStoreHandler(groceryService, sessions, logger),
		items:    NewItemHandler(groceryService, sessions, logger),
		lists:    NewShoppingListHandler(groceryService, sessions, logger),
		auth:     NewAuthHandler(authService, sessions, logger),
	}
}

// asUser attaches a session cookie for userID to req.
func (e *testEnv) asUser(t *testing.T, req *http.Request, userID int64) *http.Request {
	t.Helper()

	w := httptest.NewRecorder()
	if err := e.sessions.SignIn(w, httptest.NewRequest("POST", "/auth/login", nil), userID); err != nil {
		t.Fatalf("Failed to sign in: %v", err)
	}
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

// flashesFrom reads the flashes carried by the cookies w set.
func (e *testEnv) flashesFrom(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()

	// the last Set-Cookie for a name wins
	latest := make(map[string]*http.Cookie)
	for _, c := range w.Result().Cookies() {
		latest[c.Name] = c
	}
	req := httptest.NewRequest("GET", "/", nil)
	for _, c := range latest {
		req.AddCookie(c)
	}
	flashes, err := e.sessions.Flashes(httptest.NewRecorder(), req)
	if err != nil {
		t.Fatalf("Failed to read flashes: %v", err)
	}
	return flashes
}

func assertFlash(t *testing.T, flashes []string, want string) {
	t.Helper()
	for _, f := range flashes {
		if f == want {
			return
		}
	}
	t.Errorf("Expected flash %q, got %v", want, flashes)
}
