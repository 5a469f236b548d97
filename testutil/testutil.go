// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/danielhkuo/grocery-list/cliparse"
	"github.com/danielhkuo/grocery-list/db"
	"github.com/danielhkuo/grocery-list/models"
	"github.com/danielhkuo/grocery-list/repository"
)

// TestSessionSecret signs session cookies in tests
const TestSessionSecret = "test-session-secret-0123456789abcdef"

// SetupTestDB creates a fresh, fully migrated SQLite database for one test.
// The connection is closed when the test ends.
func SetupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.Migrate(conn); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          5001,
		DatabaseType:  db.TypeSQLite,
		DatabaseURL:   "test.db",
		SessionSecret: TestSessionSecret,
		LogMode:       "development",
		BcryptCost:    bcrypt.MinCost,
	}
}

func insert(t *testing.T, conn *sqlx.DB, what string, fn func(q *repository.Queries) error) {
	t.Helper()
	if err := fn(repository.New(conn).Queries()); err != nil {
		t.Fatalf("Failed to create test %s: %v", what, err)
	}
}

// CreateTestStore inserts a store and returns it
func CreateTestStore(t *testing.T, conn *sqlx.DB, title, address string) *models.Store {
	t.Helper()

	store := &models.Store{Title: title, Address: address}
	insert(t, conn, "store", func(q *repository.Queries) error {
		return q.InsertStore(t.Context(), store)
	})
	return store
}

// CreateTestItem inserts an item priced at price (e.g. "3.50") into storeID
func CreateTestItem(t *testing.T, conn *sqlx.DB, name, price string, category models.Category, storeID int64) *models.Item {
	t.Helper()

	item := &models.Item{
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Category: category,
		StoreID:  storeID,
	}
	insert(t, conn, "item", func(q *repository.Queries) error {
		return q.InsertItem(t.Context(), item)
	})
	return item
}

// CreateTestUser inserts a user whose password is hashed at the minimum bcrypt cost
func CreateTestUser(t *testing.T, conn *sqlx.DB, username, password string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := &models.User{Username: username, PasswordHash: string(hash)}
	insert(t, conn, "user", func(q *repository.Queries) error {
		return q.InsertUser(t.Context(), user)
	})
	return user
}

// CreateTestShoppingList inserts a list owned by userID
func CreateTestShoppingList(t *testing.T, conn *sqlx.DB, name string, userID int64) *models.ShoppingList {
	t.Helper()

	list := &models.ShoppingList{
		Name:      name,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
		UserID:    userID,
	}
	insert(t, conn, "shopping list", func(q *repository.Queries) error {
		return q.InsertShoppingList(t.Context(), list)
	})
	return list
}

// AddTestEntry puts quantity of itemID on listID
func AddTestEntry(t *testing.T, conn *sqlx.DB, listID, itemID int64, quantity int) {
	t.Helper()

	insert(t, conn, "list entry", func(q *repository.Queries) error {
		return q.AddEntry(t.Context(), listID, itemID, quantity)
	})
}

// MakeRequest creates an HTTP test request with a JSON body
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeFormRequest creates an HTTP test request with a url-encoded form body
func MakeFormRequest(method, path string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertRedirect checks for a 303 to the expected location
func AssertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	AssertStatus(t, w, http.StatusSeeOther)
	if got := w.Header().Get("Location"); got != location {
		t.Errorf("Expected redirect to %s, got %s", location, got)
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
