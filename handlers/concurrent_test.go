// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/grocery-list/models"
	"github.com/danielhkuo/grocery-list/testutil"
)

// TestConcurrentAddEntry verifies that simultaneous adds of the same item
// all land on one entry without losing any quantity
func TestConcurrentAddEntry(t *testing.T) {
	f := newListFixture(t)

	numRequests := 10
	var successCount atomic.Int32
	var wg sync.WaitGroup

	// Requests are built up front; asUser may call t.Fatalf
	reqs := make([]*http.Request, numRequests)
	for i := range reqs {
		form := url.Values{"item_id": {"1"}, "quantity": {"1"}}
		reqs[i] = f.env.asUser(t, testutil.MakeFormRequest("POST", "/shopping_list/1", form), f.alice.ID)
		reqs[i].SetPathValue("id", "1")
	}

	for _, req := range reqs {
		wg.Add(1)
		go func() {
			defer wg.Done()

			w := httptest.NewRecorder()

			f.env.lists.AddEntry(w, req)

			if w.Code == http.StatusSeeOther {
				successCount.Add(1)
			}
		}()
	}

	wg.Wait()

	if int(successCount.Load()) != numRequests {
		t.Errorf("Expected %d successful adds, got %d", numRequests, successCount.Load())
	}

	var quantity int
	if err := f.env.db.Get(&quantity,
		f.env.db.Rebind("SELECT quantity FROM shopping_list_items WHERE shopping_list_id = ? AND item_id = ?"),
		f.list.ID, f.milk.ID); err != nil {
		t.Fatalf("Failed to read entry: %v", err)
	}
	if quantity != numRequests {
		t.Errorf("Expected quantity %d, got %d", numRequests, quantity)
	}
}

// TestConcurrentSignUp verifies that racing sign-ups for one username create
// exactly one account and report the rest as taken
func TestConcurrentSignUp(t *testing.T) {
	env := newTestEnv(t)

	numRequests := 8
	var created, taken atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			form := url.Values{"username": {"alice"}, "password": {"secret1"}, "confirm_password": {"secret1"}}
			w := httptest.NewRecorder()
			env.auth.SignUp(w, testutil.MakeFormRequest("POST", "/auth/signup", form))

			switch w.Code {
			case http.StatusSeeOther:
				created.Add(1)
			case http.StatusUnprocessableEntity:
				var resp models.ErrorResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Errorf("Failed to decode response: %v", err)
					return
				}
				if resp.Fields["username"] == "already taken, please pick another" {
					taken.Add(1)
				}
			}
		}()
	}

	wg.Wait()

	if created.Load() != 1 {
		t.Errorf("Expected exactly 1 account created, got %d", created.Load())
	}
	if int(created.Load()+taken.Load()) != numRequests {
		t.Errorf("Expected the other %d sign-ups to be rejected as taken, got %d", numRequests-1, taken.Load())
	}

	var count int
	if err := env.db.Get(&count, "SELECT COUNT(*) FROM users WHERE username = 'alice'"); err != nil {
		t.Fatalf("Failed to count users: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 user row, got %d", count)
	}
}
