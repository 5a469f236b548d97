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

func TestCreateStore(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
		wantField      string
	}{
		{
			name:           "valid store",
			body:           models.StoreInput{Title: "Corner Shop", Address: "1 Main St"},
			expectedStatus: http.StatusSeeOther,
		},
		{
			name:           "missing title",
			body:           models.StoreInput{Address: "1 Main St"},
			expectedStatus: http.StatusUnprocessableEntity,
			wantField:      "title",
		},
		{
			name:           "missing address",
			body:           models.StoreInput{Title: "Corner Shop"},
			expectedStatus: http.StatusUnprocessableEntity,
			wantField:      "address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/new_store", tt.body, nil)
			w := httptest.NewRecorder()

			env.stores.CreateStore(w, req)

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

func TestCreateStore_RedirectsWithFlash(t *testing.T) {
	env := newTestEnv(t)

	req := testutil.MakeFormRequest("POST", "/new_store", url.Values{
		"title":   {"Corner Shop"},
		"address": {"1 Main St"},
	})
	w := httptest.NewRecorder()

	env.stores.CreateStore(w, req)

	testutil.AssertRedirect(t, w, "/store/1")
	assertFlash(t, env.flashesFrom(t, w), "Store was added successfully.")
}

func TestCreateStore_InvalidBody(t *testing.T) {
	env := newTestEnv(t)

	req := testutil.MakeRequest("POST", "/new_store", nil, map[string]string{"Content-Type": "application/json"})
	w := httptest.NewRecorder()

	env.stores.CreateStore(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestHome(t *testing.T) {
	env := newTestEnv(t)
	testutil.CreateTestStore(t, env.db, "Corner Shop", "1 Main St")
	testutil.CreateTestStore(t, env.db, "Market", "2 High St")

	w := httptest.NewRecorder()
	env.stores.Home(w, testutil.MakeRequest("GET", "/", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	var view models.HomeView
	testutil.AssertJSON(t, w, &view)
	if len(view.Stores) != 2 {
		t.Errorf("Expected 2 stores, got %d", len(view.Stores))
	}
}

func TestGetStore(t *testing.T) {
	env := newTestEnv(t)
	store := testutil.CreateTestStore(t, env.db, "Corner Shop", "1 Main St")
	testutil.CreateTestItem(t, env.db, "Milk", "3.50", models.CategoryProduce, store.ID)

	tests := []struct {
		name           string
		id             string
		expectedStatus int
	}{
		{"existing store", "1", http.StatusOK},
		{"unknown store", "99", http.StatusNotFound},
		{"malformed id", "abc", http.StatusNotFound},
		{"negative id", "-1", http.StatusNotFound},
		{"zero padded id", "01", http.StatusNotFound},
		{"hex id", "0x1", http.StatusNotFound},
		{"decimal point id", "1.0", http.StatusNotFound},
		{"signed id", "+1", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", "/store/"+tt.id, nil, nil)
			req.SetPathValue("id", tt.id)
			w := httptest.NewRecorder()

			env.stores.GetStore(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus == http.StatusOK {
				var view models.StoreView
				testutil.AssertJSON(t, w, &view)
				if view.Store.Title != "Corner Shop" || len(view.Store.Items) != 1 {
					t.Errorf("Unexpected store view: %+v", view.Store)
				}
			}
		})
	}
}

func TestUpdateStore(t *testing.T) {
	env := newTestEnv(t)
	testutil.CreateTestStore(t, env.db, "Old", "Old St")

	req := testutil.MakeRequest("POST", "/store/1", models.StoreInput{Title: "New", Address: "New St"}, nil)
	req.SetPathValue("id", "1")
	w := httptest.NewRecorder()

	env.stores.UpdateStore(w, req)

	testutil.AssertRedirect(t, w, "/store/1")
	assertFlash(t, env.flashesFrom(t, w), "Store was updated successfully.")

	t.Run("unknown store", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/store/42", models.StoreInput{Title: "New", Address: "New St"}, nil)
		req.SetPathValue("id", "42")
		w := httptest.NewRecorder()

		env.stores.UpdateStore(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}
