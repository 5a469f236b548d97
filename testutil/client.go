// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

// Client sends requests straight to a handler and carries cookies between
// them like a browser would.
type Client struct {
	t       *testing.T
	handler http.Handler
	cookies map[string]*http.Cookie
}

func NewClient(t *testing.T, handler http.Handler) *Client {
	return &Client{t: t, handler: handler, cookies: make(map[string]*http.Cookie)}
}

// Do serves req, attaching stored cookies and keeping any the response sets.
func (c *Client) Do(req *http.Request) *httptest.ResponseRecorder {
	c.t.Helper()

	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)

	// Later Set-Cookie headers for the same name win.
	for _, cookie := range w.Result().Cookies() {
		if cookie.MaxAge < 0 {
			delete(c.cookies, cookie.Name)
			continue
		}
		c.cookies[cookie.Name] = &http.Cookie{Name: cookie.Name, Value: cookie.Value}
	}
	return w
}

func (c *Client) Get(path string) *httptest.ResponseRecorder {
	c.t.Helper()
	return c.Do(MakeRequest("GET", path, nil, nil))
}

// PostJSON sends body as JSON
func (c *Client) PostJSON(path string, body interface{}) *httptest.ResponseRecorder {
	c.t.Helper()
	return c.Do(MakeRequest("POST", path, body, nil))
}

func (c *Client) PostForm(path string, form url.Values) *httptest.ResponseRecorder {
	c.t.Helper()
	return c.Do(MakeFormRequest("POST", path, form))
}

// Login signs the client in through the login endpoint.
func (c *Client) Login(username, password string) {
	c.t.Helper()

	w := c.PostForm("/auth/login", url.Values{"username": {username}, "password": {password}})
	if w.Code != http.StatusSeeOther {
		c.t.Fatalf("Login as %s failed: status %d. Body: %s", username, w.Code, w.Body.String())
	}
}
