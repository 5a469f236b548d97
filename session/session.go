// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package session keeps the signed-in user and flash messages in a cookie.
package session

import (
	"crypto/sha256"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/spf13/cast"
)

const (
	cookieName = "grocery_session"
	userIDKey  = "user_id"
	maxAge     = 7 * 24 * 60 * 60 // one week, in seconds
)

// Identity is the caller's authentication state. The zero value is Anonymous.
type Identity struct {
	UserID int64
}

// Anonymous is the identity of a caller with no valid session.
var Anonymous = Identity{}

func (i Identity) Authenticated() bool {
	return i.UserID > 0
}

// Manager stores the signed-in user and pending flash messages in an
// encrypted cookie.
type Manager struct {
	store *sessions.CookieStore
}

func NewManager(secret []byte, secure bool) *Manager {
	blockKey := sha256.Sum256(append([]byte("session-encryption:"), secret...))
	store := sessions.NewCookieStore(secret, blockKey[:])
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: store}
}

// get never fails; a missing or tampered cookie yields an empty session.
func (m *Manager) get(r *http.Request) *sessions.Session {
	sess, _ := m.store.Get(r, cookieName)
	return sess
}

// Identity reports who made the request.
func (m *Manager) Identity(r *http.Request) Identity {
	id, err := cast.ToInt64E(m.get(r).Values[userIDKey])
	if err != nil || id <= 0 {
		return Anonymous
	}
	return Identity{UserID: id}
}

// SignIn moves the session to Authenticated for userID.
func (m *Manager) SignIn(w http.ResponseWriter, r *http.Request, userID int64) error {
	sess := m.get(r)
	sess.Values[userIDKey] = userID
	return sess.Save(r, w)
}

// SignOut moves the session back to Anonymous. Pending flashes are kept.
func (m *Manager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess := m.get(r)
	delete(sess.Values, userIDKey)
	return sess.Save(r, w)
}

// AddFlash queues a message for the next view.
func (m *Manager) AddFlash(w http.ResponseWriter, r *http.Request, message string) error {
	sess := m.get(r)
	sess.AddFlash(message)
	return sess.Save(r, w)
}

// Flashes pops every queued message.
func (m *Manager) Flashes(w http.ResponseWriter, r *http.Request) ([]string, error) {
	sess := m.get(r)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil, nil
	}

	messages := make([]string, 0, len(raw))
	for _, f := range raw {
		messages = append(messages, cast.ToString(f))
	}
	return messages, sess.Save(r, w)
}
