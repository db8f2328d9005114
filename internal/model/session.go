// Package model defines domain entities for the application.
package model

import "time"

// Session is the server-side record behind a session token. Sessions are
// opaque to the rest of the system; the core only consumes the resolved
// user identity.
type Session struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Identity is the authenticated caller injected into the request context
// by the auth middleware. Every ownership check derives from it.
type Identity struct {
	UserID string
	Email  string
}
