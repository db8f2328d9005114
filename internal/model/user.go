// Package model defines domain entities for the application.
package model

import "time"

// User represents an account created on first OAuth sign-in.
// Profile fields (Name, Image) are refreshed from the identity provider
// on every sign-in; ID and Email are immutable after creation.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
}
