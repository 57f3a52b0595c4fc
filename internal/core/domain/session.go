package domain

import "time"

// Session is the server-held record identifying the authenticated caller,
// addressed by an opaque token carried in a cookie. User is a snapshot taken
// at sign-in; it is only refreshed when the owner edits their own profile.
type Session struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}
