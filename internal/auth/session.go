package auth

import "strings"

// Identity describes a signed-in principal as reported by the identity
// provider. It is the input to session issuance.
type Identity struct {
	Subject     string
	Email       string
	DisplayName string
	AvatarURL   string
}

// Session carries the authenticated caller identity through the dashboard.
// It is acquired at sign-in, passed explicitly to every consumer, and treated
// as read-only; a nil session means signed out.
type Session struct {
	UserID      string
	Email       string
	DisplayName string
	AvatarURL   string
}

// Authenticated reports whether the session identifies a caller.
func (s *Session) Authenticated() bool {
	return s != nil && strings.TrimSpace(s.UserID) != ""
}

// ID returns the caller identifier, empty when signed out.
func (s *Session) ID() string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(s.UserID)
}

// AuthorName returns the label used when the caller authors content locally.
func (s *Session) AuthorName() string {
	if s == nil {
		return "You"
	}
	if name := strings.TrimSpace(s.DisplayName); name != "" {
		return name
	}
	if email := strings.TrimSpace(s.Email); email != "" {
		return email
	}
	return "You"
}
