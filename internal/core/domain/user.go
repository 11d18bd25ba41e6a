package domain

import "strings"

// PushEventType is the event type carrying commit authorship.
const PushEventType = "PushEvent"

// PrivacyProxyMarker identifies privacy-proxy email addresses.
const PrivacyProxyMarker = "noreply"

// Profile is the public profile of a GitHub user.
type Profile struct {
	Handle        string `json:"login"`
	DisplayName   string `json:"name,omitempty"`
	DeclaredEmail string `json:"email,omitempty"`
}

// HasDeclaredEmail reports whether the profile exposes a public email.
func (p Profile) HasDeclaredEmail() bool {
	return p.DeclaredEmail != ""
}

// PublicEvent is an entry of a user's public activity stream.
// CommitEmails is only populated for push events.
type PublicEvent struct {
	Type         string   `json:"type"`
	CommitEmails []string `json:"commit_emails,omitempty"`
}

// IsPush reports whether the event is a push event.
func (e PublicEvent) IsPush() bool {
	return e.Type == PushEventType
}

// IsPrivacyProxy reports whether an email is a privacy-proxy address.
func IsPrivacyProxy(email string) bool {
	return strings.Contains(email, PrivacyProxyMarker)
}

// ResolvedUser is a discovered user with its email candidates.
type ResolvedUser struct {
	Handle      string   `json:"login"`
	DisplayName string   `json:"name,omitempty"`
	Emails      []string `json:"emails"`
}

// HasEmail reports whether at least one email was resolved.
func (u ResolvedUser) HasEmail() bool {
	return len(u.Emails) > 0
}

// TopEmails returns at most n emails. n <= 0 returns none.
func (u ResolvedUser) TopEmails(n int) []string {
	if n <= 0 {
		return nil
	}
	if len(u.Emails) < n {
		return u.Emails
	}
	return u.Emails[:n]
}
