package domain

// AuthMethod identifies how requests are authenticated.
type AuthMethod string

// Available authentication methods.
const (
	// AuthMethodNone sends anonymous requests (60 requests per hour).
	AuthMethodNone AuthMethod = "none"

	// AuthMethodPAT uses a personal access token.
	AuthMethodPAT AuthMethod = "pat"

	// AuthMethodOAuthApp uses an OAuth app client id and secret.
	AuthMethodOAuthApp AuthMethod = "oauth_app"
)

// Credentials authenticate GitHub API requests.
type Credentials struct {
	Token        string
	ClientID     string
	ClientSecret string
}

// Method returns the authentication method these credentials select.
// A token takes precedence over an OAuth app pair.
func (c Credentials) Method() AuthMethod {
	switch {
	case c.Token != "":
		return AuthMethodPAT
	case c.ClientID != "" && c.ClientSecret != "":
		return AuthMethodOAuthApp
	default:
		return AuthMethodNone
	}
}
