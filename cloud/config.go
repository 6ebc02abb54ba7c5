package cloud

// Endpoints overrides the service URLs. Zero values fall back to the
// production endpoints.
type Endpoints struct {
	Core string
}

// RemoteConfig carries the credentials and endpoints for a remote session.
// Fields are individually optional; which combination authenticates is the
// service's concern, not the provider's.
type RemoteConfig struct {
	Username      string
	Password      string
	ProjectID     string
	TokenProvider TokenProvider
	Endpoints     Endpoints
	Auth0         string
	Webhook       string
}

// TokenProvider supplies a bearer token for each request. Static tokens can
// use StaticToken.
type TokenProvider interface {
	Token() (string, error)
}

// StaticToken is a TokenProvider returning a fixed token.
type StaticToken string

// Token implements TokenProvider.
func (t StaticToken) Token() (string, error) { return string(t), nil }
