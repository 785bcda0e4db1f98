package domain

// TokenKind differentiates short-lived access tokens from long-lived
// refresh tokens.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// TokenPair bundles the two tokens handed to a client at login. The refresh
// token is reused verbatim on refresh; only the access token is reissued.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
