package models

// TokenPair bundles the short-lived access token and the longer-lived refresh
// token minted together by the backend. Both values are opaque to the client;
// the access token merely happens to be a JWT whose expiry can be displayed.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Empty reports whether the pair carries no credentials at all.
func (p TokenPair) Empty() bool {
	return p.AccessToken == "" && p.RefreshToken == ""
}
