package domain

// TokenPair is the access/refresh credential pair returned by register,
// login and refresh. Neither token is persisted server-side.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
