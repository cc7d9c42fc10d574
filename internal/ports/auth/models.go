package auth

// Claims representa la identidad resuelta desde el bearer token.
type Claims struct {
	UserID string
	Email  string
}
