package auth

// Claims es la información extraída del token.
type Claims struct {
	UserID string
	Email  string
}
