package entity

// Account links a user to a provider identity. It is refreshed on every sign-in.
type Account struct {
	ID                string
	UserID            string
	Type              string
	Provider          string
	ProviderAccountID string
	AccessToken       string
	RefreshToken      string
	ExpiresAt         *int64 // unix seconds
	TokenType         string
	Scope             string
	IDToken           string
}

// ExternalAccount is what a provider reports after a successful code exchange.
type ExternalAccount struct {
	Provider          string
	ProviderAccountID string
	Email             string
	Name              string
	Image             string

	AccessToken  string
	RefreshToken string
	ExpiresAt    *int64
	TokenType    string
	Scope        string
	IDToken      string
}
