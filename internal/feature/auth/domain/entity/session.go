package entity

import "time"

// Session is a refresh-token session. The access token is re-issued from it.
type Session struct {
	ID        string     // refresh token (64 hex chars)
	UserID    string
	UserAgent string
	IPAddress string
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// IsExpiredAt reports whether the session had expired at now.
func (s *Session) IsExpiredAt(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// IsRevoked returns true if the session has been revoked.
func (s *Session) IsRevoked() bool {
	return s.RevokedAt != nil
}

// IsValid returns true if the session is neither expired nor revoked.
func (s *Session) IsValid() bool {
	return !s.IsExpiredAt(time.Now()) && !s.IsRevoked()
}
