// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User is a person who signed in through an OAuth provider.
type User struct {
	ID            string
	Name          string
	Email         string
	Image         string
	EmailVerified *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
