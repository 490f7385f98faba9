package user

import "time"

// User is an account mirrored from the external identity provider.
type User struct {
	ID         string
	ExternalID string
	Email      string
	Name       string
	Image      string
	CreatedAt  time.Time
}

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID string
	Email  string
}
