// Package accounts implements admin registration, login, and token claims.
package accounts

import (
	"time"

	"github.com/google/uuid"

	"github.com/ragavan2104/mailblaster/pkg/jwt"
)

// Admin is a dashboard operator. The JSON form never carries the hash.
type Admin struct {
	CreatedAt    time.Time `json:"createdAt"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Email        string    `json:"email"`
	ID           uuid.UUID `json:"_id"`
}

// Claims are the JWT claims issued at login.
type Claims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	jwt.StandardClaims
}

// Identity names the admin in log records.
func (c *Claims) Identity() string {
	return c.Username
}

// AdminID parses the id claim.
func (c *Claims) AdminID() (uuid.UUID, error) {
	return uuid.Parse(c.ID)
}
