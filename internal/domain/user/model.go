package user

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// User is a registered fantasy manager.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Points       int
	IsAdmin      bool
	CreatedAt    time.Time
}

// Principal is the authenticated caller attached to a request.
type Principal struct {
	UserID   string
	Username string
	IsAdmin  bool
}

func (u User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(u.Username) == "" {
		return fmt.Errorf("username is required")
	}
	if u.PasswordHash == "" {
		return fmt.Errorf("password hash is required")
	}

	return nil
}

func (u User) Principal() Principal {
	return Principal{UserID: u.ID, Username: u.Username, IsAdmin: u.IsAdmin}
}

// HashPassword returns the lower-case hex SHA-256 digest of the UTF-8 password.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
