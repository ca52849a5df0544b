package postgres

import (
	"time"

	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/user"
)

type userTableModel struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	Points       int       `db:"points"`
	IsAdmin      bool      `db:"is_admin"`
	CreatedAt    time.Time `db:"created_at"`
}

var userSelectColumns = []string{"id", "username", "password_hash", "points", "is_admin", "created_at"}

func (m userTableModel) toDomain() user.User {
	return user.User{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Points:       m.Points,
		IsAdmin:      m.IsAdmin,
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

func userRowFromDomain(u user.User) userTableModel {
	return userTableModel{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Points:       u.Points,
		IsAdmin:      u.IsAdmin,
		CreatedAt:    u.CreatedAt.UTC(),
	}
}
