package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is a domain entity representing a system user.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}

// Principal описывает, кто выполняет запрос; администратор видит чужие данные.
type Principal struct {
	UserID  uuid.UUID
	IsAdmin bool
}
