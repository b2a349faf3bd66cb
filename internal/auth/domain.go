package auth

import (
	"time"

	"github.com/google/uuid"
)

// User represents a login account scoped to one cafe.
type User struct {
	ID           uuid.UUID
	CafeID       uuid.UUID
	CafeName     string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}
