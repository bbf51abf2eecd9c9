package models

import "time"

// User represents an account synced from the main LinkyBoard service.
// User IDs are issued upstream, so there is no local ID generation.
type User struct {
	ID         int64      `json:"id" db:"id"`
	IsActive   bool       `json:"is_active" db:"is_active"`
	LastSyncAt time.Time  `json:"last_sync_at" db:"last_sync_at"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// NewUser creates an active user record for the given upstream ID
func NewUser(id int64) *User {
	now := time.Now()
	return &User{
		ID:         id,
		IsActive:   true,
		LastSyncAt: now,
		CreatedAt:  now,
	}
}
