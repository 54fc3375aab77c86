package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`                                  // Unique identifier for the user
	Name      string    `json:"name" db:"name" example:"Jane Doe"`                       // User's display name
	Email     string    `json:"email" db:"email" example:"jane@school.test"`             // User's email address (unique)
	Password  string    `json:"-" db:"password"`                                         // User's hashed password (excluded from JSON)
	RoleID    int64     `json:"roleId" db:"role_id" example:"2"`                         // Reference to the roles table
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp when the user was last updated
}

// Role resolves the user's role id to its named variant.
func (u *User) Role() (Role, error) {
	return RoleFromID(u.RoleID)
}

// Teacher defines the teacher profile model based on the 'teachers' table.
// The name is copied from the owning User at registration time and is not
// kept in sync afterwards.
type Teacher struct {
	ID     int64  `json:"id" db:"id"`
	Name   string `json:"name" db:"name"`
	UserID int64  `json:"userId" db:"user_id"`

	User *User `json:"user,omitempty"` // Relation, no db tag
}

// Student defines the student profile model based on the 'students' table.
type Student struct {
	ID     int64  `json:"id" db:"id"`
	Name   string `json:"name" db:"name"`
	UserID int64  `json:"userId" db:"user_id"`

	User *User `json:"user,omitempty"` // Relation, no db tag
}
