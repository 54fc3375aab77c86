package models

import "fmt"

// Role is the fixed user classification assigned at registration.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// Numeric role ids as seeded in the 'roles' table.
const (
	RoleTeacherID int64 = 1
	RoleStudentID int64 = 2
)

// RoleFromID resolves a numeric role id to its named variant.
// Any id outside the seeded pair is rejected, including ids that may
// exist in the roles table but have no profile type behind them.
func RoleFromID(id int64) (Role, error) {
	switch id {
	case RoleTeacherID:
		return RoleTeacher, nil
	case RoleStudentID:
		return RoleStudent, nil
	default:
		return "", fmt.Errorf("unsupported role id %d", id)
	}
}

// ID returns the numeric id of the role as seeded in the roles table.
func (r Role) ID() int64 {
	switch r {
	case RoleTeacher:
		return RoleTeacherID
	case RoleStudent:
		return RoleStudentID
	default:
		return 0
	}
}

// Valid reports whether the role is one of the two known variants.
func (r Role) Valid() bool {
	return r == RoleTeacher || r == RoleStudent
}

// RoleRecord is a row of the 'roles' reference table.
type RoleRecord struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
