package repositories

import (
	"github.com/schoolhub/schoolhub/internal/db"
)

// Repositories holds all repository instances
type Repositories struct {
	User   *UserRepository
	Role   *RoleRepository
	Course *CourseRepository
	Token  *TokenRepository
}

// NewRepositories creates all repositories on the shared connection pool
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		User:   NewUserRepository(database),
		Role:   NewRoleRepository(database.Pool),
		Course: NewCourseRepository(database.Pool),
		Token:  NewTokenRepository(database.Pool),
	}
}
