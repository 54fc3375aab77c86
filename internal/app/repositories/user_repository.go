package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/schoolhub/schoolhub/internal/app/models"
	"github.com/schoolhub/schoolhub/internal/app/repositories/user"
	"github.com/schoolhub/schoolhub/internal/db"
	"github.com/schoolhub/schoolhub/internal/pkg/apperrors"
)

// IUserRepository defines the interface for user-related database operations
type IUserRepository interface {
	// Registration. The user row and the matching profile row are written
	// atomically: either both land or neither does.
	CreateUserWithProfile(ctx context.Context, u *models.User, role models.Role) (int64, error)

	// Authentication
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)

	// Profiles
	GetTeacherByUserID(ctx context.Context, userID int64) (*models.Teacher, error)
	GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error)
}

// UserRepository combines all user-related repositories
type UserRepository struct {
	db      *db.PostgresDB
	common  *user.Repository
	teacher *user.TeacherRepository
	student *user.StudentRepository
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(database *db.PostgresDB) *UserRepository {
	return &UserRepository{
		db:      database,
		common:  user.NewRepository(database.Pool),
		teacher: user.NewTeacherRepository(database.Pool),
		student: user.NewStudentRepository(database.Pool),
	}
}

// CreateUserWithProfile creates a user row plus the profile row matching
// the role in a single transaction. The profile copies the user's name.
func (r *UserRepository) CreateUserWithProfile(ctx context.Context, u *models.User, role models.Role) (int64, error) {
	var userID int64

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		id, err := user.NewRepository(tx).CreateUser(ctx, u)
		if err != nil {
			return err
		}

		switch role {
		case models.RoleTeacher:
			teacher := &models.Teacher{Name: u.Name, UserID: id}
			if err := user.NewTeacherRepository(tx).CreateTeacher(ctx, teacher); err != nil {
				return fmt.Errorf("teacher profile creation error: %w", err)
			}
		case models.RoleStudent:
			student := &models.Student{Name: u.Name, UserID: id}
			if err := user.NewStudentRepository(tx).CreateStudent(ctx, student); err != nil {
				return fmt.Errorf("student profile creation error: %w", err)
			}
		default:
			// A user without a profile row would break the 1:1 invariant,
			// so refuse inside the transaction rather than writing half.
			return apperrors.ErrUnsupportedRole
		}

		userID = id
		return nil
	})
	if err != nil {
		return 0, err
	}

	return userID, nil
}

// GetUserByEmail retrieves a user by email
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.common.GetUserByEmail(ctx, email)
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.common.GetUserByID(ctx, id)
}

// EmailExists checks if an email already exists
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.common.EmailExists(ctx, email)
}

// CountUsers returns the total number of user rows
func (r *UserRepository) CountUsers(ctx context.Context) (int64, error) {
	return r.common.CountUsers(ctx)
}

// GetTeacherByUserID retrieves a teacher profile by user ID
func (r *UserRepository) GetTeacherByUserID(ctx context.Context, userID int64) (*models.Teacher, error) {
	return r.teacher.GetTeacherByUserID(ctx, userID)
}

// GetStudentByUserID retrieves a student profile by user ID
func (r *UserRepository) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return r.student.GetStudentByUserID(ctx, userID)
}
