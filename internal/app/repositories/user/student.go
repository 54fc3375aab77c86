package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/schoolhub/schoolhub/internal/app/models"
	"github.com/schoolhub/schoolhub/internal/pkg/apperrors"
	"github.com/schoolhub/schoolhub/internal/pkg/dberrors"
	"github.com/schoolhub/schoolhub/internal/pkg/logger"
)

// StudentRepository handles student profile database operations
type StudentRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db Querier) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateStudent creates a new student profile row
func (r *StudentRepository) CreateStudent(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Insert("students").
		Columns("name", "user_id").
		Values(student.Name, student.UserID).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&student.ID)
	if err != nil {
		// At most one student profile per user
		if dberrors.IsDuplicateConstraintError(err, "students_user_id_key") {
			logger.Warn().Int64("userID", student.UserID).Msg("Attempted to create duplicate student profile")
			return apperrors.ErrConflict
		}
		logger.Error().Err(err).Int64("userID", student.UserID).Msg("Error executing create student query")
		return fmt.Errorf("error creating student: %w", err)
	}

	logger.Info().Int64("userID", student.UserID).Int64("studentID", student.ID).Msg("Student profile created successfully")
	return nil
}

// GetStudentByUserID retrieves a student profile by user ID
func (r *StudentRepository) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	var student models.Student
	sql, args, err := r.sb.Select("id", "name", "user_id").
		From("students").
		Where(squirrel.Eq{"user_id": userID}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get student by user ID SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&student.ID, &student.Name, &student.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Warn().Int64("userID", userID).Msg("Student profile not found by user ID")
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}
