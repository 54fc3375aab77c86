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

// TeacherRepository handles teacher profile database operations
type TeacherRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewTeacherRepository creates a new TeacherRepository
func NewTeacherRepository(db Querier) *TeacherRepository {
	return &TeacherRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateTeacher creates a new teacher profile row
func (r *TeacherRepository) CreateTeacher(ctx context.Context, teacher *models.Teacher) error {
	sql, args, err := r.sb.Insert("teachers").
		Columns("name", "user_id").
		Values(teacher.Name, teacher.UserID).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create teacher SQL")
		return fmt.Errorf("failed to build create teacher query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&teacher.ID)
	if err != nil {
		// At most one teacher profile per user
		if dberrors.IsDuplicateConstraintError(err, "teachers_user_id_key") {
			logger.Warn().Int64("userID", teacher.UserID).Msg("Attempted to create duplicate teacher profile")
			return apperrors.ErrConflict
		}
		logger.Error().Err(err).Int64("userID", teacher.UserID).Msg("Error executing create teacher query")
		return fmt.Errorf("error creating teacher: %w", err)
	}

	logger.Info().Int64("userID", teacher.UserID).Int64("teacherID", teacher.ID).Msg("Teacher profile created successfully")
	return nil
}

// GetTeacherByUserID retrieves a teacher profile by user ID
func (r *TeacherRepository) GetTeacherByUserID(ctx context.Context, userID int64) (*models.Teacher, error) {
	var teacher models.Teacher
	sql, args, err := r.sb.Select("id", "name", "user_id").
		From("teachers").
		Where(squirrel.Eq{"user_id": userID}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get teacher by user ID SQL")
		return nil, fmt.Errorf("failed to build get teacher query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&teacher.ID, &teacher.Name, &teacher.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Warn().Int64("userID", userID).Msg("Teacher profile not found by user ID")
			return nil, apperrors.ErrTeacherNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning teacher row")
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}

	return &teacher, nil
}
