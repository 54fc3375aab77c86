package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/schoolhub/schoolhub/internal/app/models"
	"github.com/schoolhub/schoolhub/internal/pkg/apperrors"
	"github.com/schoolhub/schoolhub/internal/pkg/dberrors"
	"github.com/schoolhub/schoolhub/internal/pkg/logger"
)

// ICourseRepository defines the interface for course and enrollment operations
type ICourseRepository interface {
	CreateCourse(ctx context.Context, course *models.Course) (int64, error)
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
	ListByTeacherID(ctx context.Context, teacherID int64) ([]models.TaughtCourse, error)
	Enroll(ctx context.Context, studentID, courseID int64) error
	ListByStudentID(ctx context.Context, studentID int64) ([]models.EnrolledCourse, error)
}

// CourseRepository handles course database operations
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateCourse creates a new course owned by a teacher
func (r *CourseRepository) CreateCourse(ctx context.Context, course *models.Course) (int64, error) {
	sql, args, err := r.sb.Insert("courses").
		Columns("title", "teacher_id").
		Values(course.Title, course.TeacherID).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create course SQL")
		return 0, fmt.Errorf("failed to build create course query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Int64("teacherID", course.TeacherID).Msg("Error executing create course query")
		return 0, fmt.Errorf("error creating course: %w", err)
	}

	logger.Info().Int64("courseID", id).Int64("teacherID", course.TeacherID).Msg("Course created successfully")
	return id, nil
}

// GetCourseByID retrieves a course by ID
func (r *CourseRepository) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	var course models.Course
	sql, args, err := r.sb.Select("id", "title", "teacher_id").
		From("courses").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get course SQL")
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&course.ID, &course.Title, &course.TeacherID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return &course, nil
}

// ListByTeacherID lists a teacher's courses with enrollment counts
func (r *CourseRepository) ListByTeacherID(ctx context.Context, teacherID int64) ([]models.TaughtCourse, error) {
	sql, args, err := r.sb.Select("c.id", "c.title", "c.teacher_id", "COUNT(sc.student_id) AS student_count").
		From("courses c").
		LeftJoin("student_course sc ON sc.course_id = c.id").
		Where(squirrel.Eq{"c.teacher_id": teacherID}).
		GroupBy("c.id", "c.title", "c.teacher_id").
		OrderBy("c.id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building list taught courses SQL")
		return nil, fmt.Errorf("failed to build list taught courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("teacherID", teacherID).Msg("Error listing taught courses")
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	var courses []models.TaughtCourse
	for rows.Next() {
		var c models.TaughtCourse
		if err := rows.Scan(&c.ID, &c.Title, &c.TeacherID, &c.StudentCount); err != nil {
			return nil, fmt.Errorf("error scanning taught course row: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating taught course rows: %w", err)
	}

	return courses, nil
}

// Enroll inserts a student/course pair into the join table
func (r *CourseRepository) Enroll(ctx context.Context, studentID, courseID int64) error {
	sql, args, err := r.sb.Insert("student_course").
		Columns("student_id", "course_id").
		Values(studentID, courseID).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building enroll SQL")
		return fmt.Errorf("failed to build enroll query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "student_course_pkey") {
			logger.Warn().Int64("studentID", studentID).Int64("courseID", courseID).Msg("Attempted duplicate enrollment")
			return apperrors.ErrAlreadyEnrolled
		}
		if dberrors.IsForeignKeyViolation(err, "student_course_course_id_fkey") {
			return apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("studentID", studentID).Int64("courseID", courseID).Msg("Error executing enroll query")
		return fmt.Errorf("error enrolling student: %w", err)
	}

	logger.Info().Int64("studentID", studentID).Int64("courseID", courseID).Msg("Student enrolled successfully")
	return nil
}

// ListByStudentID lists a student's enrolled courses with teacher names
func (r *CourseRepository) ListByStudentID(ctx context.Context, studentID int64) ([]models.EnrolledCourse, error) {
	sql, args, err := r.sb.Select("c.id", "c.title", "c.teacher_id", "t.name AS teacher_name").
		From("student_course sc").
		Join("courses c ON c.id = sc.course_id").
		Join("teachers t ON t.id = c.teacher_id").
		Where(squirrel.Eq{"sc.student_id": studentID}).
		OrderBy("c.id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building list enrolled courses SQL")
		return nil, fmt.Errorf("failed to build list enrolled courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error listing enrolled courses")
		return nil, fmt.Errorf("error listing enrollments: %w", err)
	}
	defer rows.Close()

	var courses []models.EnrolledCourse
	for rows.Next() {
		var c models.EnrolledCourse
		if err := rows.Scan(&c.ID, &c.Title, &c.TeacherID, &c.TeacherName); err != nil {
			return nil, fmt.Errorf("error scanning enrolled course row: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating enrolled course rows: %w", err)
	}

	return courses, nil
}
