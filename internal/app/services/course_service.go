package services

import (
	"context"
	"fmt"

	"github.com/schoolhub/schoolhub/internal/app/models"
	"github.com/schoolhub/schoolhub/internal/app/repositories"
	"github.com/schoolhub/schoolhub/internal/pkg/logger"
)

// CourseService defines the interface for course and enrollment operations
type CourseService interface {
	CreateCourse(ctx context.Context, teacherUserID int64, title string) (*models.Course, error)
	ListTaught(ctx context.Context, teacherUserID int64) (*models.Teacher, []models.TaughtCourse, error)
	Enroll(ctx context.Context, studentUserID, courseID int64) error
	ListEnrolled(ctx context.Context, studentUserID int64) (*models.Student, []models.EnrolledCourse, error)
}

type courseService struct {
	userRepo   repositories.IUserRepository
	courseRepo repositories.ICourseRepository
}

// NewCourseService creates a new CourseService
func NewCourseService(userRepo repositories.IUserRepository, courseRepo repositories.ICourseRepository) CourseService {
	return &courseService{
		userRepo:   userRepo,
		courseRepo: courseRepo,
	}
}

// CreateCourse creates a course owned by the teacher behind the user
func (s *courseService) CreateCourse(ctx context.Context, teacherUserID int64, title string) (*models.Course, error) {
	teacher, err := s.userRepo.GetTeacherByUserID(ctx, teacherUserID)
	if err != nil {
		return nil, err
	}

	course := &models.Course{
		Title:     title,
		TeacherID: teacher.ID,
	}

	id, err := s.courseRepo.CreateCourse(ctx, course)
	if err != nil {
		return nil, err
	}
	course.ID = id

	return course, nil
}

// ListTaught returns the teacher profile and their courses
func (s *courseService) ListTaught(ctx context.Context, teacherUserID int64) (*models.Teacher, []models.TaughtCourse, error) {
	teacher, err := s.userRepo.GetTeacherByUserID(ctx, teacherUserID)
	if err != nil {
		return nil, nil, err
	}

	courses, err := s.courseRepo.ListByTeacherID(ctx, teacher.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("listing taught courses failed: %w", err)
	}

	return teacher, courses, nil
}

// Enroll adds the student behind the user to a course
func (s *courseService) Enroll(ctx context.Context, studentUserID, courseID int64) error {
	student, err := s.userRepo.GetStudentByUserID(ctx, studentUserID)
	if err != nil {
		return err
	}

	// Surface a not-found before touching the join table
	if _, err := s.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		return err
	}

	if err := s.courseRepo.Enroll(ctx, student.ID, courseID); err != nil {
		return err
	}

	logger.Info().Int64("studentID", student.ID).Int64("courseID", courseID).Msg("Enrollment created")
	return nil
}

// ListEnrolled returns the student profile and their enrolled courses
func (s *courseService) ListEnrolled(ctx context.Context, studentUserID int64) (*models.Student, []models.EnrolledCourse, error) {
	student, err := s.userRepo.GetStudentByUserID(ctx, studentUserID)
	if err != nil {
		return nil, nil, err
	}

	courses, err := s.courseRepo.ListByStudentID(ctx, student.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("listing enrolled courses failed: %w", err)
	}

	return student, courses, nil
}
