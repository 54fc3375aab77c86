package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/schoolhub/schoolhub/internal/app/models"
	"github.com/schoolhub/schoolhub/internal/app/models/dto"
	"github.com/schoolhub/schoolhub/internal/app/services"
	"github.com/schoolhub/schoolhub/internal/middleware"
	"github.com/schoolhub/schoolhub/internal/pkg/apperrors"
)

// StudentController handles the student-only surface
type StudentController struct {
	courseService services.CourseService
}

// NewStudentController creates a new StudentController
func NewStudentController(courseService services.CourseService) *StudentController {
	return &StudentController{courseService: courseService}
}

// Index is the student home: the profile plus enrolled courses
func (c *StudentController) Index(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	student, courses, err := c.courseService.ListEnrolled(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.StudentDashboardResponse{
		Student: dto.ProfileResponse{
			ID:     student.ID,
			Name:   student.Name,
			UserID: student.UserID,
		},
		Courses: toEnrolledCourseResponses(courses),
	}})
}

// Enroll adds the calling student to a course
func (c *StudentController) Enroll(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	courseID, err := strconv.ParseInt(ctx.Param("courseId"), 10, 64)
	if err != nil || courseID <= 0 {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "The course id must be a positive integer").WithField("course_id")
		ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(detail))
		return
	}

	if err := c.courseService.Enroll(ctx.Request.Context(), userID, courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: dto.SuccessResponse{Message: "Enrolled"}})
}

// ListCourses lists the calling student's enrolled courses
func (c *StudentController) ListCourses(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	_, courses, err := c.courseService.ListEnrolled(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: toEnrolledCourseResponses(courses)})
}

func toEnrolledCourseResponses(courses []models.EnrolledCourse) []dto.EnrolledCourseResponse {
	out := make([]dto.EnrolledCourseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, dto.EnrolledCourseResponse{
			ID:          c.ID,
			Title:       c.Title,
			TeacherName: c.TeacherName,
		})
	}
	return out
}
