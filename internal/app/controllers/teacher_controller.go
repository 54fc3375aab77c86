package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/schoolhub/schoolhub/internal/app/models"
	"github.com/schoolhub/schoolhub/internal/app/models/dto"
	"github.com/schoolhub/schoolhub/internal/app/services"
	"github.com/schoolhub/schoolhub/internal/middleware"
	"github.com/schoolhub/schoolhub/internal/pkg/apperrors"
)

// TeacherController handles the teacher-only surface
type TeacherController struct {
	courseService services.CourseService
}

// NewTeacherController creates a new TeacherController
func NewTeacherController(courseService services.CourseService) *TeacherController {
	return &TeacherController{courseService: courseService}
}

// Index is the teacher home: the profile plus taught courses with
// enrollment counts.
func (c *TeacherController) Index(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	teacher, courses, err := c.courseService.ListTaught(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.TeacherDashboardResponse{
		Teacher: dto.ProfileResponse{
			ID:     teacher.ID,
			Name:   teacher.Name,
			UserID: teacher.UserID,
		},
		Courses: toCourseResponses(courses),
	}})
}

// CreateCourse adds a course owned by the calling teacher
func (c *TeacherController) CreateCourse(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	var req dto.CreateCourseRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	course, err := c.courseService.CreateCourse(ctx.Request.Context(), userID, req.Title)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: dto.CourseResponse{
		ID:        course.ID,
		Title:     course.Title,
		TeacherID: course.TeacherID,
	}})
}

// ListCourses lists the calling teacher's courses
func (c *TeacherController) ListCourses(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	_, courses, err := c.courseService.ListTaught(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: toCourseResponses(courses)})
}

func toCourseResponses(courses []models.TaughtCourse) []dto.CourseResponse {
	out := make([]dto.CourseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, dto.CourseResponse{
			ID:           c.ID,
			Title:        c.Title,
			TeacherID:    c.TeacherID,
			StudentCount: c.StudentCount,
		})
	}
	return out
}
