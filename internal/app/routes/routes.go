package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/schoolhub/schoolhub/internal/app/controllers"
	"github.com/schoolhub/schoolhub/internal/app/models"
	"github.com/schoolhub/schoolhub/internal/middleware"
	"github.com/schoolhub/schoolhub/internal/pkg/auth"
)

// Controllers holds the controller instances served by the router
type Controllers struct {
	Auth    *controllers.AuthController
	Teacher *controllers.TeacherController
	Student *controllers.StudentController
}

// Setup registers all application routes
func Setup(router *gin.Engine, ctrl Controllers, jwtService *auth.JWTService) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public welcome page
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to SchoolHub"})
	})

	// Guest endpoints
	router.GET("/register", ctrl.Auth.ShowRegister)
	router.POST("/register", ctrl.Auth.Register)
	router.POST("/login", ctrl.Auth.Login)
	router.POST("/refresh", ctrl.Auth.RefreshToken)

	// Authenticated endpoints
	authenticated := router.Group("/", middleware.JWTAuth(jwtService))
	{
		authenticated.GET("/dashboard", ctrl.Auth.Dashboard)
		authenticated.POST("/logout", ctrl.Auth.Logout)

		teacher := authenticated.Group("/teacher", middleware.RequireRole(models.RoleTeacher))
		{
			teacher.GET("", ctrl.Teacher.Index)
			teacher.GET("/courses", ctrl.Teacher.ListCourses)
			teacher.POST("/courses", ctrl.Teacher.CreateCourse)
		}

		student := authenticated.Group("/student", middleware.RequireRole(models.RoleStudent))
		{
			student.GET("", ctrl.Student.Index)
			student.GET("/courses", ctrl.Student.ListCourses)
			student.POST("/courses/:courseId/enroll", ctrl.Student.Enroll)
		}
	}
}
