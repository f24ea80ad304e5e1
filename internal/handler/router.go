package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/acadsync/timetable-api/internal/middleware"
	"github.com/acadsync/timetable-api/internal/models"
	"github.com/acadsync/timetable-api/internal/service"
)

// Handlers bundles every HTTP handler for route registration.
type Handlers struct {
	Auth      *AuthHandler
	Rooms     *RoomHandler
	Batches   *BatchHandler
	Subjects  *SubjectHandler
	Faculty   *FacultyHandler
	Students  *StudentHandler
	Timetable *TimetableHandler
	Dashboard *DashboardHandler
}

// RegisterRoutes mounts the API surface under /api. Resource management is
// admin only; timetable and dashboard reads are scoped per role.
func RegisterRoutes(r *gin.Engine, h Handlers, auth *service.AuthService) {
	api := r.Group("/api")

	api.POST("/auth/login", h.Auth.Login)

	// Authenticated by the signed token itself.
	api.GET("/timetable/export/download", h.Timetable.Download)

	authed := api.Group("")
	authed.Use(middleware.JWT(auth))

	authed.GET("/auth/me", h.Auth.Me)

	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	rooms := authed.Group("/rooms", adminOnly)
	{
		rooms.GET("", h.Rooms.List)
		rooms.GET("/:id", h.Rooms.Get)
		rooms.POST("", h.Rooms.Create)
		rooms.PUT("/:id", h.Rooms.Update)
		rooms.DELETE("/:id", h.Rooms.Delete)
	}

	batches := authed.Group("/batches", adminOnly)
	{
		batches.GET("", h.Batches.List)
		batches.GET("/:id", h.Batches.Get)
		batches.POST("", h.Batches.Create)
		batches.PUT("/:id", h.Batches.Update)
		batches.DELETE("/:id", h.Batches.Delete)
	}

	subjects := authed.Group("/subjects", adminOnly)
	{
		subjects.GET("", h.Subjects.List)
		subjects.GET("/:id", h.Subjects.Get)
		subjects.POST("", h.Subjects.Create)
		subjects.PUT("/:id", h.Subjects.Update)
		subjects.DELETE("/:id", h.Subjects.Delete)
	}

	faculty := authed.Group("/faculty", adminOnly)
	{
		faculty.GET("", h.Faculty.List)
		faculty.GET("/:id", h.Faculty.Get)
		faculty.POST("", h.Faculty.Create)
		faculty.PUT("/:id", h.Faculty.Update)
		faculty.DELETE("/:id", h.Faculty.Delete)
	}

	students := authed.Group("/students", adminOnly)
	{
		students.GET("", h.Students.List)
		students.GET("/:id", h.Students.Get)
		students.POST("", h.Students.Create)
		students.PUT("/:id", h.Students.Update)
		students.DELETE("/:id", h.Students.Delete)
	}

	timetable := authed.Group("/timetable")
	{
		timetable.POST("/generate", adminOnly, h.Timetable.Generate)
		timetable.GET("", middleware.RequireRoles(models.RoleAdmin, models.RoleFaculty, models.RoleStudent), h.Timetable.All)
		timetable.GET("/teacher", middleware.RequireRoles(models.RoleAdmin, models.RoleFaculty), h.Timetable.ForFaculty)
		timetable.GET("/student", middleware.RequireRoles(models.RoleAdmin, models.RoleStudent), h.Timetable.ForStudent)
		timetable.GET("/export", adminOnly, h.Timetable.Export)
	}

	dashboard := authed.Group("/dashboard")
	{
		dashboard.GET("/admin", adminOnly, h.Dashboard.Admin)
		dashboard.GET("/system", adminOnly, h.Dashboard.System)
		dashboard.GET("/teacher", middleware.RequireRoles(models.RoleAdmin, models.RoleFaculty), h.Dashboard.Faculty)
		dashboard.GET("/student", middleware.RequireRoles(models.RoleAdmin, models.RoleStudent), h.Dashboard.Student)
	}
}
