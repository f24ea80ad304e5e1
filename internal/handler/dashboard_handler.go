package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadsync/timetable-api/internal/models"
	appErrors "github.com/acadsync/timetable-api/pkg/errors"
	"github.com/acadsync/timetable-api/pkg/response"
)

type dashboardService interface {
	AdminOverview(ctx context.Context) (*models.AdminStats, error)
	SystemMetrics() models.SystemMetrics
	ForFaculty(ctx context.Context, facultyID string) (*models.FacultyDashboard, error)
	ForStudent(ctx context.Context, studentID string) (*models.StudentDashboard, error)
}

// DashboardHandler exposes the role-specific dashboard endpoints.
type DashboardHandler struct {
	dashboards dashboardService
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(dashboards dashboardService) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards}
}

// Admin godoc
// @Summary Admin dashboard with entity counts
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /api/dashboard/admin [get]
func (h *DashboardHandler) Admin(c *gin.Context) {
	stats, err := h.dashboards.AdminOverview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// System godoc
// @Summary Runtime metrics snapshot
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /api/dashboard/system [get]
func (h *DashboardHandler) System(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.dashboards.SystemMetrics(), nil)
}

// Faculty godoc
// @Summary Faculty dashboard for the authenticated instructor
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /api/dashboard/teacher [get]
func (h *DashboardHandler) Faculty(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	facultyID := ""
	switch claims.Role {
	case models.RoleFaculty:
		if claims.FacultyID != nil {
			facultyID = *claims.FacultyID
		}
	case models.RoleAdmin:
		facultyID = c.Query("facultyId")
	}
	if facultyID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "no faculty record is associated with this request"))
		return
	}

	dashboard, err := h.dashboards.ForFaculty(c.Request.Context(), facultyID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dashboard, nil)
}

// Student godoc
// @Summary Student dashboard for the authenticated student
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /api/dashboard/student [get]
func (h *DashboardHandler) Student(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	studentID := ""
	switch claims.Role {
	case models.RoleStudent:
		if claims.StudentID != nil {
			studentID = *claims.StudentID
		}
	case models.RoleAdmin:
		studentID = c.Query("studentId")
	}
	if studentID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "no student record is associated with this request"))
		return
	}

	dashboard, err := h.dashboards.ForStudent(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dashboard, nil)
}
