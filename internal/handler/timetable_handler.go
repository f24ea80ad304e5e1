package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/acadsync/timetable-api/internal/dto"
	"github.com/acadsync/timetable-api/internal/models"
	appErrors "github.com/acadsync/timetable-api/pkg/errors"
	"github.com/acadsync/timetable-api/pkg/response"
)

type timetableService interface {
	Generate(ctx context.Context) (*dto.GenerateTimetableResponse, error)
	ListAll(ctx context.Context) ([]models.TimetableEntryDetail, error)
	ForFaculty(ctx context.Context, facultyID string) ([]models.TimetableEntryDetail, error)
	ForStudent(ctx context.Context, studentID string) ([]models.TimetableEntryDetail, error)
}

type exportService interface {
	TimetableCSV(ctx context.Context) ([]byte, string, error)
	TimetablePDF(ctx context.Context) ([]byte, string, error)
}

type exportArchive interface {
	Keep(filename string, data []byte) (string, error)
	Fetch(token string) ([]byte, string, error)
}

// TimetableHandler exposes generation, viewing, and export endpoints.
type TimetableHandler struct {
	timetable timetableService
	exports   exportService
	archive   exportArchive
}

// NewTimetableHandler constructs TimetableHandler. The archive may be nil, in
// which case exports are served inline only.
func NewTimetableHandler(timetable timetableService, exports exportService, archive exportArchive) *TimetableHandler {
	return &TimetableHandler{timetable: timetable, exports: exports, archive: archive}
}

// Generate godoc
// @Summary Generate a new timetable, replacing the current one
// @Tags Timetable
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /api/timetable/generate [post]
func (h *TimetableHandler) Generate(c *gin.Context) {
	result, err := h.timetable.Generate(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// All godoc
// @Summary Get the complete current timetable
// @Tags Timetable
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /api/timetable [get]
func (h *TimetableHandler) All(c *gin.Context) {
	entries, err := h.timetable.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// ForFaculty godoc
// @Summary Get the authenticated instructor's timetable
// @Tags Timetable
// @Produce json
// @Security BearerAuth
// @Param facultyId query string false "Faculty ID (admin only)"
// @Success 200 {object} response.Envelope
// @Router /api/timetable/teacher [get]
func (h *TimetableHandler) ForFaculty(c *gin.Context) {
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

	entries, err := h.timetable.ForFaculty(c.Request.Context(), facultyID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// ForStudent godoc
// @Summary Get the authenticated student's batch timetable
// @Tags Timetable
// @Produce json
// @Security BearerAuth
// @Param studentId query string false "Student ID (admin only)"
// @Success 200 {object} response.Envelope
// @Router /api/timetable/student [get]
func (h *TimetableHandler) ForStudent(c *gin.Context) {
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

	entries, err := h.timetable.ForStudent(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// Export godoc
// @Summary Download the current timetable as CSV or PDF
// @Tags Timetable
// @Produce octet-stream
// @Security BearerAuth
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Router /api/timetable/export [get]
func (h *TimetableHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")

	var (
		payload     []byte
		filename    string
		contentType string
		err         error
	)
	switch format {
	case "csv":
		payload, filename, err = h.exports.TimetableCSV(c.Request.Context())
		contentType = "text/csv"
	case "pdf":
		payload, filename, err = h.exports.TimetablePDF(c.Request.Context())
		contentType = "application/pdf"
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.archive != nil {
		token, keepErr := h.archive.Keep(filename, payload)
		if keepErr != nil {
			response.Error(c, keepErr)
			return
		}
		c.Header("X-Download-Token", token)
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, payload)
}

// Download godoc
// @Summary Retrieve an archived export using a signed token
// @Tags Timetable
// @Produce octet-stream
// @Param token query string true "Signed download token"
// @Success 200 {file} binary
// @Failure 401 {object} response.Envelope
// @Router /api/timetable/export/download [get]
func (h *TimetableHandler) Download(c *gin.Context) {
	if h.archive == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "export archive is disabled"))
		return
	}

	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token query parameter is required"))
		return
	}

	payload, filename, err := h.archive.Fetch(token)
	if err != nil {
		response.Error(c, err)
		return
	}

	contentType := "application/octet-stream"
	switch {
	case strings.HasSuffix(filename, ".csv"):
		contentType = "text/csv"
	case strings.HasSuffix(filename, ".pdf"):
		contentType = "application/pdf"
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, payload)
}
