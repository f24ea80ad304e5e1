package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/acadsync/timetable-api/internal/models"
)

func performWithClaims(t *testing.T, claims *models.AccessClaims, roles ...models.UserRole) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/protected", func(c *gin.Context) {
		if claims != nil {
			c.Set(ContextUserKey, claims)
		}
		RequireRoles(roles...)(c)
		if !c.IsAborted() {
			c.Status(http.StatusOK)
		}
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))
	return rec
}

func TestRequireRolesAllows(t *testing.T) {
	rec := performWithClaims(t, &models.AccessClaims{Role: models.RoleAdmin}, models.RoleAdmin)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRolesForbids(t *testing.T) {
	rec := performWithClaims(t, &models.AccessClaims{Role: models.RoleStudent}, models.RoleAdmin)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRolesMissingClaims(t *testing.T) {
	rec := performWithClaims(t, nil, models.RoleAdmin)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRolesMultiple(t *testing.T) {
	rec := performWithClaims(t, &models.AccessClaims{Role: models.RoleFaculty}, models.RoleAdmin, models.RoleFaculty)
	assert.Equal(t, http.StatusOK, rec.Code)
}
