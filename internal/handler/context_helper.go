package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/acadsync/timetable-api/internal/middleware"
	"github.com/acadsync/timetable-api/internal/models"
)

func claimsFrom(c *gin.Context) (*models.AccessClaims, bool) {
	return middleware.ClaimsFrom(c)
}

// pageParams reads the shared page/limit/sort/order query parameters.
func pageParams(c *gin.Context) (page, size int, sortBy, order string) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	return page, size, c.Query("sort"), c.Query("order")
}

func searchParam(c *gin.Context) string {
	return strings.TrimSpace(c.Query("search"))
}
