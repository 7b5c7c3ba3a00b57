package handlers

import (
	"strings"

	"publicweb/internal/services"

	"github.com/gin-gonic/gin"
)

// orderIDParam reads :order_id from the path. Stored orders have integer ids.
func orderIDParam(c *gin.Context) (int64, error) {
	return services.ParseOrderKey(c.Param("order_id"))
}

// wantsJSON is true for API-style callers of the HTML pages.
func wantsJSON(c *gin.Context) bool {
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}
