package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// System serves liveness information.
type System struct {
	// Checks run on every health request; a failing check turns it into 503.
	Checks map[string]func(ctx context.Context) error
}

func (h System) Health(c *gin.Context) {
	status := http.StatusOK
	details := gin.H{}
	for name, check := range h.Checks {
		if err := check(c.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			details[name] = err.Error()
			continue
		}
		details[name] = "ok"
	}
	state := "ok"
	if status != http.StatusOK {
		state = "degraded"
	}
	c.JSON(status, gin.H{"status": state, "checks": details})
}
