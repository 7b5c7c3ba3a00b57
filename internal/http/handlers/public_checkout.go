package handlers

import (
	"net/http"

	"publicweb/internal/http/middleware"
	"publicweb/internal/services"

	"github.com/gin-gonic/gin"
)

// PublicCheckout serves the JSON API consumed by the finish page.
type PublicCheckout struct {
	Service services.CheckoutService
}

func (h PublicCheckout) service(c *gin.Context) services.CheckoutService {
	svc := h.Service
	svc.RequestID = middleware.GetRequestID(c)
	return svc
}

// GET /api/public/checkout/:order_id/status
func (h PublicCheckout) Status(c *gin.Context) {
	id, err := orderIDParam(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	st, err := h.service(c).Status(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, st)
}

// POST /api/public/checkout/:order_id/retry
func (h PublicCheckout) Retry(c *gin.Context) {
	id, err := orderIDParam(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	res, err := h.service(c).Retry(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, res)
}
