package api

import (
	"context"
	"log"
	stdhttp "net/http"
	"time"

	h "publicweb/internal/http/handlers"
	"publicweb/internal/http/middleware"
	"publicweb/internal/services"
	"publicweb/internal/web"

	"github.com/gin-gonic/gin"
)

// Options wires the router to its dependencies.
type Options struct {
	// Backend answers the finish page (remote API client or local service).
	Backend h.Backend
	// Local, when set, also exposes the public checkout JSON API.
	Local *services.CheckoutService

	PendingRefresh time.Duration
	BookingURL     string
	CORSOrigins    []string
	HealthChecks   map[string]func(ctx context.Context) error
}

func NewRouter(opts Options) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}
	r.SetHTMLTemplate(web.MustTemplates())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	page := h.CheckoutPage{
		Backend:        opts.Backend,
		PendingRefresh: opts.PendingRefresh,
		BookingURL:     opts.BookingURL,
	}
	finish := r.Group("/checkout/finish")
	{
		finish.GET("", page.Finish)
		finish.POST("/retry", page.Retry)
		finish.GET("/receipt", page.Receipt)
	}

	api := r.Group("/api")
	api.Use(middleware.CORS(opts.CORSOrigins))
	{
		api.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })
		api.GET("/health", h.System{Checks: opts.HealthChecks}.Health)

		if opts.Local != nil {
			public := h.PublicCheckout{Service: *opts.Local}
			checkout := api.Group("/public/checkout")
			checkout.GET("/:order_id/status", public.Status)
			checkout.POST("/:order_id/retry", public.Retry)
		}
	}

	return r
}
