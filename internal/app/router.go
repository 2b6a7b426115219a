// internal/app/router.go
package app

import (
	"time"

	invoiceHandler "hh-order-service/internal/handlers/invoice"
	orderHandler "hh-order-service/internal/handlers/order"
	"hh-order-service/internal/pkg/auth"
	"hh-order-service/internal/pkg/ratelimit"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	OrderHandler   *orderHandler.OrderHandler
	InvoiceHandler *invoiceHandler.InvoiceHandler
	AuthMiddleware *auth.Middleware
	Limiter        *ratelimit.Limiter
	Logger         *zap.Logger
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== Orders (authenticated) ====================
	orders := api.Group("/orders")
	orders.Use(h.AuthMiddleware.Require())
	{
		orders.POST("", h.OrderHandler.CreateOrder)
		orders.GET("/:orderId", h.OrderHandler.GetOrder)
		orders.PUT("/:orderId/payment-status", h.OrderHandler.UpdatePaymentStatus)
	}

	// ==================== Invoice plugin surface (public) ====================
	invoices := r.Group("/download-invoice")
	invoices.Use(ratelimit.Middleware(h.Limiter, 30, time.Minute, h.Logger))
	{
		invoices.GET("/generate/:orderId", h.InvoiceHandler.Generate)
		invoices.GET("/download/:id", h.InvoiceHandler.Download)
		invoices.POST("/send-email", h.InvoiceHandler.SendEmail)
		invoices.GET("/events/:orderId", h.InvoiceHandler.Events)
	}
}
