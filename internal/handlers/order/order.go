// internal/handlers/order/order.go
package order

import (
	"net/http"

	orderdomain "hh-order-service/internal/domain/order"
	xerrors "hh-order-service/internal/pkg/errors"
	"hh-order-service/internal/pkg/response"
	"hh-order-service/internal/service/allocator"
	"hh-order-service/internal/service/lifecycle"
	"hh-order-service/internal/service/registry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderHandler struct {
	registry  *registry.Registry
	allocator *allocator.Allocator
	monitor   *lifecycle.Monitor
	logger    *zap.Logger
}

func NewOrderHandler(reg *registry.Registry, alloc *allocator.Allocator, monitor *lifecycle.Monitor, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		registry:  reg,
		allocator: alloc,
		monitor:   monitor,
		logger:    logger,
	}
}

// CreateOrder resolves the customer, allocates an order identifier and
// persists the order. Allocation exhaustion and unexpected failures surface
// as a generic 500; internals stay in the server log.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req orderdomain.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	ctx := c.Request.Context()

	cust, err := h.registry.Resolve(ctx, &req.Customer)
	if err != nil {
		h.logger.Error("failed to resolve customer", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "failed to create order", nil)
		return
	}

	o, err := h.allocator.Allocate(ctx, &orderdomain.Draft{
		CustomerID:   cust.ID,
		Location:     req.Location,
		Package:      req.Package,
		Price:        req.Price,
		Total:        req.Total,
		CurrencyCode: req.CurrencyCode,
		PaymentID:    req.PaymentID,
		ResponseID:   req.ResponseID,
		Locale:       req.Locale,
	})
	if err != nil {
		h.logger.Error("failed to create order", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "failed to create order", nil)
		return
	}

	o.Customer = cust
	response.Success(c, http.StatusCreated, "order created", o)
}

// GetOrder returns one order, populated with its customer.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	o, err := h.monitor.GetOrder(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "order not found")
			return
		}
		h.logger.Error("failed to fetch order", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "failed to fetch order", nil)
		return
	}

	response.Success(c, http.StatusOK, "order", o)
}

// UpdatePaymentStatus drives the lifecycle monitor. The status change always
// commits; notification side effects never fail this request.
func (h *OrderHandler) UpdatePaymentStatus(c *gin.Context) {
	var req orderdomain.UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	o, err := h.monitor.UpdatePaymentStatus(c.Request.Context(), c.Param("orderId"), req.PaymentStatus)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "order not found")
			return
		}
		h.logger.Error("failed to update payment status", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "failed to update payment status", nil)
		return
	}

	response.Success(c, http.StatusOK, "payment status updated", o)
}
