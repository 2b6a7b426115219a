package order

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	orderdomain "hh-order-service/internal/domain/order"
	"hh-order-service/internal/repository/memory"
	"hh-order-service/internal/service/allocator"
	"hh-order-service/internal/service/lifecycle"
	"hh-order-service/internal/service/mailer"
	"hh-order-service/internal/service/registry"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter() (*gin.Engine, *memory.OrderRepository) {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	customers := memory.NewCustomerRepository()
	orders := memory.NewOrderRepository()

	reg := registry.NewRegistry(customers, logger)
	alloc := allocator.NewAllocator(orders, "HH-", 915100, logger)
	monitor := lifecycle.NewMonitor(orders, nil, nil, mailer.NewTemplateSet(), nil, lifecycle.Config{}, logger)

	h := NewOrderHandler(reg, alloc, monitor, logger)

	r := gin.New()
	r.POST("/orders", h.CreateOrder)
	r.GET("/orders/:orderId", h.GetOrder)
	r.PUT("/orders/:orderId/payment-status", h.UpdatePaymentStatus)
	return r, orders
}

func createBody() []byte {
	raw, _ := json.Marshal(map[string]interface{}{
		"customer": map[string]string{
			"fullName":    "Amina Hassan",
			"email":       "amina@example.com",
			"phone":       "501234567",
			"countryCode": "+971",
		},
		"package":      map[string]interface{}{"title": "Deep Clean", "price": 250},
		"price":        250,
		"total":        262.50,
		"currencyCode": "AED",
		"locale":       "en",
	})
	return raw
}

func TestCreateOrder(t *testing.T) {
	r, orders := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(createBody()))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	stored := orders.All()
	require.Len(t, stored, 1)
	assert.Equal(t, "HH-915100", stored[0].OrderID)
	assert.Equal(t, orderdomain.StatusPaymentPending, stored[0].PaymentStatus)
}

func TestCreateOrder_InvalidBody(t *testing.T) {
	r, _ := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader([]byte(`{"customer":{}}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOrder_NotFound(t *testing.T) {
	r, _ := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders/HH-000000", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdatePaymentStatus_NonActionable(t *testing.T) {
	r, orders := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(createBody()))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	body := []byte(`{"paymentStatus":"Awaiting review"}`)
	req = httptest.NewRequest(http.MethodPut, "/orders/HH-915100/payment-status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Awaiting review", orders.All()[0].PaymentStatus)
}
