package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bakehouse/models"
	"bakehouse/services/order"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockOrderService struct {
	submitFn     func(input models.OrderInput) (*models.Order, error)
	getFn        func(id string) (*models.Order, error)
	cancelFn     func(id, email string) (*models.Order, error)
	transitionFn func(id string, next models.OrderStatus) (*models.Order, error)
}

func (m *mockOrderService) SubmitOrder(input models.OrderInput) (*models.Order, error) {
	if m.submitFn != nil {
		return m.submitFn(input)
	}
	return nil, order.ErrOrderNotFound
}
func (m *mockOrderService) GetOrder(id string) (*models.Order, error) {
	if m.getFn != nil {
		return m.getFn(id)
	}
	return nil, order.ErrOrderNotFound
}
func (m *mockOrderService) CancelOrder(id, email string) (*models.Order, error) {
	if m.cancelFn != nil {
		return m.cancelFn(id, email)
	}
	return nil, order.ErrOrderNotFound
}
func (m *mockOrderService) Transition(id string, next models.OrderStatus) (*models.Order, error) {
	if m.transitionFn != nil {
		return m.transitionFn(id, next)
	}
	return nil, order.ErrOrderNotFound
}
func (m *mockOrderService) ListOrdersForDate(date string) ([]models.Order, error) { return nil, nil }
func (m *mockOrderService) ListOrders(start, end string, statuses []models.OrderStatus) ([]models.Order, error) {
	return nil, nil
}

func orderRouter(svc order.OrderService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewOrderHandler(svc)
	r := gin.New()
	r.POST("/api/orders", h.SubmitOrder)
	r.GET("/api/orders/:id", h.GetOrder)
	r.POST("/api/orders/:id/cancel", h.CancelOrder)
	return r
}

func submitBody() []byte {
	b, _ := json.Marshal(models.OrderInput{
		CustomerName:    "Marta Kowalska",
		CustomerEmail:   "marta@example.com",
		DeliveryAddress: "12 Rynek, Wroclaw",
		DeliveryDate:    "2025-06-10",
		Items: []models.OrderItem{
			{ProductID: "p1", Name: "Sourdough loaf", UnitPrice: 6.5, Quantity: 1},
		},
	})
	return b
}

func TestSubmitOrderHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &mockOrderService{submitFn: func(input models.OrderInput) (*models.Order, error) {
			return &models.Order{ID: "ord-1", Status: models.StatusPending, DeliveryDate: input.DeliveryDate}, nil
		}}
		r := orderRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(submitBody()))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		var placed models.Order
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &placed))
		assert.Equal(t, "ord-1", placed.ID)
		assert.Equal(t, models.StatusPending, placed.Status)
	})

	t.Run("malformed payload", func(t *testing.T) {
		r := orderRouter(&mockOrderService{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader([]byte(`{"customer_name":""}`)))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("outside window", func(t *testing.T) {
		svc := &mockOrderService{submitFn: func(input models.OrderInput) (*models.Order, error) {
			return nil, order.ErrDateOutsideWindow
		}}
		r := orderRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(submitBody()))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("date unavailable and lost race map to the same conflict", func(t *testing.T) {
		for _, serr := range []error{order.ErrDateUnavailable, order.ErrCapacityExceeded} {
			svc := &mockOrderService{submitFn: func(input models.OrderInput) (*models.Order, error) {
				return nil, serr
			}}
			r := orderRouter(svc)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(submitBody()))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusConflict, w.Code)
			assert.Contains(t, w.Body.String(), "pick another")
		}
	})
}

func TestCancelOrderHandler(t *testing.T) {
	cancelReq := func(email string) *http.Request {
		body, _ := json.Marshal(gin.H{"email": email})
		req := httptest.NewRequest(http.MethodPost, "/api/orders/ord-1/cancel", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return req
	}

	t.Run("ok", func(t *testing.T) {
		svc := &mockOrderService{cancelFn: func(id, email string) (*models.Order, error) {
			return &models.Order{ID: id, Status: models.StatusCancelled}, nil
		}}
		r := orderRouter(svc)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, cancelReq("marta@example.com"))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("wrong email", func(t *testing.T) {
		svc := &mockOrderService{cancelFn: func(id, email string) (*models.Order, error) {
			return nil, order.ErrNotOrderOwner
		}}
		r := orderRouter(svc)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, cancelReq("intruder@example.com"))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("already completed", func(t *testing.T) {
		svc := &mockOrderService{cancelFn: func(id, email string) (*models.Order, error) {
			return nil, order.ErrInvalidTransition
		}}
		r := orderRouter(svc)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, cancelReq("marta@example.com"))

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		r := orderRouter(&mockOrderService{})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, cancelReq("marta@example.com"))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
