package handlers

import (
	"errors"
	"net/http"

	"bakehouse/models"
	"bakehouse/services/availability"
	"bakehouse/services/order"
	"bakehouse/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OrderHandler exposes the customer-facing order endpoints.
type OrderHandler struct {
	Svc order.OrderService
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(svc order.OrderService) *OrderHandler {
	return &OrderHandler{Svc: svc}
}

// SubmitOrder places a pay-at-pickup order for a delivery date.
func (h *OrderHandler) SubmitOrder(c *gin.Context) {
	logger := getLogger(c)

	var input models.OrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid order payload", err.Error())
		return
	}

	placed, err := h.Svc.SubmitOrder(input)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidDate), errors.Is(err, order.ErrEmptyOrder):
			utils.JSONError(c, http.StatusBadRequest, "invalid order", err.Error())
		case errors.Is(err, order.ErrDateOutsideWindow):
			utils.JSONError(c, http.StatusUnprocessableEntity, "delivery date outside booking window", err.Error())
		case errors.Is(err, order.ErrDateUnavailable), errors.Is(err, order.ErrCapacityExceeded):
			// Either the advisory check or the store-layer guard said no. The
			// UI must re-offer the calendar, not retry the same date.
			utils.JSONError(c, http.StatusConflict, "this date just became unavailable, please pick another", err.Error())
		default:
			logger.Error("order submission failed", zap.Error(err))
			utils.JSONError(c, http.StatusServiceUnavailable, "could not place order", "please retry")
		}
		return
	}

	c.JSON(http.StatusCreated, placed)
}

// GetOrder fetches one order by ID.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	found, err := h.Svc.GetOrder(id)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			utils.JSONError(c, http.StatusNotFound, "order not found", id)
			return
		}
		logger.Error("order fetch failed", zap.String("orderID", id), zap.Error(err))
		utils.JSONError(c, http.StatusServiceUnavailable, "could not load order", "please retry")
		return
	}
	c.JSON(http.StatusOK, found)
}

// CancelOrder is the customer self-cancel endpoint; the request email must
// match the order's customer email.
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid cancel payload", err.Error())
		return
	}

	cancelled, err := h.Svc.CancelOrder(id, input.Email)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			utils.JSONError(c, http.StatusNotFound, "order not found", id)
		case errors.Is(err, order.ErrNotOrderOwner):
			utils.JSONError(c, http.StatusForbidden, "email does not match order", "")
		case errors.Is(err, order.ErrInvalidTransition):
			utils.JSONError(c, http.StatusConflict, "order can no longer be cancelled", err.Error())
		default:
			logger.Error("order cancel failed", zap.String("orderID", id), zap.Error(err))
			utils.JSONError(c, http.StatusServiceUnavailable, "could not cancel order", "please retry")
		}
		return
	}
	c.JSON(http.StatusOK, cancelled)
}
