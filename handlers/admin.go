package handlers

import (
	"errors"
	"net/http"

	"bakehouse/models"
	"bakehouse/services/admin"
	"bakehouse/services/availability"
	"bakehouse/services/order"
	"bakehouse/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler exposes the capacity console: operator login, the calendar
// with block/unblock controls, and per-date order management.
type AdminHandler struct {
	Auth         admin.AdminService
	Availability availability.AvailabilityService
	Orders       order.OrderService
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(auth admin.AdminService, avail availability.AvailabilityService, orders order.OrderService) *AdminHandler {
	return &AdminHandler{Auth: auth, Availability: avail, Orders: orders}
}

// Login authenticates the operator and returns a session token.
func (h *AdminHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid login payload", err.Error())
		return
	}

	token, err := h.Auth.Authenticate(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, admin.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, "invalid credentials", "")
			return
		}
		getLogger(c).Error("admin login failed", zap.Error(err))
		utils.JSONError(c, http.StatusServiceUnavailable, "could not log in", "please retry")
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// BlockDate closes a date to new orders. Success is reported as a flag so
// the console can surface a retry on store failure without crashing the flow.
func (h *AdminHandler) BlockDate(c *gin.Context) {
	var input struct {
		Date   string `json:"date" binding:"required"`
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid block payload", err.Error())
		return
	}

	if err := h.Availability.BlockDate(input.Date, input.Reason); err != nil {
		if errors.Is(err, availability.ErrInvalidDate) {
			utils.JSONError(c, http.StatusBadRequest, "invalid date", err.Error())
			return
		}
		getLogger(c).Error("block failed", zap.String("date", input.Date), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "date": input.Date})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "date": input.Date})
}

// UnblockDate reopens a date.
func (h *AdminHandler) UnblockDate(c *gin.Context) {
	date := c.Param("date")
	if err := h.Availability.UnblockDate(date); err != nil {
		if errors.Is(err, availability.ErrInvalidDate) {
			utils.JSONError(c, http.StatusBadRequest, "invalid date", err.Error())
			return
		}
		getLogger(c).Error("unblock failed", zap.String("date", date), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "date": date})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "date": date})
}

// ListOrdersForDate returns all orders delivering on a date.
func (h *AdminHandler) ListOrdersForDate(c *gin.Context) {
	date := c.Param("date")
	orders, err := h.Orders.ListOrdersForDate(date)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidDate) {
			utils.JSONError(c, http.StatusBadRequest, "invalid date", err.Error())
			return
		}
		getLogger(c).Error("order listing failed", zap.String("date", date), zap.Error(err))
		utils.JSONError(c, http.StatusServiceUnavailable, "could not load orders", "please retry")
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "orders": orders})
}

// ListOrders returns orders in a range, optionally filtered by status.
func (h *AdminHandler) ListOrders(c *gin.Context) {
	start := c.Query("start")
	end := c.Query("end")

	var statuses []models.OrderStatus
	if s := c.Query("status"); s != "" {
		status := models.OrderStatus(s)
		if !status.IsValid() {
			utils.JSONError(c, http.StatusBadRequest, "unknown status", s)
			return
		}
		statuses = append(statuses, status)
	}

	orders, err := h.Orders.ListOrders(start, end, statuses)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidDate) || errors.Is(err, availability.ErrInvalidWindow) {
			utils.JSONError(c, http.StatusBadRequest, "invalid range", err.Error())
			return
		}
		getLogger(c).Error("order listing failed", zap.Error(err))
		utils.JSONError(c, http.StatusServiceUnavailable, "could not load orders", "please retry")
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// UpdateOrderStatus applies a lifecycle transition to an order.
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	id := c.Param("id")

	var input struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid status payload", err.Error())
		return
	}

	updated, err := h.Orders.Transition(id, input.Status)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			utils.JSONError(c, http.StatusNotFound, "order not found", id)
		case errors.Is(err, order.ErrInvalidTransition):
			utils.JSONError(c, http.StatusConflict, "invalid status transition", err.Error())
		default:
			getLogger(c).Error("status update failed", zap.String("orderID", id), zap.Error(err))
			utils.JSONError(c, http.StatusServiceUnavailable, "could not update order", "please retry")
		}
		return
	}
	c.JSON(http.StatusOK, updated)
}
