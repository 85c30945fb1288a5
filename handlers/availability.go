package handlers

import (
	"errors"
	"net/http"

	"bakehouse/services/availability"
	"bakehouse/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AvailabilityHandler exposes the delivery-calendar endpoints consumed by
// the ordering UI and the admin console.
type AvailabilityHandler struct {
	Svc availability.AvailabilityService
}

// NewAvailabilityHandler constructs an AvailabilityHandler.
func NewAvailabilityHandler(svc availability.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{Svc: svc}
}

// GetWindowAvailability returns the per-date availability for a window.
// Bounds default to the standard booking window when omitted.
func (h *AvailabilityHandler) GetWindowAvailability(c *gin.Context) {
	logger := getLogger(c)

	defStart, defEnd := h.Svc.DefaultWindow()
	start := c.DefaultQuery("start", defStart)
	end := c.DefaultQuery("end", defEnd)

	window, err := h.Svc.WindowAvailability(start, end)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidDate) || errors.Is(err, availability.ErrInvalidWindow) {
			utils.JSONError(c, http.StatusBadRequest, "invalid window", err.Error())
			return
		}
		// Fail closed: never show an empty-looking calendar on a store error.
		logger.Error("availability window failed", zap.String("start", start), zap.String("end", end), zap.Error(err))
		utils.JSONError(c, http.StatusServiceUnavailable, "could not load availability", "please retry")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"start": start,
		"end":   end,
		"dates": window,
	})
}

// CheckDate reports whether a single date is currently admissible.
func (h *AvailabilityHandler) CheckDate(c *gin.Context) {
	logger := getLogger(c)
	date := c.Param("date")

	admissible, err := h.Svc.IsDateAdmissible(date)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidDate) {
			utils.JSONError(c, http.StatusBadRequest, "invalid date", err.Error())
			return
		}
		logger.Error("admissibility check failed", zap.String("date", date), zap.Error(err))
		utils.JSONError(c, http.StatusServiceUnavailable, "could not check availability", "please retry")
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": date, "admissible": admissible})
}
