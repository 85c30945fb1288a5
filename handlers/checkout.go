package handlers

import (
	"errors"
	"io"
	"net/http"

	"bakehouse/config"
	"bakehouse/models"
	"bakehouse/services/availability"
	"bakehouse/services/checkout"
	"bakehouse/services/order"
	"bakehouse/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

const maxWebhookBodyBytes = int64(65536)

// CheckoutHandler exposes the card-payment checkout flow.
type CheckoutHandler struct {
	Svc checkout.CheckoutService
}

// NewCheckoutHandler constructs a CheckoutHandler.
func NewCheckoutHandler(svc checkout.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{Svc: svc}
}

// CreateSession turns the caller's cart into a pending_payment order and
// returns the hosted payment page URL.
func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	logger := getLogger(c)

	var input models.CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid checkout payload", err.Error())
		return
	}

	placed, url, err := h.Svc.CreateSession(input)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			utils.JSONError(c, http.StatusBadRequest, "cart is empty or expired", "")
		case errors.Is(err, availability.ErrInvalidDate):
			utils.JSONError(c, http.StatusBadRequest, "invalid delivery date", err.Error())
		case errors.Is(err, order.ErrDateOutsideWindow):
			utils.JSONError(c, http.StatusUnprocessableEntity, "delivery date outside booking window", err.Error())
		case errors.Is(err, order.ErrDateUnavailable):
			utils.JSONError(c, http.StatusConflict, "this date just became unavailable, please pick another", err.Error())
		default:
			logger.Error("checkout session creation failed", zap.Error(err))
			utils.JSONError(c, http.StatusServiceUnavailable, "could not start checkout", "please retry")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"order":        placed,
		"checkout_url": url,
	})
}

// StripeWebhook receives payment outcomes from the processor. Deliveries are
// at-least-once, so every branch must tolerate replays.
func (h *CheckoutHandler) StripeWebhook(c *gin.Context) {
	logger := getLogger(c)

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "could not read webhook body", err.Error())
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), config.AppConfig.StripeWebhookSecret)
	if err != nil {
		logger.Warn("webhook signature verification failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "invalid webhook signature", "")
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		sessionID, ok := webhookSessionID(event)
		if !ok {
			logger.Error("webhook event missing session id", zap.String("eventID", event.ID))
			break
		}
		if _, err := h.Svc.HandlePaymentCompleted(sessionID); err != nil {
			// Capacity losses are logged inside the service with the refund
			// flag; anything else is worth a retry from the processor.
			if !errors.Is(err, order.ErrCapacityExceeded) {
				logger.Error("payment completion handling failed", zap.String("session", sessionID), zap.Error(err))
				utils.JSONError(c, http.StatusInternalServerError, "webhook handling failed", "")
				return
			}
		}
	case "checkout.session.expired":
		sessionID, ok := webhookSessionID(event)
		if !ok {
			logger.Error("webhook event missing session id", zap.String("eventID", event.ID))
			break
		}
		if err := h.Svc.HandleSessionExpired(sessionID); err != nil {
			logger.Error("session expiry handling failed", zap.String("session", sessionID), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "webhook handling failed", "")
			return
		}
	default:
		// Unsubscribed event type; acknowledge and move on.
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

func webhookSessionID(event stripe.Event) (string, bool) {
	obj := event.Data.Object
	if obj == nil {
		return "", false
	}
	id, ok := obj["id"].(string)
	return id, ok && id != ""
}
