package checkout

import (
	"errors"
	"fmt"
	"strings"
	"time"

	orderRepo "bakehouse/database/repository/order"
	"bakehouse/models"
	"bakehouse/services/availability"
	"bakehouse/services/cart"
	"bakehouse/services/order"
	"bakehouse/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrEmptyCart rejects a checkout against an empty or expired cart.
var ErrEmptyCart = errors.New("cart is empty")

// DeliveryDateValidator applies the booking-window rule to a delivery date.
// Satisfied by the order service so checkout and direct submission can never
// disagree on what "inside the window" means.
type DeliveryDateValidator interface {
	ValidateDeliveryDate(date string) error
}

// CheckoutService drives the card payment path: cart -> pending_payment
// order -> hosted payment page -> webhook confirmation.
type CheckoutService interface {
	// CreateSession turns the cart into a pending_payment order and returns
	// it with the hosted payment page URL. The order does not consume
	// delivery-date capacity until the payment completes.
	CreateSession(input models.CheckoutInput) (*models.Order, string, error)
	// HandlePaymentCompleted confirms the order for a paid session under the
	// capacity guard. Safe to call repeatedly; webhook deliveries are
	// at-least-once.
	HandlePaymentCompleted(sessionID string) (*models.Order, error)
	// HandleSessionExpired cancels the order for an abandoned session.
	HandleSessionExpired(sessionID string) error
}

// ExpiryScheduler schedules the fallback cancellation of a pending_payment
// order in case the processor never reports an outcome.
type ExpiryScheduler interface {
	ScheduleExpiry(orderID string, at time.Time) error
}

// DefaultCheckoutService implements CheckoutService.
type DefaultCheckoutService struct {
	Orders       orderRepo.OrderRepository
	Carts        cart.CartService
	Availability availability.AvailabilityService
	Dates        DeliveryDateValidator
	Gateway      PaymentGateway
	Expiry       ExpiryScheduler
	Policy       availability.Policy
	Currency     string
	PendingTTL   time.Duration
}

// CreateSession validates the delivery date, snapshots the cart into a
// pending_payment order and opens a payment session for it.
func (s *DefaultCheckoutService) CreateSession(input models.CheckoutInput) (*models.Order, string, error) {
	logger := utils.GetLogger()

	cartData, err := s.Carts.Get(input.CartSessionID)
	if err != nil {
		if errors.Is(err, cart.ErrCartNotFound) {
			return nil, "", ErrEmptyCart
		}
		return nil, "", err
	}
	if len(cartData.Items) == 0 {
		return nil, "", ErrEmptyCart
	}

	if err := s.Dates.ValidateDeliveryDate(input.DeliveryDate); err != nil {
		return nil, "", err
	}
	// Advisory only: the binding capacity check happens at payment
	// confirmation, so an abandoned checkout can never hold a slot.
	admissible, err := s.Availability.IsDateAdmissible(input.DeliveryDate)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check availability for %s: %w", input.DeliveryDate, err)
	}
	if !admissible {
		return nil, "", order.ErrDateUnavailable
	}

	items := make([]models.OrderItem, 0, len(cartData.Items))
	for _, it := range cartData.Items {
		items = append(items, models.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		})
	}

	ord := &models.Order{
		ID:              uuid.New().String(),
		CustomerName:    strings.TrimSpace(input.CustomerName),
		CustomerEmail:   strings.ToLower(strings.TrimSpace(input.CustomerEmail)),
		CustomerPhone:   strings.TrimSpace(input.CustomerPhone),
		DeliveryAddress: strings.TrimSpace(input.DeliveryAddress),
		Items:           items,
		Notes:           input.Notes,
		DeliveryDate:    input.DeliveryDate,
		Status:          models.StatusPendingPayment,
		Total:           cartData.Total(),
		Currency:        s.Currency,
	}

	sessionID, url, err := s.Gateway.CreateSession(ord, input.SuccessURL, input.CancelURL)
	if err != nil {
		return nil, "", err
	}
	ord.CheckoutSessionID = sessionID

	if err := s.Orders.Create(ord); err != nil {
		return nil, "", err
	}

	if err := s.Expiry.ScheduleExpiry(ord.ID, time.Now().Add(s.PendingTTL)); err != nil {
		// The session's own expiry webhook is the primary cleanup; the
		// scheduled task is the fallback. Losing it is not fatal.
		logger.Error("failed to schedule pending-payment expiry", zap.String("orderID", ord.ID), zap.Error(err))
	}
	if err := s.Carts.Clear(cartData.SessionID); err != nil {
		logger.Warn("failed to clear cart after checkout", zap.String("cartSession", cartData.SessionID), zap.Error(err))
	}

	logger.Info("checkout session created",
		zap.String("orderID", ord.ID),
		zap.String("deliveryDate", ord.DeliveryDate),
		zap.Float64("total", ord.Total))
	return ord, url, nil
}

// HandlePaymentCompleted moves the session's order from pending_payment to
// pending iff its delivery date still has capacity. When the date filled up
// while the customer was paying, the order is cancelled and flagged for a
// refund rather than silently overbooking the date.
func (s *DefaultCheckoutService) HandlePaymentCompleted(sessionID string) (*models.Order, error) {
	logger := utils.GetLogger()

	ord, err := s.Orders.GetByCheckoutSession(sessionID)
	if err != nil {
		return nil, err
	}

	confirmed, err := s.Orders.ConfirmPaymentIfCapacityAvailable(ord.ID, s.Policy.CapacityPerDay)
	if errors.Is(err, orderRepo.ErrNotAwaitingPayment) {
		// Webhook retry after we already processed the outcome.
		return ord, nil
	}
	if errors.Is(err, orderRepo.ErrCapacityExceeded) {
		if cancelErr := s.Orders.UpdateStatus(ord.ID, models.StatusCancelled); cancelErr != nil {
			logger.Error("failed to cancel over-capacity paid order", zap.String("orderID", ord.ID), zap.Error(cancelErr))
		}
		logger.Error("paid order lost the capacity race, refund required",
			zap.String("orderID", ord.ID),
			zap.String("deliveryDate", ord.DeliveryDate),
			zap.String("checkoutSession", sessionID))
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	logger.Info("payment confirmed", zap.String("orderID", confirmed.ID), zap.String("deliveryDate", confirmed.DeliveryDate))
	return confirmed, nil
}

// HandleSessionExpired cancels the order for an abandoned checkout session.
func (s *DefaultCheckoutService) HandleSessionExpired(sessionID string) error {
	ord, err := s.Orders.GetByCheckoutSession(sessionID)
	if err != nil {
		if errors.Is(err, orderRepo.ErrNotFound) {
			return nil
		}
		return err
	}
	if ord.Status != models.StatusPendingPayment {
		return nil
	}
	if err := s.Orders.UpdateStatus(ord.ID, models.StatusCancelled); err != nil {
		return err
	}
	utils.GetLogger().Info("abandoned checkout cancelled", zap.String("orderID", ord.ID))
	return nil
}
