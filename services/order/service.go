package order

import (
	"fmt"
	"strings"
	"time"

	orderRepo "bakehouse/database/repository/order"
	"bakehouse/models"
	"bakehouse/services/availability"
	"bakehouse/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultOrderService implements OrderService.
type DefaultOrderService struct {
	Repo         orderRepo.OrderRepository
	Availability availability.AvailabilityService
	Policy       availability.Policy
	Currency     string
	Location     *time.Location
	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

// NewDefaultOrderService constructs the order service.
func NewDefaultOrderService(repo orderRepo.OrderRepository, avail availability.AvailabilityService, policy availability.Policy, currency string, loc *time.Location) *DefaultOrderService {
	if loc == nil {
		loc = time.Local
	}
	return &DefaultOrderService{
		Repo:         repo,
		Availability: avail,
		Policy:       policy,
		Currency:     currency,
		Location:     loc,
		Now:          time.Now,
	}
}

// ValidateDeliveryDate checks format and booking window: tomorrow through
// today+WindowDays, in the bakery's zone. Exported so the checkout path can
// apply the identical rule.
func (s *DefaultOrderService) ValidateDeliveryDate(date string) error {
	day, err := utils.ParseDate(date, s.Location)
	if err != nil {
		return fmt.Errorf("%w: %q", availability.ErrInvalidDate, date)
	}
	today := utils.Midnight(s.Now().In(s.Location))
	if !day.After(today) {
		return ErrDateOutsideWindow
	}
	if day.After(today.AddDate(0, 0, s.Policy.WindowDays)) {
		return ErrDateOutsideWindow
	}
	return nil
}

func orderTotal(items []models.OrderItem) float64 {
	var total float64
	for _, it := range items {
		total += it.UnitPrice * float64(it.Quantity)
	}
	return total
}

// SubmitOrder inserts a pay-at-pickup order under the capacity guard.
func (s *DefaultOrderService) SubmitOrder(input models.OrderInput) (*models.Order, error) {
	logger := utils.GetLogger()

	if len(input.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	if err := s.ValidateDeliveryDate(input.DeliveryDate); err != nil {
		return nil, err
	}

	// Advisory pre-check: catches blocked and visibly-full dates before the
	// write, so most losers get a clean rejection without a transaction.
	admissible, err := s.Availability.IsDateAdmissible(input.DeliveryDate)
	if err != nil {
		return nil, fmt.Errorf("failed to check availability for %s: %w", input.DeliveryDate, err)
	}
	if !admissible {
		return nil, ErrDateUnavailable
	}

	order := &models.Order{
		ID:              uuid.New().String(),
		CustomerName:    strings.TrimSpace(input.CustomerName),
		CustomerEmail:   strings.ToLower(strings.TrimSpace(input.CustomerEmail)),
		CustomerPhone:   strings.TrimSpace(input.CustomerPhone),
		DeliveryAddress: strings.TrimSpace(input.DeliveryAddress),
		Items:           input.Items,
		Notes:           input.Notes,
		DeliveryDate:    input.DeliveryDate,
		Status:          models.StatusPending,
		Total:           orderTotal(input.Items),
		Currency:        s.Currency,
	}

	// The pre-check read without a lock; the guard recounts transactionally.
	if err := s.Repo.InsertIfCapacityAvailable(order, s.Policy.CapacityPerDay); err != nil {
		return nil, err
	}

	logger.Info("order submitted",
		zap.String("orderID", order.ID),
		zap.String("deliveryDate", order.DeliveryDate),
		zap.Float64("total", order.Total))
	return order, nil
}

// GetOrder fetches an order by ID.
func (s *DefaultOrderService) GetOrder(id string) (*models.Order, error) {
	order, err := s.Repo.GetByID(id)
	if err == orderRepo.ErrNotFound {
		return nil, ErrOrderNotFound
	}
	return order, err
}

// CancelOrder cancels an order on behalf of the customer. The freed slot is
// visible to other customers on their next availability read.
func (s *DefaultOrderService) CancelOrder(id, email string) (*models.Order, error) {
	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(order.CustomerEmail, strings.TrimSpace(email)) {
		return nil, ErrNotOrderOwner
	}
	return s.transition(order, models.StatusCancelled)
}

// Transition applies an admin lifecycle change.
func (s *DefaultOrderService) Transition(id string, next models.OrderStatus) (*models.Order, error) {
	if !next.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, next)
	}
	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}
	return s.transition(order, next)
}

func (s *DefaultOrderService) transition(order *models.Order, next models.OrderStatus) (*models.Order, error) {
	if !order.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, next)
	}
	if err := s.Repo.UpdateStatus(order.ID, next); err != nil {
		if err == orderRepo.ErrNotFound {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	utils.GetLogger().Info("order status changed",
		zap.String("orderID", order.ID),
		zap.String("from", string(order.Status)),
		zap.String("to", string(next)))
	order.Status = next
	return order, nil
}

// ListOrdersForDate returns every order delivering on the date.
func (s *DefaultOrderService) ListOrdersForDate(date string) ([]models.Order, error) {
	if _, err := utils.ParseDate(date, s.Location); err != nil {
		return nil, fmt.Errorf("%w: %q", availability.ErrInvalidDate, date)
	}
	return s.Repo.ListByDate(date)
}

// ListOrders returns orders in the range, optionally filtered by status.
func (s *DefaultOrderService) ListOrders(start, end string, statuses []models.OrderStatus) ([]models.Order, error) {
	startDay, err := utils.ParseDate(start, s.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", availability.ErrInvalidDate, start)
	}
	endDay, err := utils.ParseDate(end, s.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", availability.ErrInvalidDate, end)
	}
	if endDay.Before(startDay) {
		return nil, availability.ErrInvalidWindow
	}
	return s.Repo.ListByRange(start, end, statuses)
}
