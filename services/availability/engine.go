package availability

import (
	"fmt"
	"time"

	blockedRepo "bakehouse/database/repository/blocked"
	orderRepo "bakehouse/database/repository/order"
	"bakehouse/models"
	"bakehouse/utils"

	"go.uber.org/zap"
)

// Policy carries the booking-window knobs the engine is parameterized with.
// These are operational values injected from config, not engine constants.
type Policy struct {
	CapacityPerDay int // maximum simultaneous active orders per delivery date
	WindowDays     int // lookahead offered to customers, in days from today
}

// DefaultEngine is the production availability engine.
type DefaultEngine struct {
	Orders  orderRepo.OrderRepository
	Blocked blockedRepo.BlockedDateRepository
	Policy  Policy
	// Location anchors "today". The storefront serves a single bakery, so
	// all date arithmetic runs in its local zone rather than each client's.
	Location *time.Location
	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

// NewDefaultEngine constructs the engine with the given stores and policy.
func NewDefaultEngine(orders orderRepo.OrderRepository, blocked blockedRepo.BlockedDateRepository, policy Policy, loc *time.Location) *DefaultEngine {
	if loc == nil {
		loc = time.Local
	}
	return &DefaultEngine{
		Orders:   orders,
		Blocked:  blocked,
		Policy:   policy,
		Location: loc,
		Now:      time.Now,
	}
}

func (e *DefaultEngine) today() time.Time {
	return utils.Midnight(e.Now().In(e.Location))
}

// DefaultWindow returns [today, today+WindowDays] as date strings.
func (e *DefaultEngine) DefaultWindow() (string, string) {
	start := e.today()
	end := start.AddDate(0, 0, e.Policy.WindowDays)
	return utils.FormatDate(start), utils.FormatDate(end)
}

// WindowAvailability recomputes the per-date admission status for every
// calendar day in [start, end] inclusive.
//
// A failed store read fails the whole computation. Substituting an empty
// order list would silently report every date as wide open and let customers
// book dates whose true count is unknown.
func (e *DefaultEngine) WindowAvailability(start, end string) ([]models.DateAvailability, error) {
	logger := utils.GetLogger()

	startDay, err := utils.ParseDate(start, e.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, start)
	}
	endDay, err := utils.ParseDate(end, e.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, end)
	}
	if endDay.Before(startDay) {
		return nil, ErrInvalidWindow
	}

	summaries, err := e.Orders.GetActiveSummariesByRange(start, end)
	if err != nil {
		logger.Error("availability: orders fetch failed", zap.String("start", start), zap.String("end", end), zap.Error(err))
		return nil, fmt.Errorf("failed to load orders for window: %w", err)
	}
	blocks, err := e.Blocked.GetByRange(start, end)
	if err != nil {
		logger.Error("availability: blocked-dates fetch failed", zap.String("start", start), zap.String("end", end), zap.Error(err))
		return nil, fmt.Errorf("failed to load blocked dates for window: %w", err)
	}

	counts := make(map[string]int, len(summaries))
	for _, s := range summaries {
		counts[s.DeliveryDate]++
	}
	blocked := make(map[string]bool, len(blocks))
	for _, b := range blocks {
		blocked[b.Date] = true
	}

	result := make([]models.DateAvailability, 0, utils.DaysBetween(startDay, endDay))
	for d := startDay; !d.After(endDay); d = d.AddDate(0, 0, 1) {
		dateStr := utils.FormatDate(d)
		result = append(result, e.derive(dateStr, counts[dateStr], blocked[dateStr]))
	}
	return result, nil
}

// derive applies the one derivation rule: blocked beats full beats available.
func (e *DefaultEngine) derive(date string, orderCount int, isBlocked bool) models.DateAvailability {
	status := models.DateAvailable
	switch {
	case isBlocked:
		status = models.DateBlocked
	case orderCount >= e.Policy.CapacityPerDay:
		status = models.DateFull
	}
	return models.DateAvailability{
		Date:       date,
		Status:     status,
		OrderCount: orderCount,
		IsBlocked:  isBlocked,
	}
}

// IsDateAdmissible checks a single date without fetching the whole window.
// It uses the same active-status set and the same ceiling as the window
// projection; the two entry points must never diverge.
func (e *DefaultEngine) IsDateAdmissible(date string) (bool, error) {
	if _, err := utils.ParseDate(date, e.Location); err != nil {
		return false, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	block, err := e.Blocked.GetByDate(date)
	if err != nil {
		return false, fmt.Errorf("failed to check block for %s: %w", date, err)
	}
	if block != nil {
		return false, nil
	}

	count, err := e.Orders.CountActiveByDate(date)
	if err != nil {
		return false, fmt.Errorf("failed to count orders on %s: %w", date, err)
	}
	return count < int64(e.Policy.CapacityPerDay), nil
}

// BlockDate closes a date to new orders. Blocking is forward-looking only:
// orders already on the date keep their slots and are not flagged.
func (e *DefaultEngine) BlockDate(date, reason string) error {
	if _, err := utils.ParseDate(date, e.Location); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	if err := e.Blocked.Upsert(date, reason); err != nil {
		return fmt.Errorf("failed to block %s: %w", date, err)
	}
	utils.GetLogger().Info("date blocked", zap.String("date", date), zap.String("reason", reason))
	return nil
}

// UnblockDate reopens a date; unblocking a never-blocked date is a no-op.
func (e *DefaultEngine) UnblockDate(date string) error {
	if _, err := utils.ParseDate(date, e.Location); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	if err := e.Blocked.Delete(date); err != nil {
		return fmt.Errorf("failed to unblock %s: %w", date, err)
	}
	utils.GetLogger().Info("date unblocked", zap.String("date", date))
	return nil
}
