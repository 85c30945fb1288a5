package availability

import (
	"errors"
	"testing"
	"time"

	"bakehouse/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockOrderRepo struct {
	summariesFn func(start, end string) ([]models.OrderSummary, error)
	countFn     func(date string) (int64, error)
}

func (m *mockOrderRepo) Create(order *models.Order) error { return nil }
func (m *mockOrderRepo) GetByID(id string) (*models.Order, error) {
	return nil, errors.New("not implemented")
}
func (m *mockOrderRepo) GetByCheckoutSession(sessionID string) (*models.Order, error) {
	return nil, errors.New("not implemented")
}
func (m *mockOrderRepo) UpdateStatus(id string, status models.OrderStatus) error { return nil }
func (m *mockOrderRepo) GetActiveSummariesByRange(start, end string) ([]models.OrderSummary, error) {
	if m.summariesFn != nil {
		return m.summariesFn(start, end)
	}
	return nil, nil
}
func (m *mockOrderRepo) CountActiveByDate(date string) (int64, error) {
	if m.countFn != nil {
		return m.countFn(date)
	}
	return 0, nil
}
func (m *mockOrderRepo) ListByDate(date string) ([]models.Order, error) { return nil, nil }
func (m *mockOrderRepo) ListByRange(start, end string, statuses []models.OrderStatus) ([]models.Order, error) {
	return nil, nil
}
func (m *mockOrderRepo) InsertIfCapacityAvailable(order *models.Order, limit int) error { return nil }
func (m *mockOrderRepo) ConfirmPaymentIfCapacityAvailable(id string, limit int) (*models.Order, error) {
	return nil, errors.New("not implemented")
}

type mockBlockedRepo struct {
	upsertFn func(date, reason string) error
	deleteFn func(date string) error
	getFn    func(date string) (*models.BlockedDate, error)
	rangeFn  func(start, end string) ([]models.BlockedDate, error)
}

func (m *mockBlockedRepo) Upsert(date, reason string) error {
	if m.upsertFn != nil {
		return m.upsertFn(date, reason)
	}
	return nil
}
func (m *mockBlockedRepo) Delete(date string) error {
	if m.deleteFn != nil {
		return m.deleteFn(date)
	}
	return nil
}
func (m *mockBlockedRepo) GetByDate(date string) (*models.BlockedDate, error) {
	if m.getFn != nil {
		return m.getFn(date)
	}
	return nil, nil
}
func (m *mockBlockedRepo) GetByRange(start, end string) ([]models.BlockedDate, error) {
	if m.rangeFn != nil {
		return m.rangeFn(start, end)
	}
	return nil, nil
}

func summariesFor(dates ...string) []models.OrderSummary {
	out := make([]models.OrderSummary, 0, len(dates))
	for _, d := range dates {
		out = append(out, models.OrderSummary{DeliveryDate: d, Status: models.StatusPending})
	}
	return out
}

func newTestEngine(orders *mockOrderRepo, blocked *mockBlockedRepo) *DefaultEngine {
	e := NewDefaultEngine(orders, blocked, Policy{CapacityPerDay: 3, WindowDays: 60}, time.UTC)
	e.Now = func() time.Time {
		return time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)
	}
	return e
}

func TestWindowAvailabilityDerivesStatuses(t *testing.T) {
	orders := &mockOrderRepo{
		summariesFn: func(start, end string) ([]models.OrderSummary, error) {
			return summariesFor(
				"2025-06-10", "2025-06-10",
				"2025-06-11", "2025-06-11", "2025-06-11",
				"2025-06-12", "2025-06-12", "2025-06-12",
			), nil
		},
	}
	blocked := &mockBlockedRepo{
		rangeFn: func(start, end string) ([]models.BlockedDate, error) {
			return []models.BlockedDate{{Date: "2025-06-12", Reason: "holiday"}}, nil
		},
	}
	e := newTestEngine(orders, blocked)

	window, err := e.WindowAvailability("2025-06-09", "2025-06-12")
	require.NoError(t, err)
	require.Len(t, window, 4)

	// Zero orders, no block.
	assert.Equal(t, models.DateAvailable, window[0].Status)
	assert.Equal(t, 0, window[0].OrderCount)

	// Below the ceiling.
	assert.Equal(t, models.DateAvailable, window[1].Status)
	assert.Equal(t, 2, window[1].OrderCount)

	// At the ceiling.
	assert.Equal(t, models.DateFull, window[2].Status)
	assert.Equal(t, 3, window[2].OrderCount)

	// Blocked wins over full, and the block flag survives separately.
	assert.Equal(t, models.DateBlocked, window[3].Status)
	assert.Equal(t, 3, window[3].OrderCount)
	assert.True(t, window[3].IsBlocked)
}

func TestWindowAvailabilityCoversEveryDay(t *testing.T) {
	e := newTestEngine(&mockOrderRepo{}, &mockBlockedRepo{})

	start, end := e.DefaultWindow()
	assert.Equal(t, "2025-06-01", start)
	assert.Equal(t, "2025-07-31", end)

	window, err := e.WindowAvailability(start, end)
	require.NoError(t, err)
	require.Len(t, window, 61)
	assert.Equal(t, start, window[0].Date)
	assert.Equal(t, end, window[60].Date)
	for _, d := range window {
		assert.Equal(t, models.DateAvailable, d.Status)
	}
}

func TestWindowAvailabilitySingleDay(t *testing.T) {
	e := newTestEngine(&mockOrderRepo{}, &mockBlockedRepo{})

	window, err := e.WindowAvailability("2025-06-05", "2025-06-05")
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, "2025-06-05", window[0].Date)
}

func TestWindowAvailabilityFailsClosedOnStoreError(t *testing.T) {
	storeErr := errors.New("connection reset")

	orders := &mockOrderRepo{
		summariesFn: func(start, end string) ([]models.OrderSummary, error) {
			return nil, storeErr
		},
	}
	e := newTestEngine(orders, &mockBlockedRepo{})
	window, err := e.WindowAvailability("2025-06-01", "2025-06-03")
	assert.Nil(t, window)
	assert.ErrorIs(t, err, storeErr)

	blocked := &mockBlockedRepo{
		rangeFn: func(start, end string) ([]models.BlockedDate, error) {
			return nil, storeErr
		},
	}
	e = newTestEngine(&mockOrderRepo{}, blocked)
	window, err = e.WindowAvailability("2025-06-01", "2025-06-03")
	assert.Nil(t, window)
	assert.ErrorIs(t, err, storeErr)
}

func TestWindowAvailabilityRejectsBadWindows(t *testing.T) {
	e := newTestEngine(&mockOrderRepo{}, &mockBlockedRepo{})

	_, err := e.WindowAvailability("2025-06-10", "2025-06-09")
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = e.WindowAvailability("June 10", "2025-06-12")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = e.WindowAvailability("2025-06-10", "12/06/2025")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestIsDateAdmissible(t *testing.T) {
	t.Run("below ceiling", func(t *testing.T) {
		orders := &mockOrderRepo{countFn: func(date string) (int64, error) { return 2, nil }}
		e := newTestEngine(orders, &mockBlockedRepo{})

		ok, err := e.IsDateAdmissible("2025-06-10")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("at ceiling", func(t *testing.T) {
		orders := &mockOrderRepo{countFn: func(date string) (int64, error) { return 3, nil }}
		e := newTestEngine(orders, &mockBlockedRepo{})

		ok, err := e.IsDateAdmissible("2025-06-10")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("blocked short-circuits the count", func(t *testing.T) {
		counted := false
		orders := &mockOrderRepo{countFn: func(date string) (int64, error) {
			counted = true
			return 0, nil
		}}
		blocked := &mockBlockedRepo{getFn: func(date string) (*models.BlockedDate, error) {
			return &models.BlockedDate{Date: date, Reason: "oven maintenance"}, nil
		}}
		e := newTestEngine(orders, blocked)

		ok, err := e.IsDateAdmissible("2025-06-10")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.False(t, counted)
	})

	t.Run("fails closed on store error", func(t *testing.T) {
		storeErr := errors.New("timeout")
		orders := &mockOrderRepo{countFn: func(date string) (int64, error) { return 0, storeErr }}
		e := newTestEngine(orders, &mockBlockedRepo{})

		ok, err := e.IsDateAdmissible("2025-06-10")
		assert.False(t, ok)
		assert.ErrorIs(t, err, storeErr)
	})

	t.Run("invalid date", func(t *testing.T) {
		e := newTestEngine(&mockOrderRepo{}, &mockBlockedRepo{})

		ok, err := e.IsDateAdmissible("tomorrow")
		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}

func TestBlockDate(t *testing.T) {
	var gotDate, gotReason string
	blocked := &mockBlockedRepo{upsertFn: func(date, reason string) error {
		gotDate, gotReason = date, reason
		return nil
	}}
	e := newTestEngine(&mockOrderRepo{}, blocked)

	require.NoError(t, e.BlockDate("2025-06-15", "family event"))
	assert.Equal(t, "2025-06-15", gotDate)
	assert.Equal(t, "family event", gotReason)

	assert.ErrorIs(t, e.BlockDate("15-06-2025", "bad format"), ErrInvalidDate)
}

func TestUnblockDate(t *testing.T) {
	var gotDate string
	blocked := &mockBlockedRepo{deleteFn: func(date string) error {
		gotDate = date
		return nil
	}}
	e := newTestEngine(&mockOrderRepo{}, blocked)

	require.NoError(t, e.UnblockDate("2025-06-15"))
	assert.Equal(t, "2025-06-15", gotDate)

	assert.ErrorIs(t, e.UnblockDate(""), ErrInvalidDate)
}
