package workers

import (
	"context"
	"errors"
	"testing"

	orderRepo "bakehouse/database/repository/order"
	"bakehouse/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockOrderRepo struct {
	getByIDFn      func(id string) (*models.Order, error)
	updateStatusFn func(id string, status models.OrderStatus) error
}

func (m *mockOrderRepo) Create(order *models.Order) error { return nil }
func (m *mockOrderRepo) GetByID(id string) (*models.Order, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(id)
	}
	return nil, orderRepo.ErrNotFound
}
func (m *mockOrderRepo) GetByCheckoutSession(sessionID string) (*models.Order, error) {
	return nil, orderRepo.ErrNotFound
}
func (m *mockOrderRepo) UpdateStatus(id string, status models.OrderStatus) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(id, status)
	}
	return nil
}
func (m *mockOrderRepo) GetActiveSummariesByRange(start, end string) ([]models.OrderSummary, error) {
	return nil, nil
}
func (m *mockOrderRepo) CountActiveByDate(date string) (int64, error)   { return 0, nil }
func (m *mockOrderRepo) ListByDate(date string) ([]models.Order, error) { return nil, nil }
func (m *mockOrderRepo) ListByRange(start, end string, statuses []models.OrderStatus) ([]models.Order, error) {
	return nil, nil
}
func (m *mockOrderRepo) InsertIfCapacityAvailable(order *models.Order, limit int) error { return nil }
func (m *mockOrderRepo) ConfirmPaymentIfCapacityAvailable(id string, limit int) (*models.Order, error) {
	return nil, errors.New("not implemented")
}

func expiryTask(t *testing.T, orderID string) *asynq.Task {
	t.Helper()
	return asynq.NewTask(TypeExpirePendingPayment, []byte(`{"order_id":"`+orderID+`"}`))
}

func TestHandleExpiryTask(t *testing.T) {
	t.Run("cancels a stale pending_payment order", func(t *testing.T) {
		var cancelled models.OrderStatus
		repo := &mockOrderRepo{
			getByIDFn: func(id string) (*models.Order, error) {
				return &models.Order{ID: id, Status: models.StatusPendingPayment, DeliveryDate: "2025-06-10"}, nil
			},
			updateStatusFn: func(id string, status models.OrderStatus) error {
				cancelled = status
				return nil
			},
		}

		err := handleExpiryTask(repo)(context.Background(), expiryTask(t, "ord-1"))
		require.NoError(t, err)
		assert.Equal(t, models.StatusCancelled, cancelled)
	})

	t.Run("leaves a paid order alone", func(t *testing.T) {
		updated := false
		repo := &mockOrderRepo{
			getByIDFn: func(id string) (*models.Order, error) {
				return &models.Order{ID: id, Status: models.StatusPending}, nil
			},
			updateStatusFn: func(id string, status models.OrderStatus) error {
				updated = true
				return nil
			},
		}

		err := handleExpiryTask(repo)(context.Background(), expiryTask(t, "ord-1"))
		require.NoError(t, err)
		assert.False(t, updated)
	})

	t.Run("missing order is not retried", func(t *testing.T) {
		err := handleExpiryTask(&mockOrderRepo{})(context.Background(), expiryTask(t, "gone"))
		assert.NoError(t, err)
	})

	t.Run("store error is retried", func(t *testing.T) {
		storeErr := errors.New("timeout")
		repo := &mockOrderRepo{getByIDFn: func(id string) (*models.Order, error) {
			return nil, storeErr
		}}

		err := handleExpiryTask(repo)(context.Background(), expiryTask(t, "ord-1"))
		assert.ErrorIs(t, err, storeErr)
	})
}
