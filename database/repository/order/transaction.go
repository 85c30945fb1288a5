// File: database/repository/order/transaction.go
package orderRepo

import (
	"errors"
	"fmt"
	"time"

	"bakehouse/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// InsertIfCapacityAvailable inserts the order only if the transactional
// recount of active orders on its delivery date is still below limit.
//
// The advisory admissibility check the caller ran moments earlier reads
// without any lock, so two submissions racing for the last slot can both see
// it free. The recount here runs inside a session transaction against the
// same collection the insert writes to, which serializes the two and makes
// the loser fail with ErrCapacityExceeded instead of overbooking the date.
func (r *MongoOrderRepo) InsertIfCapacityAvailable(order *models.Order, limit int) error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session for guarded insert: %w", err)
	}
	defer session.EndSession(ctx)

	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		count, err := r.coll.CountDocuments(sc, bson.M{
			"delivery_date": order.DeliveryDate,
			"status":        activeFilter(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to recount orders on %s: %w", order.DeliveryDate, err)
		}
		if count >= int64(limit) {
			return nil, ErrCapacityExceeded
		}
		if _, err := r.coll.InsertOne(sc, order); err != nil {
			return nil, fmt.Errorf("failed to insert order: %w", err)
		}
		return nil, nil
	})
	return err
}

// ConfirmPaymentIfCapacityAvailable transitions a pending_payment order to
// pending under the same transactional recount. A pending_payment order does
// not hold a slot while the customer is on the payment page, so the date may
// have filled in the meantime; in that case the order is left untouched and
// ErrCapacityExceeded is returned for the caller to cancel and refund.
func (r *MongoOrderRepo) ConfirmPaymentIfCapacityAvailable(id string, limit int) (*models.Order, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	session, err := r.client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("failed to start session for payment confirmation: %w", err)
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var order models.Order
		err := r.coll.FindOne(sc, bson.M{"id": id}).Decode(&order)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("failed to fetch order %s: %w", id, err)
		}
		if order.Status != models.StatusPendingPayment {
			return nil, ErrNotAwaitingPayment
		}

		count, err := r.coll.CountDocuments(sc, bson.M{
			"delivery_date": order.DeliveryDate,
			"status":        activeFilter(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to recount orders on %s: %w", order.DeliveryDate, err)
		}
		if count >= int64(limit) {
			return nil, ErrCapacityExceeded
		}

		order.Status = models.StatusPending
		order.UpdatedAt = time.Now()
		update := bson.M{"$set": bson.M{"status": order.Status, "updated_at": order.UpdatedAt}}
		if _, err := r.coll.UpdateOne(sc, bson.M{"id": id}, update); err != nil {
			return nil, fmt.Errorf("failed to confirm payment on order %s: %w", id, err)
		}
		return &order, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.Order), nil
}
