// File: database/repository/order/orderMongoQueries.go
package orderRepo

import (
	"fmt"
	"time"

	"bakehouse/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// activeFilter matches capacity-counting orders. Every capacity computation
// in the repository goes through this one filter so the admission recount
// and the availability projection can never disagree on which statuses count.
func activeFilter() bson.M {
	return bson.M{"$in": models.ActiveStatuses()}
}

// GetActiveSummariesByRange returns delivery date and status of active orders
// with delivery_date in [start, end] inclusive, projected down to the two
// fields the availability engine needs.
func (r *MongoOrderRepo) GetActiveSummariesByRange(start, end string) ([]models.OrderSummary, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"delivery_date": bson.M{"$gte": start, "$lte": end},
		"status":        activeFilter(),
	}
	opts := options.Find().SetProjection(bson.M{"delivery_date": 1, "status": 1, "_id": 0})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders in [%s, %s]: %w", start, end, err)
	}
	defer cursor.Close(ctx)

	var summaries []models.OrderSummary
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, fmt.Errorf("failed to decode order summaries: %w", err)
	}
	return summaries, nil
}

// CountActiveByDate counts active orders on a single delivery date.
func (r *MongoOrderRepo) CountActiveByDate(date string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{
		"delivery_date": date,
		"status":        activeFilter(),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count orders on %s: %w", date, err)
	}
	return count, nil
}

// ListByDate fetches all orders for a delivery date, any status, newest first.
func (r *MongoOrderRepo) ListByDate(date string) ([]models.Order, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"delivery_date": date}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders on %s: %w", date, err)
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

// ListByRange fetches orders with delivery_date in [start, end] inclusive,
// optionally filtered by status, sorted by delivery date.
func (r *MongoOrderRepo) ListByRange(start, end string, statuses []models.OrderStatus) ([]models.Order, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"delivery_date": bson.M{"$gte": start, "$lte": end}}
	if len(statuses) > 0 {
		filter["status"] = bson.M{"$in": statuses}
	}
	opts := options.Find().SetSort(bson.D{{Key: "delivery_date", Value: 1}, {Key: "created_at", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders in [%s, %s]: %w", start, end, err)
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}
