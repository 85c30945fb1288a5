package blockedRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bakehouse/config"
	"bakehouse/database"
	"bakehouse/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBlockedDateRepo implements BlockedDateRepository using MongoDB.
type MongoBlockedDateRepo struct {
	coll *mongo.Collection
}

// NewMongoBlockedDateRepo creates a new instance of BlockedDateRepository using MongoDB.
func NewMongoBlockedDateRepo() BlockedDateRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("blocked_dates")
	repo := &MongoBlockedDateRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create blocked_dates indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoBlockedDateRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	// One block record per date.
	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes on blocked_dates: %w", err)
	}
	return nil
}

// Upsert creates or replaces the block record for a date.
func (r *MongoBlockedDateRepo) Upsert(date, reason string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	update := bson.M{
		"$set":         bson.M{"reason": reason, "updated_at": now},
		"$setOnInsert": bson.M{"date": date, "created_at": now},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, bson.M{"date": date}, update, opts); err != nil {
		return fmt.Errorf("failed to upsert block for %s: %w", date, err)
	}
	return nil
}

// Delete removes the block for a date if present.
func (r *MongoBlockedDateRepo) Delete(date string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	// DeletedCount of zero is fine: unblocking a never-blocked date is a no-op.
	if _, err := r.coll.DeleteOne(ctx, bson.M{"date": date}); err != nil {
		return fmt.Errorf("failed to delete block for %s: %w", date, err)
	}
	return nil
}

// GetByDate returns the block for a date, or nil when none exists.
func (r *MongoBlockedDateRepo) GetByDate(date string) (*models.BlockedDate, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var block models.BlockedDate
	err := r.coll.FindOne(ctx, bson.M{"date": date}).Decode(&block)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch block for %s: %w", date, err)
	}
	return &block, nil
}

// GetByRange returns all blocks with date in [start, end] inclusive.
func (r *MongoBlockedDateRepo) GetByRange(start, end string) ([]models.BlockedDate, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"date": bson.M{"$gte": start, "$lte": end}}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query blocks in [%s, %s]: %w", start, end, err)
	}
	defer cursor.Close(ctx)

	var blocks []models.BlockedDate
	if err := cursor.All(ctx, &blocks); err != nil {
		return nil, fmt.Errorf("failed to decode blocked dates: %w", err)
	}
	return blocks, nil
}
