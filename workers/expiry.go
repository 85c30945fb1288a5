package workers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"bakehouse/config"
	orderRepo "bakehouse/database/repository/order"
	"bakehouse/models"

	"github.com/hibiken/asynq"
)

const TypeExpirePendingPayment = "order:expire_pending_payment"

// ExpiryPayload identifies the order a scheduled expiry check targets.
type ExpiryPayload struct {
	OrderID string `json:"order_id"`
}

// AsynqExpiryScheduler enqueues delayed expiry tasks for checkout orders.
type AsynqExpiryScheduler struct {
	client *asynq.Client
}

// NewAsynqExpiryScheduler creates a scheduler on the queue Redis DB.
func NewAsynqExpiryScheduler() *AsynqExpiryScheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	return &AsynqExpiryScheduler{client: client}
}

// ScheduleExpiry enqueues a task that fires at the given time.
func (s *AsynqExpiryScheduler) ScheduleExpiry(orderID string, at time.Time) error {
	b, err := json.Marshal(ExpiryPayload{OrderID: orderID})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeExpirePendingPayment, b)
	_, err = s.client.Enqueue(task, asynq.ProcessAt(at))
	return err
}

// InitExpiryWorker runs the async worker in background. The worker is the
// fallback for checkout sessions whose expiry webhook never arrives: any
// order still pending_payment when its task fires gets cancelled, so an
// abandoned checkout cannot linger in the store forever.
func InitExpiryWorker(orders orderRepo.OrderRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeExpirePendingPayment, handleExpiryTask(orders))

	// Start async worker with retry logic
	go func() {
		log.Println("[ExpiryWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ExpiryWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ExpiryWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleExpiryTask(orders orderRepo.OrderRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p ExpiryPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ExpiryHandler] invalid payload: %v", err)
			return err
		}

		order, err := orders.GetByID(p.OrderID)
		if errors.Is(err, orderRepo.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if order.Status != models.StatusPendingPayment {
			// Payment completed or the expiry webhook beat us to it.
			return nil
		}

		log.Printf("[ExpiryHandler] cancelling stale pending_payment order %s (delivery %s)", order.ID, order.DeliveryDate)
		return orders.UpdateStatus(order.ID, models.StatusCancelled)
	}
}
