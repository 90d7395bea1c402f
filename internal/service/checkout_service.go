package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/segmentio/kafka-go"

	"swapnest/internal/entity"
)

// CheckoutService drives the settlement engine: idempotency guard in front,
// one transparent retry on a lost sale race, order event publishing behind.
type CheckoutService struct {
	settlement  settler
	idem        idempotencyGuard
	kafkaWriter *kafka.Writer
}

func NewCheckoutService(settlement settler, rdb *redis.Client, kafkaWriter *kafka.Writer) *CheckoutService {
	return &CheckoutService{
		settlement:  settlement,
		idem:        &redisIdempotencyGuard{rdb: rdb},
		kafkaWriter: kafkaWriter,
	}
}

func (s *CheckoutService) Checkout(ctx context.Context, buyerID int, idempotentKey string) (*entity.Order, error) {
	if idempotentKey != "" {
		fresh, err := s.idem.Claim(ctx, idempotentKey)
		if err != nil {
			return nil, err
		}
		if !fresh {
			return nil, entity.NewBusinessError(entity.KindDuplicateRequest,
				"This checkout request was already processed.")
		}
	}

	order, err := s.settlement.Settle(ctx, buyerID)
	if errors.Is(err, entity.ErrConflict) {
		// Re-enter the settlement transaction once; it re-reads and
		// re-validates the cart under fresh locks.
		logger.Warn().Msgf("Settlement conflict for buyer %d, retrying", buyerID)
		order, err = s.settlement.Settle(ctx, buyerID)
	}
	if errors.Is(err, entity.ErrConflict) {
		err = entity.NewBusinessError(entity.KindProductUnavailable,
			"A product in your cart was just sold to another buyer. Please review your cart.")
	}
	if err != nil {
		var be *entity.BusinessError
		if !errors.As(err, &be) {
			logger.Error().Err(err).Msgf("Settlement failed for buyer %d", buyerID)
		}
		// Nothing was settled, so the key must not block a later retry of
		// the same request once the cause is fixed.
		if idempotentKey != "" {
			s.idem.Release(ctx, idempotentKey)
		}
		return nil, err
	}

	s.publishOrderEvent(ctx, order)
	return order, nil
}

// idempotencyGuard holds checkout request keys so resubmitted requests are
// answered without settling twice.
type idempotencyGuard interface {
	// Claim reports whether the key is seen for the first time.
	Claim(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string)
}

type redisIdempotencyGuard struct {
	rdb *redis.Client
}

func (g *redisIdempotencyGuard) Claim(ctx context.Context, key string) (bool, error) {
	if os.Getenv("ENV") == "test" {
		return true, nil
	}
	val, err := g.rdb.Get(ctx, idempotentRedisKey(key)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, err
	}
	if val != "" {
		return false, nil
	}
	return true, g.rdb.Set(ctx, idempotentRedisKey(key), "exists", 24*time.Hour).Err()
}

func (g *redisIdempotencyGuard) Release(ctx context.Context, key string) {
	if os.Getenv("ENV") == "test" {
		return
	}
	if err := g.rdb.Del(ctx, idempotentRedisKey(key)).Err(); err != nil {
		logger.Error().Err(err).Msgf("Error releasing idempotent key %s", key)
	}
}

func idempotentRedisKey(key string) string {
	return fmt.Sprintf("idempotent-key:%s", key)
}

type orderEvent struct {
	OrderID    int    `json:"order_id"`
	UserID     int    `json:"user_id"`
	Total      string `json:"total"`
	ProductIDs []int  `json:"product_ids"`
	Timestamp  int64  `json:"timestamp"`
}

// publishOrderEvent is best-effort: the settlement is already committed, so
// a broker hiccup must not fail the checkout.
func (s *CheckoutService) publishOrderEvent(ctx context.Context, order *entity.Order) {
	if os.Getenv("ENV") == "test" || s.kafkaWriter == nil {
		return
	}

	productIDs := make([]int, 0, len(order.Items))
	for _, item := range order.Items {
		productIDs = append(productIDs, item.ProductID)
	}
	payload, err := json.Marshal(orderEvent{
		OrderID:    order.ID,
		UserID:     order.UserID,
		Total:      order.Total.String(),
		ProductIDs: productIDs,
		Timestamp:  time.Now().Unix(),
	})
	if err != nil {
		logger.Error().Err(err).Msg("Error marshalling order event")
		return
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("order-created-%d", order.ID)),
		Value: payload,
	}
	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Error().Err(err).Msgf("Error publishing event for order %d", order.ID)
	}
}
