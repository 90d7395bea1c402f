package consumer

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"swapnest/internal/service"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Consumer listens for order events and drops the cached copy of every
// product that was just sold, so readers never see a stale "available" state.
type Consumer struct {
	reader   *kafka.Reader
	products *service.ProductService
}

func NewConsumer(reader *kafka.Reader, products *service.ProductService) *Consumer {
	return &Consumer{reader: reader, products: products}
}

type orderEvent struct {
	OrderID    int    `json:"order_id"`
	UserID     int    `json:"user_id"`
	Total      string `json:"total"`
	ProductIDs []int  `json:"product_ids"`
	Timestamp  int64  `json:"timestamp"`
}

// Run blocks until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error().Msgf("Error reading message: %v", err)
			continue
		}
		c.processMessage(ctx, msg)
	}
}

func (c *Consumer) processMessage(ctx context.Context, msg kafka.Message) {
	key := string(msg.Key)
	if !strings.HasPrefix(key, "order-created-") {
		logger.Warn().Msgf("Skipping event with unknown key: %s", key)
		return
	}

	var event orderEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		logger.Error().Msgf("Error unmarshalling message: %v", err)
		return
	}

	for _, productID := range event.ProductIDs {
		c.products.EvictProduct(ctx, productID)
	}
	logger.Info().Msgf("Evicted %d cached products for order %d", len(event.ProductIDs), event.OrderID)
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
