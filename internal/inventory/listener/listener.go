// Package listener consumes order events and deducts sold stock through the
// inventory usecase.
package listener

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/tindahan/pricing-service/internal/broker"
	"github.com/tindahan/pricing-service/internal/inventory"
	"github.com/tindahan/pricing-service/internal/inventory/dto"
	"github.com/tindahan/pricing-service/internal/logger"
)

var (
	ordersProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inventory_order_events_total",
		Help: "Order events consumed from the broker.",
	})
	deductionsApplied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inventory_sale_deductions_total",
		Help: "Sale line items deducted from stock.",
	})
	deductionFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_sale_deduction_failures_total",
		Help: "Sale deductions that could not be applied.",
	}, []string{"reason"})
)

// OrderCreatedEvent is the order service's published shape; only the fields
// stock deduction needs are decoded.
type OrderCreatedEvent struct {
	OrderID string `json:"order_id"`
	StoreID string `json:"store_id"`
	Items   []struct {
		ProductID string  `json:"product_id"`
		Quantity  float64 `json:"quantity"`
	} `json:"items"`
}

type OrderListener struct {
	consumer *broker.KafkaConsumer
	uc       inventory.UseCase
	logger   logger.Logger
}

func NewOrderListener(consumer *broker.KafkaConsumer, uc inventory.UseCase, log logger.Logger) *OrderListener {
	return &OrderListener{consumer: consumer, uc: uc, logger: log}
}

// Run consumes until the context is cancelled. Malformed or unapplicable
// events are logged and skipped; stopping the listener over one bad order
// would stall every store's stock.
func (l *OrderListener) Run(ctx context.Context) error {
	for {
		msg, err := l.consumer.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		ordersProcessed.Inc()

		var event OrderCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			deductionFailures.WithLabelValues("decode").Inc()
			l.logger.Error("malformed order event", zap.Error(err), zap.ByteString("payload", msg.Value))
			continue
		}

		for _, item := range event.Items {
			err := l.uc.DeductSale(ctx, &dto.DeductSaleInput{
				StoreID:   event.StoreID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				OrderID:   event.OrderID,
			})
			switch {
			case err == nil:
				deductionsApplied.Inc()
			case errors.Is(err, inventory.ErrInsufficientStock):
				deductionFailures.WithLabelValues("insufficient_stock").Inc()
				l.logger.Warn("order oversold product",
					zap.String("order_id", event.OrderID),
					zap.String("product_id", item.ProductID),
					zap.Float64("quantity", item.Quantity))
			default:
				deductionFailures.WithLabelValues("error").Inc()
				l.logger.Error("failed to deduct sale",
					zap.Error(err),
					zap.String("order_id", event.OrderID),
					zap.String("product_id", item.ProductID))
			}
		}
	}
}
