// Package event publishes cart lifecycle events to Kafka. The publisher is
// wired into the cart manager as an observer, so every effective mutation
// produces an event without the manager knowing about Kafka.
package event

import (
	"context"
	"log/slog"
	"time"

	"github.com/velostore/storefront/internal/domain"
	"github.com/velostore/storefront/pkg/kafka"
)

const (
	// TopicCartEvents is the topic cart events are published to.
	TopicCartEvents = "storefront.cart.events"

	// EventCartUpdated is emitted after any mutation leaving items in the cart.
	EventCartUpdated = "storefront.cart.updated"
	// EventCartCleared is emitted after a mutation leaving the cart empty.
	EventCartCleared = "storefront.cart.cleared"

	source         = "storefront"
	publishTimeout = 5 * time.Second
)

// CartEventData is the payload of a cart event.
type CartEventData struct {
	Items     []domain.Line `json:"items"`
	ItemCount int           `json:"itemCount"`
	Total     float64       `json:"total"`
	Timestamp time.Time     `json:"timestamp"`
}

// Publisher turns cart snapshots into Kafka events.
type Publisher struct {
	producer *kafka.Producer
	cartID   string
	logger   *slog.Logger
}

// NewPublisher creates a cart event publisher. cartID identifies this
// storefront instance's cart and becomes the event aggregate ID.
func NewPublisher(producer *kafka.Producer, cartID string, log *slog.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		cartID:   cartID,
		logger:   log,
	}
}

// Observe is the cart observer hook. Publish failures are logged and
// swallowed so a broker outage never breaks a cart mutation.
func (p *Publisher) Observe(cart domain.Cart) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	eventType := EventCartUpdated
	if cart.IsEmpty() {
		eventType = EventCartCleared
	}

	data := CartEventData{
		Items:     cart.Items,
		ItemCount: cart.Count(),
		Total:     cart.Total(),
		Timestamp: time.Now().UTC(),
	}

	evt, err := kafka.NewEvent(eventType, p.cartID, "cart", source, data)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to build cart event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()),
		)
		return
	}
	if err := p.producer.Publish(ctx, TopicCartEvents, evt); err != nil {
		p.logger.ErrorContext(ctx, "failed to publish cart event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()),
		)
		return
	}

	p.logger.DebugContext(ctx, "cart event published",
		slog.String("event_type", eventType),
		slog.Int("item_count", data.ItemCount),
	)
}
