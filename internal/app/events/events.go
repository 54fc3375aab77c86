package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/rs/zerolog"
	"github.com/schoolhub/schoolhub/internal/app/models"
)

// TopicUserRegistered carries events about newly registered users.
const TopicUserRegistered = "user.registered"

// UserRegistered is published after a registration commits.
type UserRegistered struct {
	UserID     int64       `json:"userId"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Role       models.Role `json:"role"`
	OccurredAt time.Time   `json:"occurredAt"`
}

// Bus is an in-process publish/subscribe bus. Publishing is
// fire-and-forget from the caller's perspective: subscribers run on
// their own goroutines and failures never surface to the publisher.
type Bus struct {
	pubsub *gochannel.GoChannel
	logger zerolog.Logger
}

// NewBus creates an in-process event bus
func NewBus(logger zerolog.Logger) *Bus {
	pubsub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		newWatermillLogger(logger),
	)

	return &Bus{
		pubsub: pubsub,
		logger: logger,
	}
}

// PublishUserRegistered publishes a UserRegistered event
func (b *Bus) PublishUserRegistered(event UserRegistered) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal user registered event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := b.pubsub.Publish(TopicUserRegistered, msg); err != nil {
		return fmt.Errorf("failed to publish user registered event: %w", err)
	}

	return nil
}

// SubscribeUserRegistered runs handler on every UserRegistered event
// until the bus is closed. Handler errors are logged, not retried.
func (b *Bus) SubscribeUserRegistered(handler func(UserRegistered) error) error {
	messages, err := b.pubsub.Subscribe(context.Background(), TopicUserRegistered)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", TopicUserRegistered, err)
	}

	go func() {
		for msg := range messages {
			var event UserRegistered
			if err := json.Unmarshal(msg.Payload, &event); err != nil {
				b.logger.Error().Err(err).Str("messageID", msg.UUID).Msg("Failed to decode user registered event")
				msg.Ack()
				continue
			}

			if err := handler(event); err != nil {
				b.logger.Error().Err(err).Int64("userID", event.UserID).Msg("User registered handler failed")
			}
			msg.Ack()
		}
	}()

	return nil
}

// Close shuts the bus down, closing all subscriber channels
func (b *Bus) Close() error {
	return b.pubsub.Close()
}
