package events

import (
	"context"
	"fmt"
	json "github.com/goccy/go-json"
	"puzzlestats/internal/models"
	"puzzlestats/internal/providers"
	"puzzlestats/internal/services"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

const (
	TopicChatMessages = "chat.messages"
	handlerName       = "ingest"
)

type Publisher interface {
	Publish(ctx context.Context, event models.ChatEvent) (string, error)
}

// Bus carries inbound chat events to the ingest service. The single
// subscriber handles one message at a time, in publish order.
type Bus struct {
	pubsub *gochannel.GoChannel
	router *message.Router
	ingest services.Ingestor
	logger providers.Logger
}

func NewBus(ingest services.Ingestor, logger providers.Logger) (*Bus, error) {
	wmLogger := NewLoggerAdapter(logger)
	pubsub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 256}, wmLogger)

	router, err := message.NewRouter(message.RouterConfig{}, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create event router: %w", err)
	}

	b := &Bus{pubsub: pubsub, router: router, ingest: ingest, logger: logger}
	router.AddMiddleware(b.dropFailed, middleware.Recoverer)
	router.AddNoPublisherHandler(handlerName, TopicChatMessages, pubsub, b.handle)
	return b, nil
}

// Run blocks until ctx is cancelled or the bus is closed.
func (b *Bus) Run(ctx context.Context) error {
	return b.router.Run(ctx)
}

// Running is closed once the subscriber is attached.
func (b *Bus) Running() chan struct{} {
	return b.router.Running()
}

func (b *Bus) Publish(ctx context.Context, event models.ChatEvent) (string, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return "", err
	}
	msg := message.NewMessage(uuid.NewString(), payload)
	msg.Metadata.Set("message_id", event.MessageID)
	msg.SetContext(ctx)

	if err := b.pubsub.Publish(TopicChatMessages, msg); err != nil {
		return "", err
	}
	return msg.UUID, nil
}

func (b *Bus) Close() error {
	if err := b.router.Close(); err != nil {
		return err
	}
	return b.pubsub.Close()
}

func (b *Bus) handle(msg *message.Message) error {
	var event models.ChatEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return fmt.Errorf("decode event %s: %w", msg.UUID, err)
	}

	res, err := b.ingest.Ingest(msg.Context(), event)
	if err != nil {
		return err
	}
	b.logger.Debugf(providers.TypeIngest, "Event %s (message %s): %s", msg.UUID, event.MessageID, res.Status)
	return nil
}

// dropFailed acks messages whose handling failed so gochannel does not
// redeliver them.
func (b *Bus) dropFailed(h message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		msgs, err := h(msg)
		if err != nil {
			b.logger.Errorf(providers.TypeIngest, "Dropping event %s: %s", msg.UUID, err)
			return nil, nil
		}
		return msgs, nil
	}
}

var _ Publisher = (*Bus)(nil)
