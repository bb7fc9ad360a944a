package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"salon/config"
	"salon/infras/kafka"
	"salon/infras/otel"
	"salon/internal/domains/booking/model"
	"salon/shared/constant"

	"github.com/rs/zerolog/log"
)

// Events is the outgoing side of the booking flow.
type Events interface {
	Publish(ctx context.Context, events ...model.Event) error
}

type kafkaEvents struct {
	client kafka.Client
	topic  string
	otel   otel.Otel
}

// New publishes to the configured topic, or discards events when kafka is disabled.
func New(client kafka.Client, cfg *config.Config, otel otel.Otel) Events {
	if client == nil || !cfg.Kafka.Enable {
		log.Warn().Msg("Kafka disabled, booking events will not be published")

		return Discard()
	}

	return &kafkaEvents{
		client: client,
		topic:  cfg.Kafka.Topic,
		otel:   otel,
	}
}

func (k *kafkaEvents) Publish(ctx context.Context, events ...model.Event) (err error) {
	ctx, scope := k.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".booking.Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	messages := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		messages = append(messages, kafka.Message{
			Key:     event.Key,
			Type:    event.Type,
			Value:   event.Payload,
			Created: event.Created,
		})
	}

	if err = k.client.SendMessages(ctx, k.topic, messages...); err != nil {
		return fmt.Errorf("failed to publish booking events: %w", err)
	}

	return nil
}

type discard struct{}

func Discard() Events {
	return discard{}
}

func (discard) Publish(_ context.Context, events ...model.Event) error {
	for _, event := range events {
		log.Debug().Str("type", event.Type).Str("key", event.Key).Msg("booking event discarded")
	}

	return nil
}
