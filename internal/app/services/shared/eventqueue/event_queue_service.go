package eventqueue

import (
	"context"
	"fmt"
	"sync"

	"mindhub-service/internal/app/contracts"
	"mindhub-service/internal/pkg/constvars"
	"mindhub-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Service publishes assessment lifecycle events to RabbitMQ. Both queues are
// durable; messages that downstream consumers reject land on the DLQ. The
// channel runs in confirm mode and every publish waits for the broker ack,
// so a returned nil means the event reached the queue.
type Service struct {
	ch       *amqp.Channel
	confirms chan amqp.Confirmation
	log      *zap.Logger
	mu       sync.Mutex
}

func NewService(conn *amqp.Connection, log *zap.Logger) (contracts.EventPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		constvars.AssessmentEventQueueName, // name
		true,                              // durable
		false,                             // autoDelete
		false,                             // exclusive
		false,                             // noWait
		nil,                               // args
	)
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		constvars.AssessmentEventDLQName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	return &Service{
		ch:       ch,
		confirms: ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
		log:      log,
	}, nil
}

func (s *Service) PublishAssessmentEvent(ctx context.Context, event *contracts.AssessmentEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.ch.PublishWithContext(ctx,
		"",                                // exchange
		constvars.AssessmentEventQueueName, // routing key
		false,                             // mandatory
		false,                             // immediate
		amqp.Publishing{
			ContentType:  constvars.MIMEApplicationJSON,
			DeliveryMode: amqp.Persistent,
			MessageId:    event.EventID,
			Type:         event.EventType,
			Body:         body,
		},
	)
	if err != nil {
		return exceptions.ErrRabbitMQPublish(err, constvars.AssessmentEventQueueName)
	}

	select {
	case confirmed := <-s.confirms:
		if !confirmed.Ack {
			return exceptions.ErrRabbitMQPublish(fmt.Errorf("message not confirmed"), constvars.AssessmentEventQueueName)
		}
	case <-ctx.Done():
		return exceptions.ErrRabbitMQPublish(ctx.Err(), constvars.AssessmentEventQueueName)
	}

	s.log.Info("assessment event published",
		zap.String(constvars.LoggingEventIDKey, event.EventID),
		zap.String(constvars.LoggingAssessmentIDKey, event.AssessmentID),
		zap.String(constvars.LoggingQueueKey, constvars.AssessmentEventQueueName),
	)
	return nil
}
