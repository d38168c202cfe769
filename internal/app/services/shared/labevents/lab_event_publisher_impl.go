package labevents

import (
	"context"
	"hospital-lab-service/internal/app/contracts"
	"hospital-lab-service/internal/app/models"
	"hospital-lab-service/internal/pkg/constvars"
	"hospital-lab-service/internal/pkg/exceptions"
	"sync"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type labEventPublisher struct {
	channel publishChannel
	queue   string
	log     *zap.Logger
	mu      sync.Mutex
}

// NewLabEventPublisher declares the durable lab events queue and returns a
// publisher bound to it.
func NewLabEventPublisher(conn *amqp.Connection, queue string, log *zap.Logger) (contracts.LabEventPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	)
	if err != nil {
		return nil, err
	}

	return newLabEventPublisher(ch, queue, log), nil
}

func newLabEventPublisher(channel publishChannel, queue string, log *zap.Logger) *labEventPublisher {
	return &labEventPublisher{
		channel: channel,
		queue:   queue,
		log:     log,
	}
}

func (p *labEventPublisher) Publish(ctx context.Context, event *models.LabEvent) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	p.log.Info("labEventPublisher.Publish called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventTypeKey, event.EventType),
		zap.String(constvars.LoggingLabTestIDKey, event.LabTestID),
	)

	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	headers := amqp.Table{
		"message_type": "JSON",
		"event_type":   event.EventType,
	}

	message := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
		MessageId:    event.EventID,
		Type:         event.EventType,
		Timestamp:    event.OccurredAt,
		Headers:      headers,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx, "", p.queue, false, false, message)
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, p.queue)
	}

	p.log.Info("labEventPublisher.Publish succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueNameKey, p.queue),
	)
	return nil
}
