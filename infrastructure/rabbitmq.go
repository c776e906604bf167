package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"jobboard/domain"
)

const jobEventsQueue = "job_events"

type JobEventType string

const (
	JobCreated JobEventType = "job.created"
	JobUpdated JobEventType = "job.updated"
	JobRemoved JobEventType = "job.removed"
)

// JobEvent is published after a job mutation has been committed.
type JobEvent struct {
	Type       JobEventType `json:"type"`
	JobID      int          `json:"jobId"`
	Job        *domain.Job  `json:"job,omitempty"`
	OccurredAt time.Time    `json:"occurredAt"`
}

type JobEventPublisher interface {
	Publish(ctx context.Context, event JobEvent) error
	Close() error
}

// RabbitMQ publishes job events to a durable queue.
type RabbitMQ struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
	log     *zap.Logger
}

func NewRabbitMQ(log *zap.Logger, url string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	q, err := ch.QueueDeclare(
		jobEventsQueue, // queue name
		true,           // durable
		false,          // delete when unused
		false,          // exclusive
		false,          // no-wait
		nil,            // args
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	log.Info("Connected to RabbitMQ", zap.String("queue", q.Name))
	return &RabbitMQ{conn: conn, channel: ch, queue: q, log: log}, nil
}

func (r *RabbitMQ) Publish(ctx context.Context, event JobEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal job event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = r.channel.PublishWithContext(
		ctx,
		"",           // exchange
		r.queue.Name, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Type:         string(event.Type),
			Timestamp:    event.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}

	r.log.Debug("Published job event",
		zap.String("type", string(event.Type)),
		zap.Int("job_id", event.JobID))
	return nil
}

func (r *RabbitMQ) Close() error {
	if err := r.channel.Close(); err != nil {
		r.conn.Close()
		return err
	}
	return r.conn.Close()
}

// NopPublisher drops events; used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, JobEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
