package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/queue"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/types"
)

type RabbitMQ struct {
	conn      *amqp.Connection
	ch        *amqp.Channel
	queueName string

	connErrCh chan *amqp.Error
	chErrCh   chan *amqp.Error

	subscriptionCtx    context.Context
	subscriptionCancel context.CancelFunc

	opts queue.NewQueueOpts
}

func NewRabbitMQ(opts queue.NewQueueOpts) (*RabbitMQ, error) {
	slog.Info("dialing rabbitmq connection")

	if opts.QueueName == "" {
		opts.QueueName = queue.DefaultQueueName
	}

	r := &RabbitMQ{
		opts:      opts,
		queueName: opts.QueueName,
	}

	err := r.connect()
	if err != nil {
		return nil, err
	}

	return r, nil
}

func (r *RabbitMQ) connect() error {
	slog.Info("connecting to rabbitmq")

	conn, err := amqp.DialConfig(
		fmt.Sprintf(
			"amqp://%v:%v@%v:%v/",
			r.opts.Username,
			r.opts.Password,
			r.opts.Host,
			r.opts.Port,
		),
		amqp.Config{
			Heartbeat: 1 * time.Second,
		})
	if err != nil {
		return err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return err
	}

	if err := ch.Qos(int(r.opts.PrefetchCount), 0, false); err != nil {
		_ = conn.Close()
		return err
	}

	if _, err := ch.QueueDeclare(r.queueName, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return err
	}

	r.conn = conn
	r.ch = ch

	r.connErrCh = r.conn.NotifyClose(make(chan *amqp.Error, 1))
	r.chErrCh = r.ch.NotifyClose(make(chan *amqp.Error, 1))

	r.subscriptionCtx, r.subscriptionCancel = context.WithCancel(context.Background())

	slog.Info("connected to rabbitmq", "queue", r.queueName)

	return nil
}

func (r *RabbitMQ) Publish(ctx context.Context, req types.DeriveRequest) error {
	slog.Info("Publishing message to RabbitMQ", "queue", r.queueName, "l1TxHash", req.L1TxHash)

	if r.conn.IsClosed() {
		return queue.ErrClosed
	}

	body, err := json.Marshal(req)
	if err != nil {
		return err
	}

	err = r.ch.PublishWithContext(ctx,
		"",
		r.queueName,
		false,
		false,
		amqp.Publishing{
			MessageId:    uuid.NewString(),
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return err
	}

	slog.Info("Message published successfully")
	return nil
}

func (r *RabbitMQ) Subscribe(ctx context.Context, msgChan chan<- types.DeriveRequest, wg *sync.WaitGroup) error {
	wg.Add(1)
	defer wg.Done()

	slog.Info("Starting message consumer", "queue", r.queueName)

	msgs, err := r.ch.Consume(
		r.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	for {
		select {
		case <-r.subscriptionCtx.Done():
			slog.Info("Subscription context cancelled")
			return nil
		case <-ctx.Done():
			slog.Info("Consumer context cancelled")
			return nil
		case err := <-r.connErrCh:
			slog.Error("RabbitMQ connection closed", "error", err)
			return queue.ErrClosed
		case err := <-r.chErrCh:
			slog.Error("RabbitMQ channel closed", "error", err)
			return queue.ErrClosed
		case d, ok := <-msgs:
			if !ok {
				slog.Error("Message channel closed")
				return queue.ErrClosed
			}

			var req types.DeriveRequest
			err := json.Unmarshal(d.Body, &req)
			if err != nil {
				slog.Error("Failed to parse message", "error", err)
				_ = d.Nack(false, false)
				continue
			}

			slog.Info("Received message", "l1TxHash", req.L1TxHash)

			select {
			case msgChan <- req:
				_ = d.Ack(false)
			case <-ctx.Done():
				_ = d.Nack(false, true)
				return nil
			}
		}
	}
}

// Reconnect re-establishes the connection after Subscribe returned queue.ErrClosed.
func (r *RabbitMQ) Reconnect() error {
	r.Close()
	return r.connect()
}

func (r *RabbitMQ) Close() {
	if r.subscriptionCancel != nil {
		r.subscriptionCancel()
	}

	if r.ch != nil {
		if err := r.ch.Close(); err != nil && err != amqp.ErrClosed {
			slog.Error("Error closing RabbitMQ channel", "error", err)
		}
	}

	if r.conn != nil {
		if err := r.conn.Close(); err != nil && err != amqp.ErrClosed {
			slog.Error("Error closing RabbitMQ connection", "error", err)
		}
	}

	slog.Info("RabbitMQ connection closed")
}
