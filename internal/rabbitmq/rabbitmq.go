package rabbitmq

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	NOTIFICATION_CREATED_QUEUE = "notification-created"
)

var queues = []string{
	NOTIFICATION_CREATED_QUEUE,
}

type Publisher interface {
	PublishJSON(ctx context.Context, queue string, v any) error
}

type MQConn struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func New(connString string) (*MQConn, error) {
	conn, err := amqp.Dial(connString)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	for _, queue := range queues {
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			ch.Close()
			conn.Close()
			return nil, err
		}
	}

	return &MQConn{
		conn: conn,
		ch:   ch,
	}, nil
}

func (m *MQConn) PublishJSON(ctx context.Context, queue string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return m.ch.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

func (m *MQConn) Close() error {
	if err := m.ch.Close(); err != nil {
		m.conn.Close()
		return err
	}
	return m.conn.Close()
}

// Discard drops every message. Used when no broker is configured.
type Discard struct{}

func (Discard) PublishJSON(ctx context.Context, queue string, v any) error {
	return nil
}
