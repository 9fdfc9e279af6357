package notify

import (
	"context"
	"fmt"
	"log"
	"time"

	"gastro_vision/constants"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPBroadcaster dùng một fanout exchange của RabbitMQ; mỗi instance
// bind một queue tạm (exclusive, auto-delete) để nhận lại sự kiện.
type AMQPBroadcaster struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func DialAMQP(url string) (*AMQPBroadcaster, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	b := &AMQPBroadcaster{conn: conn, ch: ch, exchange: constants.BROADCAST_CHANNEL}
	if err := ch.ExchangeDeclare(b.exchange, "fanout", true, false, false, false, nil); err != nil {
		b.Close()
		return nil, err
	}
	return b, nil
}

func (b *AMQPBroadcaster) Publish(ctx context.Context, event string, data any) error {
	payload, err := Encode(event, data)
	if err != nil {
		return err
	}
	return b.ch.PublishWithContext(ctx, b.exchange, "", false, false, amqp.Publishing{
		DeliveryMode: amqp.Transient,
		Timestamp:    time.Now().UTC(),
		ContentType:  "application/json",
		Body:         payload,
	})
}

func (b *AMQPBroadcaster) Run(ctx context.Context, hub *Hub) error {
	ch, err := b.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return err
	}
	if err := ch.QueueBind(q.Name, "", b.exchange, false, nil); err != nil {
		return err
	}
	deliveries, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	if err != nil {
		return err
	}

	log.Printf("[NOTIFY] consuming exchange %s via %s", b.exchange, q.Name)
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("amqp deliveries closed")
			}
			hub.Deliver(d.Body)
		}
	}
}

func (b *AMQPBroadcaster) Close() {
	if b.ch != nil {
		_ = b.ch.Close()
	}
	if b.conn != nil {
		_ = b.conn.Close()
	}
}
