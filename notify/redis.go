package notify

import (
	"context"
	"log"

	"gastro_vision/constants"

	"github.com/redis/go-redis/v9"
)

// RedisBroadcaster publish lên một kênh redis; mọi instance Subscribe kênh đó
// và chuyển tiếp tới websocket của mình.
type RedisBroadcaster struct {
	client  *redis.Client
	channel string
}

func NewRedisBroadcaster(client *redis.Client) *RedisBroadcaster {
	return &RedisBroadcaster{client: client, channel: constants.BROADCAST_CHANNEL}
}

func (b *RedisBroadcaster) Publish(ctx context.Context, event string, data any) error {
	payload, err := Encode(event, data)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, b.channel, string(payload)).Err()
}

// Run chặn cho tới khi ctx huỷ.
func (b *RedisBroadcaster) Run(ctx context.Context, hub *Hub) {
	pubsub := b.client.Subscribe(ctx, b.channel)
	defer pubsub.Close()

	log.Printf("[NOTIFY] subscribed redis channel %s", b.channel)
	channel := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-channel:
			if !ok {
				return
			}
			hub.Deliver([]byte(msg.Payload))
		}
	}
}
