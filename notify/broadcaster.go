package notify

import (
	"context"
	"encoding/json"
)

// Event là phong bì gửi tới client: {"event": ..., "data": ...}.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Broadcaster phát sự kiện tới mọi subscriber, không đảm bảo giao nhận.
type Broadcaster interface {
	Publish(ctx context.Context, event string, data any) error
}

func Encode(event string, data any) ([]byte, error) {
	return json.Marshal(Event{Event: event, Data: data})
}

// LocalBroadcaster đẩy thẳng vào Hub của tiến trình (BROADCAST_DRIVER=local).
type LocalBroadcaster struct {
	hub *Hub
}

func NewLocalBroadcaster(hub *Hub) *LocalBroadcaster {
	return &LocalBroadcaster{hub: hub}
}

func (b *LocalBroadcaster) Publish(_ context.Context, event string, data any) error {
	payload, err := Encode(event, data)
	if err != nil {
		return err
	}
	b.hub.Deliver(payload)
	return nil
}
