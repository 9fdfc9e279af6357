package notify

import (
	"log"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
)

const (
	// sendQueueSize: số sự kiện tối đa chờ gửi cho một client; đầy thì bỏ sự kiện mới.
	sendQueueSize = 16
	writeTimeout  = 5 * time.Second
)

// Conn là phần của websocket.Conn mà Hub cần.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

type client struct {
	conn Conn
	send chan []byte
}

// Hub giữ các kết nối websocket đang mở của instance này.
// Mỗi client có hàng đợi riêng và goroutine ghi riêng, nên Deliver không bao giờ
// chờ một client chậm.
type Hub struct {
	mu      sync.Mutex
	clients map[Conn]*client
}

func NewHub() *Hub {
	return &Hub{clients: make(map[Conn]*client)}
}

func (h *Hub) Add(c Conn) {
	cl := &client{conn: c, send: make(chan []byte, sendQueueSize)}
	h.mu.Lock()
	h.clients[c] = cl
	h.mu.Unlock()
	go h.writeLoop(cl)
}

func (h *Hub) Remove(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if cl, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(cl.send)
	}
}

func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Deliver xếp payload vào hàng đợi của từng client; hàng đợi đầy thì bỏ qua.
func (h *Hub) Deliver(payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, cl := range h.clients {
		select {
		case cl.send <- payload:
		default:
			log.Printf("[NOTIFY] client queue full, event dropped")
		}
	}
}

// writeLoop: client ghi lỗi hoặc quá writeTimeout thì bị đóng và xoá.
func (h *Hub) writeLoop(cl *client) {
	for payload := range cl.send {
		_ = cl.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := cl.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("[NOTIFY] drop client: %v", err)
			h.Remove(cl.conn)
			cl.conn.Close()
			return
		}
	}
}
