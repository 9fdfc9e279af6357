package handler

import (
	"log"

	"gastro_vision/constants"
	"gastro_vision/notify"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// Events giữ kết nối websocket mở và nhận sự kiện từ Hub.
func (h *Handler) Events(c *websocket.Conn) {
	greeting, _ := notify.Encode(constants.EVENT_SERVER_MESSAGE, fiber.Map{"message": "Connected to GastroVision"})
	if err := c.WriteMessage(websocket.TextMessage, greeting); err != nil {
		c.Close()
		return
	}

	h.Hub.Add(c)
	defer func() {
		h.Hub.Remove(c)
		c.Close()
	}()

	// chỉ đọc để phát hiện client đóng kết nối
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			log.Printf("[NOTIFY] client disconnected: %v", err)
			return
		}
	}
}

func UpgradeWebsocket(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}
