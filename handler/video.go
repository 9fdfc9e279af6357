package handler

import (
	"bufio"
	"context"
	"fmt"

	"gastro_vision/pipeline"
	"gastro_vision/utils"

	"github.com/gofiber/fiber/v2"
)

const frameBoundary = "frame"

// VideoFeed phát luồng MJPEG đã chú thích; mỗi client có vòng xử lý riêng.
func (h *Handler) VideoFeed(c *fiber.Ctx) error {
	src, err := h.OpenSource()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, "Camera unavailable", err)
	}
	loop := pipeline.New(h.Detector, h.Gate, h.Store, h.Latest, h.Pipeline)

	c.Set(fiber.HeaderContentType, "multipart/x-mixed-replace; boundary="+frameBoundary)
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer src.Close()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		_ = loop.Run(ctx, src, func(jpeg []byte) error {
			fmt.Fprintf(w, "--%s\r\nContent-Type: image/jpeg\r\nContent-Length: %d\r\n\r\n", frameBoundary, len(jpeg))
			w.Write(jpeg)
			w.WriteString("\r\n")
			return w.Flush()
		})
	})
	return nil
}
