package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrNotFound              = errors.New("not found")
	ErrInvalidState          = errors.New("invalid state")
	ErrCapabilityUnavailable = errors.New("capability unavailable")
	ErrSourceExhausted       = errors.New("frame source exhausted")
	ErrDuplicate             = errors.New("duplicate key")
)

// StatusFromError đổi lỗi nghiệp vụ sang HTTP status.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrInvalidState):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrDuplicate):
		return fiber.StatusConflict
	case errors.Is(err, ErrCapabilityUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
