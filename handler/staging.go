package handler

import (
	"errors"

	"gastro_vision/constants"
	"gastro_vision/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetPendingOrder(c *fiber.Ctx) error {
	pending, ok := h.Gate.Peek()
	if !ok {
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"pending_order": nil})
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"pending_order": pending})
}

func (h *Handler) ConfirmOrder(c *fiber.Ctx) error {
	created, err := h.Gate.Confirm(c.UserContext())
	if errors.Is(err, utils.ErrInvalidState) {
		return utils.ErrorFromService(c, constants.NO_PENDING_ORDER, err)
	}
	if err != nil {
		// ứng viên đã bị xoá khỏi slot, không thử lại
		return utils.ErrorFromService(c, constants.ORDER_NOT_CREATED, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": "Order added",
		"data":    created,
	})
}

func (h *Handler) RejectOrder(c *fiber.Ctx) error {
	h.Gate.Reject()
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Pending order cancelled"})
}

func (h *Handler) LastQR(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"last_qr": utils.StringPtr(h.Latest.Code())})
}

func (h *Handler) LastFood(c *fiber.Ctx) error {
	food, confidence := h.Latest.Food()
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"last_food":  utils.StringPtr(food),
		"confidence": confidence,
	})
}
