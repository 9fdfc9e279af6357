package handler

import (
	"gastro_vision/constants"
	"gastro_vision/model"
	"gastro_vision/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
)

const qrSize = 256

func (h *Handler) CreateWaiter(c *fiber.Ctx) error {
	input := c.Locals("createInput").(model.CreateWaiterInput)

	var waiter model.Waiter
	copier.Copy(&waiter, &input)
	if waiter.Code == "" {
		waiter.Code = waiter.WaiterId
	}
	if err := h.Store.CreateWaiter(c.UserContext(), &waiter); err != nil {
		return utils.ErrorFromService(c, "Không thể tạo nhân viên phục vụ", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"message": "Waiter added",
		"data":    waiter,
	})
}

func (h *Handler) GetWaiters(c *fiber.Ctx) error {
	waiters, err := h.Store.ListWaiters(c.UserContext())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, waiters)
}

// UpdateInterest đặt tuyệt đối mức interest (điều chỉnh thủ công của quản lý).
func (h *Handler) UpdateInterest(c *fiber.Ctx) error {
	input := c.Locals("updateInput").(model.UpdateInterestInput)

	if err := h.Store.SetWaiterInterest(c.UserContext(), input.WaiterId, *input.InterestLevel); err != nil {
		return utils.ErrorFromService(c, constants.WAITER_NOT_FOUND, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Interest level updated."})
}

// WaiterQR trả ảnh PNG của mã "table_id|waiter_id" để in đặt tại bàn.
func (h *Handler) WaiterQR(c *fiber.Ctx) error {
	input := c.Locals("qrInput").(model.TableAssignment)

	if _, err := h.Store.GetWaiter(c.UserContext(), input.WaiterId); err != nil {
		return utils.ErrorFromService(c, constants.WAITER_NOT_FOUND, err)
	}
	if _, err := h.Store.GetTable(c.UserContext(), input.TableId); err != nil {
		return utils.ErrorFromService(c, constants.TABLE_NOT_FOUND, err)
	}

	png, err := utils.GenerateQRCode(utils.TableWaiterToken(input.TableId, input.WaiterId), qrSize)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể tạo QR", err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
