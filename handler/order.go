package handler

import (
	"gastro_vision/constants"
	"gastro_vision/model"
	"gastro_vision/order"
	"gastro_vision/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) CreateOrder(c *fiber.Ctx) error {
	input := c.Locals("createInput").(model.CreateOrderInput)

	quantity := 1
	if input.Quantity != nil {
		quantity = *input.Quantity
	}
	created, err := h.Orders.Create(c.UserContext(), order.Request{
		TableId:  input.TableId,
		WaiterId: input.WaiterId,
		FoodId:   input.FoodId,
		Quantity: quantity,
		Source:   order.SourceManual,
	})
	if err != nil {
		return utils.ErrorFromService(c, constants.FOOD_NOT_FOUND, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"message": "Order added",
		"data":    created,
	})
}

func (h *Handler) GetOrders(c *fiber.Ctx) error {
	filter := c.Locals("filter").(model.OrderFilter)

	orders, total, err := h.Store.ListOrders(c.UserContext(), filter)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, &model.ResponseCustom{
		Rows:       orders,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: total,
	})
}
