package handler

import (
	"fmt"
	"io"

	"gastro_vision/constants"
	"gastro_vision/model"
	"gastro_vision/order"
	"gastro_vision/utils"

	"github.com/gofiber/fiber/v2"
)

// FoodDetected tạo đơn từ ảnh camera (phân loại món) hoặc từ food_id gửi kèm,
// với người phục vụ đang được gán cho bàn.
func (h *Handler) FoodDetected(c *fiber.Ctx) error {
	input := c.Locals("cameraInput").(model.CameraFoodInput)
	hasImage := c.Locals("hasImage").(bool)

	req := order.Request{TableId: input.TableId, FoodId: input.FoodId, Quantity: 1, Source: order.SourceCamera}
	if input.Quantity != nil {
		req.Quantity = *input.Quantity
	}

	if hasImage {
		image, err := readFormImage(c)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		result := h.Detector.ClassifyFood(c.UserContext(), image)
		if !result.Available() {
			return utils.ErrorFromService(c, "Food classifier unavailable", utils.ErrCapabilityUnavailable)
		}
		req.FoodId = ""
		req.FoodName = result.Label
	}

	table, err := h.Store.GetTable(c.UserContext(), input.TableId)
	if err != nil {
		return utils.ErrorFromService(c, constants.TABLE_NOT_FOUND, err)
	}
	if table.WaiterId == nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.NO_WAITER_ASSIGNED, nil)
	}
	req.WaiterId = *table.WaiterId

	created, err := h.Orders.Create(c.UserContext(), req)
	if err != nil {
		return utils.ErrorFromService(c, fmt.Sprintf("%s: %s%s", constants.FOOD_NOT_FOUND, req.FoodId, req.FoodName), err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": fmt.Sprintf("Order saved via camera: %s", created.FoodName),
		"data":    created,
	})
}

func readFormImage(c *fiber.Ctx) ([]byte, error) {
	header, err := c.FormFile("image")
	if err != nil {
		return nil, err
	}
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (h *Handler) WaiterDetected(c *fiber.Ctx) error {
	input := c.Locals("detectedInput").(model.WaiterDetectedInput)

	if err := h.SLA.WaiterDetected(c.UserContext(), input.TableId, input.WaiterId); err != nil {
		return utils.ErrorFromService(c, constants.ERROR_NOT_FOUND, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": "Waiter detected by camera, service provided to table.",
	})
}
