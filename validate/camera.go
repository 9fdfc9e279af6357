package validate

import (
	"errors"

	"gastro_vision/constants"
	"gastro_vision/model"
	"gastro_vision/utils"

	"github.com/gofiber/fiber/v2"
)

// CameraFood nhận multipart (image + table_id) hoặc JSON {table_id, food_id, quantity}.
func CameraFood() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CameraFoodInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_VALIDATION, err)
		}

		_, fileErr := c.FormFile("image")
		hasImage := fileErr == nil
		if !hasImage && input.FoodId == "" {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_VALIDATION, errors.New("image or food_id is required"))
		}

		c.Locals("cameraInput", input)
		c.Locals("hasImage", hasImage)
		return c.Next()
	}
}
