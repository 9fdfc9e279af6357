package validate

import (
	"gastro_vision/constants"
	"gastro_vision/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// body parse JSON vào T, kiểm tra tag validate rồi lưu vào c.Locals(key).
func body[T any](key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input T
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_VALIDATION, err)
		}

		c.Locals(key, input)
		return c.Next()
	}
}
