package validate

import (
	"gastro_vision/model"

	"github.com/gofiber/fiber/v2"
)

func CreateFood() fiber.Handler {
	return body[model.CreateFoodInput]("createInput")
}
