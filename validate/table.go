package validate

import (
	"gastro_vision/model"

	"github.com/gofiber/fiber/v2"
)

func CreateTable() fiber.Handler {
	return body[model.CreateTableInput]("createInput")
}

func UpdateTableStatus() fiber.Handler {
	return body[model.UpdateTableStatusInput]("updateInput")
}

func ResetTable() fiber.Handler {
	return body[model.ResetTableInput]("resetInput")
}
