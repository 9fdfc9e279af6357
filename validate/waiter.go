package validate

import (
	"errors"

	"gastro_vision/constants"
	"gastro_vision/model"
	"gastro_vision/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateWaiter() fiber.Handler {
	return body[model.CreateWaiterInput]("createInput")
}

func UpdateInterest() fiber.Handler {
	return body[model.UpdateInterestInput]("updateInput")
}

func WaiterDetected() fiber.Handler {
	return body[model.WaiterDetectedInput]("detectedInput")
}

// WaiterQR cần :waiterId và ?table_id=.
func WaiterQR() fiber.Handler {
	return func(c *fiber.Ctx) error {
		waiterId := c.Params("waiterId")
		tableId := c.Query("table_id")
		if waiterId == "" || tableId == "" {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("waiterId and table_id are required"))
		}
		c.Locals("qrInput", model.TableAssignment{TableId: tableId, WaiterId: waiterId})
		return c.Next()
	}
}
