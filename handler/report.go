package handler

import (
	"gastro_vision/constants"
	"gastro_vision/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) ReportSummary(c *fiber.Ctx) error {
	summary, err := h.Store.Summary(c.UserContext())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, summary)
}

func Index(c *fiber.Ctx) error {
	return c.SendString("GastroVision backend is running")
}
