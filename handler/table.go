package handler

import (
	"fmt"

	"gastro_vision/constants"
	"gastro_vision/model"
	"gastro_vision/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
)

func (h *Handler) CreateTable(c *fiber.Ctx) error {
	input := c.Locals("createInput").(model.CreateTableInput)

	var table model.Table
	copier.Copy(&table, &input)
	if table.Status == "" {
		table.Status = constants.TABLE_EMPTY
	}
	if err := h.Store.CreateTable(c.UserContext(), &table); err != nil {
		return utils.ErrorFromService(c, "Không thể tạo bàn", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"message": "Table added",
		"data":    table,
	})
}

func (h *Handler) GetTables(c *fiber.Ctx) error {
	tables, err := h.Store.ListTables(c.UserContext())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, tables)
}

func (h *Handler) UpdateTableStatus(c *fiber.Ctx) error {
	input := c.Locals("updateInput").(model.UpdateTableStatusInput)

	table, err := h.SLA.OnStatusChange(c.UserContext(), input.TableId, input.Status)
	if err != nil {
		return utils.ErrorFromService(c, constants.TABLE_NOT_FOUND, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": "Table status updated.",
		"data":    table,
	})
}

func (h *Handler) ResetTable(c *fiber.Ctx) error {
	input := c.Locals("resetInput").(model.ResetTableInput)

	deleted, err := h.SLA.Reset(c.UserContext(), input.TableId)
	if err != nil {
		return utils.ErrorFromService(c, constants.TABLE_NOT_FOUND, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": fmt.Sprintf("%d orders deleted, table reset.", deleted),
		"deleted": deleted,
	})
}

func (h *Handler) AutoAssignTables(c *fiber.Ctx) error {
	assignments, err := h.SLA.AutoAssign(c.UserContext())
	if err != nil {
		return utils.ErrorFromService(c, "At least 2 waiters and 4 tables are required", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message":     "Tables automatically assigned to waiters.",
		"assignments": assignments,
	})
}
