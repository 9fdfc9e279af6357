package handler

import (
	"gastro_vision/constants"
	"gastro_vision/detection"
	"gastro_vision/model"
	"gastro_vision/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"github.com/jinzhu/copier"
)

func (h *Handler) CreateFood(c *fiber.Ctx) error {
	input := c.Locals("createInput").(model.CreateFoodInput)

	var food model.Food
	copier.Copy(&food, &input)
	if food.FoodId == "" {
		food.FoodId = slug.Make(food.Name)
	}
	if food.Category == "" {
		food.Category = detection.Category(food.Name)
	}
	if err := h.Store.CreateFood(c.UserContext(), &food); err != nil {
		return utils.ErrorFromService(c, "Không thể tạo món", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"message": "Food added",
		"data":    food,
	})
}

func (h *Handler) GetFoods(c *fiber.Ctx) error {
	foods, err := h.Store.ListFoods(c.UserContext())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, foods)
}
