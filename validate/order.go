package validate

import (
	"errors"
	"time"

	"gastro_vision/constants"
	"gastro_vision/model"
	"gastro_vision/utils"

	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

func CreateOrder() fiber.Handler {
	return body[model.CreateOrderInput]("createInput")
}

// parseDate nhận RFC3339 hoặc YYYY-MM-DD; endOfDay mở rộng ngày trần tới cuối ngày.
func parseDate(value string, endOfDay bool) (*time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

func OrderFilter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := new(model.OrderFilter)
		if err := c.QueryParser(filter); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if v := c.Query("start_date"); v != "" {
			start, err := parseDate(v, false)
			if err != nil {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, "start_date sai định dạng", err)
			}
			filter.StartDate = start
		}
		if v := c.Query("end_date"); v != "" {
			end, err := parseDate(v, true)
			if err != nil {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, "end_date sai định dạng", err)
			}
			filter.EndDate = end
		}
		if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_VALIDATION, errors.New("end_date before start_date"))
		}

		c.Locals("filter", *filter)
		return c.Next()
	}
}
