package utils

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	var errMsg interface{}
	if err != nil {
		errMsg = err.Error()
	} else {
		errMsg = nil
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   errMsg,
	})
}

// ErrorFromService trả lỗi của tầng service với status tương ứng.
func ErrorFromService(c *fiber.Ctx, message string, err error) error {
	return ErrorResponse(c, StatusFromError(err), message, err)
}

func SuccessResponse(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "success",
		"data":   data,
	})
}

func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func ApplyPagination(query *gorm.DB, limit, page *int) *gorm.DB {
	// Kiểm tra nếu có limit thì thêm điều kiện Limit
	if limit != nil && *limit > 0 && page != nil && *page >= 1 {
		query = query.Limit(*limit)
		offset := *limit * (*page - 1)
		query = query.Offset(offset)
	}

	return query
}

// PageBounds tính [start, end) cho phân trang trên slice trong bộ nhớ.
func PageBounds(total int, limit, page *int) (int, int) {
	if limit == nil || *limit <= 0 || page == nil || *page < 1 {
		return 0, total
	}
	start := *limit * (*page - 1)
	if start > total {
		start = total
	}
	end := start + *limit
	if end > total {
		end = total
	}
	return start, end
}

func Ptr[T any](v T) *T {
	return &v
}
