package store

import (
	"context"

	"gastro_vision/model"
)

// Các cột bàn được phép cập nhật qua UpdateTable.
const (
	ColStatus           = "status"
	ColWaiterId         = "waiter_id"
	ColLastCustomerTime = "last_customer_time"
	ColLastWaiterTime   = "last_waiter_time"
)

// Store là lớp lưu trữ bàn, phục vụ, món ăn và đơn hàng.
// Điểm số phục vụ chỉ được thay đổi bằng AdjustWaiter (cộng dồn nguyên tử)
// hoặc SetWaiterInterest, không đọc-sửa-ghi ở tầng ứng dụng.
type Store interface {
	CreateTable(ctx context.Context, table *model.Table) error
	ListTables(ctx context.Context) ([]model.Table, error)
	GetTable(ctx context.Context, tableId string) (*model.Table, error)
	UpdateTable(ctx context.Context, tableId string, fields map[string]any) error

	CreateWaiter(ctx context.Context, waiter *model.Waiter) error
	ListWaiters(ctx context.Context) ([]model.Waiter, error)
	GetWaiter(ctx context.Context, waiterId string) (*model.Waiter, error)
	AdjustWaiter(ctx context.Context, waiterId string, performanceDelta, interestDelta int) error
	SetWaiterInterest(ctx context.Context, waiterId string, level int) error

	CreateFood(ctx context.Context, food *model.Food) error
	ListFoods(ctx context.Context) ([]model.Food, error)
	FindFoodById(ctx context.Context, foodId string) (*model.Food, error)
	FindFoodByName(ctx context.Context, name string) (*model.Food, error)

	CreateOrder(ctx context.Context, order *model.Order) error
	ListOrders(ctx context.Context, filter model.OrderFilter) ([]model.Order, int64, error)
	DeleteOrdersByTable(ctx context.Context, tableId string) (int64, error)
	Summary(ctx context.Context) (*model.ReportSummary, error)
}
