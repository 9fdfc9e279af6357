package model

import "time"

// Order chỉ được tạo mới, không bao giờ sửa; xoá hàng loạt khi reset bàn.
type Order struct {
	OrderId   string    `gorm:"primaryKey;size:36" json:"order_id"`
	TableId   string    `gorm:"size:50;index" json:"table_id"`
	WaiterId  string    `gorm:"size:50;index" json:"waiter_id"`
	FoodId    string    `gorm:"size:100" json:"food_id"`
	FoodName  string    `gorm:"size:100;index" json:"food_name"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	Price     float64   `gorm:"not null" json:"price"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
}

type CreateOrderInput struct {
	TableId  string `json:"table_id" validate:"required"`
	WaiterId string `json:"waiter_id" validate:"required"`
	FoodId   string `json:"food_id" validate:"required"`
	Quantity *int   `json:"quantity" validate:"omitempty,min=1"`
}

type CameraFoodInput struct {
	TableId  string `json:"table_id" form:"table_id" validate:"required"`
	FoodId   string `json:"food_id" form:"food_id"`
	Quantity *int   `json:"quantity" form:"quantity" validate:"omitempty,min=1"`
}

type OrderFilter struct {
	Pagination
	TableId   *string    `query:"table_id"`
	WaiterId  *string    `query:"waiter_id"`
	FoodName  *string    `query:"food_name"`
	StartDate *time.Time `query:"-"`
	EndDate   *time.Time `query:"-"`
}
