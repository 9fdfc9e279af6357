package model

import "time"

// PendingOrder là ứng viên đơn hàng phát hiện từ camera, chờ nhân viên xác nhận.
type PendingOrder struct {
	TableId    string    `json:"table_id"`
	WaiterId   string    `json:"waiter_id"`
	FoodName   string    `json:"food_name"`
	Price      *float64  `json:"price"`
	Confidence float64   `json:"confidence"`
	Timestamp  time.Time `json:"timestamp"`
}

// Complete: đủ bàn và phục vụ để xác nhận.
func (p *PendingOrder) Complete() bool {
	return p != nil && p.TableId != "" && p.WaiterId != ""
}
