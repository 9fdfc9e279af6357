package model

import "time"

type Table struct {
	TableId          string     `gorm:"primaryKey;size:50" json:"table_id"`
	WaiterId         *string    `gorm:"size:50;index" json:"waiter_id"`
	Status           string     `gorm:"size:20;not null;default:empty" json:"status"`
	LastCustomerTime *time.Time `json:"last_customer_time"`
	LastWaiterTime   *time.Time `json:"last_waiter_time"`
}

// CustomerWaiting: khách đến sau lần phục vụ gần nhất (hoặc chưa từng được phục vụ).
func (t *Table) CustomerWaiting() bool {
	if t.LastCustomerTime == nil {
		return false
	}
	return t.LastWaiterTime == nil || t.LastWaiterTime.Before(*t.LastCustomerTime)
}

type CreateTableInput struct {
	TableId  string  `json:"table_id" validate:"required,max=50"`
	WaiterId *string `json:"waiter_id" validate:"omitempty,max=50"`
	Status   string  `json:"status" validate:"omitempty,oneof=empty occupied served needs_cleaning"`
}

type UpdateTableStatusInput struct {
	TableId string `json:"table_id" validate:"required"`
	Status  string `json:"status" validate:"required,oneof=empty occupied served needs_cleaning"`
}

type ResetTableInput struct {
	TableId string `json:"table_id" validate:"required"`
}

type TableAssignment struct {
	TableId  string `json:"table_id"`
	WaiterId string `json:"waiter_id"`
}
