package model

type Waiter struct {
	WaiterId      string `gorm:"primaryKey;size:50" json:"waiter_id"`
	Name          string `gorm:"size:100;not null" json:"name"`
	Code          string `gorm:"size:50" json:"code"`
	Performance   int    `gorm:"not null;default:0" json:"performance"`
	InterestLevel int    `gorm:"not null;default:0" json:"interest_level"`
}

type CreateWaiterInput struct {
	WaiterId      string `json:"waiter_id" validate:"required,max=50"`
	Name          string `json:"name" validate:"required,min=1,max=100"`
	Code          string `json:"code" validate:"omitempty,max=50"`
	Performance   int    `json:"performance"`
	InterestLevel int    `json:"interest_level"`
}

type UpdateInterestInput struct {
	WaiterId      string `json:"waiter_id" validate:"required"`
	InterestLevel *int   `json:"interest_level" validate:"required"`
}

type WaiterDetectedInput struct {
	TableId  string `json:"table_id" validate:"required"`
	WaiterId string `json:"waiter_id" validate:"required"`
}
