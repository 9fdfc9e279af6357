package model

type Food struct {
	FoodId   string  `gorm:"primaryKey;size:100" json:"food_id"`
	Name     string  `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Category string  `gorm:"size:50" json:"category"`
	Price    float64 `gorm:"not null;default:0" json:"price"`
}

type CreateFoodInput struct {
	FoodId   string  `json:"food_id" validate:"omitempty,max=100"`
	Name     string  `json:"name" validate:"required,max=100"`
	Category string  `json:"category" validate:"omitempty,max=50"`
	Price    float64 `json:"price" validate:"gte=0"`
}
