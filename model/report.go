package model

type FoodCount struct {
	FoodName string `json:"food_name"`
	Count    int64  `json:"count"`
}

type WaiterOrderCount struct {
	WaiterId string `json:"waiter_id"`
	Count    int64  `json:"count"`
}

type TableRevenue struct {
	TableId string  `json:"table_id"`
	Total   float64 `json:"total"`
}

type ReportSummary struct {
	TotalOrders       int64              `json:"total_orders"`
	TopFoods          []FoodCount        `json:"top_foods"`
	WaiterPerformance []WaiterOrderCount `json:"waiter_performance"`
	TableRevenue      []TableRevenue     `json:"table_revenue"`
}
