package constants

const (
	TABLE_EMPTY          = "empty"
	TABLE_OCCUPIED       = "occupied"
	TABLE_SERVED         = "served"
	TABLE_NEEDS_CLEANING = "needs_cleaning"
)

var TABLE_STATUSES = []string{TABLE_EMPTY, TABLE_OCCUPIED, TABLE_SERVED, TABLE_NEEDS_CLEANING}

const (
	EVENT_ORDER_UPDATE         = "order_update"
	EVENT_WAITER_DELAY_WARNING = "waiter_delay_warning"
	EVENT_SERVER_MESSAGE       = "server_message"
)

// Kênh redis / exchange rabbitmq dùng chung cho mọi sự kiện realtime.
const BROADCAST_CHANNEL = "gastrovision:events"

const UNKNOWN_FOOD = "unknown"

const (
	ERROR_INPUT          = "Invalid input"
	ERROR_INTERNAL_ERROR = "Internal server error"
	ERROR_NOT_FOUND      = "Resource not found"
	ERROR_VALIDATION     = "Validation failed"
	FOOD_NOT_FOUND       = "Food not found"
	TABLE_NOT_FOUND      = "Table not found"
	WAITER_NOT_FOUND     = "Waiter not found"
	NO_WAITER_ASSIGNED   = "No waiter assigned to table"
	NO_PENDING_ORDER     = "No pending order or missing table/waiter info"
	ORDER_NOT_CREATED    = "Order could not be created"
)

const (
	MIN_WAITERS_FOR_ASSIGN = 2
	MIN_TABLES_FOR_ASSIGN  = 4
)
