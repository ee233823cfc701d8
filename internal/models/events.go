package models

import "time"

// Event types
const (
	EventTypeOrderPlaced = "ORDER_PLACED"
	EventTypeOrderPaid   = "ORDER_PAID"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderPlacedEvent published when an order is created from a cart
type OrderPlacedEvent struct {
	BaseEvent
	OrderID       int64           `json:"order_id"`
	UserID        int64           `json:"user_id"`
	TotalPrice    int64           `json:"total_price"`
	PaymentMethod string          `json:"payment_method"`
	Items         []OrderItemData `json:"items"`
}

// OrderPaidEvent published when payment verification marks an order paid
type OrderPaidEvent struct {
	BaseEvent
	OrderID    int64  `json:"order_id"`
	UserID     int64  `json:"user_id"`
	TotalPrice int64  `json:"total_price"`
	PaymentID  string `json:"payment_id"`
	PayerEmail string `json:"payer_email"`
	PayerPhone string `json:"payer_phone"`
}

// OrderItemData represents item data in events
type OrderItemData struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
	UnitPrice int64 `json:"unit_price"`
}
