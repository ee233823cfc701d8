package models

import (
	"database/sql"
	"time"
)

// User represents a customer or admin account
type User struct {
	ID           int64           `db:"id" json:"id"`
	Username     string          `db:"username" json:"username"`
	Email        string          `db:"email" json:"email"`
	Phone        string          `db:"phone" json:"phone"`
	PasswordHash string          `db:"password_hash" json:"-"`
	IsAdmin      bool            `db:"is_admin" json:"is_admin"`
	Address      ShippingAddress `db:"-" json:"shipping_address"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`

	// flattened address columns
	ShipArea         string `db:"ship_area" json:"-"`
	ShipLandmark     string `db:"ship_landmark" json:"-"`
	ShipCity         string `db:"ship_city" json:"-"`
	ShipState        string `db:"ship_state" json:"-"`
	ShipPincode      string `db:"ship_pincode" json:"-"`
	ShipInstructions string `db:"ship_instructions" json:"-"`
}

// HydrateAddress copies the flattened columns into the nested struct
func (u *User) HydrateAddress() {
	u.Address = ShippingAddress{
		Area:         u.ShipArea,
		Landmark:     u.ShipLandmark,
		City:         u.ShipCity,
		State:        u.ShipState,
		Pincode:      u.ShipPincode,
		Instructions: u.ShipInstructions,
	}
}

// Product represents a product in the catalog. Price is in paise.
type Product struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Price       int64     `db:"price" json:"price"`
	Image       string    `db:"image" json:"image"`
	Stock       int       `db:"stock" json:"stock"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Cart is the per-user pending purchase; at most one per user
type Cart struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CartItem is a live product reference plus quantity
type CartItem struct {
	ID        int64 `db:"id" json:"id"`
	CartID    int64 `db:"cart_id" json:"cart_id"`
	ProductID int64 `db:"product_id" json:"product_id"`
	Quantity  int   `db:"quantity" json:"quantity"`
}

// CartItemView is a cart item joined against the catalog for display
type CartItemView struct {
	ID        int64  `db:"id" json:"id"`
	ProductID int64  `db:"product_id" json:"product_id"`
	Name      string `db:"name" json:"name"`
	Price     int64  `db:"price" json:"price"`
	Image     string `db:"image" json:"image"`
	Quantity  int    `db:"quantity" json:"quantity"`
}

// ShippingAddress is the structured delivery address on an order
type ShippingAddress struct {
	Area         string `json:"area" binding:"required"`
	Landmark     string `json:"landmark"`
	City         string `json:"city" binding:"required"`
	State        string `json:"state" binding:"required"`
	Pincode      string `json:"pincode" binding:"required"`
	Instructions string `json:"instructions"`
}

// Order is an immutable-on-creation snapshot of a cart
type Order struct {
	ID            int64        `db:"id" json:"id"`
	UserID        int64        `db:"user_id" json:"user_id"`
	TotalPrice    int64        `db:"total_price" json:"total_price"`
	PaymentMethod string       `db:"payment_method" json:"payment_method"`
	IsPaid        bool         `db:"is_paid" json:"is_paid"`
	PaidAt        sql.NullTime `db:"paid_at" json:"paid_at"`
	Status        string       `db:"status" json:"status"`
	CreatedAt     time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time    `db:"updated_at" json:"updated_at"`

	Address ShippingAddress `db:"-" json:"shipping_address"`
	Items   []OrderItem     `db:"-" json:"items,omitempty"`
	Payment *PaymentResult  `db:"-" json:"payment_result,omitempty"`

	// flattened address columns
	Area         string `db:"area" json:"-"`
	Landmark     string `db:"landmark" json:"-"`
	City         string `db:"city" json:"-"`
	State        string `db:"state" json:"-"`
	Pincode      string `db:"pincode" json:"-"`
	Instructions string `db:"instructions" json:"-"`

	// flattened payment result columns, empty until verification
	PaymentID         string       `db:"payment_id" json:"-"`
	PaymentStatus     string       `db:"payment_status" json:"-"`
	PaymentUpdateTime sql.NullTime `db:"payment_update_time" json:"-"`
	PayerEmail        string       `db:"payer_email" json:"-"`
}

// Hydrate copies flattened columns into the nested structs
func (o *Order) Hydrate() {
	o.Address = ShippingAddress{
		Area:         o.Area,
		Landmark:     o.Landmark,
		City:         o.City,
		State:        o.State,
		Pincode:      o.Pincode,
		Instructions: o.Instructions,
	}
	if o.PaymentID != "" {
		o.Payment = &PaymentResult{
			PaymentID:  o.PaymentID,
			Status:     o.PaymentStatus,
			UpdateTime: o.PaymentUpdateTime.Time,
			PayerEmail: o.PayerEmail,
		}
	}
}

// OrderItem is a frozen copy of a cart line at placement time.
// Catalog changes after placement never touch these fields.
type OrderItem struct {
	ID        int64  `db:"id" json:"id"`
	OrderID   int64  `db:"order_id" json:"order_id"`
	ProductID int64  `db:"product_id" json:"product_id"`
	Name      string `db:"name" json:"name"`
	Image     string `db:"image" json:"image"`
	UnitPrice int64  `db:"unit_price" json:"unit_price"`
	Quantity  int    `db:"quantity" json:"quantity"`
}

// PaymentResult records the gateway callback that marked an order paid
type PaymentResult struct {
	PaymentID  string    `json:"payment_id"`
	Status     string    `json:"status"`
	UpdateTime time.Time `json:"update_time"`
	PayerEmail string    `json:"payer_email"`
}

// Complaint is a customer service ticket
type Complaint struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	Issue       string    `db:"issue" json:"issue"`
	Model       string    `db:"model" json:"model"`
	Address     string    `db:"address" json:"address"`
	PhoneNumber string    `db:"phone_number" json:"phone_number"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Order delivery statuses
const (
	OrderStatusReceived   = "received"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// ValidOrderStatus reports whether s is a known delivery status
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusReceived, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Payment result status written on successful verification
const PaymentStatusCompleted = "completed"

// Complaint statuses
const (
	ComplaintStatusPending  = "Pending"
	ComplaintStatusResolved = "Resolved"
)

// ProcessedEvent for consumer idempotency
type ProcessedEvent struct {
	EventID     string    `db:"event_id"`
	EventType   string    `db:"event_type"`
	ProcessedAt time.Time `db:"processed_at"`
}
