package models

import "time"

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending" // created at checkout, awaiting gateway callback
	OrderStatusPaid    OrderStatus = "paid"
	OrderStatusFailed  OrderStatus = "failed"
)

// Payment holds what the gateway told us about an order. RawPayload keeps the
// full webhook body for audit.
type Payment struct {
	GatewayOrderID   string `gorm:"index" json:"gateway_order_id"`
	GatewayPaymentID string `json:"gateway_payment_id"`
	Captured         bool   `json:"captured"`
	Method           string `json:"method"`
	RawPayload       string `json:"-"`
}

type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	OrderRef    string      `gorm:"uniqueIndex;not null" json:"order_ref"`
	UserID      string      `gorm:"index;not null" json:"user_id"`
	User        User        `gorm:"foreignKey:UserID" json:"user"`
	Items       []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount float64     `json:"total_amount"`
	Status      OrderStatus `gorm:"type:VARCHAR(10);default:'pending'" json:"status"`
	Payment     Payment     `gorm:"embedded;embeddedPrefix:payment_" json:"payment"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// OrderItem snapshots the product at checkout time so later catalog edits
// don't rewrite order history.
type OrderItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderID     uint    `gorm:"index" json:"-"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
}
