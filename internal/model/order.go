package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderRequested OrderStatus = "requested"
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderRejected  OrderStatus = "rejected"
)

// Order is a buyer's purchase request against one seller.
// Legal transitions: requested -> pending (accept), requested -> rejected,
// pending -> completed (deliver). completed and rejected are terminal.
type Order struct {
	BaseModel
	BuyerID  uuid.UUID `gorm:"type:uuid;not null;index" json:"buyer_id"`
	Buyer    *User     `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
	SellerID uuid.UUID `gorm:"type:uuid;not null;index" json:"seller_id"`
	Seller   *User     `gorm:"foreignKey:SellerID" json:"seller,omitempty"`

	TotalAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Status          OrderStatus     `gorm:"type:varchar(20);not null;default:'requested'" json:"status"`
	DeliveryMessage string          `gorm:"type:text" json:"delivery_message,omitempty"`

	Items []OrderItem `json:"items,omitempty"`
}

// OrderItem snapshots the unit price at creation time; the subtotal is
// quantity * unit_price and never recomputed from the catalog afterwards.
type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`

	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
}

// CreateOrderItemRequest is one requested line in a new order
type CreateOrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

// CreateOrderRequest is the buyer-facing order creation payload
type CreateOrderRequest struct {
	SellerID        uuid.UUID                `json:"seller_id" validate:"uuid_required"`
	DeliveryMessage string                   `json:"delivery_message"`
	Items           []CreateOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}
