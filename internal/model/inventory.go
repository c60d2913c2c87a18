package model

import "github.com/google/uuid"

type InventoryStatus string

const (
	InventoryActive  InventoryStatus = "active"
	InventorySoldOut InventoryStatus = "sold_out"
	InventoryExpired InventoryStatus = "expired"
)

// InventoryRecord tracks the remaining stock for one product.
// A single "active" record drives availability; the status flips to
// sold_out (non-perishable) or expired (perishable) exactly when the
// remaining quantity hits zero.
type InventoryRecord struct {
	BaseModel
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`
	Quantity  int             `gorm:"column:quantity_remaining;not null" json:"quantity_remaining" validate:"gte=0"`
	Status    InventoryStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
}

// TableName specifies the table name for GORM
func (InventoryRecord) TableName() string {
	return "inventory_records"
}
