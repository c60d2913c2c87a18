package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	SellerID    uuid.UUID `gorm:"type:uuid;not null;index" json:"seller_id" validate:"uuid_required"`
	Seller      *User     `gorm:"foreignKey:SellerID" json:"seller,omitempty" validate:"-"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description string    `gorm:"type:text" json:"description"`

	SalePrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"sale_price"`
	UnitCost  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_cost"`

	IsPerishable bool `gorm:"default:false" json:"is_perishable"`
	IsActive     bool `gorm:"default:true" json:"is_active"`
}
