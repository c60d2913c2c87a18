package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleDateLayout is how sale dates are stored (calendar day, no time part)
const SaleDateLayout = "2006-01-02"

// DailySale is the per-seller, per-day financial rollup. Totals are always
// recomputed wholly from the current detail set, never incremented in
// place, so a re-run over unchanged details yields identical values.
type DailySale struct {
	BaseModel
	SellerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_daily_sales_seller_date,priority:1" json:"seller_id"`
	Seller   *User     `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	SaleDate string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_daily_sales_seller_date,priority:2" json:"sale_date"`

	TotalRevenue    decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"total_revenue"`
	TotalInvestment decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"total_investment"`
	UnitsSold       int             `gorm:"default:0" json:"units_sold"`
	UnitsLost       int             `gorm:"default:0" json:"units_lost"`
	ProfitMargin    decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"profit_margin"`

	Details []SaleDetail `json:"details,omitempty"`
}

// TableName specifies the table name for GORM
func (DailySale) TableName() string {
	return "daily_sales"
}

// SaleDetail is one product's contribution to a seller-day rollup.
// QuantityPrepared may be pre-seeded by a day-preparation flow; when zero,
// the investment recompute falls back to the quantity actually sold.
type SaleDetail struct {
	BaseModel
	DailySaleID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_sale_details_sale_product,priority:1" json:"daily_sale_id"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_sale_details_sale_product,priority:2" json:"product_id"`
	Product     *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`

	QuantityPrepared int `gorm:"default:0" json:"quantity_prepared"`
	QuantitySold     int `gorm:"default:0" json:"quantity_sold"`
	QuantityLost     int `gorm:"default:0" json:"quantity_lost"`

	UnitCost  decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"unit_cost"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"unit_price"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"subtotal"`
}
