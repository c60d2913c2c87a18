package repository

import (
	"time"

	"go-market-orders/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SaleRepository interface {
	// UpsertBySellerDate creates the seller-day rollup row if absent and
	// returns it. On conflict the row is touched rather than skipped, so
	// on postgres the statement takes the row lock that serializes
	// concurrent deliveries for the same seller-day.
	UpsertBySellerDate(tx *gorm.DB, sellerID uuid.UUID, date string) (*model.DailySale, error)
	FindDetail(tx *gorm.DB, dailySaleID, productID uuid.UUID) (*model.SaleDetail, error)
	SaveDetail(tx *gorm.DB, detail *model.SaleDetail) error
	ListDetails(tx *gorm.DB, dailySaleID uuid.UUID) ([]model.SaleDetail, error)
	UpdateTotals(tx *gorm.DB, sale *model.DailySale) error

	FindBySellerAndDate(sellerID uuid.UUID, date string) (*model.DailySale, error)
	FindBySeller(sellerID uuid.UUID) ([]model.DailySale, error)
	SumRange(sellerID uuid.UUID, startDate, endDate string) (revenue, investment decimal.Decimal, err error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) UpsertBySellerDate(tx *gorm.DB, sellerID uuid.UUID, date string) (*model.DailySale, error) {
	sale := model.DailySale{
		SellerID: sellerID,
		SaleDate: date,
	}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "seller_id"}, {Name: "sale_date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"updated_at": time.Now()}),
	}).Create(&sale).Error
	if err != nil {
		return nil, err
	}

	// On conflict the generated ID is not the stored one; re-read inside
	// the same tx (the upsert already holds the row lock).
	var current model.DailySale
	if err := tx.Where("seller_id = ? AND sale_date = ?", sellerID, date).First(&current).Error; err != nil {
		return nil, err
	}
	return &current, nil
}

func (r *saleRepo) FindDetail(tx *gorm.DB, dailySaleID, productID uuid.UUID) (*model.SaleDetail, error) {
	var detail model.SaleDetail
	err := tx.Where("daily_sale_id = ? AND product_id = ?", dailySaleID, productID).First(&detail).Error
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *saleRepo) SaveDetail(tx *gorm.DB, detail *model.SaleDetail) error {
	return tx.Save(detail).Error
}

func (r *saleRepo) ListDetails(tx *gorm.DB, dailySaleID uuid.UUID) ([]model.SaleDetail, error) {
	if tx == nil {
		tx = r.db
	}
	var details []model.SaleDetail
	err := tx.Where("daily_sale_id = ?", dailySaleID).Find(&details).Error
	return details, err
}

func (r *saleRepo) UpdateTotals(tx *gorm.DB, sale *model.DailySale) error {
	return tx.Model(&model.DailySale{}).
		Where("id = ?", sale.ID).
		Updates(map[string]interface{}{
			"total_revenue":    sale.TotalRevenue,
			"total_investment": sale.TotalInvestment,
			"units_sold":       sale.UnitsSold,
			"units_lost":       sale.UnitsLost,
			"profit_margin":    sale.ProfitMargin,
		}).Error
}

func (r *saleRepo) FindBySellerAndDate(sellerID uuid.UUID, date string) (*model.DailySale, error) {
	var sale model.DailySale
	err := r.db.
		Preload("Details").
		Preload("Details.Product").
		Where("seller_id = ? AND sale_date = ?", sellerID, date).
		First(&sale).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) FindBySeller(sellerID uuid.UUID) ([]model.DailySale, error) {
	var sales []model.DailySale
	err := r.db.
		Preload("Details").
		Where("seller_id = ?", sellerID).
		Order("sale_date DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) SumRange(sellerID uuid.UUID, startDate, endDate string) (decimal.Decimal, decimal.Decimal, error) {
	var revenue, investment decimal.Decimal

	err := r.db.Model(&model.DailySale{}).
		Where("seller_id = ? AND sale_date BETWEEN ? AND ?", sellerID, startDate, endDate).
		Select("COALESCE(SUM(total_revenue), 0)").
		Scan(&revenue).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	err = r.db.Model(&model.DailySale{}).
		Where("seller_id = ? AND sale_date BETWEEN ? AND ?", sellerID, startDate, endDate).
		Select("COALESCE(SUM(total_investment), 0)").
		Scan(&investment).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return revenue, investment, nil
}
