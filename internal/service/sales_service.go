package service

import (
	"errors"
	"fmt"
	"time"

	"go-market-orders/internal/model"
	"go-market-orders/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleItem is one completed line item fed into the daily rollup.
type SaleItem struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
	UnitCost  decimal.Decimal
}

// WasteItem records product units discarded when a seller closes a day.
type WasteItem struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Waste     int       `json:"waste" validate:"gte=0"`
}

// ROIReport summarizes a seller's performance across a date range.
type ROIReport struct {
	StartDate       string          `json:"start_date"`
	EndDate         string          `json:"end_date"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	TotalInvestment decimal.Decimal `json:"total_investment"`
	Profit          decimal.Decimal `json:"profit"`
	ROIPercent      decimal.Decimal `json:"roi_percent"`
}

// SalesService maintains the per-seller-per-day financial rollups.
// RecordSale runs inside the order transaction that completed the sale;
// the read endpoints and CloseDay manage their own scope.
type SalesService interface {
	RecordSale(tx *gorm.DB, sellerID uuid.UUID, date string, items []SaleItem) error
	GetToday(sellerID uuid.UUID) (*model.DailySale, error)
	GetHistory(sellerID uuid.UUID) ([]model.DailySale, error)
	GetROI(sellerID uuid.UUID, startDate, endDate string) (*ROIReport, error)
	CloseDay(sellerID uuid.UUID, date string, waste []WasteItem) (*model.DailySale, error)
}

type salesService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	db          *gorm.DB
}

func NewSalesService(sRepo repository.SaleRepository, pRepo repository.ProductRepository, db *gorm.DB) SalesService {
	return &salesService{
		saleRepo:    sRepo,
		productRepo: pRepo,
		db:          db,
	}
}

// RecordSale upserts the seller-day rollup and folds the delivered items
// into it. The upsert touches the rollup row even when it already exists,
// so concurrent deliveries for the same seller-day serialize on its row
// lock before any detail is read.
func (s *salesService) RecordSale(tx *gorm.DB, sellerID uuid.UUID, date string, items []SaleItem) error {
	sale, err := s.saleRepo.UpsertBySellerDate(tx, sellerID, date)
	if err != nil {
		return err
	}

	for _, item := range items {
		detail, err := s.saleRepo.FindDetail(tx, sale.ID, item.ProductID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			detail = &model.SaleDetail{
				DailySaleID: sale.ID,
				ProductID:   item.ProductID,
				UnitCost:    item.UnitCost,
			}
			err = nil
		}
		if err != nil {
			return err
		}

		detail.QuantitySold += item.Quantity
		// The latest delivery's price wins for the whole product-day;
		// the subtotal is rebuilt from it rather than accumulated per
		// historical price.
		detail.UnitPrice = item.UnitPrice
		detail.Subtotal = item.UnitPrice.Mul(decimal.NewFromInt(int64(detail.QuantitySold)))

		if err := s.saleRepo.SaveDetail(tx, detail); err != nil {
			return err
		}
	}

	return s.recompute(tx, sale)
}

// recompute rebuilds every aggregate column from the current detail set.
// Given an unchanged detail set it always reproduces the same values, so
// the rollup self-heals from any earlier partial write.
func (s *salesService) recompute(tx *gorm.DB, sale *model.DailySale) error {
	details, err := s.saleRepo.ListDetails(tx, sale.ID)
	if err != nil {
		return err
	}

	totalRevenue := decimal.Zero
	totalInvestment := decimal.Zero
	unitsSold := 0
	unitsLost := 0

	for _, d := range details {
		totalRevenue = totalRevenue.Add(d.UnitPrice.Mul(decimal.NewFromInt(int64(d.QuantitySold))))
		unitsSold += d.QuantitySold
		unitsLost += d.QuantityLost

		// Investment counts what was prepared for the day; sellers who
		// never prepared are charged for what actually sold.
		base := d.QuantityPrepared
		if base == 0 {
			base = d.QuantitySold
		}
		totalInvestment = totalInvestment.Add(d.UnitCost.Mul(decimal.NewFromInt(int64(base))))
	}

	margin := decimal.Zero
	if totalRevenue.IsPositive() {
		margin = totalRevenue.Sub(totalInvestment).
			Div(totalRevenue).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	sale.TotalRevenue = totalRevenue
	sale.TotalInvestment = totalInvestment
	sale.UnitsSold = unitsSold
	sale.UnitsLost = unitsLost
	sale.ProfitMargin = margin

	return s.saleRepo.UpdateTotals(tx, sale)
}

func (s *salesService) GetToday(sellerID uuid.UUID) (*model.DailySale, error) {
	today := time.Now().Format(model.SaleDateLayout)
	sale, err := s.saleRepo.FindBySellerAndDate(sellerID, today)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // no sales yet today
	}
	return sale, err
}

func (s *salesService) GetHistory(sellerID uuid.UUID) ([]model.DailySale, error) {
	return s.saleRepo.FindBySeller(sellerID)
}

func (s *salesService) GetROI(sellerID uuid.UUID, startDate, endDate string) (*ROIReport, error) {
	if endDate == "" {
		endDate = time.Now().Format(model.SaleDateLayout)
	}
	if startDate == "" {
		startDate = time.Now().AddDate(0, 0, -30).Format(model.SaleDateLayout)
	}

	revenue, investment, err := s.saleRepo.SumRange(sellerID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	profit := revenue.Sub(investment)
	roi := decimal.Zero
	if investment.IsPositive() {
		roi = profit.Div(investment).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return &ROIReport{
		StartDate:       startDate,
		EndDate:         endDate,
		TotalRevenue:    revenue,
		TotalInvestment: investment,
		Profit:          profit,
		ROIPercent:      roi,
	}, nil
}

// CloseDay records discarded units against the seller-day rollup and
// recomputes it. Products with no detail row yet (prepared elsewhere,
// never sold) get one created so the loss still shows up.
func (s *salesService) CloseDay(sellerID uuid.UUID, date string, waste []WasteItem) (*model.DailySale, error) {
	if date == "" {
		date = time.Now().Format(model.SaleDateLayout)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		sale, err := s.saleRepo.UpsertBySellerDate(tx, sellerID, date)
		if err != nil {
			return err
		}

		for _, w := range waste {
			if w.Waste <= 0 {
				continue
			}

			detail, err := s.saleRepo.FindDetail(tx, sale.ID, w.ProductID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				product, perr := s.productRepo.FindByID(tx, w.ProductID)
				if perr != nil {
					return fmt.Errorf("%w: product %s", ErrProductNotFound, w.ProductID)
				}
				if product.SellerID != sellerID {
					return fmt.Errorf("%w: product %s", ErrOwnershipViolation, w.ProductID)
				}
				detail = &model.SaleDetail{
					DailySaleID: sale.ID,
					ProductID:   product.ID,
					UnitCost:    product.UnitCost,
					UnitPrice:   product.SalePrice,
				}
				err = nil
			}
			if err != nil {
				return err
			}

			detail.QuantityLost += w.Waste
			if err := s.saleRepo.SaveDetail(tx, detail); err != nil {
				return err
			}
		}

		return s.recompute(tx, sale)
	})
	if err != nil {
		return nil, err
	}

	return s.saleRepo.FindBySellerAndDate(sellerID, date)
}
