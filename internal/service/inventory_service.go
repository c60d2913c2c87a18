package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"go-market-orders/internal/model"
	"go-market-orders/internal/repository"
	"go-market-orders/internal/ws"
	"go-market-orders/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryService is the stock ledger. CheckAvailable is the read-only
// probe used while an order is still a soft hold; Decrement is the atomic
// mutation that runs at acceptance time, inside the caller's transaction.
type InventoryService interface {
	CheckAvailable(tx *gorm.DB, productID uuid.UUID, quantity int) error
	Decrement(tx *gorm.DB, product *model.Product, quantity int) (newRemaining int, err error)
	AddStock(req *model.InventoryRecord, sellerID uuid.UUID) error
	GetHistory(productID, sellerID uuid.UUID) ([]model.InventoryRecord, error)
}

type inventoryService struct {
	inventoryRepo repository.InventoryRepository
	productRepo   repository.ProductRepository
	wsHub         *ws.Hub
}

func NewInventoryService(iRepo repository.InventoryRepository, pRepo repository.ProductRepository, hub *ws.Hub) InventoryService {
	return &inventoryService{
		inventoryRepo: iRepo,
		productRepo:   pRepo,
		wsHub:         hub,
	}
}

// CheckAvailable verifies stock without mutating anything. The result is a
// soft guarantee only: a competing order can still drain the record before
// acceptance, which then fails at Decrement.
func (s *inventoryService) CheckAvailable(tx *gorm.DB, productID uuid.UUID, quantity int) error {
	record, err := s.inventoryRepo.FindActiveByProduct(tx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product %s", ErrInsufficientStock, productID)
		}
		return err
	}
	if record.Quantity < quantity {
		return fmt.Errorf("%w: product %s", ErrInsufficientStock, productID)
	}
	return nil
}

// Decrement subtracts stock under the record's row-level guard and flips
// the status to sold_out or expired when the record empties, depending on
// the product's perishability.
func (s *inventoryService) Decrement(tx *gorm.DB, product *model.Product, quantity int) (int, error) {
	record, err := s.inventoryRepo.FindActiveByProduct(tx, product.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: product %s", ErrInsufficientStock, product.ID)
		}
		return 0, err
	}

	remaining, ok, err := s.inventoryRepo.DecrementStock(tx, record.ID, quantity)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: product %s", ErrInsufficientStock, product.ID)
	}

	// The stored remaining, not arithmetic on the earlier read, drives the
	// flip: a concurrent decrement may have landed between the read and the
	// guarded update.
	if remaining == 0 {
		status := model.InventorySoldOut
		if product.IsPerishable {
			status = model.InventoryExpired
		}
		if err := s.inventoryRepo.UpdateStatus(tx, record.ID, status); err != nil {
			return 0, err
		}
	}

	return remaining, nil
}

// AddStock opens a new active inventory record for one of the seller's
// products.
func (s *inventoryService) AddStock(req *model.InventoryRecord, sellerID uuid.UUID) error {
	if err := validator.FirstError(req); err != nil {
		return err
	}
	if req.Quantity <= 0 {
		return errors.New("quantity must be greater than zero")
	}

	product, err := s.productRepo.FindByID(nil, req.ProductID)
	if err != nil {
		return fmt.Errorf("%w: product %s", ErrProductNotFound, req.ProductID)
	}
	if product.SellerID != sellerID {
		return fmt.Errorf("%w: product %s", ErrOwnershipViolation, req.ProductID)
	}

	req.Status = model.InventoryActive
	if err := s.inventoryRepo.Create(req); err != nil {
		return err
	}

	go func() {
		payload := map[string]interface{}{
			"type":       "stock_update",
			"action":     "stock_added",
			"product_id": product.ID,
			"quantity":   req.Quantity,
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast(msg)
	}()

	return nil
}

func (s *inventoryService) GetHistory(productID, sellerID uuid.UUID) ([]model.InventoryRecord, error) {
	product, err := s.productRepo.FindByID(nil, productID)
	if err != nil {
		return nil, fmt.Errorf("%w: product %s", ErrProductNotFound, productID)
	}
	if product.SellerID != sellerID {
		return nil, fmt.Errorf("%w: product %s", ErrOwnershipViolation, productID)
	}
	return s.inventoryRepo.HistoryByProduct(productID)
}
