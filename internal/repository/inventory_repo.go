package repository

import (
	"go-market-orders/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryRepository interface {
	Create(record *model.InventoryRecord) error
	// FindActiveByProduct returns the single active record driving
	// availability for a product. Pass a tx to read inside a transaction.
	FindActiveByProduct(tx *gorm.DB, productID uuid.UUID) (*model.InventoryRecord, error)
	// DecrementStock runs a guarded atomic decrement. ok=false means the
	// guard failed (not enough stock or record no longer active). On
	// success the remaining quantity is read back from the row inside the
	// same transaction; the guard may have re-evaluated against a value
	// committed after the caller's snapshot, so caller arithmetic on a
	// previously read quantity is not trustworthy.
	DecrementStock(tx *gorm.DB, recordID uuid.UUID, quantity int) (remaining int, ok bool, err error)
	UpdateStatus(tx *gorm.DB, recordID uuid.UUID, status model.InventoryStatus) error
	HistoryByProduct(productID uuid.UUID) ([]model.InventoryRecord, error)
}

type inventoryRepo struct {
	db *gorm.DB
}

func NewInventoryRepo(db *gorm.DB) InventoryRepository {
	return &inventoryRepo{db}
}

func (r *inventoryRepo) Create(record *model.InventoryRecord) error {
	return r.db.Create(record).Error
}

func (r *inventoryRepo) FindActiveByProduct(tx *gorm.DB, productID uuid.UUID) (*model.InventoryRecord, error) {
	if tx == nil {
		tx = r.db
	}
	var record model.InventoryRecord
	err := tx.
		Where("product_id = ? AND status = ?", productID, model.InventoryActive).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// DecrementStock is the serialization barrier for concurrent accepts: the
// quantity check and the subtraction happen in one UPDATE, so two callers
// racing on the last units cannot both succeed. The row lock the statement
// takes also covers the follow-up status flip until the tx commits.
func (r *inventoryRepo) DecrementStock(tx *gorm.DB, recordID uuid.UUID, quantity int) (int, bool, error) {
	res := tx.Model(&model.InventoryRecord{}).
		Where("id = ? AND status = ? AND quantity_remaining >= ?", recordID, model.InventoryActive, quantity).
		Update("quantity_remaining", gorm.Expr("quantity_remaining - ?", quantity))
	if res.Error != nil {
		return 0, false, res.Error
	}
	if res.RowsAffected != 1 {
		return 0, false, nil
	}

	var record model.InventoryRecord
	if err := tx.Select("quantity_remaining").First(&record, "id = ?", recordID).Error; err != nil {
		return 0, false, err
	}
	return record.Quantity, true, nil
}

func (r *inventoryRepo) UpdateStatus(tx *gorm.DB, recordID uuid.UUID, status model.InventoryStatus) error {
	return tx.Model(&model.InventoryRecord{}).
		Where("id = ?", recordID).
		Update("status", status).Error
}

func (r *inventoryRepo) HistoryByProduct(productID uuid.UUID) ([]model.InventoryRecord, error) {
	var records []model.InventoryRecord
	err := r.db.
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}
