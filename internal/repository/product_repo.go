package repository

import (
	"go-market-orders/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	// FindByID resolves a product regardless of active flag. Pass a tx to
	// read inside a transaction, nil for a plain read.
	FindByID(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	FindBySeller(sellerID uuid.UUID) ([]model.Product, error)
	// FindForSale resolves a product by (id, seller, active) inside the
	// caller's transaction; used by order creation and acceptance.
	FindForSale(tx *gorm.DB, id, sellerID uuid.UUID) (*model.Product, error)
	Update(product *model.Product) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindByID(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	if tx == nil {
		tx = r.db
	}
	var product model.Product
	if err := tx.First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindBySeller(sellerID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.
		Where("seller_id = ? AND is_active = ?", sellerID, true).
		Order("created_at DESC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) FindForSale(tx *gorm.DB, id, sellerID uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := tx.
		Where("id = ? AND seller_id = ? AND is_active = ?", id, sellerID, true).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}
