package repository

import (
	"go-market-orders/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(tx *gorm.DB, order *model.Order) error
	FindByID(id uuid.UUID) (*model.Order, error)
	// FindWithItems loads an order and its line items inside the caller's
	// transaction, without catalog preloads.
	FindWithItems(tx *gorm.DB, id uuid.UUID) (*model.Order, error)
	// TransitionStatus flips the order status only when the current status
	// matches `from`. ok=false means the order was not in `from` anymore,
	// which makes every illegal or duplicate transition a no-op.
	TransitionStatus(tx *gorm.DB, id uuid.UUID, from, to model.OrderStatus) (ok bool, err error)
	FindByBuyer(buyerID uuid.UUID) ([]model.Order, error)
	FindBySeller(sellerID uuid.UUID) ([]model.Order, error)
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

func (r *orderRepo) Create(tx *gorm.DB, order *model.Order) error {
	return tx.Create(order).Error
}

func (r *orderRepo) FindByID(id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := r.db.
		Preload("Items").
		Preload("Items.Product").
		Preload("Buyer").
		Preload("Seller").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) FindWithItems(tx *gorm.DB, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := tx.Preload("Items").First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) TransitionStatus(tx *gorm.DB, id uuid.UUID, from, to model.OrderStatus) (bool, error) {
	res := tx.Model(&model.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *orderRepo) FindByBuyer(buyerID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.
		Preload("Items").
		Preload("Items.Product").
		Preload("Seller").
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) FindBySeller(sellerID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.
		Preload("Items").
		Preload("Items.Product").
		Preload("Buyer").
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}
