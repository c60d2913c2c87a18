package service

import (
	"errors"
	"fmt"

	"go-market-orders/internal/model"
	"go-market-orders/internal/repository"
	"go-market-orders/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductService interface {
	Create(req *model.Product, sellerID uuid.UUID) error
	Update(id uuid.UUID, req *model.Product, sellerID uuid.UUID) (*model.Product, error)
	Deactivate(id, sellerID uuid.UUID) error
	Get(id, sellerID uuid.UUID) (*model.Product, error)
	List(sellerID uuid.UUID) ([]model.Product, error)
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(pRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: pRepo}
}

func (s *productService) Create(req *model.Product, sellerID uuid.UUID) error {
	req.SellerID = sellerID
	req.IsActive = true
	if err := validator.FirstError(req); err != nil {
		return err
	}
	if req.SalePrice.IsNegative() || req.UnitCost.IsNegative() {
		return errors.New("prices cannot be negative")
	}
	return s.productRepo.Create(req)
}

func (s *productService) Update(id uuid.UUID, req *model.Product, sellerID uuid.UUID) (*model.Product, error) {
	existing, err := s.owned(id, sellerID)
	if err != nil {
		return nil, err
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.SalePrice = req.SalePrice
	existing.UnitCost = req.UnitCost
	existing.IsPerishable = req.IsPerishable

	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Deactivate soft-deletes: existing orders keep their snapshots, the
// product just stops resolving for new ones.
func (s *productService) Deactivate(id, sellerID uuid.UUID) error {
	existing, err := s.owned(id, sellerID)
	if err != nil {
		return err
	}
	existing.IsActive = false
	return s.productRepo.Update(existing)
}

func (s *productService) Get(id, sellerID uuid.UUID) (*model.Product, error) {
	return s.owned(id, sellerID)
}

func (s *productService) List(sellerID uuid.UUID) ([]model.Product, error) {
	return s.productRepo.FindBySeller(sellerID)
}

func (s *productService) owned(id, sellerID uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %s", ErrProductNotFound, id)
		}
		return nil, err
	}
	if product.SellerID != sellerID {
		return nil, fmt.Errorf("%w: product %s", ErrOwnershipViolation, id)
	}
	return product, nil
}
