package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-market-orders/internal/model"
	"go-market-orders/internal/repository"
	"go-market-orders/internal/ws"
	"go-market-orders/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService drives the order state machine:
//
//	requested -> pending   (seller accepts, stock is decremented)
//	requested -> rejected  (seller rejects, nothing was reserved)
//	pending   -> completed (buyer or seller delivers, sale is rolled up)
//
// Every transition runs in one transaction spanning the order, the
// inventory records and, on delivery, the daily sale rollup; a failure
// anywhere unwinds all of it.
type OrderService interface {
	CreateOrder(req *model.CreateOrderRequest, buyerID uuid.UUID) (*model.Order, error)
	AcceptOrder(orderID, actorID uuid.UUID) (*model.Order, error)
	RejectOrder(orderID, actorID uuid.UUID) (*model.Order, error)
	DeliverOrder(orderID, actorID uuid.UUID) (*model.Order, error)
	ListBuyerOrders(buyerID uuid.UUID) ([]model.Order, error)
	ListSellerOrders(sellerID uuid.UUID) ([]model.Order, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	inventory   InventoryService
	sales       SalesService
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewOrderService(
	oRepo repository.OrderRepository,
	pRepo repository.ProductRepository,
	inventory InventoryService,
	sales SalesService,
	db *gorm.DB,
	hub *ws.Hub,
) OrderService {
	return &orderService{
		orderRepo:   oRepo,
		productRepo: pRepo,
		inventory:   inventory,
		sales:       sales,
		db:          db,
		wsHub:       hub,
	}
}

// CreateOrder validates every line against the seller's catalog and current
// stock, snapshots prices and persists the order as `requested`. Stock is
// NOT reserved here; acceptance re-checks it under the row guard.
func (s *orderService) CreateOrder(req *model.CreateOrderRequest, buyerID uuid.UUID) (*model.Order, error) {
	if err := validator.FirstError(req); err != nil {
		return nil, err
	}
	if buyerID == req.SellerID {
		return nil, ErrSelfTrade
	}

	var orderID uuid.UUID
	err := s.db.Transaction(func(tx *gorm.DB) error {
		total := decimal.Zero
		items := make([]model.OrderItem, 0, len(req.Items))

		for _, line := range req.Items {
			product, err := s.productRepo.FindForSale(tx, line.ProductID, req.SellerID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: product %s", ErrProductNotFound, line.ProductID)
				}
				return err
			}

			if err := s.inventory.CheckAvailable(tx, product.ID, line.Quantity); err != nil {
				return err
			}

			subtotal := product.SalePrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
			total = total.Add(subtotal)

			items = append(items, model.OrderItem{
				ProductID: product.ID,
				Quantity:  line.Quantity,
				UnitPrice: product.SalePrice,
				Subtotal:  subtotal,
			})
		}

		order := &model.Order{
			BuyerID:         buyerID,
			SellerID:        req.SellerID,
			TotalAmount:     total,
			Status:          model.OrderRequested,
			DeliveryMessage: req.DeliveryMessage,
			Items:           items,
		}
		if err := s.orderRepo.Create(tx, order); err != nil {
			return err
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		return nil, err
	}
	s.broadcastOrderEvent("order_created", order)
	return order, nil
}

// AcceptOrder moves requested -> pending and decrements stock for every
// line. If any single line cannot be satisfied the whole transaction rolls
// back, including decrements already applied for earlier lines.
func (s *orderService) AcceptOrder(orderID, actorID uuid.UUID) (*model.Order, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		order, err := s.loadOrder(tx, orderID)
		if err != nil {
			return err
		}
		if order.SellerID != actorID {
			return fmt.Errorf("%w: order %s", ErrOwnershipViolation, orderID)
		}

		ok, err := s.orderRepo.TransitionStatus(tx, orderID, model.OrderRequested, model.OrderPending)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: order %s is not requested", ErrInvalidStateTransition, orderID)
		}

		for _, item := range order.Items {
			product, err := s.productRepo.FindByID(tx, item.ProductID)
			if err != nil {
				return fmt.Errorf("%w: product %s", ErrProductNotFound, item.ProductID)
			}
			if _, err := s.inventory.Decrement(tx, product, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		return nil, err
	}
	s.broadcastOrderEvent("order_accepted", order)
	return order, nil
}

// RejectOrder moves requested -> rejected. Nothing was reserved at
// creation, so there is no inventory to restore.
func (s *orderService) RejectOrder(orderID, actorID uuid.UUID) (*model.Order, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		order, err := s.loadOrder(tx, orderID)
		if err != nil {
			return err
		}
		if order.SellerID != actorID {
			return fmt.Errorf("%w: order %s", ErrOwnershipViolation, orderID)
		}

		ok, err := s.orderRepo.TransitionStatus(tx, orderID, model.OrderRequested, model.OrderRejected)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: order %s is not requested", ErrInvalidStateTransition, orderID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		return nil, err
	}
	s.broadcastOrderEvent("order_rejected", order)
	return order, nil
}

// DeliverOrder moves pending -> completed and rolls the sale into the
// seller's rollup for today. The guarded transition makes delivery
// exactly-once: a second call finds the order already completed.
func (s *orderService) DeliverOrder(orderID, actorID uuid.UUID) (*model.Order, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		order, err := s.loadOrder(tx, orderID)
		if err != nil {
			return err
		}
		if order.BuyerID != actorID && order.SellerID != actorID {
			return fmt.Errorf("%w: order %s", ErrOwnershipViolation, orderID)
		}

		ok, err := s.orderRepo.TransitionStatus(tx, orderID, model.OrderPending, model.OrderCompleted)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: order %s is not pending", ErrInvalidStateTransition, orderID)
		}

		saleItems := make([]SaleItem, 0, len(order.Items))
		for _, item := range order.Items {
			product, err := s.productRepo.FindByID(tx, item.ProductID)
			if err != nil {
				return fmt.Errorf("%w: product %s", ErrProductNotFound, item.ProductID)
			}
			saleItems = append(saleItems, SaleItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				UnitCost:  product.UnitCost,
			})
		}

		deliveryDate := time.Now().Format(model.SaleDateLayout)
		return s.sales.RecordSale(tx, order.SellerID, deliveryDate, saleItems)
	})
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		return nil, err
	}
	s.broadcastOrderEvent("order_delivered", order)
	return order, nil
}

func (s *orderService) ListBuyerOrders(buyerID uuid.UUID) ([]model.Order, error) {
	return s.orderRepo.FindByBuyer(buyerID)
}

func (s *orderService) ListSellerOrders(sellerID uuid.UUID) ([]model.Order, error) {
	return s.orderRepo.FindBySeller(sellerID)
}

func (s *orderService) loadOrder(tx *gorm.DB, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.FindWithItems(tx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) broadcastOrderEvent(action string, order *model.Order) {
	go func() {
		payload := map[string]interface{}{
			"type":   "order_update",
			"action": action,
			"order": map[string]interface{}{
				"id":           order.ID,
				"buyer_id":     order.BuyerID,
				"seller_id":    order.SellerID,
				"status":       order.Status,
				"total_amount": order.TotalAmount,
			},
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast(msg)
	}()
}
