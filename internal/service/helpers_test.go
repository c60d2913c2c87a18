package service

import (
	"fmt"
	"testing"

	"go-market-orders/internal/model"
	"go-market-orders/internal/repository"
	"go-market-orders/internal/ws"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory database per test. The named
// shared-cache DSN keeps every pooled connection on the same database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.InventoryRecord{},
		&model.Order{},
		&model.OrderItem{},
		&model.DailySale{},
		&model.SaleDetail{},
	))
	return db
}

type testEnv struct {
	db        *gorm.DB
	orders    OrderService
	inventory InventoryService
	sales     SalesService
	products  ProductService
	auth      AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := setupTestDB(t)
	hub := ws.NewHub() // not running; Broadcast drops when nobody listens

	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)
	inventoryRepo := repository.NewInventoryRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	saleRepo := repository.NewSaleRepo(db)

	inventory := NewInventoryService(inventoryRepo, productRepo, hub)
	sales := NewSalesService(saleRepo, productRepo, db)

	return &testEnv{
		db:        db,
		orders:    NewOrderService(orderRepo, productRepo, inventory, sales, db, hub),
		inventory: inventory,
		sales:     sales,
		products:  NewProductService(productRepo),
		auth:      NewAuthService(userRepo),
	}
}

func (e *testEnv) createUser(t *testing.T, role string) *model.User {
	t.Helper()
	user := &model.User{
		Email:    fmt.Sprintf("%s@test.local", uuid.New().String()[:8]),
		FullName: "Test " + role,
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) createProduct(t *testing.T, seller *model.User, salePrice, unitCost string, perishable bool) *model.Product {
	t.Helper()
	product := &model.Product{
		SellerID:     seller.ID,
		Name:         "Test Product",
		SalePrice:    decimal.RequireFromString(salePrice),
		UnitCost:     decimal.RequireFromString(unitCost),
		IsPerishable: perishable,
		IsActive:     true,
	}
	require.NoError(t, e.db.Create(product).Error)
	return product
}

func (e *testEnv) addStock(t *testing.T, product *model.Product, quantity int) *model.InventoryRecord {
	t.Helper()
	record := &model.InventoryRecord{
		ProductID: product.ID,
		Quantity:  quantity,
		Status:    model.InventoryActive,
	}
	require.NoError(t, e.db.Create(record).Error)
	return record
}

func (e *testEnv) activeStock(t *testing.T, productID uuid.UUID) *model.InventoryRecord {
	t.Helper()
	var record model.InventoryRecord
	require.NoError(t, e.db.Where("product_id = ?", productID).Order("created_at DESC").First(&record).Error)
	return &record
}

func (e *testEnv) placeOrder(t *testing.T, buyer *model.User, seller *model.User, product *model.Product, quantity int) *model.Order {
	t.Helper()
	order, err := e.orders.CreateOrder(&model.CreateOrderRequest{
		SellerID: seller.ID,
		Items: []model.CreateOrderItemRequest{
			{ProductID: product.ID, Quantity: quantity},
		},
	}, buyer.ID)
	require.NoError(t, err)
	return order
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, got.Equal(decimal.RequireFromString(want)), "expected %s, got %s", want, got)
}
