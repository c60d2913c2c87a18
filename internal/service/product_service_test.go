package service

import (
	"testing"

	"go-market-orders/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductLifecycle(t *testing.T) {
	env := newTestEnv(t)
	seller := env.createUser(t, model.RoleSeller)

	product := &model.Product{
		Name:      "Empanada",
		SalePrice: decimal.RequireFromString("5"),
		UnitCost:  decimal.RequireFromString("2"),
	}
	require.NoError(t, env.products.Create(product, seller.ID))
	assert.Equal(t, seller.ID, product.SellerID)
	assert.True(t, product.IsActive)

	product.SalePrice = decimal.RequireFromString("6")
	updated, err := env.products.Update(product.ID, product, seller.ID)
	require.NoError(t, err)
	requireDecimal(t, "6", updated.SalePrice)

	listed, err := env.products.List(seller.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	require.NoError(t, env.products.Deactivate(product.ID, seller.ID))
	listed, err = env.products.List(seller.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestProductOwnership(t *testing.T) {
	env := newTestEnv(t)
	seller := env.createUser(t, model.RoleSeller)
	intruder := env.createUser(t, model.RoleSeller)

	product := &model.Product{
		Name:      "Arepa",
		SalePrice: decimal.RequireFromString("3"),
		UnitCost:  decimal.RequireFromString("1"),
	}
	require.NoError(t, env.products.Create(product, seller.ID))

	_, err := env.products.Update(product.ID, product, intruder.ID)
	require.ErrorIs(t, err, ErrOwnershipViolation)

	err = env.products.Deactivate(product.ID, intruder.ID)
	require.ErrorIs(t, err, ErrOwnershipViolation)
}

func TestDeactivatedProductKeepsOrderSnapshots(t *testing.T) {
	env := newTestEnv(t)
	seller := env.createUser(t, model.RoleSeller)
	buyer := env.createUser(t, model.RoleBuyer)
	product := env.createProduct(t, seller, "5", "2", false)
	env.addStock(t, product, 3)
	order := env.placeOrder(t, buyer, seller, product, 2)

	require.NoError(t, env.products.Deactivate(product.ID, seller.ID))

	reloaded, err := env.orders.ListBuyerOrders(buyer.ID)
	require.NoError(t, err)
	require.Len(t, reloaded, 1)
	requireDecimal(t, "10", reloaded[0].TotalAmount)
	assert.Equal(t, order.ID, reloaded[0].ID)
}
