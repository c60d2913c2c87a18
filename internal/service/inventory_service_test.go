package service

import (
	"testing"

	"go-market-orders/internal/model"
	"go-market-orders/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCheckAvailable(t *testing.T) {
	env := newTestEnv(t)
	seller := env.createUser(t, model.RoleSeller)
	product := env.createProduct(t, seller, "5", "2", false)
	env.addStock(t, product, 3)

	assert.NoError(t, env.inventory.CheckAvailable(nil, product.ID, 3))
	assert.ErrorIs(t, env.inventory.CheckAvailable(nil, product.ID, 4), ErrInsufficientStock)

	// No active record at all
	orphan := env.createProduct(t, seller, "5", "2", false)
	assert.ErrorIs(t, env.inventory.CheckAvailable(nil, orphan.ID, 1), ErrInsufficientStock)
}

func TestCheckAvailable_DoesNotMutate(t *testing.T) {
	env := newTestEnv(t)
	seller := env.createUser(t, model.RoleSeller)
	product := env.createProduct(t, seller, "5", "2", false)
	record := env.addStock(t, product, 3)

	require.NoError(t, env.inventory.CheckAvailable(nil, product.ID, 2))

	var after model.InventoryRecord
	require.NoError(t, env.db.First(&after, "id = ?", record.ID).Error)
	assert.Equal(t, 3, after.Quantity)
	assert.Equal(t, model.InventoryActive, after.Status)
}

func TestDecrement_GuardsRemainingQuantity(t *testing.T) {
	env := newTestEnv(t)
	seller := env.createUser(t, model.RoleSeller)
	product := env.createProduct(t, seller, "5", "2", false)
	env.addStock(t, product, 3)

	err := env.db.Transaction(func(tx *gorm.DB) error {
		remaining, err := env.inventory.Decrement(tx, product, 2)
		require.NoError(t, err)
		assert.Equal(t, 1, remaining)
		return nil
	})
	require.NoError(t, err)

	record := env.activeStock(t, product.ID)
	assert.Equal(t, 1, record.Quantity)
	assert.Equal(t, model.InventoryActive, record.Status)

	// Asking for more than remains fails without touching the record
	err = env.db.Transaction(func(tx *gorm.DB) error {
		_, err := env.inventory.Decrement(tx, product, 2)
		return err
	})
	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 1, env.activeStock(t, product.ID).Quantity)
}

func TestDecrement_FlipsStatusAtZero(t *testing.T) {
	env := newTestEnv(t)
	seller := env.createUser(t, model.RoleSeller)

	durable := env.createProduct(t, seller, "5", "2", false)
	env.addStock(t, durable, 2)
	perishable := env.createProduct(t, seller, "5", "2", true)
	env.addStock(t, perishable, 2)

	err := env.db.Transaction(func(tx *gorm.DB) error {
		if _, err := env.inventory.Decrement(tx, durable, 2); err != nil {
			return err
		}
		_, err := env.inventory.Decrement(tx, perishable, 2)
		return err
	})
	require.NoError(t, err)

	assert.Equal(t, model.InventorySoldOut, env.activeStock(t, durable.ID).Status)
	assert.Equal(t, model.InventoryExpired, env.activeStock(t, perishable.ID).Status)
}

func TestDecrement_EmptiedRecordNoLongerServes(t *testing.T) {
	env := newTestEnv(t)
	seller := env.createUser(t, model.RoleSeller)
	product := env.createProduct(t, seller, "5", "2", false)
	env.addStock(t, product, 1)

	err := env.db.Transaction(func(tx *gorm.DB) error {
		_, err := env.inventory.Decrement(tx, product, 1)
		return err
	})
	require.NoError(t, err)

	err = env.db.Transaction(func(tx *gorm.DB) error {
		_, err := env.inventory.Decrement(tx, product, 1)
		return err
	})
	require.ErrorIs(t, err, ErrInsufficientStock)
}

func TestDecrementStock_ReturnsStoredRemaining(t *testing.T) {
	env := newTestEnv(t)
	seller := env.createUser(t, model.RoleSeller)
	product := env.createProduct(t, seller, "5", "2", false)
	record := env.addStock(t, product, 5)
	repo := repository.NewInventoryRepo(env.db)

	// Two takers land on the same row. Each must learn the remaining
	// quantity from the row itself: under read committed the guard
	// re-evaluates against the other taker's committed decrement, so
	// arithmetic on a quantity read before the update can overstate what
	// is left and miss the flip to zero.
	err := env.db.Transaction(func(tx *gorm.DB) error {
		remaining, ok, err := repo.DecrementStock(tx, record.ID, 3)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 2, remaining)

		remaining, ok, err = repo.DecrementStock(tx, record.ID, 2)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 0, remaining)
		return nil
	})
	require.NoError(t, err)

	var after model.InventoryRecord
	require.NoError(t, env.db.First(&after, "id = ?", record.ID).Error)
	assert.Equal(t, 0, after.Quantity)
}

func TestDecrementStock_LastUnitHasOneWinner(t *testing.T) {
	env := newTestEnv(t)
	seller := env.createUser(t, model.RoleSeller)
	product := env.createProduct(t, seller, "5", "2", false)
	record := env.addStock(t, product, 1)
	repo := repository.NewInventoryRepo(env.db)

	// The row guard, not any caller-side check, decides who takes the
	// last unit
	err := env.db.Transaction(func(tx *gorm.DB) error {
		remaining, ok, err := repo.DecrementStock(tx, record.ID, 1)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 0, remaining)

		_, ok, err = repo.DecrementStock(tx, record.ID, 1)
		require.NoError(t, err)
		assert.False(t, ok)
		return nil
	})
	require.NoError(t, err)
}

func TestAddStock(t *testing.T) {
	env := newTestEnv(t)
	seller := env.createUser(t, model.RoleSeller)
	product := env.createProduct(t, seller, "5", "2", false)

	record := &model.InventoryRecord{ProductID: product.ID, Quantity: 5}
	require.NoError(t, env.inventory.AddStock(record, seller.ID))
	assert.Equal(t, model.InventoryActive, record.Status)

	require.NoError(t, env.inventory.CheckAvailable(nil, product.ID, 5))
}

func TestAddStock_OwnershipEnforced(t *testing.T) {
	env := newTestEnv(t)
	seller := env.createUser(t, model.RoleSeller)
	intruder := env.createUser(t, model.RoleSeller)
	product := env.createProduct(t, seller, "5", "2", false)

	record := &model.InventoryRecord{ProductID: product.ID, Quantity: 5}
	err := env.inventory.AddStock(record, intruder.ID)
	require.ErrorIs(t, err, ErrOwnershipViolation)

	err = env.inventory.AddStock(&model.InventoryRecord{ProductID: uuid.New(), Quantity: 5}, seller.ID)
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestGetHistory(t *testing.T) {
	env := newTestEnv(t)
	seller := env.createUser(t, model.RoleSeller)
	product := env.createProduct(t, seller, "5", "2", false)
	env.addStock(t, product, 3)
	env.addStock(t, product, 7)

	records, err := env.inventory.GetHistory(product.ID, seller.ID)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	other := env.createUser(t, model.RoleSeller)
	_, err = env.inventory.GetHistory(product.ID, other.ID)
	require.ErrorIs(t, err, ErrOwnershipViolation)
}
