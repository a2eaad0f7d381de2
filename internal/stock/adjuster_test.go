package stock

import (
	"context"
	"testing"

	"github.com/bizbookhq/bizbook-backend/pkg/db/models"
	pkgerrors "github.com/bizbookhq/bizbook-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupStockDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Item{}))
	return db
}

func newItem(t *testing.T, db *gorm.DB, name string, stock float64) *models.Item {
	t.Helper()
	item := &models.Item{Name: name, Unit: "pcs", SaleRate: 100, TaxRate: 18, CurrentStock: stock}
	require.NoError(t, db.Create(item).Error)
	return item
}

func currentStock(t *testing.T, db *gorm.DB, id uint) float64 {
	t.Helper()
	var item models.Item
	require.NoError(t, db.First(&item, "id = ?", id).Error)
	return item.CurrentStock
}

func TestApplySaleDecrementsAndPurchaseIncrements(t *testing.T) {
	db := setupStockDB(t)
	item := newItem(t, db, "cement", 10)
	adj := NewAdjuster(false)

	lines := []Line{{ItemID: &item.ID, Quantity: 3}}

	require.NoError(t, adj.Apply(context.Background(), db, -1, lines))
	assert.Equal(t, 7.0, currentStock(t, db, item.ID))

	require.NoError(t, adj.Apply(context.Background(), db, +1, lines))
	assert.Equal(t, 10.0, currentStock(t, db, item.ID))
}

func TestApplyClampsAtZero(t *testing.T) {
	db := setupStockDB(t)
	item := newItem(t, db, "bricks", 5)
	adj := NewAdjuster(false)

	require.NoError(t, adj.Apply(context.Background(), db, -1, []Line{{ItemID: &item.ID, Quantity: 8}}))
	assert.Equal(t, 0.0, currentStock(t, db, item.ID))
}

func TestApplySkipsServiceLines(t *testing.T) {
	db := setupStockDB(t)
	item := newItem(t, db, "sand", 4)
	adj := NewAdjuster(false)

	lines := []Line{
		{ItemID: nil, Quantity: 99},
		{ItemID: &item.ID, Quantity: 1},
	}
	require.NoError(t, adj.Apply(context.Background(), db, -1, lines))
	assert.Equal(t, 3.0, currentStock(t, db, item.ID))
}

func TestApplyMissingItemLenientVsStrict(t *testing.T) {
	db := setupStockDB(t)
	missing := uint(9999)
	lines := []Line{{ItemID: &missing, Quantity: 2}}

	require.NoError(t, NewAdjuster(false).Apply(context.Background(), db, -1, lines))

	err := NewAdjuster(true).Apply(context.Background(), db, -1, lines)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestApplyRequiresTransactionHandle(t *testing.T) {
	err := NewAdjuster(false).Apply(context.Background(), nil, -1, nil)
	require.Error(t, err)
}
