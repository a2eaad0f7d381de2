package invoices

import (
	"context"
	"fmt"
	"testing"

	"github.com/bizbookhq/bizbook-backend/internal/ledger"
	"github.com/bizbookhq/bizbook-backend/internal/stock"
	"github.com/bizbookhq/bizbook-backend/pkg/config"
	"github.com/bizbookhq/bizbook-backend/pkg/db"
	"github.com/bizbookhq/bizbook-backend/pkg/db/models"
	"github.com/bizbookhq/bizbook-backend/pkg/enums"
	pkgerrors "github.com/bizbookhq/bizbook-backend/pkg/errors"
	"github.com/bizbookhq/bizbook-backend/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupInvoiceService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	client, err := db.New(context.Background(), config.DBConfig{
		Driver: config.DriverSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	conn := client.DB()
	require.NoError(t, conn.AutoMigrate(
		&models.Item{},
		&models.Party{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.InvoiceSequence{},
	))

	svc, err := NewService(
		NewRepository(conn),
		client,
		stock.NewAdjuster(false),
		ledger.NewUpdater(false),
		money.TaxRates{CGST: 9, SGST: 9},
		nil,
	)
	require.NoError(t, err)
	return svc, conn
}

func seedItem(t *testing.T, conn *gorm.DB, name string, stockQty float64) *models.Item {
	t.Helper()
	item := &models.Item{Name: name, Unit: "pcs", SaleRate: 100, TaxRate: 18, CurrentStock: stockQty}
	require.NoError(t, conn.Create(item).Error)
	return item
}

func seedParty(t *testing.T, conn *gorm.DB, name string, balance float64) *models.Party {
	t.Helper()
	party := &models.Party{Name: name, Type: enums.PartyTypeCustomer, OpeningBalance: balance, CurrentBalance: balance}
	require.NoError(t, conn.Create(party).Error)
	return party
}

func reloadItem(t *testing.T, conn *gorm.DB, id uint) *models.Item {
	t.Helper()
	var item models.Item
	require.NoError(t, conn.First(&item, "id = ?", id).Error)
	return &item
}

func reloadParty(t *testing.T, conn *gorm.DB, id uint) *models.Party {
	t.Helper()
	var party models.Party
	require.NoError(t, conn.First(&party, "id = ?", id).Error)
	return &party
}

func saleInput(partyID uint, itemID *uint, qty, rate float64) CreateInvoiceInput {
	return CreateInvoiceInput{
		Type:    "sale",
		PartyID: partyID,
		Items:   []LineItemInput{{ItemID: itemID, Quantity: qty, Rate: rate}},
	}
}

func TestCreateSaleComputesTotalsAndSideEffects(t *testing.T) {
	svc, conn := setupInvoiceService(t)
	item := seedItem(t, conn, "cement", 10)
	party := seedParty(t, conn, "acme traders", 0)

	inv, err := svc.Create(context.Background(), saleInput(party.ID, &item.ID, 2, 100))
	require.NoError(t, err)

	assert.Equal(t, "INV-0001", inv.InvoiceNumber)
	assert.Equal(t, 200.0, inv.SubTotal)
	assert.Equal(t, 18.0, inv.CGSTAmount)
	assert.Equal(t, 18.0, inv.SGSTAmount)
	assert.Equal(t, 36.0, inv.TaxTotal)
	assert.Equal(t, 236.0, inv.GrandTotal)
	assert.Equal(t, 236.0, inv.Balance)
	assert.Equal(t, enums.InvoiceStatusUnpaid, inv.Status)
	assert.Equal(t, "Two Hundred Thirty Six Rupees Only", inv.AmountInWords)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, 236.0, inv.Items[0].Total)

	assert.Equal(t, 8.0, reloadItem(t, conn, item.ID).CurrentStock)
	assert.Equal(t, 236.0, reloadParty(t, conn, party.ID).CurrentBalance)
}

func TestCreatePurchaseIncrementsStockAndDecreasesBalance(t *testing.T) {
	svc, conn := setupInvoiceService(t)
	item := seedItem(t, conn, "bricks", 5)
	party := seedParty(t, conn, "supplier co", 100)

	input := saleInput(party.ID, &item.ID, 3, 10)
	input.Type = "purchase"

	inv, err := svc.Create(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 8.0, reloadItem(t, conn, item.ID).CurrentStock)
	assert.Equal(t, 100.0-inv.Balance, reloadParty(t, conn, party.ID).CurrentBalance)
}

func TestCreateAssignsSequentialNumbers(t *testing.T) {
	svc, conn := setupInvoiceService(t)
	item := seedItem(t, conn, "sand", 100)
	party := seedParty(t, conn, "buyer", 0)

	first, err := svc.Create(context.Background(), saleInput(party.ID, &item.ID, 1, 50))
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), saleInput(party.ID, &item.ID, 1, 50))
	require.NoError(t, err)

	assert.Equal(t, "INV-0001", first.InvoiceNumber)
	assert.Equal(t, "INV-0002", second.InvoiceNumber)
}

func TestCreateValidation(t *testing.T) {
	svc, conn := setupInvoiceService(t)
	party := seedParty(t, conn, "buyer", 0)

	cases := []struct {
		name  string
		input CreateInvoiceInput
	}{
		{"bad type", CreateInvoiceInput{Type: "refund", PartyID: party.ID, Items: []LineItemInput{{Quantity: 1, Rate: 1}}}},
		{"missing party", CreateInvoiceInput{Type: "sale", Items: []LineItemInput{{Quantity: 1, Rate: 1}}}},
		{"no items", CreateInvoiceInput{Type: "sale", PartyID: party.ID}},
		{"negative quantity", CreateInvoiceInput{Type: "sale", PartyID: party.ID, Items: []LineItemInput{{Quantity: -1, Rate: 1}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.input)
			require.Error(t, err)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
		})
	}
}

func TestCreateWithServiceLineSkipsStock(t *testing.T) {
	svc, conn := setupInvoiceService(t)
	party := seedParty(t, conn, "client", 0)

	desc := "labour"
	input := CreateInvoiceInput{
		Type:    "sale",
		PartyID: party.ID,
		Items:   []LineItemInput{{ItemID: nil, Description: &desc, Quantity: 1, Rate: 500}},
	}
	inv, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 590.0, inv.GrandTotal)
}

func TestUpdateRevertsThenReapplies(t *testing.T) {
	svc, conn := setupInvoiceService(t)
	item := seedItem(t, conn, "cement", 10)
	party := seedParty(t, conn, "acme", 0)

	inv, err := svc.Create(context.Background(), saleInput(party.ID, &item.ID, 2, 100))
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), inv.ID, saleInput(party.ID, &item.ID, 5, 100))
	require.NoError(t, err)

	assert.Equal(t, inv.InvoiceNumber, updated.InvoiceNumber)
	assert.Equal(t, 590.0, updated.GrandTotal)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, 5.0, updated.Items[0].Quantity)

	// 10 - 5, not 10 - 2 - 5: the update reverted the original decrement.
	assert.Equal(t, 5.0, reloadItem(t, conn, item.ID).CurrentStock)
	assert.Equal(t, 590.0, reloadParty(t, conn, party.ID).CurrentBalance)
}

func TestUpdatePaidInvoiceIsRejected(t *testing.T) {
	svc, conn := setupInvoiceService(t)
	item := seedItem(t, conn, "cement", 10)
	party := seedParty(t, conn, "acme", 0)

	inv, err := svc.Create(context.Background(), saleInput(party.ID, &item.ID, 2, 100))
	require.NoError(t, err)
	require.NoError(t, conn.Model(&models.Invoice{}).Where("id = ?", inv.ID).Update("paid_amount", 50).Error)

	_, err = svc.Update(context.Background(), inv.ID, saleInput(party.ID, &item.ID, 9, 100))
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())

	// Nothing moved.
	assert.Equal(t, 8.0, reloadItem(t, conn, item.ID).CurrentStock)
	assert.Equal(t, 236.0, reloadParty(t, conn, party.ID).CurrentBalance)
}

func TestDeleteRestoresStockAndBalance(t *testing.T) {
	svc, conn := setupInvoiceService(t)
	item := seedItem(t, conn, "cement", 10)
	party := seedParty(t, conn, "acme", 40)

	inv, err := svc.Create(context.Background(), saleInput(party.ID, &item.ID, 2, 100))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), inv.ID))

	assert.Equal(t, 10.0, reloadItem(t, conn, item.ID).CurrentStock)
	assert.Equal(t, 40.0, reloadParty(t, conn, party.ID).CurrentBalance)

	var count int64
	require.NoError(t, conn.Model(&models.InvoiceItem{}).Where("invoice_id = ?", inv.ID).Count(&count).Error)
	assert.Zero(t, count)

	_, err = svc.Get(context.Background(), inv.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListFiltersByTypeAndParty(t *testing.T) {
	svc, conn := setupInvoiceService(t)
	item := seedItem(t, conn, "cement", 100)
	customer := seedParty(t, conn, "customer", 0)
	supplier := seedParty(t, conn, "supplier", 0)

	_, err := svc.Create(context.Background(), saleInput(customer.ID, &item.ID, 1, 10))
	require.NoError(t, err)

	purchase := saleInput(supplier.ID, &item.ID, 1, 10)
	purchase.Type = "purchase"
	_, err = svc.Create(context.Background(), purchase)
	require.NoError(t, err)

	saleType := enums.InvoiceTypeSale
	sales, err := svc.List(context.Background(), ListFilters{Type: &saleType})
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, customer.ID, sales[0].PartyID)

	byParty, err := svc.List(context.Background(), ListFilters{PartyID: &supplier.ID})
	require.NoError(t, err)
	require.Len(t, byParty, 1)
	assert.Equal(t, enums.InvoiceTypePurchase, byParty[0].Type)
}

func TestGetMissingInvoice(t *testing.T) {
	svc, _ := setupInvoiceService(t)
	_, err := svc.Get(context.Background(), 424242)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
