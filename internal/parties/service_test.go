package parties

import (
	"context"
	"testing"

	"github.com/bizbookhq/bizbook-backend/pkg/db/models"
	"github.com/bizbookhq/bizbook-backend/pkg/enums"
	pkgerrors "github.com/bizbookhq/bizbook-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupPartiesDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Party{}, &models.Invoice{}, &models.InvoiceItem{}, &models.Payment{}))
	return db
}

func newPartyService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	return svc
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected a typed error, got %v", err)
	assert.Equal(t, code, typed.Code())
}

func TestCreateDefaultsCurrentBalanceToOpening(t *testing.T) {
	svc := newPartyService(t, setupPartiesDB(t))

	party, err := svc.Create(context.Background(), CreatePartyInput{
		Name:           "Gupta Hardware",
		Type:           "customer",
		OpeningBalance: 1500,
	})
	require.NoError(t, err)
	assert.Equal(t, 1500.0, party.CurrentBalance)
	assert.Equal(t, enums.PartyTypeCustomer, party.Type)
}

func TestCreateHonorsExplicitCurrentBalance(t *testing.T) {
	svc := newPartyService(t, setupPartiesDB(t))

	explicit := 200.0
	party, err := svc.Create(context.Background(), CreatePartyInput{
		Name:           "Mehta Suppliers",
		Type:           "supplier",
		OpeningBalance: 1000,
		CurrentBalance: &explicit,
	})
	require.NoError(t, err)
	assert.Equal(t, 200.0, party.CurrentBalance)
}

func TestCreateValidation(t *testing.T) {
	svc := newPartyService(t, setupPartiesDB(t))
	ctx := context.Background()

	_, err := svc.Create(ctx, CreatePartyInput{Type: "customer"})
	assertCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.Create(ctx, CreatePartyInput{Name: "X", Type: "vendor"})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestUpdatePartialFields(t *testing.T) {
	svc := newPartyService(t, setupPartiesDB(t))
	ctx := context.Background()

	party, err := svc.Create(ctx, CreatePartyInput{Name: "Old Name", Type: "customer"})
	require.NoError(t, err)

	name := "New Name"
	contact := "9876543210"
	updated, err := svc.Update(ctx, party.ID, UpdatePartyInput{Name: &name, Contact: &contact})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	require.NotNil(t, updated.Contact)
	assert.Equal(t, "9876543210", *updated.Contact)
	assert.Equal(t, enums.PartyTypeCustomer, updated.Type)
}

func TestGetMissingParty(t *testing.T) {
	svc := newPartyService(t, setupPartiesDB(t))
	_, err := svc.Get(context.Background(), 404)
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestDeleteRejectsReferencedParty(t *testing.T) {
	db := setupPartiesDB(t)
	svc := newPartyService(t, db)
	ctx := context.Background()

	withInvoice, err := svc.Create(ctx, CreatePartyInput{Name: "Invoiced", Type: "customer"})
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Invoice{
		InvoiceNumber: "INV-0001",
		Type:          enums.InvoiceTypeSale,
		PartyID:       withInvoice.ID,
	}).Error)

	err = svc.Delete(ctx, withInvoice.ID)
	assertCode(t, err, pkgerrors.CodeConflict)

	withPayment, err := svc.Create(ctx, CreatePartyInput{Name: "Paid", Type: "customer"})
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Payment{
		Type:    enums.PaymentDirectionIn,
		PartyID: withPayment.ID,
		Amount:  100,
	}).Error)

	err = svc.Delete(ctx, withPayment.ID)
	assertCode(t, err, pkgerrors.CodeConflict)
}

func TestDeleteUnreferencedParty(t *testing.T) {
	svc := newPartyService(t, setupPartiesDB(t))
	ctx := context.Background()

	party, err := svc.Create(ctx, CreatePartyInput{Name: "Free", Type: "supplier"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, party.ID))

	_, err = svc.Get(ctx, party.ID)
	assertCode(t, err, pkgerrors.CodeNotFound)
}
