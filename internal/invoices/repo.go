package invoices

import (
	"context"
	"fmt"

	"github.com/bizbookhq/bizbook-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository manages persistence for invoices and their line items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	NextInvoiceNumber(ctx context.Context) (string, error)
	Create(ctx context.Context, invoice *models.Invoice) error
	Save(ctx context.Context, invoice *models.Invoice) error
	Delete(ctx context.Context, id uint) error
	CreateItems(ctx context.Context, items []models.InvoiceItem) error
	DeleteItems(ctx context.Context, invoiceID uint) error
	FindByID(ctx context.Context, id uint) (*models.Invoice, error)
	List(ctx context.Context, filters ListFilters) ([]models.Invoice, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an invoice repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// NextInvoiceNumber bumps the sequence row and renders the number. The
// UPDATE takes a row lock, so concurrent creating transactions serialize
// here instead of racing a max(id) read.
func (r *repository) NextInvoiceNumber(ctx context.Context) (string, error) {
	res := r.db.WithContext(ctx).
		Exec("UPDATE invoice_sequence SET value = value + 1 WHERE id = 1")
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		if err := r.db.WithContext(ctx).
			Create(&models.InvoiceSequence{ID: 1, Value: 1}).Error; err != nil {
			return "", err
		}
	}

	var seq models.InvoiceSequence
	if err := r.db.WithContext(ctx).First(&seq, "id = ?", 1).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%04d", seq.Value), nil
}

func (r *repository) Create(ctx context.Context, invoice *models.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *repository) Save(ctx context.Context, invoice *models.Invoice) error {
	// Save the bare row; line items are managed explicitly by the service.
	return r.db.WithContext(ctx).
		Omit("Items", "Party").
		Save(invoice).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Invoice{}, "id = ?", id).Error
}

func (r *repository) CreateItems(ctx context.Context, items []models.InvoiceItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *repository) DeleteItems(ctx context.Context, invoiceID uint) error {
	return r.db.WithContext(ctx).
		Delete(&models.InvoiceItem{}, "invoice_id = ?", invoiceID).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Party").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Items.Item").
		First(&invoice, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]models.Invoice, error) {
	query := r.db.WithContext(ctx).
		Preload("Party").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Items.Item").
		Order("id DESC")

	if filters.Type != nil {
		query = query.Where("type = ?", *filters.Type)
	}
	if filters.PartyID != nil {
		query = query.Where("party_id = ?", *filters.PartyID)
	}

	var invoices []models.Invoice
	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}
