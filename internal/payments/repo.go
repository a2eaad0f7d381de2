package payments

import (
	"context"
	"strings"

	"github.com/bizbookhq/bizbook-backend/pkg/db/models"
	"github.com/bizbookhq/bizbook-backend/pkg/enums"
	"gorm.io/gorm"
)

// ListFilters narrows payment listings. Search matches the payment note or
// the party name, case-insensitively.
type ListFilters struct {
	Type      *enums.PaymentDirection
	PartyID   *uint
	InvoiceID *uint
	Mode      *string
	Search    string
}

// Repository is the persistence surface for payments plus the linked rows a
// payment mutation touches.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, payment *models.Payment) error
	Save(ctx context.Context, payment *models.Payment) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Payment, error)
	List(ctx context.Context, filters ListFilters) ([]models.Payment, error)
	PartyExists(ctx context.Context, id uint) (bool, error)
	FindInvoice(ctx context.Context, id uint) (*models.Invoice, error)
	SaveInvoiceSettlement(ctx context.Context, invoiceID uint, paid, balance float64, status enums.InvoiceStatus) error
	SaveInvoicePaid(ctx context.Context, invoiceID uint, paid, balance float64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *repository) Save(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).
		Omit("Party", "Invoice").
		Save(payment).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Payment{}, "id = ?", id).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).
		Preload("Party").
		Preload("Invoice").
		First(&payment, "payments.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]models.Payment, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Preload("Party").
		Preload("Invoice").
		Order("payments.id DESC")

	if filters.Type != nil {
		q = q.Where("payments.type = ?", *filters.Type)
	}
	if filters.PartyID != nil {
		q = q.Where("payments.party_id = ?", *filters.PartyID)
	}
	if filters.InvoiceID != nil {
		q = q.Where("payments.invoice_id = ?", *filters.InvoiceID)
	}
	if filters.Mode != nil {
		q = q.Where("payments.mode = ?", *filters.Mode)
	}
	if filters.Search != "" {
		// LOWER on both sides keeps the match case-insensitive on
		// postgres, where plain LIKE is not.
		pattern := "%" + strings.ToLower(filters.Search) + "%"
		q = q.Joins("LEFT JOIN parties ON parties.id = payments.party_id").
			Where("LOWER(payments.note) LIKE ? OR LOWER(parties.name) LIKE ?", pattern, pattern)
	}

	var payments []models.Payment
	if err := q.Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *repository) PartyExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Party{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindInvoice(ctx context.Context, id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.db.WithContext(ctx).First(&invoice, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *repository) SaveInvoiceSettlement(ctx context.Context, invoiceID uint, paid, balance float64, status enums.InvoiceStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("id = ?", invoiceID).
		Updates(map[string]any{
			"paid_amount": paid,
			"balance":     balance,
			"status":      status,
		}).Error
}

func (r *repository) SaveInvoicePaid(ctx context.Context, invoiceID uint, paid, balance float64) error {
	return r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("id = ?", invoiceID).
		Updates(map[string]any{
			"paid_amount": paid,
			"balance":     balance,
		}).Error
}
