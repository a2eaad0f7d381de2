package parties

import (
	"context"

	"github.com/bizbookhq/bizbook-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository manages persistence for parties.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, party *models.Party) error
	Save(ctx context.Context, party *models.Party) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Party, error)
	List(ctx context.Context) ([]models.Party, error)
	CountInvoiceRefs(ctx context.Context, id uint) (int64, error)
	CountPaymentRefs(ctx context.Context, id uint) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a party repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, party *models.Party) error {
	return r.db.WithContext(ctx).Create(party).Error
}

func (r *repository) Save(ctx context.Context, party *models.Party) error {
	return r.db.WithContext(ctx).Save(party).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Party{}, "id = ?", id).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*models.Party, error) {
	var party models.Party
	if err := r.db.WithContext(ctx).First(&party, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &party, nil
}

func (r *repository) List(ctx context.Context) ([]models.Party, error) {
	var parties []models.Party
	if err := r.db.WithContext(ctx).
		Order("id DESC").
		Find(&parties).Error; err != nil {
		return nil, err
	}
	return parties, nil
}

func (r *repository) CountInvoiceRefs(ctx context.Context, id uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("party_id = ?", id).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) CountPaymentRefs(ctx context.Context, id uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("party_id = ?", id).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
