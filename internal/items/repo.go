package items

import (
	"context"

	"github.com/bizbookhq/bizbook-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository manages persistence for stock items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, item *models.Item) error
	Save(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Item, error)
	FindByName(ctx context.Context, name string, excludeID uint) (*models.Item, error)
	List(ctx context.Context) ([]models.Item, error)
	ListLowStock(ctx context.Context) ([]models.Item, error)
	CountInvoiceLineRefs(ctx context.Context, id uint) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an item repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, item *models.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repository) Save(ctx context.Context, item *models.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Item{}, "id = ?", id).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) FindByName(ctx context.Context, name string, excludeID uint) (*models.Item, error) {
	var item models.Item
	query := r.db.WithContext(ctx).Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) List(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) ListLowStock(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := r.db.WithContext(ctx).
		Where("low_stock_alert IS NOT NULL AND current_stock <= low_stock_alert").
		Order("current_stock ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) CountInvoiceLineRefs(ctx context.Context, id uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.InvoiceItem{}).
		Where("item_id = ?", id).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
