package items

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bizbookhq/bizbook-backend/pkg/db"
	"github.com/bizbookhq/bizbook-backend/pkg/db/models"
	pkgerrors "github.com/bizbookhq/bizbook-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service defines item catalog operations.
type Service interface {
	Create(ctx context.Context, input CreateItemInput) (*models.Item, error)
	Get(ctx context.Context, id uint) (*models.Item, error)
	List(ctx context.Context) ([]models.Item, error)
	ListLowStock(ctx context.Context) ([]models.Item, error)
	Update(ctx context.Context, id uint, input UpdateItemInput) (*models.Item, error)
	Delete(ctx context.Context, id uint) error
}

// CreateItemInput carries the fields accepted when creating an item.
type CreateItemInput struct {
	Name          string
	HSNSac        *string
	Unit          string
	PurchaseRate  float64
	SaleRate      float64
	TaxRate       *float64
	CurrentStock  float64
	LowStockAlert *float64
}

// UpdateItemInput carries optional fields for partial item updates. Nil
// means "leave unchanged"; LowStockAlert distinguishes clearing the
// threshold from leaving it alone via ClearLowStockAlert.
type UpdateItemInput struct {
	Name               *string
	HSNSac             *string
	Unit               *string
	PurchaseRate       *float64
	SaleRate           *float64
	TaxRate            *float64
	CurrentStock       *float64
	LowStockAlert      *float64
	ClearLowStockAlert bool
}

const defaultTaxRate = 18

type service struct {
	repo Repository
}

// NewService wires an item service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("items repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateItemInput) (*models.Item, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
	}
	if strings.TrimSpace(input.Unit) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit is required")
	}
	if input.SaleRate < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sale rate must be zero or positive")
	}

	if _, err := s.repo.FindByName(ctx, name, 0); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "an item with this name already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check item name uniqueness")
	}

	taxRate := float64(defaultTaxRate)
	if input.TaxRate != nil {
		taxRate = *input.TaxRate
	}

	item := &models.Item{
		Name:          name,
		HSNSac:        trimPtr(input.HSNSac),
		Unit:          strings.TrimSpace(input.Unit),
		PurchaseRate:  input.PurchaseRate,
		SaleRate:      input.SaleRate,
		TaxRate:       taxRate,
		CurrentStock:  input.CurrentStock,
		LowStockAlert: input.LowStockAlert,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		// The pre-insert name check races concurrent creates; the unique
		// index is the authority.
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "an item with this name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create item")
	}
	return item, nil
}

func (s *service) Get(ctx context.Context, id uint) (*models.Item, error) {
	item, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	return item, nil
}

func (s *service) List(ctx context.Context) ([]models.Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list items")
	}
	return items, nil
}

func (s *service) ListLowStock(ctx context.Context) ([]models.Item, error) {
	items, err := s.repo.ListLowStock(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list low stock items")
	}
	return items, nil
}

func (s *service) Update(ctx context.Context, id uint, input UpdateItemInput) (*models.Item, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item name cannot be empty")
		}
		if name != item.Name {
			if _, err := s.repo.FindByName(ctx, name, id); err == nil {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "another item with this name already exists")
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check item name uniqueness")
			}
		}
		item.Name = name
	}
	if input.HSNSac != nil {
		item.HSNSac = trimPtr(input.HSNSac)
	}
	if input.Unit != nil {
		unit := strings.TrimSpace(*input.Unit)
		if unit == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit cannot be empty")
		}
		item.Unit = unit
	}
	if input.PurchaseRate != nil {
		item.PurchaseRate = *input.PurchaseRate
	}
	if input.SaleRate != nil {
		if *input.SaleRate < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "sale rate must be zero or positive")
		}
		item.SaleRate = *input.SaleRate
	}
	if input.TaxRate != nil {
		item.TaxRate = *input.TaxRate
	}
	if input.CurrentStock != nil {
		item.CurrentStock = *input.CurrentStock
	}
	if input.ClearLowStockAlert {
		item.LowStockAlert = nil
	} else if input.LowStockAlert != nil {
		item.LowStockAlert = input.LowStockAlert
	}

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update item")
	}
	return item, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	refs, err := s.repo.CountInvoiceLineRefs(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check invoice references")
	}
	if refs > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "item is used by one or more invoices")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete item")
	}
	return nil
}

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
