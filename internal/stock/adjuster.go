// Package stock adjusts item stock levels as invoices are created, edited,
// and deleted. Adjustments always run inside the caller's transaction.
package stock

import (
	"context"
	"errors"

	"github.com/bizbookhq/bizbook-backend/pkg/db/models"
	pkgerrors "github.com/bizbookhq/bizbook-backend/pkg/errors"
	"gorm.io/gorm"
)

// Line is one (item, quantity) pair. A nil ItemID marks a pure service line
// with no stock effect.
type Line struct {
	ItemID   *uint
	Quantity float64
}

// Adjuster applies signed quantity deltas to item stock. In lenient mode a
// line referencing a missing item is skipped; strict mode fails the whole
// transaction instead.
type Adjuster struct {
	strict bool
}

// NewAdjuster builds an adjuster with the configured missing-item policy.
func NewAdjuster(strict bool) *Adjuster {
	return &Adjuster{strict: strict}
}

// Apply shifts each line's item stock by sign*quantity, clamping the result
// at zero. Sale invoices pass sign -1, purchases +1; reverting an earlier
// application is the same call with the opposite sign.
func (a *Adjuster) Apply(ctx context.Context, tx *gorm.DB, sign float64, lines []Line) error {
	if tx == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "transaction required for stock adjustment")
	}

	for _, line := range lines {
		if line.ItemID == nil {
			continue
		}

		var item models.Item
		err := tx.WithContext(ctx).First(&item, "id = ?", *line.ItemID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if a.strict {
				return pkgerrors.New(pkgerrors.CodeNotFound, "item referenced by invoice line not found")
			}
			continue
		}
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item for stock adjustment")
		}

		newStock := item.CurrentStock + sign*line.Quantity
		if newStock < 0 {
			newStock = 0
		}

		if err := tx.WithContext(ctx).
			Model(&models.Item{}).
			Where("id = ?", item.ID).
			Update("current_stock", newStock).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update item stock")
		}
	}

	return nil
}
