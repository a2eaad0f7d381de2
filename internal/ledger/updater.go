// Package ledger maintains the running balance each party carries. Balances
// are double-entry-like: every invoice and payment mutation applies a delta
// that a later edit or delete reverses exactly.
package ledger

import (
	"context"
	"errors"

	"github.com/bizbookhq/bizbook-backend/pkg/db/models"
	pkgerrors "github.com/bizbookhq/bizbook-backend/pkg/errors"
	"gorm.io/gorm"
)

// Updater shifts party balances inside the caller's transaction. In lenient
// mode a missing party makes the update a no-op; strict mode fails the
// enclosing transaction.
type Updater struct {
	strict bool
}

// NewUpdater builds an updater with the configured missing-party policy.
func NewUpdater(strict bool) *Updater {
	return &Updater{strict: strict}
}

// Apply adds delta to the party's balance when increase is true, otherwise
// subtracts it. Delta must be non-negative; the caller picks the direction.
// Sale invoices and "in" payments increase the balance, purchases and "out"
// payments decrease it. Reverting is the same call with increase inverted.
func (u *Updater) Apply(ctx context.Context, tx *gorm.DB, partyID uint, delta float64, increase bool) error {
	if tx == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "transaction required for ledger update")
	}

	var party models.Party
	err := tx.WithContext(ctx).First(&party, "id = ?", partyID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if u.strict {
			return pkgerrors.New(pkgerrors.CodeNotFound, "party not found for ledger update")
		}
		return nil
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load party for ledger update")
	}

	newBalance := party.CurrentBalance + delta
	if !increase {
		newBalance = party.CurrentBalance - delta
	}

	if err := tx.WithContext(ctx).
		Model(&models.Party{}).
		Where("id = ?", party.ID).
		Update("current_balance", newBalance).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update party balance")
	}

	return nil
}
