package models

import (
	"time"

	"github.com/bizbookhq/bizbook-backend/pkg/enums"
)

// Party is a customer or supplier with a running ledger balance.
// OpeningBalance is fixed at creation; CurrentBalance is maintained by the
// ledger updater on every invoice and payment mutation. Positive means the
// party owes the business.
type Party struct {
	ID             uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name           string          `gorm:"column:name;not null" json:"name"`
	Type           enums.PartyType `gorm:"column:type;not null" json:"type"`
	Contact        *string         `gorm:"column:contact" json:"contact"`
	Address        *string         `gorm:"column:address" json:"address"`
	GSTIN          *string         `gorm:"column:gstin" json:"gstin"`
	OpeningBalance float64         `gorm:"column:opening_balance;not null;default:0" json:"openingBalance"`
	CurrentBalance float64         `gorm:"column:current_balance;not null;default:0" json:"currentBalance"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
