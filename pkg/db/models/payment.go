package models

import (
	"time"

	"github.com/bizbookhq/bizbook-backend/pkg/enums"
)

// Payment records money moving in or out against a party, optionally
// settling part of an invoice. Its ledger and invoice effects are always
// reverted before being reapplied on edit, and reverted on delete.
type Payment struct {
	ID        uint                   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Type      enums.PaymentDirection `gorm:"column:type;not null" json:"type"`
	PartyID   uint                   `gorm:"column:party_id;not null;index" json:"partyId"`
	Amount    float64                `gorm:"column:amount;not null" json:"amount"`
	Date      time.Time              `gorm:"column:date;not null" json:"date"`
	Mode      string                 `gorm:"column:mode;not null;default:'cash'" json:"mode"`
	Note      string                 `gorm:"column:note;not null;default:''" json:"note"`
	InvoiceID *uint                  `gorm:"column:invoice_id;index" json:"invoiceId"`

	Party   *Party   `gorm:"foreignKey:PartyID" json:"party,omitempty"`
	Invoice *Invoice `gorm:"foreignKey:InvoiceID" json:"invoice,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
