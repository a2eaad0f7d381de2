package models

import (
	"time"

	"github.com/bizbookhq/bizbook-backend/pkg/enums"
)

// Invoice carries the computed monetary snapshot for one sale or purchase.
// Invariants: GrandTotal = round(SubTotal + TaxTotal - Discount) and
// Balance = GrandTotal - PaidAmount after every mutation.
type Invoice struct {
	ID            uint              `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	InvoiceNumber string            `gorm:"column:invoice_number;not null;uniqueIndex" json:"invoiceNumber"`
	Type          enums.InvoiceType `gorm:"column:type;not null" json:"type"`
	PartyID       uint              `gorm:"column:party_id;not null" json:"partyId"`
	Date          time.Time         `gorm:"column:date;not null" json:"date"`
	SiteName      *string           `gorm:"column:site_name" json:"siteName"`
	Particular    *string           `gorm:"column:particular" json:"particular"`

	SubTotal   float64 `gorm:"column:sub_total;not null;default:0" json:"subTotal"`
	CGSTRate   float64 `gorm:"column:cgst_rate;not null;default:0" json:"cgstRate"`
	CGSTAmount float64 `gorm:"column:cgst_amount;not null;default:0" json:"cgstAmount"`
	SGSTRate   float64 `gorm:"column:sgst_rate;not null;default:0" json:"sgstRate"`
	SGSTAmount float64 `gorm:"column:sgst_amount;not null;default:0" json:"sgstAmount"`
	IGSTRate   float64 `gorm:"column:igst_rate;not null;default:0" json:"igstRate"`
	IGSTAmount float64 `gorm:"column:igst_amount;not null;default:0" json:"igstAmount"`
	TaxTotal   float64 `gorm:"column:tax_total;not null;default:0" json:"taxTotal"`
	Discount   float64 `gorm:"column:discount;not null;default:0" json:"discount"`
	RoundOff   float64 `gorm:"column:round_off;not null;default:0" json:"roundOff"`
	GrandTotal float64 `gorm:"column:grand_total;not null;default:0" json:"grandTotal"`

	AmountInWords string              `gorm:"column:amount_in_words;not null;default:''" json:"amountInWords"`
	PaidAmount    float64             `gorm:"column:paid_amount;not null;default:0" json:"paidAmount"`
	Balance       float64             `gorm:"column:balance;not null;default:0" json:"balance"`
	Status        enums.InvoiceStatus `gorm:"column:status;not null;default:'unpaid'" json:"status"`

	Party *Party        `gorm:"foreignKey:PartyID" json:"party,omitempty"`
	Items []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// InvoiceItem is a line owned exclusively by its invoice. ItemID is nil for
// pure service lines, which carry no stock effect. Lines are deleted and
// recreated wholesale on invoice update.
type InvoiceItem struct {
	ID          uint    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	InvoiceID   uint    `gorm:"column:invoice_id;not null;index" json:"invoiceId"`
	ItemID      *uint   `gorm:"column:item_id;index" json:"itemId"`
	Description *string `gorm:"column:description" json:"description"`
	Quantity    float64 `gorm:"column:quantity;not null" json:"quantity"`
	Rate        float64 `gorm:"column:rate;not null" json:"rate"`
	TaxRate     float64 `gorm:"column:tax_rate;not null;default:0" json:"taxRate"`
	Amount      float64 `gorm:"column:amount;not null;default:0" json:"amount"`
	TaxAmount   float64 `gorm:"column:tax_amount;not null;default:0" json:"taxAmount"`
	Total       float64 `gorm:"column:total;not null;default:0" json:"total"`

	Item *Item `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

// InvoiceSequence is a single-row counter backing invoice numbers. Bumping
// it inside the creating transaction serializes concurrent creates, unlike
// deriving the number from max(id)+1.
type InvoiceSequence struct {
	ID    uint `gorm:"column:id;primaryKey"`
	Value uint `gorm:"column:value;not null;default:0"`
}

// TableName pins the singular-ish table name used in migrations.
func (InvoiceSequence) TableName() string {
	return "invoice_sequence"
}
