package invoices

import (
	"time"

	"github.com/bizbookhq/bizbook-backend/pkg/enums"
)

// LineItemInput is one requested invoice line. ItemID is nil for service
// lines; TaxRate overrides the invoice-level GST triple when set.
type LineItemInput struct {
	ItemID      *uint
	Description *string
	Quantity    float64
	Rate        float64
	TaxRate     *float64
}

// CreateInvoiceInput carries everything needed to create an invoice.
// Update accepts the same shape and recomputes the invoice wholesale.
type CreateInvoiceInput struct {
	Type       string
	PartyID    uint
	Date       *time.Time
	SiteName   *string
	Particular *string
	Items      []LineItemInput
	Discount   float64
	PaidAmount float64
	CGSTRate   *float64
	SGSTRate   *float64
	IGSTRate   *float64
}

// ListFilters narrows invoice listings.
type ListFilters struct {
	Type    *enums.InvoiceType
	PartyID *uint
}
