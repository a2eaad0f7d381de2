package controllers

import (
	"net/http"
	"time"

	"github.com/bizbookhq/bizbook-backend/api/responses"
	"github.com/bizbookhq/bizbook-backend/api/validators"
	invoicesvc "github.com/bizbookhq/bizbook-backend/internal/invoices"
	"github.com/bizbookhq/bizbook-backend/pkg/enums"
	pkgerrors "github.com/bizbookhq/bizbook-backend/pkg/errors"
	"github.com/bizbookhq/bizbook-backend/pkg/logger"
)

// CreateInvoice handles sale and purchase invoice creation. The heavy
// lifting, totals, stock, and ledger, happens in one transaction inside
// the service.
func CreateInvoice(svc invoicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invoice service unavailable"))
			return
		}

		var payload invoiceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		invoice, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, invoice)
	}
}

func GetInvoice(svc invoicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		invoice, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, invoice)
	}
}

func ListInvoices(svc invoicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, err := invoiceListFilters(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		invoices, err := svc.List(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, invoices)
	}
}

func UpdateInvoice(svc invoicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload invoiceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		invoice, err := svc.Update(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, invoice)
	}
}

func DeleteInvoice(svc invoicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

func invoiceListFilters(r *http.Request) (invoicesvc.ListFilters, error) {
	var filters invoicesvc.ListFilters

	if raw := validators.QueryString(r, "type"); raw != nil {
		parsed, err := enums.ParseInvoiceType(*raw)
		if err != nil {
			return filters, pkgerrors.New(pkgerrors.CodeValidation, "type must be sale or purchase")
		}
		filters.Type = &parsed
	}

	partyID, err := validators.ParseQueryUint(r, "partyId")
	if err != nil {
		return filters, err
	}
	filters.PartyID = partyID
	return filters, nil
}

type invoiceLineRequest struct {
	ItemID      *uint    `json:"itemId,omitempty"`
	Description *string  `json:"description,omitempty"`
	Quantity    float64  `json:"quantity" validate:"gte=0"`
	Rate        float64  `json:"rate" validate:"gte=0"`
	TaxRate     *float64 `json:"taxRate,omitempty" validate:"omitempty,gte=0"`
}

type invoiceRequest struct {
	Type       string               `json:"type" validate:"required,oneof=sale purchase"`
	PartyID    uint                 `json:"partyId" validate:"required"`
	Date       *time.Time           `json:"date,omitempty"`
	SiteName   *string              `json:"siteName,omitempty"`
	Particular *string              `json:"particular,omitempty"`
	Items      []invoiceLineRequest `json:"items" validate:"required,min=1,dive"`
	Discount   float64              `json:"discount" validate:"gte=0"`
	PaidAmount float64              `json:"paidAmount" validate:"gte=0"`
	CGSTRate   *float64             `json:"cgstRate,omitempty" validate:"omitempty,gte=0"`
	SGSTRate   *float64             `json:"sgstRate,omitempty" validate:"omitempty,gte=0"`
	IGSTRate   *float64             `json:"igstRate,omitempty" validate:"omitempty,gte=0"`
}

func (r invoiceRequest) toInput() invoicesvc.CreateInvoiceInput {
	lines := make([]invoicesvc.LineItemInput, 0, len(r.Items))
	for _, line := range r.Items {
		lines = append(lines, invoicesvc.LineItemInput{
			ItemID:      line.ItemID,
			Description: line.Description,
			Quantity:    line.Quantity,
			Rate:        line.Rate,
			TaxRate:     line.TaxRate,
		})
	}
	return invoicesvc.CreateInvoiceInput{
		Type:       r.Type,
		PartyID:    r.PartyID,
		Date:       r.Date,
		SiteName:   r.SiteName,
		Particular: r.Particular,
		Items:      lines,
		Discount:   r.Discount,
		PaidAmount: r.PaidAmount,
		CGSTRate:   r.CGSTRate,
		SGSTRate:   r.SGSTRate,
		IGSTRate:   r.IGSTRate,
	}
}
