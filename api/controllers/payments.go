package controllers

import (
	"net/http"
	"time"

	"github.com/bizbookhq/bizbook-backend/api/responses"
	"github.com/bizbookhq/bizbook-backend/api/validators"
	paymentsvc "github.com/bizbookhq/bizbook-backend/internal/payments"
	"github.com/bizbookhq/bizbook-backend/pkg/enums"
	pkgerrors "github.com/bizbookhq/bizbook-backend/pkg/errors"
	"github.com/bizbookhq/bizbook-backend/pkg/logger"
)

// CreatePayment records money moving in or out against a party, optionally
// settling a linked invoice.
func CreatePayment(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		var payload paymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payment, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, payment)
	}
}

func GetPayment(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payment, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, payment)
	}
}

func ListPayments(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, err := paymentListFilters(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payments, err := svc.List(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, payments)
	}
}

func UpdatePayment(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload paymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payment, err := svc.Update(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, payment)
	}
}

func DeletePayment(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
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

func paymentListFilters(r *http.Request) (paymentsvc.ListFilters, error) {
	var filters paymentsvc.ListFilters

	if raw := validators.QueryString(r, "type"); raw != nil {
		parsed, err := enums.ParsePaymentDirection(*raw)
		if err != nil {
			return filters, pkgerrors.New(pkgerrors.CodeValidation, "type must be in or out")
		}
		filters.Type = &parsed
	}

	partyID, err := validators.ParseQueryUint(r, "partyId")
	if err != nil {
		return filters, err
	}
	filters.PartyID = partyID

	invoiceID, err := validators.ParseQueryUint(r, "invoiceId")
	if err != nil {
		return filters, err
	}
	filters.InvoiceID = invoiceID

	filters.Mode = validators.QueryString(r, "mode")
	if search := validators.QueryString(r, "search"); search != nil {
		filters.Search = *search
	}
	return filters, nil
}

type paymentRequest struct {
	Type      string     `json:"type" validate:"required,oneof=in out"`
	PartyID   uint       `json:"partyId" validate:"required"`
	Amount    float64    `json:"amount" validate:"required,gt=0"`
	Date      *time.Time `json:"date,omitempty"`
	Mode      string     `json:"mode,omitempty"`
	Note      string     `json:"note,omitempty"`
	InvoiceID *uint      `json:"invoiceId,omitempty"`
}

func (r paymentRequest) toInput() paymentsvc.CreatePaymentInput {
	return paymentsvc.CreatePaymentInput{
		Type:      r.Type,
		PartyID:   r.PartyID,
		Amount:    r.Amount,
		Date:      r.Date,
		Mode:      r.Mode,
		Note:      r.Note,
		InvoiceID: r.InvoiceID,
	}
}
