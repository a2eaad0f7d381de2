package controllers

import (
	"net/http"

	"github.com/bizbookhq/bizbook-backend/api/responses"
	"github.com/bizbookhq/bizbook-backend/api/validators"
	partysvc "github.com/bizbookhq/bizbook-backend/internal/parties"
	pkgerrors "github.com/bizbookhq/bizbook-backend/pkg/errors"
	"github.com/bizbookhq/bizbook-backend/pkg/logger"
)

// CreateParty handles customer and supplier creation.
func CreateParty(svc partysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "party service unavailable"))
			return
		}

		var payload createPartyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		party, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, party)
	}
}

func GetParty(svc partysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		party, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, party)
	}
}

func ListParties(svc partysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parties, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, parties)
	}
}

func UpdateParty(svc partysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updatePartyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		party, err := svc.Update(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, party)
	}
}

func DeleteParty(svc partysvc.Service, logg *logger.Logger) http.HandlerFunc {
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

type createPartyRequest struct {
	Name           string   `json:"name" validate:"required"`
	Type           string   `json:"type" validate:"required,oneof=customer supplier"`
	Contact        *string  `json:"contact,omitempty"`
	Address        *string  `json:"address,omitempty"`
	GSTIN          *string  `json:"gstin,omitempty"`
	OpeningBalance float64  `json:"openingBalance"`
	CurrentBalance *float64 `json:"currentBalance,omitempty"`
}

func (r createPartyRequest) toInput() partysvc.CreatePartyInput {
	return partysvc.CreatePartyInput{
		Name:           r.Name,
		Type:           r.Type,
		Contact:        r.Contact,
		Address:        r.Address,
		GSTIN:          r.GSTIN,
		OpeningBalance: r.OpeningBalance,
		CurrentBalance: r.CurrentBalance,
	}
}

type updatePartyRequest struct {
	Name           *string  `json:"name,omitempty"`
	Type           *string  `json:"type,omitempty" validate:"omitempty,oneof=customer supplier"`
	Contact        *string  `json:"contact,omitempty"`
	Address        *string  `json:"address,omitempty"`
	GSTIN          *string  `json:"gstin,omitempty"`
	OpeningBalance *float64 `json:"openingBalance,omitempty"`
	CurrentBalance *float64 `json:"currentBalance,omitempty"`
}

func (r updatePartyRequest) toInput() partysvc.UpdatePartyInput {
	return partysvc.UpdatePartyInput{
		Name:           r.Name,
		Type:           r.Type,
		Contact:        r.Contact,
		Address:        r.Address,
		GSTIN:          r.GSTIN,
		OpeningBalance: r.OpeningBalance,
		CurrentBalance: r.CurrentBalance,
	}
}
