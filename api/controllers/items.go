package controllers

import (
	"net/http"

	"github.com/bizbookhq/bizbook-backend/api/responses"
	"github.com/bizbookhq/bizbook-backend/api/validators"
	itemsvc "github.com/bizbookhq/bizbook-backend/internal/items"
	pkgerrors "github.com/bizbookhq/bizbook-backend/pkg/errors"
	"github.com/bizbookhq/bizbook-backend/pkg/logger"
)

// CreateItem handles catalog item creation.
func CreateItem(svc itemsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "item service unavailable"))
			return
		}

		var payload createItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

func GetItem(svc itemsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}

func ListItems(svc itemsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// ListLowStockItems surfaces items at or below their low stock threshold.
func ListLowStockItems(svc itemsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListLowStock(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func UpdateItem(svc itemsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Update(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}

func DeleteItem(svc itemsvc.Service, logg *logger.Logger) http.HandlerFunc {
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

type createItemRequest struct {
	Name          string   `json:"name" validate:"required"`
	HSNSac        *string  `json:"hsnSac,omitempty"`
	Unit          string   `json:"unit" validate:"required"`
	PurchaseRate  float64  `json:"purchaseRate" validate:"gte=0"`
	SaleRate      float64  `json:"saleRate" validate:"gte=0"`
	TaxRate       *float64 `json:"taxRate,omitempty" validate:"omitempty,gte=0"`
	CurrentStock  float64  `json:"currentStock" validate:"gte=0"`
	LowStockAlert *float64 `json:"lowStockAlert,omitempty" validate:"omitempty,gte=0"`
}

func (r createItemRequest) toInput() itemsvc.CreateItemInput {
	return itemsvc.CreateItemInput{
		Name:          r.Name,
		HSNSac:        r.HSNSac,
		Unit:          r.Unit,
		PurchaseRate:  r.PurchaseRate,
		SaleRate:      r.SaleRate,
		TaxRate:       r.TaxRate,
		CurrentStock:  r.CurrentStock,
		LowStockAlert: r.LowStockAlert,
	}
}

type updateItemRequest struct {
	Name               *string  `json:"name,omitempty"`
	HSNSac             *string  `json:"hsnSac,omitempty"`
	Unit               *string  `json:"unit,omitempty"`
	PurchaseRate       *float64 `json:"purchaseRate,omitempty" validate:"omitempty,gte=0"`
	SaleRate           *float64 `json:"saleRate,omitempty" validate:"omitempty,gte=0"`
	TaxRate            *float64 `json:"taxRate,omitempty" validate:"omitempty,gte=0"`
	CurrentStock       *float64 `json:"currentStock,omitempty" validate:"omitempty,gte=0"`
	LowStockAlert      *float64 `json:"lowStockAlert,omitempty" validate:"omitempty,gte=0"`
	ClearLowStockAlert bool     `json:"clearLowStockAlert,omitempty"`
}

func (r updateItemRequest) toInput() itemsvc.UpdateItemInput {
	return itemsvc.UpdateItemInput{
		Name:               r.Name,
		HSNSac:             r.HSNSac,
		Unit:               r.Unit,
		PurchaseRate:       r.PurchaseRate,
		SaleRate:           r.SaleRate,
		TaxRate:            r.TaxRate,
		CurrentStock:       r.CurrentStock,
		LowStockAlert:      r.LowStockAlert,
		ClearLowStockAlert: r.ClearLowStockAlert,
	}
}
