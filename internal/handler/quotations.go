package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/zestotech/cost-estimator/backend/internal/domain"
)

func (h *Handler) GetAllQuotations(w http.ResponseWriter, r *http.Request) {
	quotations, err := h.repository.GetAllQuotations()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched quotations", quotations)
}

func (h *Handler) GetQuotation(w http.ResponseWriter, r *http.Request) {
	quotation := r.Context().Value(QuotationCtxKey).(*domain.Quotation)
	h.successResponse(w, r, "fetched quotation", quotation)
}

func (h *Handler) CreateQuotation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		QuotationNumber string     `json:"quotationNumber" validate:"required"`
		ProjectID       int64      `json:"projectId" validate:"required"`
		ValidUntil      *time.Time `json:"validUntil"`
		Items           []struct {
			MaterialCode string  `json:"materialCode" validate:"required"`
			Quantity     float64 `json:"quantity" validate:"required,gt=0"`
		} `json:"items" validate:"dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	quotation := &domain.Quotation{
		QuotationNumber: req.QuotationNumber,
		ProjectID:       req.ProjectID,
		Status:          domain.QuotationStatusDraft,
		ValidUntil:      req.ValidUntil,
		Items:           make([]domain.QuotationItem, 0, len(req.Items)),
	}

	// Snapshot each material's current consuming rate into the line item.
	// The quotation stays as priced even if the catalog changes later.
	for _, item := range req.Items {
		material, err := h.repository.GetMaterialByItemCode(item.MaterialCode)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, fmt.Sprintf("material with item code '%s' does not exist", item.MaterialCode))
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		amount := item.Quantity * material.ConsumingRate
		quotation.Items = append(quotation.Items, domain.QuotationItem{
			MaterialCode: material.ItemCode,
			MaterialName: material.ItemName,
			ConsumingUOM: material.ConsumingUOM,
			Quantity:     item.Quantity,
			UnitRate:     material.ConsumingRate,
			Amount:       amount,
		})
		quotation.TotalAmount += amount
	}

	if err := h.repository.CreateQuotation(quotation); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "quotation created", quotation)
}

// UpdateQuotation only moves the status and validity window. Line items are a
// pricing snapshot and stay frozen once the quotation exists.
func (h *Handler) UpdateQuotation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status     *string    `json:"status" validate:"omitempty,oneof=Draft Sent Approved Rejected"`
		ValidUntil *time.Time `json:"validUntil"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	quotation := r.Context().Value(QuotationCtxKey).(*domain.Quotation)

	if req.Status != nil {
		quotation.Status = domain.QuotationStatus(*req.Status)
	}
	if req.ValidUntil != nil {
		quotation.ValidUntil = req.ValidUntil
	}

	if err := h.repository.UpdateQuotationStatus(quotation); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "failed to update quotation, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "quotation updated", quotation)
}

func (h *Handler) DeleteQuotation(w http.ResponseWriter, r *http.Request) {
	quotation := r.Context().Value(QuotationCtxKey).(*domain.Quotation)

	if err := h.repository.DeleteQuotation(quotation.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "quotation deleted", nil)
}
