package handler

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/zestotech/cost-estimator/backend/internal/bulkimport"
	"github.com/zestotech/cost-estimator/backend/internal/domain"
)

func (h *Handler) GetAllMaterials(w http.ResponseWriter, r *http.Request) {
	materials, err := h.repository.GetAllMaterials()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched materials", materials)
}

func (h *Handler) GetMaterial(w http.ResponseWriter, r *http.Request) {
	material := r.Context().Value(MaterialCtxKey).(*domain.Material)
	h.successResponse(w, r, "fetched material", material)
}

func (h *Handler) CreateMaterial(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemCode         string  `json:"itemCode"`
		ItemName         string  `json:"itemName"`
		StoringUOM       string  `json:"storingUOM"`
		PurchasingAmount float64 `json:"purchasingAmount"`
		ConsumingUOM     string  `json:"consumingUOM"`
		ConversionUnit   float64 `json:"conversionUnit"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	material := &domain.Material{
		ItemCode:         req.ItemCode,
		ItemName:         req.ItemName,
		StoringUOM:       req.StoringUOM,
		PurchasingAmount: req.PurchasingAmount,
		ConsumingUOM:     req.ConsumingUOM,
		ConversionUnit:   req.ConversionUnit,
	}

	if err := material.Validate(); err != nil {
		h.badRequest(w, r, err)
		return
	}

	material.ConsumingRate = domain.DeriveConsumingRate(material.PurchasingAmount, material.ConversionUnit)

	if err := h.repository.CreateMaterial(material); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "materials_item_code_key":
			h.badRequest(w, r, errors.New("material with this item code already exists"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "material created", material)
}

func (h *Handler) UpdateMaterial(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemCode         *string  `json:"itemCode"`
		ItemName         *string  `json:"itemName"`
		StoringUOM       *string  `json:"storingUOM"`
		PurchasingAmount *float64 `json:"purchasingAmount"`
		ConsumingUOM     *string  `json:"consumingUOM"`
		ConversionUnit   *float64 `json:"conversionUnit"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	material := r.Context().Value(MaterialCtxKey).(*domain.Material)

	if req.ItemCode != nil {
		material.ItemCode = *req.ItemCode
	}
	if req.ItemName != nil {
		material.ItemName = *req.ItemName
	}
	if req.StoringUOM != nil {
		material.StoringUOM = *req.StoringUOM
	}
	if req.PurchasingAmount != nil {
		material.PurchasingAmount = *req.PurchasingAmount
	}
	if req.ConsumingUOM != nil {
		material.ConsumingUOM = *req.ConsumingUOM
	}
	if req.ConversionUnit != nil {
		material.ConversionUnit = *req.ConversionUnit
	}

	// Direct edits never fall back to defaults: a zero conversion unit is an
	// error here, unlike the bulk import parser.
	if err := material.Validate(); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// The rate is derived, never trusted from the client.
	material.ConsumingRate = domain.DeriveConsumingRate(material.PurchasingAmount, material.ConversionUnit)

	if err := h.repository.UpdateMaterial(material); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "materials_item_code_key":
			// Only fires when the code actually changed onto a taken one.
			h.badRequest(w, r, errors.New("material with this item code already exists"))
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "failed to update material, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "material updated", material)
}

// DeleteMaterial removes the catalog row only. Quotation line items keep their
// snapshots, so estimation history is unaffected.
func (h *Handler) DeleteMaterial(w http.ResponseWriter, r *http.Request) {
	material := r.Context().Value(MaterialCtxKey).(*domain.Material)

	if err := h.repository.DeleteMaterial(material.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "material deleted", nil)
}

// BulkUploadMaterials runs the CSV import pipeline over an uploaded file.
// Row failures are collected into the returned summary and never abort the
// batch; only an unreadable upload aborts before any row is processed.
func (h *Handler) BulkUploadMaterials(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		h.errorResponse(w, r, "failed to read uploaded file")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.errorResponse(w, r, "failed to read uploaded file")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		h.errorResponse(w, r, "failed to read uploaded file")
		return
	}

	rows := bulkimport.Parse(string(content))

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Database.ImportTimeout)*time.Second)
	defer cancel()

	batch, err := h.repository.BeginMaterialBatch(ctx)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	defer batch.Rollback()

	summary, err := bulkimport.Import(ctx, rows, batch)
	if err != nil {
		// The rows were already judged; report the summary along with the
		// save failure instead of discarding it.
		h.logInternalServerError(r, err)
		h.writeJSON(w, r, http.StatusOK, Response{
			Success: false,
			Message: "imported rows could not be saved",
			Data:    summary,
		})
		return
	}

	h.successResponse(w, r, "bulk upload completed", summary)
}

// GetCSVTemplate serves the canonical bulk upload template file.
func (h *Handler) GetCSVTemplate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="materials_template.csv"`)
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write([]byte(bulkimport.Template())); err != nil {
		h.logInternalServerError(r, err)
	}
}
