package bulkimport

import (
	"context"
	"fmt"

	"github.com/zestotech/cost-estimator/backend/internal/domain"
)

// Catalog is the slice of the materials store the importer writes through.
// Inserts become durable only when Commit succeeds, so one import is one
// durable commit.
type Catalog interface {
	// FindByItemCode returns nil (and no error) when the code is absent.
	FindByItemCode(ctx context.Context, itemCode string) (*domain.Material, error)
	Insert(ctx context.Context, material *domain.Material) error
	Commit() error
}

// RowError pairs a 1-based original-file row number with the reason the row
// was rejected.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// Summary is the aggregate outcome of one import batch. Errors keeps the
// order in which failures were encountered.
type Summary struct {
	SuccessCount int        `json:"successCount"`
	ErrorCount   int        `json:"errorCount"`
	Errors       []RowError `json:"errors"`
}

// Import writes the staged rows through the catalog in file order. A row is
// rejected when its item code is already in the catalog or was accepted
// earlier in the same batch (first occurrence wins). Failures are collected
// per row and never abort the batch. After the last row the batch is
// committed; a commit failure is returned alongside the summary, which stays
// intact so the caller can still report what was logically accepted.
func Import(ctx context.Context, rows []Row, catalog Catalog) (*Summary, error) {
	summary := &Summary{
		Errors: make([]RowError, 0),
	}
	accepted := make(map[string]bool)

	for _, row := range rows {
		if accepted[row.ItemCode] {
			summary.Errors = append(summary.Errors, RowError{
				Row:     row.Line,
				Message: fmt.Sprintf("material with item code '%s' already exists", row.ItemCode),
			})
			continue
		}

		existing, err := catalog.FindByItemCode(ctx, row.ItemCode)
		if err != nil {
			summary.Errors = append(summary.Errors, RowError{Row: row.Line, Message: err.Error()})
			continue
		}
		if existing != nil {
			summary.Errors = append(summary.Errors, RowError{
				Row:     row.Line,
				Message: fmt.Sprintf("material with item code '%s' already exists", row.ItemCode),
			})
			continue
		}

		material := &domain.Material{
			ItemCode:         row.ItemCode,
			ItemName:         row.ItemName,
			StoringUOM:       row.StoringUOM,
			PurchasingAmount: row.PurchasingAmount,
			ConsumingUOM:     row.ConsumingUOM,
			ConversionUnit:   row.ConversionUnit,
			ConsumingRate:    domain.DeriveConsumingRate(row.PurchasingAmount, row.ConversionUnit),
		}
		if err := catalog.Insert(ctx, material); err != nil {
			summary.Errors = append(summary.Errors, RowError{Row: row.Line, Message: err.Error()})
			continue
		}

		accepted[row.ItemCode] = true
		summary.SuccessCount++
	}

	summary.ErrorCount = len(summary.Errors)

	if err := catalog.Commit(); err != nil {
		return summary, err
	}

	return summary, nil
}
