package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/zestotech/cost-estimator/backend/internal/domain"
)

func (r *Repository) GetQuotationByID(id int64) (*domain.Quotation, error) {
	query := `
		SELECT
			q.quotation_number,
			q.project_id,
			q.status,
			q.valid_until,
			q.total_amount,
			q.created_at,
			q.version,
			qi.id,
			qi.material_code,
			qi.material_name,
			qi.consuming_uom,
			qi.quantity,
			qi.unit_rate,
			qi.amount
		FROM quotations q
		LEFT JOIN quotation_items qi ON q.id = qi.quotation_id
		WHERE q.id = $1
		ORDER BY qi.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotation *domain.Quotation

	for rows.Next() {
		var row struct {
			QuotationNumber string
			ProjectID       int64
			Status          domain.QuotationStatus
			ValidUntil      *time.Time
			TotalAmount     float64
			CreatedAt       time.Time
			Version         int32

			ItemID       sql.NullInt64
			MaterialCode sql.NullString
			MaterialName sql.NullString
			ConsumingUOM sql.NullString
			Quantity     sql.NullFloat64
			UnitRate     sql.NullFloat64
			Amount       sql.NullFloat64
		}

		dst := []any{
			&row.QuotationNumber,
			&row.ProjectID,
			&row.Status,
			&row.ValidUntil,
			&row.TotalAmount,
			&row.CreatedAt,
			&row.Version,
			&row.ItemID,
			&row.MaterialCode,
			&row.MaterialName,
			&row.ConsumingUOM,
			&row.Quantity,
			&row.UnitRate,
			&row.Amount,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if quotation == nil {
			quotation = &domain.Quotation{
				ID:              id,
				QuotationNumber: row.QuotationNumber,
				ProjectID:       row.ProjectID,
				Status:          row.Status,
				ValidUntil:      row.ValidUntil,
				TotalAmount:     row.TotalAmount,
				Items:           make([]domain.QuotationItem, 0),
				CreatedAt:       row.CreatedAt,
				Version:         row.Version,
			}
		}

		// A quotation without items produces a single row with NULL item columns.
		if !row.ItemID.Valid {
			continue
		}

		quotation.Items = append(quotation.Items, domain.QuotationItem{
			ID:           row.ItemID.Int64,
			MaterialCode: row.MaterialCode.String,
			MaterialName: row.MaterialName.String,
			ConsumingUOM: row.ConsumingUOM.String,
			Quantity:     row.Quantity.Float64,
			UnitRate:     row.UnitRate.Float64,
			Amount:       row.Amount.Float64,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if quotation == nil {
		return nil, sql.ErrNoRows
	}

	return quotation, nil
}

func (r *Repository) GetAllQuotations() ([]*domain.Quotation, error) {
	query := `
		SELECT id, quotation_number, project_id, status, valid_until, total_amount, created_at, version
		FROM quotations ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quotations := make([]*domain.Quotation, 0)
	for rows.Next() {
		quotation := &domain.Quotation{}
		dst := []any{&quotation.ID, &quotation.QuotationNumber, &quotation.ProjectID, &quotation.Status, &quotation.ValidUntil, &quotation.TotalAmount, &quotation.CreatedAt, &quotation.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		quotations = append(quotations, quotation)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return quotations, nil
}

// CreateQuotation inserts the quotation and its line items in one transaction.
func (r *Repository) CreateQuotation(quotation *domain.Quotation) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO quotations (quotation_number, project_id, status, valid_until, total_amount)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	args := []any{quotation.QuotationNumber, quotation.ProjectID, quotation.Status, quotation.ValidUntil, quotation.TotalAmount}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&quotation.ID, &quotation.CreatedAt, &quotation.Version); err != nil {
		return err
	}

	itemQuery := `
		INSERT INTO quotation_items (quotation_id, material_code, material_name, consuming_uom, quantity, unit_rate, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	for i := range quotation.Items {
		item := &quotation.Items[i]
		itemArgs := []any{quotation.ID, item.MaterialCode, item.MaterialName, item.ConsumingUOM, item.Quantity, item.UnitRate, item.Amount}
		if err := tx.QueryRowContext(ctx, itemQuery, itemArgs...).Scan(&item.ID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) UpdateQuotationStatus(quotation *domain.Quotation) error {
	query := `
		UPDATE quotations
		SET
			status = $1,
			valid_until = $2,
			version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{quotation.Status, quotation.ValidUntil, quotation.ID, quotation.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&quotation.CreatedAt, &quotation.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteQuotation(id int64) error {
	query := `
		DELETE FROM quotations WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
