package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/zestotech/cost-estimator/backend/internal/domain"
)

func (r *Repository) GetMaterialByID(id int64) (*domain.Material, error) {
	query := `
		SELECT item_code, item_name, storing_uom, purchasing_amount, consuming_uom, conversion_unit, consuming_rate, created_at, updated_at, version
		FROM materials WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	material := &domain.Material{
		ID: id,
	}

	dst := []any{&material.ItemCode, &material.ItemName, &material.StoringUOM, &material.PurchasingAmount, &material.ConsumingUOM, &material.ConversionUnit, &material.ConsumingRate, &material.CreatedAt, &material.UpdatedAt, &material.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return material, nil
}

func (r *Repository) GetMaterialByItemCode(itemCode string) (*domain.Material, error) {
	query := `
		SELECT id, item_name, storing_uom, purchasing_amount, consuming_uom, conversion_unit, consuming_rate, created_at, updated_at, version
		FROM materials WHERE item_code = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	material := &domain.Material{
		ItemCode: itemCode,
	}

	dst := []any{&material.ID, &material.ItemName, &material.StoringUOM, &material.PurchasingAmount, &material.ConsumingUOM, &material.ConversionUnit, &material.ConsumingRate, &material.CreatedAt, &material.UpdatedAt, &material.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, itemCode).Scan(dst...); err != nil {
		return nil, err
	}

	return material, nil
}

func (r *Repository) GetAllMaterials() ([]*domain.Material, error) {
	query := `
		SELECT id, item_code, item_name, storing_uom, purchasing_amount, consuming_uom, conversion_unit, consuming_rate, created_at, updated_at, version
		FROM materials ORDER BY item_code
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	materials := make([]*domain.Material, 0)
	for rows.Next() {
		material := &domain.Material{}
		dst := []any{&material.ID, &material.ItemCode, &material.ItemName, &material.StoringUOM, &material.PurchasingAmount, &material.ConsumingUOM, &material.ConversionUnit, &material.ConsumingRate, &material.CreatedAt, &material.UpdatedAt, &material.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		materials = append(materials, material)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return materials, nil
}

func (r *Repository) CreateMaterial(material *domain.Material) error {
	query := `
		INSERT INTO materials (item_code, item_name, storing_uom, purchasing_amount, consuming_uom, conversion_unit, consuming_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{material.ItemCode, material.ItemName, material.StoringUOM, material.PurchasingAmount, material.ConsumingUOM, material.ConversionUnit, material.ConsumingRate}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&material.ID, &material.CreatedAt, &material.UpdatedAt, &material.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateMaterial(material *domain.Material) error {
	query := `
		UPDATE materials
		SET
			item_code = $1,
			item_name = $2,
			storing_uom = $3,
			purchasing_amount = $4,
			consuming_uom = $5,
			conversion_unit = $6,
			consuming_rate = $7,
			updated_at = now(),
			version = version + 1
		WHERE id = $8 AND version = $9
		RETURNING created_at, updated_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{material.ItemCode, material.ItemName, material.StoringUOM, material.PurchasingAmount, material.ConsumingUOM, material.ConversionUnit, material.ConsumingRate, material.ID, material.Version}
	dst := []any{&material.CreatedAt, &material.UpdatedAt, &material.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteMaterial(id int64) error {
	query := `
		DELETE FROM materials WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}

// MaterialBatch is one bulk import's view of the catalog, backed by a single
// transaction so the whole batch becomes durable in one commit. It implements
// bulkimport.Catalog.
type MaterialBatch struct {
	tx *sql.Tx
}

// BeginMaterialBatch opens the transaction a bulk import writes through.
// The caller must either Commit or Rollback.
func (r *Repository) BeginMaterialBatch(ctx context.Context) (*MaterialBatch, error) {
	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	return &MaterialBatch{tx: tx}, nil
}

func (b *MaterialBatch) FindByItemCode(ctx context.Context, itemCode string) (*domain.Material, error) {
	query := `
		SELECT id, item_name, storing_uom, purchasing_amount, consuming_uom, conversion_unit, consuming_rate, created_at, updated_at, version
		FROM materials WHERE item_code = $1
	`

	material := &domain.Material{
		ItemCode: itemCode,
	}

	dst := []any{&material.ID, &material.ItemName, &material.StoringUOM, &material.PurchasingAmount, &material.ConsumingUOM, &material.ConversionUnit, &material.ConsumingRate, &material.CreatedAt, &material.UpdatedAt, &material.Version}
	if err := b.tx.QueryRowContext(ctx, query, itemCode).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return material, nil
}

// Insert writes one row under its own savepoint. A failed statement aborts a
// Postgres transaction outright, so without the savepoint one rejected row
// would poison every query after it and the final commit.
func (b *MaterialBatch) Insert(ctx context.Context, material *domain.Material) error {
	if _, err := b.tx.ExecContext(ctx, "SAVEPOINT material_row"); err != nil {
		return err
	}

	query := `
		INSERT INTO materials (item_code, item_name, storing_uom, purchasing_amount, consuming_uom, conversion_unit, consuming_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at, version
	`

	args := []any{material.ItemCode, material.ItemName, material.StoringUOM, material.PurchasingAmount, material.ConsumingUOM, material.ConversionUnit, material.ConsumingRate}
	if err := b.tx.QueryRowContext(ctx, query, args...).Scan(&material.ID, &material.CreatedAt, &material.UpdatedAt, &material.Version); err != nil {
		if _, rbErr := b.tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT material_row"); rbErr != nil {
			return rbErr
		}
		return err
	}

	if _, err := b.tx.ExecContext(ctx, "RELEASE SAVEPOINT material_row"); err != nil {
		return err
	}

	return nil
}

func (b *MaterialBatch) Commit() error {
	return b.tx.Commit()
}

func (b *MaterialBatch) Rollback() error {
	return b.tx.Rollback()
}
