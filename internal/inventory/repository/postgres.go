package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/tindahan/pricing-service/internal/inventory/dto"
	"github.com/tindahan/pricing-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) CreateBatch(ctx context.Context, b *model.Batch) error {
	query := `
        INSERT INTO batches (
            id, product_id, name, cost, quantity, unit_abbrev,
            cost_per_unit, expiration_date, seq, created_at, updated_at
        )
        VALUES (
            :id, :product_id, :name, :cost, :quantity, :unit_abbrev,
            :cost_per_unit, :expiration_date, :seq, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, b)
	return err
}

func (r *PGRepository) FindBatch(ctx context.Context, id string) (*model.Batch, error) {
	var b model.Batch
	query := `SELECT * FROM batches WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &b, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *PGRepository) ListBatchesByProduct(ctx context.Context, productID string) ([]model.Batch, error) {
	var batches []model.Batch
	query := `SELECT * FROM batches WHERE product_id = $1 ORDER BY seq ASC`
	if err := r.DB.SelectContext(ctx, &batches, query, productID); err != nil {
		return nil, err
	}
	return batches, nil
}

func (r *PGRepository) NextBatchSeq(ctx context.Context, productID string) (int, error) {
	var seq int
	query := `SELECT coalesce(max(seq), 0) + 1 FROM batches WHERE product_id = $1`
	if err := r.DB.GetContext(ctx, &seq, query, productID); err != nil {
		return 0, err
	}
	return seq, nil
}

// UpdateBatchWithMovement writes the batch state and its movement row in one
// transaction so the audit trail never drifts from the stock level.
func (r *PGRepository) UpdateBatchWithMovement(ctx context.Context, b *model.Batch, m *model.StockMovement) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	batchQuery := `
        UPDATE batches
        SET name = :name,
            cost = :cost,
            quantity = :quantity,
            unit_abbrev = :unit_abbrev,
            cost_per_unit = :cost_per_unit,
            expiration_date = :expiration_date,
            updated_at = :updated_at
        WHERE id = :id
    `
	if _, err := tx.NamedExecContext(ctx, batchQuery, b); err != nil {
		return err
	}

	if m != nil {
		if err := insertMovement(ctx, tx, m); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PGRepository) LogMovement(ctx context.Context, m *model.StockMovement) error {
	return insertMovement(ctx, r.DB, m)
}

func insertMovement(ctx context.Context, e sqlx.ExtContext, m *model.StockMovement) error {
	query := `
        INSERT INTO stock_movements (
            id, store_id, product_id, batch_id, movement_type,
            quantity_change, quantity_before, quantity_after,
            reference_type, reference_id, notes, created_by, created_at
        )
        VALUES (
            :id, :store_id, :product_id, :batch_id, :movement_type,
            :quantity_change, :quantity_before, :quantity_after,
            :reference_type, :reference_id, :notes, :created_by, :created_at
        )
    `
	_, err := sqlx.NamedExecContext(ctx, e, query, m)
	return err
}

func (r *PGRepository) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.StockMovement, int, error) {
	var movements []model.StockMovement
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.StoreID != "" {
		conditions = append(conditions, "store_id = :store_id")
		args["store_id"] = f.StoreID
	}
	if f.ProductID != "" {
		conditions = append(conditions, "product_id = :product_id")
		args["product_id"] = f.ProductID
	}
	if f.MovementType != "" {
		conditions = append(conditions, "movement_type = :movement_type")
		args["movement_type"] = f.MovementType
	}
	if f.StartDate != nil {
		conditions = append(conditions, "created_at >= :start_date")
		args["start_date"] = *f.StartDate
	}
	if f.EndDate != nil {
		conditions = append(conditions, "created_at <= :end_date")
		args["end_date"] = *f.EndDate
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM stock_movements" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM stock_movements" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &movements, args); err != nil {
		return nil, 0, err
	}

	return movements, count, nil
}

func (r *PGRepository) ListProductsWithBatches(ctx context.Context, storeID string) ([]model.Product, error) {
	var products []model.Product
	query := `SELECT * FROM products WHERE store_id = $1 AND is_active = true ORDER BY name ASC`
	if err := r.DB.SelectContext(ctx, &products, query, storeID); err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return products, nil
	}

	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}

	batchQuery, batchArgs, err := sqlx.In(`SELECT * FROM batches WHERE product_id IN (?) ORDER BY seq ASC`, ids)
	if err != nil {
		return nil, err
	}
	var batches []model.Batch
	if err := r.DB.SelectContext(ctx, &batches, r.DB.Rebind(batchQuery), batchArgs...); err != nil {
		return nil, err
	}

	byProduct := make(map[string][]model.Batch, len(products))
	for _, b := range batches {
		byProduct[b.ProductID] = append(byProduct[b.ProductID], b)
	}
	for i := range products {
		products[i].Batches = byProduct[products[i].ID]
	}
	return products, nil
}
