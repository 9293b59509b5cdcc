package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/tindahan/pricing-service/internal/model"
	"github.com/tindahan/pricing-service/internal/product/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (
            id, store_id, sku, barcode, name, description, sold_by,
            unit_abbrev, is_bulk_cost, for_sale, recipe_id,
            price, cost, profit_amount, profit_percent,
            is_active, created_at, updated_at
        )
        VALUES (
            :id, :store_id, :sku, :barcode, :name, :description, :sold_by,
            :unit_abbrev, :is_bulk_cost, :for_sale, :recipe_id,
            :price, :cost, :profit_amount, :profit_percent,
            :is_active, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var p model.Product
	query := `SELECT * FROM products WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &p, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	batches, err := r.ListBatches(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Batches = batches
	return &p, nil
}

func (r *PGRepository) ListBatches(ctx context.Context, productID string) ([]model.Batch, error) {
	var batches []model.Batch
	query := `SELECT * FROM batches WHERE product_id = $1 ORDER BY seq ASC`
	if err := r.DB.SelectContext(ctx, &batches, query, productID); err != nil {
		return nil, err
	}
	return batches, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	var products []model.Product
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.StoreID != "" {
		conditions = append(conditions, "store_id = :store_id")
		args["store_id"] = f.StoreID
	}
	if f.ForSale != nil {
		conditions = append(conditions, "for_sale = :for_sale")
		args["for_sale"] = *f.ForSale
	}
	if f.IsActive != nil {
		conditions = append(conditions, "is_active = :is_active")
		args["is_active"] = *f.IsActive
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "(name ILIKE :search OR sku ILIKE :search OR barcode ILIKE :search)")
		args["search"] = "%" + f.SearchQuery + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM products" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	orderBy := "created_at DESC"
	if f.SortBy != "" {
		// Whitelist sortable columns.
		switch f.SortBy {
		case "name":
			orderBy = "name"
		case "price":
			orderBy = "price"
		case "created_at":
			orderBy = "created_at"
		}
		if strings.ToLower(f.SortOrder) == "asc" {
			orderBy += " ASC"
		} else {
			orderBy += " DESC"
		}
	}

	query := fmt.Sprintf("SELECT * FROM products%s ORDER BY %s", whereClause, orderBy)

	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &products, args); err != nil {
		return nil, 0, err
	}

	return products, count, nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE products
        SET sku = :sku,
            barcode = :barcode,
            name = :name,
            description = :description,
            sold_by = :sold_by,
            unit_abbrev = :unit_abbrev,
            is_bulk_cost = :is_bulk_cost,
            for_sale = :for_sale,
            recipe_id = :recipe_id,
            price = :price,
            cost = :cost,
            profit_amount = :profit_amount,
            profit_percent = :profit_percent,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id AND store_id = :store_id
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) UpdateQuote(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE products
        SET price = :price,
            cost = :cost,
            profit_amount = :profit_amount,
            profit_percent = :profit_percent,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	return err
}

func (r *PGRepository) IsSKUUnique(ctx context.Context, storeID, sku, excludeID string) (bool, error) {
	var count int
	query := `SELECT count(*) FROM products WHERE store_id = $1 AND sku = $2`
	args := []interface{}{storeID, sku}
	if excludeID != "" {
		query += ` AND id != $3`
		args = append(args, excludeID)
	}

	if err := r.DB.GetContext(ctx, &count, query, args...); err != nil {
		return false, err
	}
	return count == 0, nil
}

func (r *PGRepository) IsBarcodeUnique(ctx context.Context, storeID, barcode, excludeID string) (bool, error) {
	if barcode == "" {
		return true, nil
	}
	var count int
	query := `SELECT count(*) FROM products WHERE store_id = $1 AND barcode = $2`
	args := []interface{}{storeID, barcode}
	if excludeID != "" {
		query += ` AND id != $3`
		args = append(args, excludeID)
	}

	if err := r.DB.GetContext(ctx, &count, query, args...); err != nil {
		return false, err
	}
	return count == 0, nil
}
