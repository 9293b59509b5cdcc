package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/tindahan/pricing-service/internal/model"
	"github.com/tindahan/pricing-service/internal/recipe/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, rec *model.Recipe) error {
	query := `
        INSERT INTO recipes (id, store_id, name, cost, created_at, updated_at)
        VALUES (:id, :store_id, :name, :cost, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, rec)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Recipe, error) {
	var rec model.Recipe
	query := `SELECT * FROM recipes WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &rec, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	materials, err := r.ListMaterials(ctx, id)
	if err != nil {
		return nil, err
	}
	rec.Materials = materials
	return &rec, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.RecipeFilters) ([]model.Recipe, int, error) {
	var recipes []model.Recipe
	var count int

	if err := r.DB.GetContext(ctx, &count,
		`SELECT count(*) FROM recipes WHERE store_id = $1`, f.StoreID); err != nil {
		return nil, 0, err
	}

	query := `SELECT * FROM recipes WHERE store_id = $1 ORDER BY created_at DESC`
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}
	if err := r.DB.SelectContext(ctx, &recipes, query, f.StoreID); err != nil {
		return nil, 0, err
	}

	for i := range recipes {
		materials, err := r.ListMaterials(ctx, recipes[i].ID)
		if err != nil {
			return nil, 0, err
		}
		recipes[i].Materials = materials
	}

	return recipes, count, nil
}

func (r *PGRepository) Update(ctx context.Context, rec *model.Recipe) error {
	query := `
        UPDATE recipes
        SET name = :name, cost = :cost, updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, rec)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM recipes WHERE id = $1", id)
	return err
}

func (r *PGRepository) ListMaterials(ctx context.Context, recipeID string) ([]model.Material, error) {
	var materials []model.Material
	query := `SELECT * FROM materials WHERE recipe_id = $1 ORDER BY created_at ASC`
	if err := r.DB.SelectContext(ctx, &materials, query, recipeID); err != nil {
		return nil, err
	}
	return materials, nil
}

func (r *PGRepository) FindMaterial(ctx context.Context, id string) (*model.Material, error) {
	var m model.Material
	query := `SELECT * FROM materials WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &m, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *PGRepository) AddMaterial(ctx context.Context, m *model.Material) error {
	query := `
        INSERT INTO materials (id, recipe_id, product_id, quantity, unit_abbrev, cost, type, created_at, updated_at)
        VALUES (:id, :recipe_id, :product_id, :quantity, :unit_abbrev, :cost, :type, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, m)
	return err
}

func (r *PGRepository) UpdateMaterial(ctx context.Context, m *model.Material) error {
	query := `
        UPDATE materials
        SET quantity = :quantity, unit_abbrev = :unit_abbrev, cost = :cost, updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, m)
	return err
}

func (r *PGRepository) DeleteMaterial(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM materials WHERE id = $1", id)
	return err
}

func (r *PGRepository) ListOwningProducts(ctx context.Context, recipeID string) ([]model.Product, error) {
	var products []model.Product
	query := `SELECT * FROM products WHERE recipe_id = $1`
	if err := r.DB.SelectContext(ctx, &products, query, recipeID); err != nil {
		return nil, err
	}
	return products, nil
}
