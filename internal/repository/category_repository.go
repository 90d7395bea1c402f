package repository

import (
	"context"
	"database/sql"
	"errors"

	"swapnest/internal/entity"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db}
}

func (r *CategoryRepository) GetCategoryByID(ctx context.Context, id int) (*entity.Category, error) {
	var (
		cat  entity.Category
		desc sql.NullString
	)
	query := `SELECT id, name, description, created_at, updated_at FROM categories WHERE id = ?`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&cat.ID, &cat.Name, &desc, &cat.CreatedAt, &cat.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	cat.Description = desc.String
	return &cat, nil
}

func (r *CategoryRepository) ListCategories(ctx context.Context) ([]entity.Category, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM categories ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []entity.Category
	for rows.Next() {
		var (
			cat  entity.Category
			desc sql.NullString
		)
		if err := rows.Scan(&cat.ID, &cat.Name, &desc, &cat.CreatedAt, &cat.UpdatedAt); err != nil {
			return nil, err
		}
		cat.Description = desc.String
		cats = append(cats, cat)
	}
	return cats, rows.Err()
}

func (r *CategoryRepository) CreateCategory(ctx context.Context, cat *entity.Category) (*entity.Category, error) {
	query := `INSERT INTO categories (name, description) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, query, cat.Name, cat.Description)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	cat.ID = int(id)
	return cat, nil
}

func (r *CategoryRepository) UpdateCategory(ctx context.Context, cat *entity.Category) (*entity.Category, error) {
	query := `UPDATE categories SET name = ?, description = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, cat.Name, cat.Description, cat.ID); err != nil {
		return nil, err
	}
	return r.GetCategoryByID(ctx, cat.ID)
}

func (r *CategoryRepository) DeleteCategory(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrNotFound
	}
	return nil
}
