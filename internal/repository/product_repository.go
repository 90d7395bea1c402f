package repository

import (
	"context"
	"database/sql"
	"errors"

	"swapnest/internal/entity"
)

const productColumns = `p.id, p.seller_id, u.username, p.title, p.description, p.price, p.item_condition, p.location, p.category_id, c.name, p.is_active, p.is_sold, p.bought_by, p.created_at, p.updated_at`

const productJoins = ` FROM products p
	JOIN users u ON u.id = p.seller_id
	JOIN categories c ON c.id = p.category_id`

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db}
}

func scanProduct(row interface{ Scan(...any) error }) (*entity.Product, error) {
	var (
		p        entity.Product
		desc     sql.NullString
		boughtBy sql.NullInt64
	)
	err := row.Scan(&p.ID, &p.SellerID, &p.SellerName, &p.Title, &desc, &p.Price,
		&p.Condition, &p.Location, &p.CategoryID, &p.Category, &p.IsActive,
		&p.IsSold, &boughtBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	p.Description = desc.String
	if boughtBy.Valid {
		buyer := int(boughtBy.Int64)
		p.BoughtBy = &buyer
	}
	return &p, nil
}

func (r *ProductRepository) GetProductByID(ctx context.Context, id int) (*entity.Product, error) {
	query := `SELECT ` + productColumns + productJoins + ` WHERE p.id = ?`
	return scanProduct(r.db.QueryRowContext(ctx, query, id))
}

// ListProducts applies the catalog visibility rules encoded in the filter.
func (r *ProductRepository) ListProducts(ctx context.Context, filter entity.ProductFilter) ([]entity.Product, error) {
	query := `SELECT ` + productColumns + productJoins + ` WHERE 1=1`
	var args []any

	if !filter.IncludeUnavailable {
		query += ` AND p.is_sold = FALSE AND p.is_active = TRUE`
	}
	if filter.ExcludeSellerID != 0 {
		query += ` AND p.seller_id <> ?`
		args = append(args, filter.ExcludeSellerID)
	}
	if filter.Title != "" {
		query += ` AND p.title LIKE ?`
		args = append(args, "%"+filter.Title+"%")
	}
	if filter.Category != "" {
		query += ` AND c.name = ?`
		args = append(args, filter.Category)
	}
	if !filter.MinPrice.IsZero() {
		query += ` AND p.price >= ?`
		args = append(args, filter.MinPrice)
	}
	if !filter.MaxPrice.IsZero() {
		query += ` AND p.price <= ?`
		args = append(args, filter.MaxPrice)
	}
	if filter.Location != "" {
		query += ` AND p.location LIKE ?`
		args = append(args, "%"+filter.Location+"%")
	}
	if filter.Condition != "" {
		query += ` AND p.item_condition = ?`
		args = append(args, filter.Condition)
	}
	query += ` ORDER BY p.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) CreateProduct(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	query := `INSERT INTO products (seller_id, title, description, price, item_condition, location, category_id, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, TRUE)`
	res, err := r.db.ExecContext(ctx, query, p.SellerID, p.Title, p.Description, p.Price,
		p.Condition, p.Location, p.CategoryID)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetProductByID(ctx, int(id))
}

func (r *ProductRepository) UpdateProduct(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	query := `UPDATE products SET title = ?, description = ?, price = ?, item_condition = ?, location = ?, category_id = ?, is_active = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, p.Title, p.Description, p.Price,
		p.Condition, p.Location, p.CategoryID, p.IsActive, p.ID); err != nil {
		return nil, err
	}
	return r.GetProductByID(ctx, p.ID)
}

// SoftDeleteProduct deactivates the listing instead of removing the row, so
// order items and transactions keep a valid product reference.
func (r *ProductRepository) SoftDeleteProduct(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE products SET is_active = FALSE WHERE id = ?`, id)
	return err
}
