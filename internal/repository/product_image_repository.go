package repository

import (
	"context"
	"database/sql"
	"errors"

	"swapnest/internal/entity"
)

const imageColumns = `id, product_id, image_url, caption, sort_order, created_at`

type ProductImageRepository struct {
	db *sql.DB
}

func NewProductImageRepository(db *sql.DB) *ProductImageRepository {
	return &ProductImageRepository{db}
}

func scanImage(row interface{ Scan(...any) error }) (*entity.ProductImage, error) {
	var (
		img     entity.ProductImage
		caption sql.NullString
	)
	err := row.Scan(&img.ID, &img.ProductID, &img.ImageURL, &caption, &img.SortOrder, &img.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	img.Caption = caption.String
	return &img, nil
}

func (r *ProductImageRepository) GetImageByID(ctx context.Context, id int) (*entity.ProductImage, error) {
	query := `SELECT ` + imageColumns + ` FROM product_images WHERE id = ?`
	return scanImage(r.db.QueryRowContext(ctx, query, id))
}

// ListImagesByProduct returns a listing's gallery in display order.
func (r *ProductImageRepository) ListImagesByProduct(ctx context.Context, productID int) ([]entity.ProductImage, error) {
	query := `SELECT ` + imageColumns + ` FROM product_images WHERE product_id = ? ORDER BY sort_order, id`
	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []entity.ProductImage
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		images = append(images, *img)
	}
	return images, rows.Err()
}

func (r *ProductImageRepository) CreateImage(ctx context.Context, img *entity.ProductImage) (*entity.ProductImage, error) {
	query := `INSERT INTO product_images (product_id, image_url, caption, sort_order) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, img.ProductID, img.ImageURL, img.Caption, img.SortOrder)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetImageByID(ctx, int(id))
}

func (r *ProductImageRepository) UpdateImage(ctx context.Context, img *entity.ProductImage) (*entity.ProductImage, error) {
	query := `UPDATE product_images SET image_url = ?, caption = ?, sort_order = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, img.ImageURL, img.Caption, img.SortOrder, img.ID); err != nil {
		return nil, err
	}
	return r.GetImageByID(ctx, img.ID)
}

func (r *ProductImageRepository) DeleteImage(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM product_images WHERE id = ?`, id)
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
