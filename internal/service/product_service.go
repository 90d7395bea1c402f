package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"

	"swapnest/internal/entity"
)

const productCacheTTL = 1 * time.Minute

type ProductService struct {
	products   productStore
	categories categoryStore
	images     imageStore
	rdb        *redis.Client
}

func NewProductService(products productStore, categories categoryStore, images imageStore, rdb *redis.Client) *ProductService {
	return &ProductService{products: products, categories: categories, images: images, rdb: rdb}
}

type ProductInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Condition   string          `json:"condition"`
	Location    string          `json:"location"`
	CategoryID  int             `json:"category_id"`
	IsActive    *bool           `json:"is_active,omitempty"`
}

func (s *ProductService) validateInput(ctx context.Context, in ProductInput) error {
	if in.Title == "" {
		return entity.NewValidationError("Title is required.")
	}
	if !in.Price.IsPositive() {
		return entity.NewValidationError("Price must be greater than zero.")
	}
	if in.Condition != entity.ConditionNew && in.Condition != entity.ConditionUsed {
		return entity.NewValidationError("Condition must be New or Used.")
	}
	if _, err := s.categories.GetCategoryByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return entity.NewValidationError("Unknown category.")
		}
		return err
	}
	return nil
}

// GetProduct serves reads through the Redis cache. Sold and deactivated
// listings stay visible to admins and to their own seller; everyone else
// gets a not-found answer, the same as the catalog listing would give.
func (s *ProductService) GetProduct(ctx context.Context, viewerID int, viewerRole string, id int) (*entity.Product, error) {
	p, err := s.loadProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.IsSold || !p.IsActive {
		if !entity.CanModify(viewerID, viewerRole, p.SellerID) {
			return nil, entity.ErrNotFound
		}
	}
	return p, nil
}

func (s *ProductService) loadProduct(ctx context.Context, id int) (*entity.Product, error) {
	key := productCacheKey(id)
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, key).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			logger.Error().Err(err).Msgf("Error getting product %d from cache", id)
		}
		if cached != "" {
			var p entity.Product
			if err := json.Unmarshal([]byte(cached), &p); err == nil {
				return &p, nil
			}
			logger.Warn().Msgf("Dropping unreadable cache entry for product %d", id)
		}
	}

	p, err := s.products.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	images, err := s.images.ListImagesByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Images = images

	if s.rdb != nil {
		raw, err := json.Marshal(p)
		if err == nil {
			if err := s.rdb.Set(ctx, key, raw, productCacheTTL).Err(); err != nil {
				logger.Error().Err(err).Msgf("Error setting product %d in cache", id)
			}
		}
	}
	return p, nil
}

// ListProducts applies the visibility rules for the viewer: sold and
// inactive listings are hidden, and non-admins never see their own.
func (s *ProductService) ListProducts(ctx context.Context, viewerID int, viewerRole string, filter entity.ProductFilter) ([]entity.Product, error) {
	filter.IncludeUnavailable = false
	if viewerRole != entity.RoleAdmin {
		filter.ExcludeSellerID = viewerID
	}
	return s.products.ListProducts(ctx, filter)
}

// AdminListProducts returns every product including sold and inactive rows.
func (s *ProductService) AdminListProducts(ctx context.Context) ([]entity.Product, error) {
	return s.products.ListProducts(ctx, entity.ProductFilter{IncludeUnavailable: true})
}

func (s *ProductService) CreateProduct(ctx context.Context, sellerID int, in ProductInput) (*entity.Product, error) {
	if err := s.validateInput(ctx, in); err != nil {
		return nil, err
	}

	p := &entity.Product{
		SellerID:    sellerID,
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Condition:   in.Condition,
		Location:    in.Location,
		CategoryID:  in.CategoryID,
		IsActive:    true,
	}
	created, err := s.products.CreateProduct(ctx, p)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating product")
		return nil, err
	}
	return created, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, actorID int, actorRole string, id int, in ProductInput) (*entity.Product, error) {
	p, err := s.products.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !entity.CanModify(actorID, actorRole, p.SellerID) {
		return nil, entity.ErrForbidden
	}
	if err := s.validateInput(ctx, in); err != nil {
		return nil, err
	}

	p.Title = in.Title
	p.Description = in.Description
	p.Price = in.Price
	p.Condition = in.Condition
	p.Location = in.Location
	p.CategoryID = in.CategoryID
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}

	updated, err := s.products.UpdateProduct(ctx, p)
	if err != nil {
		logger.Error().Err(err).Msgf("Error updating product %d", id)
		return nil, err
	}
	s.EvictProduct(ctx, id)
	return updated, nil
}

// DeleteProduct soft-deletes: the listing disappears from the catalog but
// the row stays referenced by history records.
func (s *ProductService) DeleteProduct(ctx context.Context, actorID int, actorRole string, id int) error {
	p, err := s.products.GetProductByID(ctx, id)
	if err != nil {
		return err
	}
	if !entity.CanModify(actorID, actorRole, p.SellerID) {
		return entity.ErrForbidden
	}
	if err := s.products.SoftDeleteProduct(ctx, id); err != nil {
		logger.Error().Err(err).Msgf("Error deleting product %d", id)
		return err
	}
	s.EvictProduct(ctx, id)
	return nil
}

type ProductImageInput struct {
	ProductID int    `json:"product_id"`
	ImageURL  string `json:"image_url"`
	Caption   string `json:"caption"`
	SortOrder int    `json:"order"`
}

func (s *ProductService) validateImageInput(in ProductImageInput) error {
	if in.ImageURL == "" {
		return entity.NewValidationError("Image URL is required.")
	}
	if in.SortOrder < 0 {
		return entity.NewValidationError("Order must be a non-negative integer.")
	}
	return nil
}

func (s *ProductService) ListImages(ctx context.Context, productID int) ([]entity.ProductImage, error) {
	return s.images.ListImagesByProduct(ctx, productID)
}

// AddImage attaches a gallery image; only the listing's seller or an admin
// may do so.
func (s *ProductService) AddImage(ctx context.Context, actorID int, actorRole string, in ProductImageInput) (*entity.ProductImage, error) {
	if err := s.validateImageInput(in); err != nil {
		return nil, err
	}
	p, err := s.products.GetProductByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if !entity.CanModify(actorID, actorRole, p.SellerID) {
		return nil, entity.ErrForbidden
	}

	img, err := s.images.CreateImage(ctx, &entity.ProductImage{
		ProductID: in.ProductID,
		ImageURL:  in.ImageURL,
		Caption:   in.Caption,
		SortOrder: in.SortOrder,
	})
	if err != nil {
		logger.Error().Err(err).Msgf("Error adding image to product %d", in.ProductID)
		return nil, err
	}
	s.EvictProduct(ctx, in.ProductID)
	return img, nil
}

func (s *ProductService) UpdateImage(ctx context.Context, actorID int, actorRole string, id int, in ProductImageInput) (*entity.ProductImage, error) {
	if err := s.validateImageInput(in); err != nil {
		return nil, err
	}
	img, err := s.imageForModify(ctx, actorID, actorRole, id)
	if err != nil {
		return nil, err
	}

	img.ImageURL = in.ImageURL
	img.Caption = in.Caption
	img.SortOrder = in.SortOrder
	updated, err := s.images.UpdateImage(ctx, img)
	if err != nil {
		logger.Error().Err(err).Msgf("Error updating image %d", id)
		return nil, err
	}
	s.EvictProduct(ctx, img.ProductID)
	return updated, nil
}

func (s *ProductService) DeleteImage(ctx context.Context, actorID int, actorRole string, id int) error {
	img, err := s.imageForModify(ctx, actorID, actorRole, id)
	if err != nil {
		return err
	}
	if err := s.images.DeleteImage(ctx, id); err != nil {
		return err
	}
	s.EvictProduct(ctx, img.ProductID)
	return nil
}

// imageForModify loads an image and checks the actor against the owning
// listing's seller.
func (s *ProductService) imageForModify(ctx context.Context, actorID int, actorRole string, id int) (*entity.ProductImage, error) {
	img, err := s.images.GetImageByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p, err := s.products.GetProductByID(ctx, img.ProductID)
	if err != nil {
		return nil, err
	}
	if !entity.CanModify(actorID, actorRole, p.SellerID) {
		return nil, entity.ErrForbidden
	}
	return img, nil
}

// EvictProduct drops the cached copy after any state change.
func (s *ProductService) EvictProduct(ctx context.Context, id int) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, productCacheKey(id)).Err(); err != nil {
		logger.Error().Err(err).Msgf("Error evicting product %d from cache", id)
	}
}

func productCacheKey(id int) string {
	return fmt.Sprintf("product:%d", id)
}
