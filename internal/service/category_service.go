package service

import (
	"context"

	"swapnest/internal/entity"
)

type CategoryService struct {
	categories categoryStore
}

func NewCategoryService(categories categoryStore) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return s.categories.ListCategories(ctx)
}

func (s *CategoryService) GetCategory(ctx context.Context, id int) (*entity.Category, error) {
	return s.categories.GetCategoryByID(ctx, id)
}

func (s *CategoryService) CreateCategory(ctx context.Context, name, description string) (*entity.Category, error) {
	if name == "" {
		return nil, entity.NewValidationError("Category name is required.")
	}
	return s.categories.CreateCategory(ctx, &entity.Category{Name: name, Description: description})
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id int, name, description string) (*entity.Category, error) {
	if name == "" {
		return nil, entity.NewValidationError("Category name is required.")
	}
	return s.categories.UpdateCategory(ctx, &entity.Category{ID: id, Name: name, Description: description})
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id int) error {
	return s.categories.DeleteCategory(ctx, id)
}
