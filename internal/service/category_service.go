package service

import (
	"context"
	"errors"

	"github.com/yacine178/sales/internal/dto"
	"github.com/yacine178/sales/internal/model"
	"github.com/yacine178/sales/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryService interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	ListCategories(ctx context.Context) ([]dto.CategoryResponse, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	categories repository.CategoryRepository
}

func NewCategoryService(categories repository.CategoryRepository) CategoryService {
	return &categoryService{categories: categories}
}

// CreateCategory is idempotent on name: creating an existing category
// returns the existing row.
func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	existing, err := s.categories.FindByName(ctx, req.Name)
	if err == nil {
		resp := categoryToResponse(existing)
		return &resp, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	c := &model.Category{Name: req.Name, Description: req.Description}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := categoryToResponse(c)
	return &resp, nil
}

func (s *categoryService) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	data := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		data = append(data, categoryToResponse(&categories[i]))
	}
	return data, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, ErrUnknownCategory
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := categoryToResponse(c)
	return &resp, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return ErrUnknownCategory
	}
	return s.categories.Delete(ctx, id)
}

func categoryToResponse(c *model.Category) dto.CategoryResponse {
	return dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}
}
