package service

import (
	"context"
	"testing"

	"github.com/yacine178/sales/internal/dto"
	"github.com/yacine178/sales/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubCategoryRepo struct {
	categories map[uuid.UUID]*model.Category
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[uuid.UUID]*model.Category)}
}

func (r *stubCategoryRepo) Create(_ context.Context, c *model.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubCategoryRepo) FindByName(_ context.Context, name string) (*model.Category, error) {
	for _, c := range r.categories {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCategoryRepo) List(_ context.Context) ([]model.Category, error) {
	var result []model.Category
	for _, c := range r.categories {
		result = append(result, *c)
	}
	return result, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, c *model.Category) error {
	if _, ok := r.categories[c.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.categories, id)
	return nil
}

func TestCreateCategoryIdempotentOnName(t *testing.T) {
	svc := NewCategoryService(newStubCategoryRepo())

	first, err := svc.CreateCategory(context.Background(), dto.CreateCategoryRequest{Name: "computers"})
	require.NoError(t, err)
	second, err := svc.CreateCategory(context.Background(), dto.CreateCategoryRequest{Name: "computers"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	cats, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, cats, 1)
}

func TestUpdateCategoryUnknown(t *testing.T) {
	svc := NewCategoryService(newStubCategoryRepo())

	name := "peripherals"
	_, err := svc.UpdateCategory(context.Background(), uuid.New(), dto.UpdateCategoryRequest{Name: &name})
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestDeleteCategory(t *testing.T) {
	svc := NewCategoryService(newStubCategoryRepo())

	created, err := svc.CreateCategory(context.Background(), dto.CreateCategoryRequest{Name: "computers"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory(context.Background(), created.ID))
	assert.ErrorIs(t, svc.DeleteCategory(context.Background(), created.ID), ErrUnknownCategory)
}
