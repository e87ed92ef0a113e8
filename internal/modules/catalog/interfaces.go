package catalog

import (
	"context"

	"recipebook/internal/domain"
)

type TagRepositoryInterface interface {
	GetAll(ctx context.Context) ([]domain.Tag, error)
	GetByID(ctx context.Context, id int64) (*domain.Tag, error)
}

type IngredientRepositoryInterface interface {
	Search(ctx context.Context, namePrefix string) ([]domain.Ingredient, error)
	GetByID(ctx context.Context, id int64) (*domain.Ingredient, error)
}
