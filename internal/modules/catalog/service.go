package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"recipebook/internal/domain"
)

// Service serves the reference catalog. Tags and ingredients are
// read-only through the API, writes happen via seeding.
type Service struct {
	tags        TagRepositoryInterface
	ingredients IngredientRepositoryInterface
}

func NewService(tags TagRepositoryInterface, ingredients IngredientRepositoryInterface) *Service {
	return &Service{tags: tags, ingredients: ingredients}
}

func (s *Service) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return s.tags.GetAll(ctx)
}

func (s *Service) GetTag(ctx context.Context, id int64) (*domain.Tag, error) {
	tag, err := s.tags.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return tag, nil
}

// SearchIngredients matches by case-insensitive name prefix. An empty
// query returns the whole catalog.
func (s *Service) SearchIngredients(ctx context.Context, namePrefix string) ([]domain.Ingredient, error) {
	return s.ingredients.Search(ctx, namePrefix)
}

func (s *Service) GetIngredient(ctx context.Context, id int64) (*domain.Ingredient, error) {
	ing, err := s.ingredients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, err
	}
	return ing, nil
}
