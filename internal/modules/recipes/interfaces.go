package recipes

import (
	"context"

	"recipebook/internal/domain"
	"recipebook/internal/repository"
)

type RecipeRepositoryInterface interface {
	Create(ctx context.Context, rec *domain.Recipe, items []domain.RecipeIngredient, tags []domain.Tag) error
	Update(ctx context.Context, rec *domain.Recipe, items []domain.RecipeIngredient, tags []domain.Tag) error
	GetByID(ctx context.Context, id int64) (*domain.Recipe, error)
	List(ctx context.Context, f repository.RecipeFilters) ([]domain.Recipe, int64, error)
	Delete(ctx context.Context, id int64) error
}

// TagReader and IngredientReader validate referenced catalog ids.
type TagReader interface {
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Tag, error)
}

type IngredientReader interface {
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Ingredient, error)
}

type FavoriteRepositoryInterface interface {
	GetOrCreateSet(ctx context.Context, userID int64) (*domain.FavoriteSet, error)
	GetSetByUser(ctx context.Context, userID int64) (*domain.FavoriteSet, error)
	Contains(ctx context.Context, setID, recipeID int64) (bool, error)
	ContainsForUser(ctx context.Context, userID, recipeID int64) (bool, error)
	Add(ctx context.Context, setID, recipeID int64) error
	Remove(ctx context.Context, setID, recipeID int64) (int64, error)
}

type CartRepositoryInterface interface {
	GetOrCreateCart(ctx context.Context, userID int64) (*domain.ShoppingCart, error)
	GetCartByUser(ctx context.Context, userID int64) (*domain.ShoppingCart, error)
	Contains(ctx context.Context, cartID, recipeID int64) (bool, error)
	ContainsForUser(ctx context.Context, userID, recipeID int64) (bool, error)
	Add(ctx context.Context, cartID, recipeID int64) error
	Remove(ctx context.Context, cartID, recipeID int64) (int64, error)
	SumIngredients(ctx context.Context, userID int64) ([]repository.IngredientTotal, error)
}

// SubscriptionChecker feeds the embedded author is_subscribed flag.
type SubscriptionChecker interface {
	Exists(ctx context.Context, subscriberID, authorID int64) (bool, error)
}

type ImageStore interface {
	SaveDataURL(data string) (string, error)
	Remove(url string) error
}
