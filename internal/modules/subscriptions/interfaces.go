package subscriptions

import (
	"context"

	"recipebook/internal/domain"
)

type SubscriptionRepositoryInterface interface {
	Create(ctx context.Context, sub *domain.Subscription) error
	Delete(ctx context.Context, subscriberID, authorID int64) (int64, error)
	Exists(ctx context.Context, subscriberID, authorID int64) (bool, error)
	ListAuthors(ctx context.Context, subscriberID int64, limit, offset int) ([]domain.User, int64, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// RecipeReader supplies the recipe cards embedded in feed entries.
type RecipeReader interface {
	CountByAuthor(ctx context.Context, authorID int64) (int64, error)
	ListByAuthor(ctx context.Context, authorID int64, limit int) ([]domain.Recipe, error)
}
