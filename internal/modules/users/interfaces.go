package users

import (
	"context"

	"recipebook/internal/domain"
)

// UserRepositoryInterface covers only the methods the users service needs.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	List(ctx context.Context, limit, offset int) ([]domain.User, int64, error)
	UpdatePassword(ctx context.Context, id int64, hash string) error
	UpdateAvatar(ctx context.Context, id int64, avatar *string) error
}

// SubscriptionChecker answers the is_subscribed profile flag.
type SubscriptionChecker interface {
	Exists(ctx context.Context, subscriberID, authorID int64) (bool, error)
}

// ImageStore is the external file-store collaborator for avatars.
type ImageStore interface {
	SaveDataURL(data string) (string, error)
	Remove(url string) error
}
