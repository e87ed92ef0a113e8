package repository

import (
	"context"

	"gorm.io/gorm"

	"recipebook/internal/domain"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

// Delete removes the pair row and reports how many rows were removed,
// so the caller can distinguish "not subscribed" from success.
func (r *SubscriptionRepository) Delete(ctx context.Context, subscriberID, authorID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("subscriber_id = ? AND author_id = ?", subscriberID, authorID).
		Delete(&domain.Subscription{})
	return res.RowsAffected, res.Error
}

func (r *SubscriptionRepository) Exists(ctx context.Context, subscriberID, authorID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Subscription{}).
		Where("subscriber_id = ? AND author_id = ?", subscriberID, authorID).
		Count(&count).Error
	return count > 0, err
}

// ListAuthors returns the users the subscriber follows, newest
// subscription first, plus the total for pagination.
func (r *SubscriptionRepository) ListAuthors(ctx context.Context, subscriberID int64, limit, offset int) ([]domain.User, int64, error) {
	base := r.db.WithContext(ctx).
		Table("subscriptions").
		Where("subscriptions.subscriber_id = ?", subscriberID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var authors []domain.User
	err := r.db.WithContext(ctx).
		Table("subscriptions").
		Select("users.*").
		Joins("JOIN users ON users.id = subscriptions.author_id").
		Where("subscriptions.subscriber_id = ?", subscriberID).
		Order("subscriptions.created_at DESC, subscriptions.id DESC").
		Limit(limit).
		Offset(offset).
		Scan(&authors).Error
	return authors, total, err
}
