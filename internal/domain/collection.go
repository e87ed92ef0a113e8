package domain

import "time"

// FavoriteSet and ShoppingCart are per-user recipe sets: exactly one
// row per user (unique on user_id), created lazily on first add and
// mutated by membership rows, never replaced wholesale.

type FavoriteSet struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	UserID    int64     `gorm:"column:user_id;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (FavoriteSet) TableName() string { return "favorite_sets" }

type FavoriteItem struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	SetID     int64     `gorm:"column:set_id;uniqueIndex:uq_favorite_item;not null"`
	RecipeID  int64     `gorm:"column:recipe_id;uniqueIndex:uq_favorite_item;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (FavoriteItem) TableName() string { return "favorite_items" }

type ShoppingCart struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	UserID    int64     `gorm:"column:user_id;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (ShoppingCart) TableName() string { return "shopping_carts" }

type CartItem struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	CartID    int64     `gorm:"column:cart_id;uniqueIndex:uq_cart_item;not null"`
	RecipeID  int64     `gorm:"column:recipe_id;uniqueIndex:uq_cart_item;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (CartItem) TableName() string { return "cart_items" }
