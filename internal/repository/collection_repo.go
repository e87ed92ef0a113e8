package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"recipebook/internal/domain"
)

// FavoriteRepository persists per-user favorite sets. One set row per
// user, membership rows unique on (set_id, recipe_id).
type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// GetOrCreateSet lazily creates the user's set row. The unique index on
// user_id makes concurrent first-adds collapse to a single row.
func (r *FavoriteRepository) GetOrCreateSet(ctx context.Context, userID int64) (*domain.FavoriteSet, error) {
	set := domain.FavoriteSet{UserID: userID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&set).Error
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, err
	}
	if set.ID == 0 {
		if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&set).Error; err != nil {
			return nil, err
		}
	}
	return &set, nil
}

// GetSetByUser returns (nil, nil) when the user has no set row yet.
func (r *FavoriteRepository) GetSetByUser(ctx context.Context, userID int64) (*domain.FavoriteSet, error) {
	var set domain.FavoriteSet
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&set).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &set, nil
}

func (r *FavoriteRepository) Contains(ctx context.Context, setID, recipeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.FavoriteItem{}).
		Where("set_id = ? AND recipe_id = ?", setID, recipeID).
		Count(&count).Error
	return count > 0, err
}

// ContainsForUser answers the is_favorited projection flag.
func (r *FavoriteRepository) ContainsForUser(ctx context.Context, userID, recipeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.FavoriteItem{}).
		Joins("JOIN favorite_sets ON favorite_sets.id = favorite_items.set_id").
		Where("favorite_sets.user_id = ? AND favorite_items.recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}

func (r *FavoriteRepository) Add(ctx context.Context, setID, recipeID int64) error {
	return r.db.WithContext(ctx).Create(&domain.FavoriteItem{SetID: setID, RecipeID: recipeID}).Error
}

func (r *FavoriteRepository) Remove(ctx context.Context, setID, recipeID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("set_id = ? AND recipe_id = ?", setID, recipeID).
		Delete(&domain.FavoriteItem{})
	return res.RowsAffected, res.Error
}

// CartRepository persists per-user shopping carts, same shape as
// favorites plus the ingredient aggregation for the export.
type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

func (r *CartRepository) GetOrCreateCart(ctx context.Context, userID int64) (*domain.ShoppingCart, error) {
	cart := domain.ShoppingCart{UserID: userID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&cart).Error
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, err
	}
	if cart.ID == 0 {
		if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error; err != nil {
			return nil, err
		}
	}
	return &cart, nil
}

func (r *CartRepository) GetCartByUser(ctx context.Context, userID int64) (*domain.ShoppingCart, error) {
	var cart domain.ShoppingCart
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

func (r *CartRepository) Contains(ctx context.Context, cartID, recipeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.CartItem{}).
		Where("cart_id = ? AND recipe_id = ?", cartID, recipeID).
		Count(&count).Error
	return count > 0, err
}

func (r *CartRepository) ContainsForUser(ctx context.Context, userID, recipeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.CartItem{}).
		Joins("JOIN shopping_carts ON shopping_carts.id = cart_items.cart_id").
		Where("shopping_carts.user_id = ? AND cart_items.recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}

func (r *CartRepository) Add(ctx context.Context, cartID, recipeID int64) error {
	return r.db.WithContext(ctx).Create(&domain.CartItem{CartID: cartID, RecipeID: recipeID}).Error
}

func (r *CartRepository) Remove(ctx context.Context, cartID, recipeID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("cart_id = ? AND recipe_id = ?", cartID, recipeID).
		Delete(&domain.CartItem{})
	return res.RowsAffected, res.Error
}

// IngredientTotal is one line of the shopping-list export.
type IngredientTotal struct {
	Name            string
	MeasurementUnit string
	Total           int
}

// SumIngredients consolidates every ingredient across every recipe in
// the user's cart, summing amounts per (name, measurement_unit).
func (r *CartRepository) SumIngredients(ctx context.Context, userID int64) ([]IngredientTotal, error) {
	var totals []IngredientTotal
	err := r.db.WithContext(ctx).
		Table("recipe_ingredients").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN cart_items ON cart_items.recipe_id = recipe_ingredients.recipe_id").
		Joins("JOIN shopping_carts ON shopping_carts.id = cart_items.cart_id").
		Where("shopping_carts.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name ASC").
		Scan(&totals).Error
	return totals, err
}
