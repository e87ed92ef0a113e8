package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"recipebook/internal/domain"
)

// RecipeFilters narrows List results. Zero values mean "no filter".
type RecipeFilters struct {
	AuthorID    int64
	TagSlugs    []string
	FavoritedBy int64 // user id whose favorite set must contain the recipe
	InCartOf    int64 // user id whose shopping cart must contain the recipe
	Limit       int
	Offset      int
}

type RecipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// Create persists the recipe row, its ingredient junction rows and its
// tag attachments in one transaction. A failure partway leaves nothing.
func (r *RecipeRepository) Create(ctx context.Context, rec *domain.Recipe, items []domain.RecipeIngredient, tags []domain.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rec).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].RecipeID = rec.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		return tx.Model(rec).Association("Tags").Replace(&tags)
	})
}

// Update saves the mutable recipe columns and, when items or tags are
// non-nil, clears and rebuilds the corresponding relations wholesale.
func (r *RecipeRepository) Update(ctx context.Context, rec *domain.Recipe, items []domain.RecipeIngredient, tags []domain.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&domain.Recipe{}).
			Where("id = ?", rec.ID).
			Updates(map[string]any{
				"name":         rec.Name,
				"image":        rec.Image,
				"text":         rec.Text,
				"cooking_time": rec.CookingTime,
				"updated_at":   time.Now(),
			}).Error
		if err != nil {
			return err
		}

		if items != nil {
			if err := tx.Where("recipe_id = ?", rec.ID).Delete(&domain.RecipeIngredient{}).Error; err != nil {
				return err
			}
			for i := range items {
				items[i].ID = 0
				items[i].RecipeID = rec.ID
			}
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}

		if tags != nil {
			if err := tx.Model(rec).Association("Tags").Replace(&tags); err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *RecipeRepository) GetByID(ctx context.Context, id int64) (*domain.Recipe, error) {
	var rec domain.Recipe
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("recipe_ingredients.id ASC")
		}).
		Preload("Ingredients.Ingredient").
		First(&rec, id).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *RecipeRepository) List(ctx context.Context, f RecipeFilters) ([]domain.Recipe, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Recipe{})

	if f.AuthorID != 0 {
		q = q.Where("recipes.author_id = ?", f.AuthorID)
	}
	if len(f.TagSlugs) > 0 {
		q = q.Where("recipes.id IN (?)",
			r.db.Table("recipe_tags").
				Select("recipe_tags.recipe_id").
				Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
				Where("tags.slug IN ?", f.TagSlugs))
	}
	if f.FavoritedBy != 0 {
		q = q.Where("recipes.id IN (?)",
			r.db.Table("favorite_items").
				Select("favorite_items.recipe_id").
				Joins("JOIN favorite_sets ON favorite_sets.id = favorite_items.set_id").
				Where("favorite_sets.user_id = ?", f.FavoritedBy))
	}
	if f.InCartOf != 0 {
		q = q.Where("recipes.id IN (?)",
			r.db.Table("cart_items").
				Select("cart_items.recipe_id").
				Joins("JOIN shopping_carts ON shopping_carts.id = cart_items.cart_id").
				Where("shopping_carts.user_id = ?", f.InCartOf))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipes []domain.Recipe
	err := q.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("recipe_ingredients.id ASC")
		}).
		Preload("Ingredients.Ingredient").
		Order("recipes.created_at DESC, recipes.id DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&recipes).Error
	return recipes, total, err
}

// Delete removes the recipe together with its junction rows and any
// favorite/cart memberships pointing at it.
func (r *RecipeRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&domain.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&domain.FavoriteItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&domain.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Recipe{}, id).Error
	})
}

func (r *RecipeRepository) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}

// ListByAuthor returns the author's newest recipes for the compact
// subscription-feed cards.
func (r *RecipeRepository) ListByAuthor(ctx context.Context, authorID int64, limit int) ([]domain.Recipe, error) {
	var recipes []domain.Recipe
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&recipes).Error
	return recipes, err
}
