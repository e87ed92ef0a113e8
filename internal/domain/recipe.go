package domain

import "time"

// Recipe is owned by its author for write purposes; reads are public.
// Invariant: at least one tag and one ingredient at creation and after
// every update.
type Recipe struct {
	ID          int64     `gorm:"column:id;primaryKey" json:"id"`
	AuthorID    int64     `gorm:"column:author_id;index;not null" json:"-"`
	Name        string    `gorm:"column:name;size:256;not null" json:"name"`
	Image       string    `gorm:"column:image;not null" json:"image"`
	Text        string    `gorm:"column:text;not null" json:"text"`
	CookingTime int       `gorm:"column:cooking_time;not null" json:"cooking_time"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"-"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"-"`

	Author      User               `gorm:"foreignKey:AuthorID" json:"-"`
	Tags        []Tag              `gorm:"many2many:recipe_tags" json:"-"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"-"`
}

func (Recipe) TableName() string { return "recipes" }

// RecipeIngredient is the junction row carrying the amount. Rows are
// owned by the recipe and rebuilt wholesale on update.
type RecipeIngredient struct {
	ID           int64 `gorm:"column:id;primaryKey" json:"-"`
	RecipeID     int64 `gorm:"column:recipe_id;uniqueIndex:uq_recipe_ingredient;not null" json:"-"`
	IngredientID int64 `gorm:"column:ingredient_id;uniqueIndex:uq_recipe_ingredient;not null" json:"id"`
	Amount       int   `gorm:"column:amount;not null" json:"amount"`

	Ingredient Ingredient `gorm:"foreignKey:IngredientID" json:"-"`
}

func (RecipeIngredient) TableName() string { return "recipe_ingredients" }
