package recipes

import "errors"

var (
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrNotAuthor      = errors.New("only the author can modify this recipe")

	ErrTagsRequired        = errors.New("tags must not be empty")
	ErrDuplicateTags       = errors.New("tags must not repeat")
	ErrUnknownTag          = errors.New("unknown tag id")
	ErrIngredientsRequired = errors.New("ingredients must not be empty")
	ErrDuplicateIngredient = errors.New("ingredient ids must not repeat")
	ErrUnknownIngredient   = errors.New("unknown ingredient id")
	ErrAmountTooSmall      = errors.New("ingredient amount must be at least 1")
	ErrCookingTimeTooSmall = errors.New("cooking time must be at least 1 minute")

	ErrAlreadyFavorited = errors.New("recipe is already in favorites")
	ErrNotFavorited     = errors.New("recipe is not in favorites")
	ErrFavoritesEmpty   = errors.New("favorites list is empty")
	ErrAlreadyInCart    = errors.New("recipe is already in the shopping cart")
	ErrNotInCart        = errors.New("recipe is not in the shopping cart")
	ErrCartEmpty        = errors.New("shopping cart is empty")
)
