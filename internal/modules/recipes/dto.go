package recipes

type IngredientInput struct {
	ID     int64 `json:"id" binding:"required"`
	Amount int   `json:"amount" binding:"required"`
}

type CreateRecipeRequest struct {
	Name        string            `json:"name" binding:"required,max=256"`
	Text        string            `json:"text" binding:"required"`
	Image       string            `json:"image" binding:"required"`
	CookingTime int               `json:"cooking_time" binding:"required"`
	Tags        []int64           `json:"tags"`
	Ingredients []IngredientInput `json:"ingredients"`
}

// UpdateRecipeRequest is a partial patch. Nil scalar fields keep the
// stored value; nil Tags/Ingredients keep the stored relation, non-nil
// replaces it wholesale.
type UpdateRecipeRequest struct {
	Name        *string           `json:"name"`
	Text        *string           `json:"text"`
	Image       *string           `json:"image"`
	CookingTime *int              `json:"cooking_time"`
	Tags        []int64           `json:"tags"`
	Ingredients []IngredientInput `json:"ingredients"`
}

// ListQuery mirrors the supported recipe list filters.
type ListQuery struct {
	AuthorID       int64
	TagSlugs       []string
	Favorited      bool
	InShoppingCart bool
	Limit          int
	Offset         int
}

type TagResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type IngredientDetail struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

type AuthorCard struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Avatar       string `json:"avatar,omitempty"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// RecipeResponse is the full projection. The boolean flags are computed
// relative to the requesting principal, false for anonymous.
type RecipeResponse struct {
	ID               int64              `json:"id"`
	Tags             []TagResponse      `json:"tags"`
	Author           AuthorCard         `json:"author"`
	Ingredients      []IngredientDetail `json:"ingredients"`
	IsFavorited      bool               `json:"is_favorited"`
	IsInShoppingCart bool               `json:"is_in_shopping_cart"`
	Name             string             `json:"name"`
	Image            string             `json:"image"`
	Text             string             `json:"text"`
	CookingTime      int                `json:"cooking_time"`
}

// RecipeCard is the compact projection used by favorite and cart
// toggles and the subscription feed.
type RecipeCard struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}
