package subscriptions

// RecipeCard is the compact recipe projection embedded in feed entries.
type RecipeCard struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// AuthorResponse is a followed author together with a preview of their
// newest recipes. IsSubscribed is always true in feed listings.
type AuthorResponse struct {
	ID           int64        `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	Avatar       string       `json:"avatar,omitempty"`
	IsSubscribed bool         `json:"is_subscribed"`
	RecipesCount int64        `json:"recipes_count"`
	Recipes      []RecipeCard `json:"recipes"`
}
