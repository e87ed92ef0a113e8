package recipes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"recipebook/internal/domain"
	"recipebook/internal/repository"
)

type Service struct {
	recipes     RecipeRepositoryInterface
	tags        TagReader
	ingredients IngredientReader
	favorites   FavoriteRepositoryInterface
	carts       CartRepositoryInterface
	subs        SubscriptionChecker
	images      ImageStore
}

func NewService(
	recipes RecipeRepositoryInterface,
	tags TagReader,
	ingredients IngredientReader,
	favorites FavoriteRepositoryInterface,
	carts CartRepositoryInterface,
	subs SubscriptionChecker,
	images ImageStore,
) *Service {
	return &Service{
		recipes:     recipes,
		tags:        tags,
		ingredients: ingredients,
		favorites:   favorites,
		carts:       carts,
		subs:        subs,
		images:      images,
	}
}

func (s *Service) Create(ctx context.Context, authorID int64, req CreateRecipeRequest) (*RecipeResponse, error) {
	if req.CookingTime < 1 {
		return nil, ErrCookingTimeTooSmall
	}
	tags, err := s.resolveTags(ctx, req.Tags)
	if err != nil {
		return nil, err
	}
	items, err := s.resolveIngredients(ctx, req.Ingredients)
	if err != nil {
		return nil, err
	}

	imageURL, err := s.images.SaveDataURL(req.Image)
	if err != nil {
		return nil, err
	}

	rec := &domain.Recipe{
		AuthorID:    authorID,
		Name:        req.Name,
		Image:       imageURL,
		Text:        req.Text,
		CookingTime: req.CookingTime,
	}
	if err := s.recipes.Create(ctx, rec, items, tags); err != nil {
		_ = s.images.Remove(imageURL)
		return nil, err
	}

	return s.Get(ctx, rec.ID, authorID)
}

// Update patches the recipe. Only the author may call it; tags and
// ingredients, when present, go through the same validation as Create
// and replace the stored relations wholesale.
func (s *Service) Update(ctx context.Context, principalID, recipeID int64, req UpdateRecipeRequest) (*RecipeResponse, error) {
	rec, err := s.load(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if rec.AuthorID != principalID {
		return nil, ErrNotAuthor
	}

	if req.CookingTime != nil && *req.CookingTime < 1 {
		return nil, ErrCookingTimeTooSmall
	}

	var tags []domain.Tag
	if req.Tags != nil {
		tags, err = s.resolveTags(ctx, req.Tags)
		if err != nil {
			return nil, err
		}
	}
	var items []domain.RecipeIngredient
	if req.Ingredients != nil {
		items, err = s.resolveIngredients(ctx, req.Ingredients)
		if err != nil {
			return nil, err
		}
	}

	if req.Name != nil {
		rec.Name = *req.Name
	}
	if req.Text != nil {
		rec.Text = *req.Text
	}
	if req.CookingTime != nil {
		rec.CookingTime = *req.CookingTime
	}

	oldImage := ""
	if req.Image != nil {
		url, err := s.images.SaveDataURL(*req.Image)
		if err != nil {
			return nil, err
		}
		oldImage = rec.Image
		rec.Image = url
	}

	if err := s.recipes.Update(ctx, rec, items, tags); err != nil {
		if req.Image != nil {
			_ = s.images.Remove(rec.Image)
		}
		return nil, err
	}
	if oldImage != "" {
		_ = s.images.Remove(oldImage)
	}

	return s.Get(ctx, recipeID, principalID)
}

func (s *Service) Delete(ctx context.Context, principalID, recipeID int64) error {
	rec, err := s.load(ctx, recipeID)
	if err != nil {
		return err
	}
	if rec.AuthorID != principalID {
		return ErrNotAuthor
	}

	if err := s.recipes.Delete(ctx, recipeID); err != nil {
		return err
	}
	_ = s.images.Remove(rec.Image)
	return nil
}

func (s *Service) Get(ctx context.Context, recipeID, principalID int64) (*RecipeResponse, error) {
	rec, err := s.load(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	return s.project(ctx, rec, principalID)
}

func (s *Service) List(ctx context.Context, principalID int64, q ListQuery) ([]RecipeResponse, int64, error) {
	f := repository.RecipeFilters{
		AuthorID: q.AuthorID,
		TagSlugs: q.TagSlugs,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}
	// Per-user filters only make sense for a logged-in caller; for
	// anonymous requests they are ignored rather than rejected.
	if principalID != 0 {
		if q.Favorited {
			f.FavoritedBy = principalID
		}
		if q.InShoppingCart {
			f.InCartOf = principalID
		}
	}

	found, total, err := s.recipes.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	results := make([]RecipeResponse, 0, len(found))
	for i := range found {
		resp, err := s.project(ctx, &found[i], principalID)
		if err != nil {
			return nil, 0, err
		}
		results = append(results, *resp)
	}
	return results, total, nil
}

// AddFavorite marks the recipe as a favorite. Adding a recipe that is
// already in the set is an error, not a no-op.
func (s *Service) AddFavorite(ctx context.Context, userID, recipeID int64) (*RecipeCard, error) {
	rec, err := s.load(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	set, err := s.favorites.GetOrCreateSet(ctx, userID)
	if err != nil {
		return nil, err
	}
	present, err := s.favorites.Contains(ctx, set.ID, recipeID)
	if err != nil {
		return nil, err
	}
	if present {
		return nil, ErrAlreadyFavorited
	}
	if err := s.favorites.Add(ctx, set.ID, recipeID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyFavorited
		}
		return nil, err
	}

	card := toCard(rec)
	return &card, nil
}

func (s *Service) RemoveFavorite(ctx context.Context, userID, recipeID int64) error {
	if _, err := s.load(ctx, recipeID); err != nil {
		return err
	}

	set, err := s.favorites.GetSetByUser(ctx, userID)
	if err != nil {
		return err
	}
	if set == nil {
		return ErrFavoritesEmpty
	}
	removed, err := s.favorites.Remove(ctx, set.ID, recipeID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrNotFavorited
	}
	return nil
}

func (s *Service) AddToCart(ctx context.Context, userID, recipeID int64) (*RecipeCard, error) {
	rec, err := s.load(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	cart, err := s.carts.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	present, err := s.carts.Contains(ctx, cart.ID, recipeID)
	if err != nil {
		return nil, err
	}
	if present {
		return nil, ErrAlreadyInCart
	}
	if err := s.carts.Add(ctx, cart.ID, recipeID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyInCart
		}
		return nil, err
	}

	card := toCard(rec)
	return &card, nil
}

func (s *Service) RemoveFromCart(ctx context.Context, userID, recipeID int64) error {
	if _, err := s.load(ctx, recipeID); err != nil {
		return err
	}

	cart, err := s.carts.GetCartByUser(ctx, userID)
	if err != nil {
		return err
	}
	if cart == nil {
		return ErrCartEmpty
	}
	removed, err := s.carts.Remove(ctx, cart.ID, recipeID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrNotInCart
	}
	return nil
}

// ShoppingListText renders the consolidated shopping list as plain
// text, one "<name> - <amount> (<unit>)" line per ingredient.
func (s *Service) ShoppingListText(ctx context.Context, userID int64) (string, error) {
	totals, err := s.carts.SumIngredients(ctx, userID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Shopping list\n\n")
	for _, t := range totals {
		fmt.Fprintf(&b, "%s - %d (%s)\n", t.Name, t.Total, t.MeasurementUnit)
	}
	return b.String(), nil
}

func (s *Service) load(ctx context.Context, recipeID int64) (*domain.Recipe, error) {
	rec, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (s *Service) resolveTags(ctx context.Context, ids []int64) ([]domain.Tag, error) {
	if len(ids) == 0 {
		return nil, ErrTagsRequired
	}
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return nil, ErrDuplicateTags
		}
		seen[id] = struct{}{}
	}

	tags, err := s.tags.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, ErrUnknownTag
	}
	return tags, nil
}

func (s *Service) resolveIngredients(ctx context.Context, inputs []IngredientInput) ([]domain.RecipeIngredient, error) {
	if len(inputs) == 0 {
		return nil, ErrIngredientsRequired
	}
	ids := make([]int64, 0, len(inputs))
	seen := make(map[int64]struct{}, len(inputs))
	for _, in := range inputs {
		if in.Amount < 1 {
			return nil, ErrAmountTooSmall
		}
		if _, dup := seen[in.ID]; dup {
			return nil, ErrDuplicateIngredient
		}
		seen[in.ID] = struct{}{}
		ids = append(ids, in.ID)
	}

	found, err := s.ingredients.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(found) != len(ids) {
		return nil, ErrUnknownIngredient
	}

	items := make([]domain.RecipeIngredient, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, domain.RecipeIngredient{IngredientID: in.ID, Amount: in.Amount})
	}
	return items, nil
}

func (s *Service) project(ctx context.Context, rec *domain.Recipe, principalID int64) (*RecipeResponse, error) {
	favorited := false
	inCart := false
	subscribed := false
	if principalID != 0 {
		var err error
		favorited, err = s.favorites.ContainsForUser(ctx, principalID, rec.ID)
		if err != nil {
			return nil, err
		}
		inCart, err = s.carts.ContainsForUser(ctx, principalID, rec.ID)
		if err != nil {
			return nil, err
		}
		if principalID != rec.AuthorID {
			subscribed, err = s.subs.Exists(ctx, principalID, rec.AuthorID)
			if err != nil {
				return nil, err
			}
		}
	}

	tags := make([]TagResponse, 0, len(rec.Tags))
	for _, t := range rec.Tags {
		tags = append(tags, TagResponse{ID: t.ID, Name: t.Name, Slug: t.Slug})
	}

	ings := make([]IngredientDetail, 0, len(rec.Ingredients))
	for _, ri := range rec.Ingredients {
		ings = append(ings, IngredientDetail{
			ID:              ri.IngredientID,
			Name:            ri.Ingredient.Name,
			MeasurementUnit: ri.Ingredient.MeasurementUnit,
			Amount:          ri.Amount,
		})
	}

	avatar := ""
	if rec.Author.Avatar != nil {
		avatar = *rec.Author.Avatar
	}

	return &RecipeResponse{
		ID:   rec.ID,
		Tags: tags,
		Author: AuthorCard{
			ID:           rec.Author.ID,
			Username:     rec.Author.Username,
			Email:        rec.Author.Email,
			FirstName:    rec.Author.FirstName,
			LastName:     rec.Author.LastName,
			Avatar:       avatar,
			IsSubscribed: subscribed,
		},
		Ingredients:      ings,
		IsFavorited:      favorited,
		IsInShoppingCart: inCart,
		Name:             rec.Name,
		Image:            rec.Image,
		Text:             rec.Text,
		CookingTime:      rec.CookingTime,
	}, nil
}

func toCard(rec *domain.Recipe) RecipeCard {
	return RecipeCard{
		ID:          rec.ID,
		Name:        rec.Name,
		Image:       rec.Image,
		CookingTime: rec.CookingTime,
	}
}
