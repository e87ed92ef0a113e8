package repository

import (
	"context"
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"recipebook/internal/database"
	"recipebook/internal/domain"
)

func setupDB(t *testing.T) *gorm.DB {
	if runtime.GOOS == "windows" {
		t.Skip("in-memory sqlite tests are skipped on windows")
	}

	db, err := database.Connect(":memory:")
	require.NoError(t, err, "failed to open test database")
	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) domain.User {
	u := domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		FirstName:    "Test",
		LastName:     "User",
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func seedCatalog(t *testing.T, db *gorm.DB) ([]domain.Tag, []domain.Ingredient) {
	tags := []domain.Tag{
		{Name: "Breakfast", Slug: "breakfast"},
		{Name: "Dinner", Slug: "dinner"},
	}
	require.NoError(t, db.Create(&tags).Error)

	ingredients := []domain.Ingredient{
		{Name: "egg", MeasurementUnit: "pcs"},
		{Name: "flour", MeasurementUnit: "g"},
		{Name: "milk", MeasurementUnit: "ml"},
	}
	require.NoError(t, db.Create(&ingredients).Error)
	return tags, ingredients
}

func seedRecipe(t *testing.T, db *gorm.DB, author domain.User, tags []domain.Tag, items []domain.RecipeIngredient, name string) *domain.Recipe {
	repo := NewRecipeRepository(db)
	rec := &domain.Recipe{
		AuthorID:    author.ID,
		Name:        name,
		Image:       "/static/uploads/t.jpg",
		Text:        "some text",
		CookingTime: 15,
	}
	require.NoError(t, repo.Create(context.Background(), rec, items, tags))
	return rec
}

func TestRecipeRepository_UpdateReplacesRelations(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewRecipeRepository(db)

	author := seedUser(t, db, "alice")
	tags, ingredients := seedCatalog(t, db)

	rec := seedRecipe(t, db, author, tags[:1], []domain.RecipeIngredient{
		{IngredientID: ingredients[0].ID, Amount: 2},
		{IngredientID: ingredients[1].ID, Amount: 200},
	}, "Pancakes")

	// replace both relations wholesale
	rec.Name = "Thin pancakes"
	err := repo.Update(ctx, rec,
		[]domain.RecipeIngredient{{IngredientID: ingredients[2].ID, Amount: 300}},
		tags[1:])
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Thin pancakes", got.Name)
	require.Len(t, got.Ingredients, 1)
	assert.Equal(t, ingredients[2].ID, got.Ingredients[0].IngredientID)
	assert.Equal(t, 300, got.Ingredients[0].Amount)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, "dinner", got.Tags[0].Slug)
}

func TestRecipeRepository_ListFiltersByTagSlug(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewRecipeRepository(db)

	author := seedUser(t, db, "alice")
	tags, ingredients := seedCatalog(t, db)

	seedRecipe(t, db, author, tags[:1], []domain.RecipeIngredient{{IngredientID: ingredients[0].ID, Amount: 1}}, "Omelette")
	seedRecipe(t, db, author, tags[1:], []domain.RecipeIngredient{{IngredientID: ingredients[1].ID, Amount: 100}}, "Bread")

	found, total, err := repo.List(ctx, RecipeFilters{TagSlugs: []string{"breakfast"}, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, found, 1)
	assert.Equal(t, "Omelette", found[0].Name)
}

func TestRecipeRepository_DeleteCleansMemberships(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewRecipeRepository(db)
	favorites := NewFavoriteRepository(db)

	author := seedUser(t, db, "alice")
	reader := seedUser(t, db, "bob")
	tags, ingredients := seedCatalog(t, db)
	rec := seedRecipe(t, db, author, tags[:1], []domain.RecipeIngredient{{IngredientID: ingredients[0].ID, Amount: 1}}, "Omelette")

	set, err := favorites.GetOrCreateSet(ctx, reader.ID)
	require.NoError(t, err)
	require.NoError(t, favorites.Add(ctx, set.ID, rec.ID))

	require.NoError(t, repo.Delete(ctx, rec.ID))

	_, err = repo.GetByID(ctx, rec.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	present, err := favorites.Contains(ctx, set.ID, rec.ID)
	require.NoError(t, err)
	assert.False(t, present)
}

func TestFavoriteRepository_DuplicateAddFailsOnIndex(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	favorites := NewFavoriteRepository(db)

	author := seedUser(t, db, "alice")
	reader := seedUser(t, db, "bob")
	tags, ingredients := seedCatalog(t, db)
	rec := seedRecipe(t, db, author, tags[:1], []domain.RecipeIngredient{{IngredientID: ingredients[0].ID, Amount: 1}}, "Omelette")

	set, err := favorites.GetOrCreateSet(ctx, reader.ID)
	require.NoError(t, err)
	require.NoError(t, favorites.Add(ctx, set.ID, rec.ID))

	// the unique (set_id, recipe_id) index rejects the second insert
	err = favorites.Add(ctx, set.ID, rec.ID)
	assert.Error(t, err)
}

func TestFavoriteRepository_GetOrCreateSetIsIdempotent(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	favorites := NewFavoriteRepository(db)

	reader := seedUser(t, db, "bob")

	first, err := favorites.GetOrCreateSet(ctx, reader.ID)
	require.NoError(t, err)
	second, err := favorites.GetOrCreateSet(ctx, reader.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestCartRepository_SumIngredientsConsolidates(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	carts := NewCartRepository(db)

	author := seedUser(t, db, "alice")
	reader := seedUser(t, db, "bob")
	tags, ingredients := seedCatalog(t, db)

	// two recipes sharing the egg ingredient
	rec1 := seedRecipe(t, db, author, tags[:1], []domain.RecipeIngredient{
		{IngredientID: ingredients[0].ID, Amount: 2},
		{IngredientID: ingredients[1].ID, Amount: 100},
	}, "Omelette")
	rec2 := seedRecipe(t, db, author, tags[1:], []domain.RecipeIngredient{
		{IngredientID: ingredients[0].ID, Amount: 3},
	}, "Boiled eggs")

	cart, err := carts.GetOrCreateCart(ctx, reader.ID)
	require.NoError(t, err)
	require.NoError(t, carts.Add(ctx, cart.ID, rec1.ID))
	require.NoError(t, carts.Add(ctx, cart.ID, rec2.ID))

	totals, err := carts.SumIngredients(ctx, reader.ID)
	require.NoError(t, err)
	require.Len(t, totals, 2)

	// ordered by name: egg before flour
	assert.Equal(t, "egg", totals[0].Name)
	assert.Equal(t, 5, totals[0].Total)
	assert.Equal(t, "flour", totals[1].Name)
	assert.Equal(t, 100, totals[1].Total)
}

func TestSubscriptionRepository_UniquePair(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	subs := NewSubscriptionRepository(db)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	require.NoError(t, subs.Create(ctx, &domain.Subscription{SubscriberID: alice.ID, AuthorID: bob.ID}))

	err := subs.Create(ctx, &domain.Subscription{SubscriberID: alice.ID, AuthorID: bob.ID})
	assert.Error(t, err)

	// the reverse direction is a different pair
	require.NoError(t, subs.Create(ctx, &domain.Subscription{SubscriberID: bob.ID, AuthorID: alice.ID}))
}

func TestSubscriptionRepository_DeleteReportsMissing(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	subs := NewSubscriptionRepository(db)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	removed, err := subs.Delete(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)
}

func TestUserRepository_EmailLowercased(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	users := NewUserRepository(db)

	u := &domain.User{
		Username:     "carol",
		Email:        "Carol@Example.COM",
		PasswordHash: "x",
		FirstName:    "Carol",
		LastName:     "Chef",
	}
	require.NoError(t, users.Create(ctx, u))

	got, err := users.GetByEmail(ctx, "carol@example.com")
	require.NoError(t, err)
	assert.Equal(t, "carol", got.Username)
}

func TestIngredientRepository_PrefixSearch(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewIngredientRepository(db)
	seedCatalog(t, db)

	found, err := repo.Search(ctx, "EG")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "egg", found[0].Name)

	all, err := repo.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
