package recipes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"recipebook/internal/domain"
	"recipebook/internal/repository"
)

// Mock repositories

type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) Create(ctx context.Context, rec *domain.Recipe, items []domain.RecipeIngredient, tags []domain.Tag) error {
	args := m.Called(ctx, rec, items, tags)
	if rec != nil {
		rec.ID = 42 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockRecipeRepository) Update(ctx context.Context, rec *domain.Recipe, items []domain.RecipeIngredient, tags []domain.Tag) error {
	args := m.Called(ctx, rec, items, tags)
	return args.Error(0)
}

func (m *MockRecipeRepository) GetByID(ctx context.Context, id int64) (*domain.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) List(ctx context.Context, f repository.RecipeFilters) ([]domain.Recipe, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Recipe), args.Get(1).(int64), args.Error(2)
}

func (m *MockRecipeRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockTagReader struct {
	mock.Mock
}

func (m *MockTagReader) GetByIDs(ctx context.Context, ids []int64) ([]domain.Tag, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tag), args.Error(1)
}

type MockIngredientReader struct {
	mock.Mock
}

func (m *MockIngredientReader) GetByIDs(ctx context.Context, ids []int64) ([]domain.Ingredient, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ingredient), args.Error(1)
}

type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) GetOrCreateSet(ctx context.Context, userID int64) (*domain.FavoriteSet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FavoriteSet), args.Error(1)
}

func (m *MockFavoriteRepository) GetSetByUser(ctx context.Context, userID int64) (*domain.FavoriteSet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FavoriteSet), args.Error(1)
}

func (m *MockFavoriteRepository) Contains(ctx context.Context, setID, recipeID int64) (bool, error) {
	args := m.Called(ctx, setID, recipeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) ContainsForUser(ctx context.Context, userID, recipeID int64) (bool, error) {
	args := m.Called(ctx, userID, recipeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) Add(ctx context.Context, setID, recipeID int64) error {
	args := m.Called(ctx, setID, recipeID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Remove(ctx context.Context, setID, recipeID int64) (int64, error) {
	args := m.Called(ctx, setID, recipeID)
	return args.Get(0).(int64), args.Error(1)
}

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) GetOrCreateCart(ctx context.Context, userID int64) (*domain.ShoppingCart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShoppingCart), args.Error(1)
}

func (m *MockCartRepository) GetCartByUser(ctx context.Context, userID int64) (*domain.ShoppingCart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShoppingCart), args.Error(1)
}

func (m *MockCartRepository) Contains(ctx context.Context, cartID, recipeID int64) (bool, error) {
	args := m.Called(ctx, cartID, recipeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCartRepository) ContainsForUser(ctx context.Context, userID, recipeID int64) (bool, error) {
	args := m.Called(ctx, userID, recipeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCartRepository) Add(ctx context.Context, cartID, recipeID int64) error {
	args := m.Called(ctx, cartID, recipeID)
	return args.Error(0)
}

func (m *MockCartRepository) Remove(ctx context.Context, cartID, recipeID int64) (int64, error) {
	args := m.Called(ctx, cartID, recipeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCartRepository) SumIngredients(ctx context.Context, userID int64) ([]repository.IngredientTotal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.IngredientTotal), args.Error(1)
}

type MockSubscriptionChecker struct {
	mock.Mock
}

func (m *MockSubscriptionChecker) Exists(ctx context.Context, subscriberID, authorID int64) (bool, error) {
	args := m.Called(ctx, subscriberID, authorID)
	return args.Bool(0), args.Error(1)
}

type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) SaveDataURL(data string) (string, error) {
	args := m.Called(data)
	return args.String(0), args.Error(1)
}

func (m *MockImageStore) Remove(url string) error {
	args := m.Called(url)
	return args.Error(0)
}

type serviceMocks struct {
	recipes     *MockRecipeRepository
	tags        *MockTagReader
	ingredients *MockIngredientReader
	favorites   *MockFavoriteRepository
	carts       *MockCartRepository
	subs        *MockSubscriptionChecker
	images      *MockImageStore
}

func newServiceWithMocks() (*Service, *serviceMocks) {
	m := &serviceMocks{
		recipes:     new(MockRecipeRepository),
		tags:        new(MockTagReader),
		ingredients: new(MockIngredientReader),
		favorites:   new(MockFavoriteRepository),
		carts:       new(MockCartRepository),
		subs:        new(MockSubscriptionChecker),
		images:      new(MockImageStore),
	}
	s := NewService(m.recipes, m.tags, m.ingredients, m.favorites, m.carts, m.subs, m.images)
	return s, m
}

func storedRecipe(id, authorID int64) *domain.Recipe {
	return &domain.Recipe{
		ID:          id,
		AuthorID:    authorID,
		Name:        "Pancakes",
		Image:       "/static/uploads/p.jpg",
		Text:        "Mix and fry.",
		CookingTime: 20,
		Author:      domain.User{ID: authorID, Username: "alice", Email: "alice@example.com"},
		Tags:        []domain.Tag{{ID: 1, Name: "Breakfast", Slug: "breakfast"}},
		Ingredients: []domain.RecipeIngredient{
			{RecipeID: id, IngredientID: 7, Amount: 2, Ingredient: domain.Ingredient{ID: 7, Name: "egg", MeasurementUnit: "pcs"}},
		},
	}
}

func TestService_Create_Success(t *testing.T) {
	s, m := newServiceWithMocks()

	m.tags.On("GetByIDs", mock.Anything, []int64{1}).Return([]domain.Tag{{ID: 1, Slug: "breakfast"}}, nil)
	m.ingredients.On("GetByIDs", mock.Anything, []int64{7}).Return([]domain.Ingredient{{ID: 7, Name: "egg"}}, nil)
	m.images.On("SaveDataURL", mock.Anything).Return("/static/uploads/p.jpg", nil)
	m.recipes.On("Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.recipes.On("GetByID", mock.Anything, int64(42)).Return(storedRecipe(42, 5), nil)
	m.favorites.On("ContainsForUser", mock.Anything, int64(5), int64(42)).Return(false, nil)
	m.carts.On("ContainsForUser", mock.Anything, int64(5), int64(42)).Return(false, nil)

	resp, err := s.Create(context.Background(), 5, CreateRecipeRequest{
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		Image:       "data:image/png;base64,aGk=",
		CookingTime: 20,
		Tags:        []int64{1},
		Ingredients: []IngredientInput{{ID: 7, Amount: 2}},
	})

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, int64(42), resp.ID)
	assert.False(t, resp.IsFavorited)
	assert.Len(t, resp.Ingredients, 1)
	assert.Equal(t, "egg", resp.Ingredients[0].Name)
}

func TestService_Create_CookingTimeTooSmall(t *testing.T) {
	s, _ := newServiceWithMocks()

	_, err := s.Create(context.Background(), 5, CreateRecipeRequest{
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		Image:       "data:image/png;base64,aGk=",
		CookingTime: 0,
		Tags:        []int64{1},
		Ingredients: []IngredientInput{{ID: 7, Amount: 2}},
	})

	assert.ErrorIs(t, err, ErrCookingTimeTooSmall)
}

func TestService_Create_UnknownTag(t *testing.T) {
	s, m := newServiceWithMocks()

	// one of the two ids does not exist
	m.tags.On("GetByIDs", mock.Anything, []int64{1, 99}).Return([]domain.Tag{{ID: 1}}, nil)

	_, err := s.Create(context.Background(), 5, CreateRecipeRequest{
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		Image:       "data:image/png;base64,aGk=",
		CookingTime: 20,
		Tags:        []int64{1, 99},
		Ingredients: []IngredientInput{{ID: 7, Amount: 2}},
	})

	assert.ErrorIs(t, err, ErrUnknownTag)
}

func TestService_Create_DuplicateIngredient(t *testing.T) {
	s, m := newServiceWithMocks()

	m.tags.On("GetByIDs", mock.Anything, []int64{1}).Return([]domain.Tag{{ID: 1}}, nil)

	_, err := s.Create(context.Background(), 5, CreateRecipeRequest{
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		Image:       "data:image/png;base64,aGk=",
		CookingTime: 20,
		Tags:        []int64{1},
		Ingredients: []IngredientInput{{ID: 7, Amount: 2}, {ID: 7, Amount: 3}},
	})

	assert.ErrorIs(t, err, ErrDuplicateIngredient)
}

func TestService_Create_EmptyTags(t *testing.T) {
	s, _ := newServiceWithMocks()

	_, err := s.Create(context.Background(), 5, CreateRecipeRequest{
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		Image:       "data:image/png;base64,aGk=",
		CookingTime: 20,
		Tags:        nil,
		Ingredients: []IngredientInput{{ID: 7, Amount: 2}},
	})

	assert.ErrorIs(t, err, ErrTagsRequired)
}

func TestService_Update_NotAuthor(t *testing.T) {
	s, m := newServiceWithMocks()

	m.recipes.On("GetByID", mock.Anything, int64(42)).Return(storedRecipe(42, 5), nil)

	name := "New name"
	_, err := s.Update(context.Background(), 6, 42, UpdateRecipeRequest{Name: &name})

	assert.ErrorIs(t, err, ErrNotAuthor)
}

func TestService_Update_EmptyIngredientsRejected(t *testing.T) {
	s, m := newServiceWithMocks()

	m.recipes.On("GetByID", mock.Anything, int64(42)).Return(storedRecipe(42, 5), nil)

	_, err := s.Update(context.Background(), 5, 42, UpdateRecipeRequest{
		Ingredients: []IngredientInput{},
	})

	assert.ErrorIs(t, err, ErrIngredientsRequired)
}

func TestService_Delete_NotFound(t *testing.T) {
	s, m := newServiceWithMocks()

	m.recipes.On("GetByID", mock.Anything, int64(42)).Return(nil, gorm.ErrRecordNotFound)

	err := s.Delete(context.Background(), 5, 42)

	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestService_AddFavorite_Duplicate(t *testing.T) {
	s, m := newServiceWithMocks()

	m.recipes.On("GetByID", mock.Anything, int64(42)).Return(storedRecipe(42, 5), nil)
	m.favorites.On("GetOrCreateSet", mock.Anything, int64(6)).Return(&domain.FavoriteSet{ID: 3, UserID: 6}, nil)
	m.favorites.On("Contains", mock.Anything, int64(3), int64(42)).Return(true, nil)

	_, err := s.AddFavorite(context.Background(), 6, 42)

	assert.ErrorIs(t, err, ErrAlreadyFavorited)
}

func TestService_AddFavorite_Success(t *testing.T) {
	s, m := newServiceWithMocks()

	m.recipes.On("GetByID", mock.Anything, int64(42)).Return(storedRecipe(42, 5), nil)
	m.favorites.On("GetOrCreateSet", mock.Anything, int64(6)).Return(&domain.FavoriteSet{ID: 3, UserID: 6}, nil)
	m.favorites.On("Contains", mock.Anything, int64(3), int64(42)).Return(false, nil)
	m.favorites.On("Add", mock.Anything, int64(3), int64(42)).Return(nil)

	card, err := s.AddFavorite(context.Background(), 6, 42)

	assert.NoError(t, err)
	assert.Equal(t, int64(42), card.ID)
	assert.Equal(t, "Pancakes", card.Name)
	m.favorites.AssertExpectations(t)
}

func TestService_RemoveFavorite_EmptySet(t *testing.T) {
	s, m := newServiceWithMocks()

	m.recipes.On("GetByID", mock.Anything, int64(42)).Return(storedRecipe(42, 5), nil)
	m.favorites.On("GetSetByUser", mock.Anything, int64(6)).Return(nil, nil)

	err := s.RemoveFavorite(context.Background(), 6, 42)

	assert.ErrorIs(t, err, ErrFavoritesEmpty)
}

func TestService_RemoveFromCart_NotPresent(t *testing.T) {
	s, m := newServiceWithMocks()

	m.recipes.On("GetByID", mock.Anything, int64(42)).Return(storedRecipe(42, 5), nil)
	m.carts.On("GetCartByUser", mock.Anything, int64(6)).Return(&domain.ShoppingCart{ID: 4, UserID: 6}, nil)
	m.carts.On("Remove", mock.Anything, int64(4), int64(42)).Return(int64(0), nil)

	err := s.RemoveFromCart(context.Background(), 6, 42)

	assert.ErrorIs(t, err, ErrNotInCart)
}

func TestService_Get_AnonymousFlagsFalse(t *testing.T) {
	s, m := newServiceWithMocks()

	m.recipes.On("GetByID", mock.Anything, int64(42)).Return(storedRecipe(42, 5), nil)

	resp, err := s.Get(context.Background(), 42, 0)

	assert.NoError(t, err)
	assert.False(t, resp.IsFavorited)
	assert.False(t, resp.IsInShoppingCart)
	assert.False(t, resp.Author.IsSubscribed)
	// no per-user lookups happen for anonymous readers
	m.favorites.AssertNotCalled(t, "ContainsForUser", mock.Anything, mock.Anything, mock.Anything)
	m.carts.AssertNotCalled(t, "ContainsForUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_ShoppingListText(t *testing.T) {
	s, m := newServiceWithMocks()

	m.carts.On("SumIngredients", mock.Anything, int64(6)).Return([]repository.IngredientTotal{
		{Name: "egg", MeasurementUnit: "pcs", Total: 5},
		{Name: "flour", MeasurementUnit: "g", Total: 450},
	}, nil)

	text, err := s.ShoppingListText(context.Background(), 6)

	assert.NoError(t, err)
	assert.Contains(t, text, "egg - 5 (pcs)")
	assert.Contains(t, text, "flour - 450 (g)")
}

func TestService_List_AnonymousIgnoresPersonalFilters(t *testing.T) {
	s, m := newServiceWithMocks()

	m.recipes.On("List", mock.Anything, repository.RecipeFilters{Limit: 6}).
		Return([]domain.Recipe{}, int64(0), nil)

	_, total, err := s.List(context.Background(), 0, ListQuery{
		Favorited:      true,
		InShoppingCart: true,
		Limit:          6,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(0), total)
	m.recipes.AssertExpectations(t)
}
