package subscriptions

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"recipebook/internal/domain"
)

const defaultRecipesLimit = 3

type Service struct {
	subs    SubscriptionRepositoryInterface
	users   UserReader
	recipes RecipeReader
}

func NewService(subs SubscriptionRepositoryInterface, users UserReader, recipes RecipeReader) *Service {
	return &Service{subs: subs, users: users, recipes: recipes}
}

// Subscribe follows an author. Self-follows and duplicate follows are
// rejected regardless of request ordering; the unique pair index backs
// the duplicate check under concurrency.
func (s *Service) Subscribe(ctx context.Context, subscriberID, authorID int64, recipesLimit int) (*AuthorResponse, error) {
	if subscriberID == authorID {
		return nil, ErrSelfSubscribe
	}

	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthorNotFound
		}
		return nil, err
	}

	exists, err := s.subs.Exists(ctx, subscriberID, authorID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadySubscribed
	}

	err = s.subs.Create(ctx, &domain.Subscription{SubscriberID: subscriberID, AuthorID: authorID})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadySubscribed
		}
		return nil, err
	}

	return s.authorEntry(ctx, author, recipesLimit)
}

func (s *Service) Unsubscribe(ctx context.Context, subscriberID, authorID int64) error {
	if _, err := s.users.GetByID(ctx, authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAuthorNotFound
		}
		return err
	}

	removed, err := s.subs.Delete(ctx, subscriberID, authorID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrNotSubscribed
	}
	return nil
}

// Feed lists the followed authors, newest subscription first, each with
// their recipe count and a recipe preview.
func (s *Service) Feed(ctx context.Context, subscriberID int64, limit, offset, recipesLimit int) ([]AuthorResponse, int64, error) {
	authors, total, err := s.subs.ListAuthors(ctx, subscriberID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	entries := make([]AuthorResponse, 0, len(authors))
	for i := range authors {
		entry, err := s.authorEntry(ctx, &authors[i], recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, *entry)
	}
	return entries, total, nil
}

func (s *Service) authorEntry(ctx context.Context, author *domain.User, recipesLimit int) (*AuthorResponse, error) {
	if recipesLimit <= 0 {
		recipesLimit = defaultRecipesLimit
	}

	count, err := s.recipes.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, err
	}
	found, err := s.recipes.ListByAuthor(ctx, author.ID, recipesLimit)
	if err != nil {
		return nil, err
	}

	cards := make([]RecipeCard, 0, len(found))
	for _, rec := range found {
		cards = append(cards, RecipeCard{
			ID:          rec.ID,
			Name:        rec.Name,
			Image:       rec.Image,
			CookingTime: rec.CookingTime,
		})
	}

	avatar := ""
	if author.Avatar != nil {
		avatar = *author.Avatar
	}

	return &AuthorResponse{
		ID:           author.ID,
		Username:     author.Username,
		Email:        author.Email,
		FirstName:    author.FirstName,
		LastName:     author.LastName,
		Avatar:       avatar,
		IsSubscribed: true,
		RecipesCount: count,
		Recipes:      cards,
	}, nil
}
