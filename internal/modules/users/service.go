package users

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"recipebook/internal/domain"
)

// usernameRe mirrors the allowed account-name alphabet: word characters
// plus @ . + - anywhere in the name.
var usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)

type Service struct {
	users  UserRepositoryInterface
	subs   SubscriptionChecker
	images ImageStore
}

func NewService(users UserRepositoryInterface, subs SubscriptionChecker, images ImageStore) *Service {
	return &Service{users: users, subs: subs, images: images}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*ProfileResponse, error) {
	if !usernameRe.MatchString(req.Username) {
		return nil, ErrInvalidUsername
	}

	taken, err := s.users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	taken, err = s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     req.Username,
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Unique indexes catch the race between the existence check
		// and the insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	profile := toProfile(user, false)
	return &profile, nil
}

// Authenticate verifies an email/password pair and returns the account.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, req TokenRequest) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetProfile returns the projection of targetID as seen by principalID.
// principalID is zero for anonymous callers.
func (s *Service) GetProfile(ctx context.Context, targetID, principalID int64) (*ProfileResponse, error) {
	user, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	subscribed := false
	if principalID != 0 && principalID != targetID {
		subscribed, err = s.subs.Exists(ctx, principalID, targetID)
		if err != nil {
			return nil, err
		}
	}

	profile := toProfile(user, subscribed)
	return &profile, nil
}

func (s *Service) List(ctx context.Context, principalID int64, limit, offset int) ([]ProfileResponse, int64, error) {
	found, total, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	profiles := make([]ProfileResponse, 0, len(found))
	for i := range found {
		subscribed := false
		if principalID != 0 && principalID != found[i].ID {
			subscribed, err = s.subs.Exists(ctx, principalID, found[i].ID)
			if err != nil {
				return nil, 0, err
			}
		}
		profiles = append(profiles, toProfile(&found[i], subscribed))
	}
	return profiles, total, nil
}

func (s *Service) SetPassword(ctx context.Context, userID int64, req SetPasswordRequest) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return ErrWrongPassword
	}
	if req.NewPassword == req.CurrentPassword {
		return ErrSamePassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, string(hash))
}

// UpdateAvatar stores the decoded image and swaps the profile link.
// The previous file is removed only after the new link is persisted.
func (s *Service) UpdateAvatar(ctx context.Context, userID int64, dataURL string) (string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	url, err := s.images.SaveDataURL(dataURL)
	if err != nil {
		return "", err
	}
	if err := s.users.UpdateAvatar(ctx, userID, &url); err != nil {
		_ = s.images.Remove(url)
		return "", err
	}
	if user.Avatar != nil {
		_ = s.images.Remove(*user.Avatar)
	}
	return url, nil
}

func (s *Service) DeleteAvatar(ctx context.Context, userID int64) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.users.UpdateAvatar(ctx, userID, nil); err != nil {
		return err
	}
	if user.Avatar != nil {
		_ = s.images.Remove(*user.Avatar)
	}
	return nil
}

func toProfile(u *domain.User, subscribed bool) ProfileResponse {
	avatar := ""
	if u.Avatar != nil {
		avatar = *u.Avatar
	}
	return ProfileResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Avatar:       avatar,
		IsSubscribed: subscribed,
	}
}
