package services

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"portales/internal/models"
	"portales/internal/repositories"
)

// UserService handles business logic for user profiles and the follow
// relation.
type UserService struct {
	userRepo  repositories.UserRepository
	social    repositories.SocialRepository
	presenter *UserPresenter
	validate  *validator.Validate
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, social repositories.SocialRepository, presenter *UserPresenter) *UserService {
	return &UserService{
		userRepo:  userRepo,
		social:    social,
		presenter: presenter,
		validate:  validator.New(),
	}
}

// CreateUser registers a profile for an externally issued identity. The
// identity string arrives as firebase_uid in the request body.
func (s *UserService) CreateUser(data map[string]interface{}) (map[string]interface{}, error) {
	id, _ := fieldString(data, "firebase_uid")
	name, _ := fieldString(data, "name")
	email, _ := fieldString(data, "email")
	avatarURL, _ := fieldString(data, "avatar_url")

	existing, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, duplicateError("user already exists")
	}

	existingEmail, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existingEmail != nil {
		return nil, duplicateError("email is already in use")
	}

	user := &models.User{
		ID:        id,
		Name:      name,
		Email:     email,
		AvatarURL: avatarURL,
	}
	if err := s.validate.Struct(user); err != nil {
		return nil, validationError(fmt.Sprintf("invalid user: %v", err))
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	dict, err := s.presenter.One(user)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"user": dict}, nil
}

// GetUser returns one user's profile with stats.
func (s *UserService) GetUser(id string) (map[string]interface{}, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFoundError("user not found")
	}

	dict, err := s.presenter.One(user)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"user": dict}, nil
}

// UpdateUser applies a partial profile update; only keys present in the
// body are touched. Users may update only their own profile.
func (s *UserService) UpdateUser(currentUserID, targetID string, data map[string]interface{}) (map[string]interface{}, error) {
	if currentUserID != targetID {
		return nil, forbiddenError("you can only update your own profile")
	}

	user, err := s.userRepo.GetByID(targetID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFoundError("user not found")
	}

	if name, ok := fieldString(data, "name"); ok {
		user.Name = name
	}
	if bio, ok := fieldString(data, "bio"); ok {
		user.Bio = bio
	}
	if location, ok := fieldString(data, "location"); ok {
		user.Location = location
	}
	if website, ok := fieldString(data, "website"); ok {
		user.Website = website
	}

	if err := s.validate.Struct(user); err != nil {
		return nil, validationError(fmt.Sprintf("invalid user: %v", err))
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	dict, err := s.presenter.One(user)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"user": dict}, nil
}

// ToggleFollow follows the target when not yet followed and unfollows
// otherwise, reporting the action and the target's follower count.
func (s *UserService) ToggleFollow(currentUserID, targetID string) (map[string]interface{}, error) {
	if currentUserID == targetID {
		return nil, validationError("you cannot follow yourself")
	}

	current, err := s.userRepo.GetByID(currentUserID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, notFoundError("current user not found")
	}

	target, err := s.userRepo.GetByID(targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, notFoundError("user to follow not found")
	}

	action, followers, err := s.social.ToggleFollow(currentUserID, targetID)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"action":          action,
		"followers_count": followers,
	}, nil
}
