package services

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"portales/internal/models"
	"portales/internal/repositories"
	"portales/pkg/rabbitmq"
)

// PortalService handles the portal lifecycle plus the like and favorite
// toggles.
type PortalService struct {
	portalRepo repositories.PortalRepository
	userRepo   repositories.UserRepository
	social     repositories.SocialRepository
	presenter  *PortalPresenter
	events     *rabbitmq.Client
	validate   *validator.Validate
	logger     *zap.Logger
}

// NewPortalService creates a new PortalService. events may be nil when no
// broker is configured.
func NewPortalService(
	portalRepo repositories.PortalRepository,
	userRepo repositories.UserRepository,
	social repositories.SocialRepository,
	presenter *PortalPresenter,
	events *rabbitmq.Client,
	logger *zap.Logger,
) *PortalService {
	return &PortalService{
		portalRepo: portalRepo,
		userRepo:   userRepo,
		social:     social,
		presenter:  presenter,
		events:     events,
		validate:   validator.New(),
		logger:     logger,
	}
}

// ListPortals returns a filtered page of public, active portals.
func (s *PortalService) ListPortals(filters repositories.PortalFilters, page, perPage int) (map[string]interface{}, error) {
	portals, pg, err := s.portalRepo.List(filters, page, perPage)
	if err != nil {
		return nil, err
	}

	dicts, err := s.presenter.Many(portals)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"portals":    dicts,
		"pagination": paginationDict(pg),
	}, nil
}

// GetPortal returns one portal. Private portals are visible only to their
// creator; everyone else gets the same not-found as a missing id, so the
// portal's existence is not revealed.
func (s *PortalService) GetPortal(id uint, viewerID string) (map[string]interface{}, error) {
	portal, err := s.portalRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if portal == nil {
		return nil, notFoundError("portal not found")
	}
	if !portal.IsPublic && portal.CreatorID != viewerID {
		return nil, notFoundError("portal not found")
	}

	dict, err := s.presenter.One(portal)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"portal": dict}, nil
}

// CreatePortal creates a portal owned by the authenticated user, creating
// any tags that do not exist yet.
func (s *PortalService) CreatePortal(creatorID string, data map[string]interface{}) (map[string]interface{}, error) {
	user, err := s.userRepo.GetByID(creatorID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFoundError("user not found")
	}

	title, _ := fieldString(data, "title")
	description, _ := fieldString(data, "description")
	imageURL, _ := fieldString(data, "image_url")
	thumbnailURL, _ := fieldString(data, "thumbnail_url")
	location, _ := fieldString(data, "location")
	categoryID, _ := fieldUintPtr(data, "category_id")
	latitude, _ := fieldFloatPtr(data, "latitude")
	longitude, _ := fieldFloatPtr(data, "longitude")

	portal := &models.Portal{
		Title:        title,
		Description:  description,
		ImageURL:     imageURL,
		ThumbnailURL: thumbnailURL,
		CreatorID:    creatorID,
		CategoryID:   categoryID,
		Location:     location,
		Latitude:     latitude,
		Longitude:    longitude,
		IsPublic:     fieldBool(data, "is_public", true),
		IsActive:     true,
	}
	if err := s.validate.Struct(portal); err != nil {
		return nil, validationError(fmt.Sprintf("invalid portal: %v", err))
	}

	tags, _ := fieldStringSlice(data, "tags")
	if err := s.portalRepo.CreateWithTags(portal, tags); err != nil {
		return nil, err
	}

	created, err := s.portalRepo.GetByID(portal.ID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("portal created",
		zap.Uint("portal_id", created.ID),
		zap.String("creator_id", creatorID),
	)
	s.publishEvent("portal.created", map[string]interface{}{
		"portal_id":  created.ID,
		"creator_id": creatorID,
	})

	dict, err := s.presenter.One(created)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"portal": dict}, nil
}

// UpdatePortal applies a partial update; a "tags" key replaces the tag set
// wholesale. Only the creator may edit.
func (s *PortalService) UpdatePortal(currentUserID string, id uint, data map[string]interface{}) (map[string]interface{}, error) {
	portal, err := s.portalRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if portal == nil {
		return nil, notFoundError("portal not found")
	}
	if portal.CreatorID != currentUserID {
		return nil, forbiddenError("you can only edit your own portals")
	}

	if title, ok := fieldString(data, "title"); ok {
		portal.Title = title
	}
	if description, ok := fieldString(data, "description"); ok {
		portal.Description = description
	}
	if categoryID, ok := fieldUintPtr(data, "category_id"); ok {
		portal.CategoryID = categoryID
	}
	if location, ok := fieldString(data, "location"); ok {
		portal.Location = location
	}
	if latitude, ok := fieldFloatPtr(data, "latitude"); ok {
		portal.Latitude = latitude
	}
	if longitude, ok := fieldFloatPtr(data, "longitude"); ok {
		portal.Longitude = longitude
	}
	if _, ok := data["is_public"]; ok {
		portal.IsPublic = fieldBool(data, "is_public", portal.IsPublic)
	}

	if err := s.validate.Struct(portal); err != nil {
		return nil, validationError(fmt.Sprintf("invalid portal: %v", err))
	}

	var tagNames *[]string
	if tags, ok := fieldStringSlice(data, "tags"); ok {
		tagNames = &tags
	}
	if err := s.portalRepo.Update(portal, tagNames); err != nil {
		return nil, err
	}

	updated, err := s.portalRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	dict, err := s.presenter.One(updated)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"portal": dict}, nil
}

// DeletePortal removes a portal and everything hanging off it. Only the
// creator may delete.
func (s *PortalService) DeletePortal(currentUserID string, id uint) error {
	portal, err := s.portalRepo.GetByID(id)
	if err != nil {
		return err
	}
	if portal == nil {
		return notFoundError("portal not found")
	}
	if portal.CreatorID != currentUserID {
		return forbiddenError("you can only delete your own portals")
	}

	if err := s.portalRepo.DeleteCascade(id); err != nil {
		return err
	}
	s.logger.Info("portal deleted",
		zap.Uint("portal_id", id),
		zap.String("creator_id", currentUserID),
	)
	s.publishEvent("portal.deleted", map[string]interface{}{
		"portal_id":  id,
		"creator_id": currentUserID,
	})
	return nil
}

// ToggleLike likes the portal when not yet liked and unlikes otherwise,
// reporting the action and the new like count.
func (s *PortalService) ToggleLike(userID string, portalID uint) (map[string]interface{}, error) {
	if err := s.checkToggleTargets(userID, portalID); err != nil {
		return nil, err
	}

	action, count, err := s.social.ToggleLike(userID, portalID)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"action":      action,
		"likes_count": count,
	}, nil
}

// ToggleFavorite favorites the portal when not yet favorited and removes
// the favorite otherwise.
func (s *PortalService) ToggleFavorite(userID string, portalID uint) (map[string]interface{}, error) {
	if err := s.checkToggleTargets(userID, portalID); err != nil {
		return nil, err
	}

	action, count, err := s.social.ToggleFavorite(userID, portalID)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"action":          action,
		"favorites_count": count,
	}, nil
}

// checkToggleTargets verifies the portal first, then the user, so a
// missing portal wins over a missing profile.
func (s *PortalService) checkToggleTargets(userID string, portalID uint) error {
	portal, err := s.portalRepo.GetByID(portalID)
	if err != nil {
		return err
	}
	if portal == nil {
		return notFoundError("portal not found")
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return notFoundError("user not found")
	}
	return nil
}

// publishEvent emits a domain event when a broker is wired up. Publish
// failures are logged and never fail the request.
func (s *PortalService) publishEvent(eventType string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishEvent(eventType, payload); err != nil {
		s.logger.Warn("failed to publish event", zap.String("event_type", eventType), zap.Error(err))
	}
}
