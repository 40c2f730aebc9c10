package services

import (
	"go.uber.org/zap"

	"portales/internal/models"
	"portales/internal/repositories"
	"portales/pkg/rabbitmq"
)

// ExplorationService records AR scan events and serves a user's scan
// history.
type ExplorationService struct {
	explorationRepo repositories.ExplorationRepository
	portalRepo      repositories.PortalRepository
	events          *rabbitmq.Client
	logger          *zap.Logger
}

// NewExplorationService creates a new ExplorationService. events may be
// nil when no broker is configured.
func NewExplorationService(
	explorationRepo repositories.ExplorationRepository,
	portalRepo repositories.PortalRepository,
	events *rabbitmq.Client,
	logger *zap.Logger,
) *ExplorationService {
	return &ExplorationService{
		explorationRepo: explorationRepo,
		portalRepo:      portalRepo,
		events:          events,
		logger:          logger,
	}
}

// ListExplorations returns a page of the authenticated user's scan
// history, newest first.
func (s *ExplorationService) ListExplorations(userID string, page, perPage int) (map[string]interface{}, error) {
	explorations, pg, err := s.explorationRepo.ListByUser(userID, page, perPage)
	if err != nil {
		return nil, err
	}

	dicts := make([]map[string]interface{}, 0, len(explorations))
	for i := range explorations {
		dicts = append(dicts, explorationDict(&explorations[i]))
	}
	return map[string]interface{}{
		"explorations": dicts,
		"pagination":   paginationDict(pg),
	}, nil
}

// CreateExploration logs a scan event. A portal reference is optional;
// when present it must resolve.
func (s *ExplorationService) CreateExploration(userID string, data map[string]interface{}) (map[string]interface{}, error) {
	portalID, _ := fieldUintPtr(data, "portal_id")
	if portalID != nil {
		portal, err := s.portalRepo.GetByID(*portalID)
		if err != nil {
			return nil, err
		}
		if portal == nil {
			return nil, notFoundError("associated portal not found")
		}
	}

	scanImageURL, _ := fieldString(data, "scan_image_url")
	confidence, _ := fieldFloatPtr(data, "detection_confidence")
	latitude, _ := fieldFloatPtr(data, "latitude")
	longitude, _ := fieldFloatPtr(data, "longitude")

	exploration := &models.Exploration{
		UserID:              userID,
		PortalID:            portalID,
		ScanImageURL:        scanImageURL,
		DetectionConfidence: confidence,
		ARActivated:         fieldBool(data, "ar_activated", false),
		Latitude:            latitude,
		Longitude:           longitude,
	}
	if err := s.explorationRepo.Create(exploration); err != nil {
		return nil, err
	}

	created, err := s.explorationRepo.GetByID(exploration.ID)
	if err != nil {
		return nil, err
	}
	s.publishEvent("exploration.logged", map[string]interface{}{
		"exploration_id": created.ID,
		"user_id":        userID,
	})
	return map[string]interface{}{"exploration": explorationDict(created)}, nil
}

// GetExploration returns one scan record; users can only read their own.
func (s *ExplorationService) GetExploration(userID string, id uint) (map[string]interface{}, error) {
	exploration, err := s.explorationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if exploration == nil {
		return nil, notFoundError("exploration not found")
	}
	if exploration.UserID != userID {
		return nil, forbiddenError("you can only access your own explorations")
	}

	return map[string]interface{}{"exploration": explorationDict(exploration)}, nil
}

// DeleteExploration removes one of the user's own scan records.
func (s *ExplorationService) DeleteExploration(userID string, id uint) error {
	exploration, err := s.explorationRepo.GetByID(id)
	if err != nil {
		return err
	}
	if exploration == nil {
		return notFoundError("exploration not found")
	}
	if exploration.UserID != userID {
		return forbiddenError("you can only delete your own explorations")
	}

	return s.explorationRepo.Delete(id)
}

func (s *ExplorationService) publishEvent(eventType string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishEvent(eventType, payload); err != nil {
		s.logger.Warn("failed to publish event", zap.String("event_type", eventType), zap.Error(err))
	}
}
