package services

import (
	"math"
	"time"

	"go.uber.org/zap"

	"portales/internal/repositories"
	"portales/pkg/rabbitmq"
)

// AnalyticsService serves aggregate dashboards, per-user and per-portal
// analytics, trending rankings and event ingestion.
type AnalyticsService struct {
	userRepo        repositories.UserRepository
	portalRepo      repositories.PortalRepository
	reviewRepo      repositories.ReviewRepository
	explorationRepo repositories.ExplorationRepository
	analyticsRepo   repositories.AnalyticsRepository
	social          repositories.SocialRepository
	portalPresenter *PortalPresenter
	events          *rabbitmq.Client
	logger          *zap.Logger
}

// NewAnalyticsService creates a new AnalyticsService. events may be nil
// when no broker is configured.
func NewAnalyticsService(
	userRepo repositories.UserRepository,
	portalRepo repositories.PortalRepository,
	reviewRepo repositories.ReviewRepository,
	explorationRepo repositories.ExplorationRepository,
	analyticsRepo repositories.AnalyticsRepository,
	social repositories.SocialRepository,
	portalPresenter *PortalPresenter,
	events *rabbitmq.Client,
	logger *zap.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		userRepo:        userRepo,
		portalRepo:      portalRepo,
		reviewRepo:      reviewRepo,
		explorationRepo: explorationRepo,
		analyticsRepo:   analyticsRepo,
		social:          social,
		portalPresenter: portalPresenter,
		events:          events,
		logger:          logger,
	}
}

// Dashboard returns platform totals, the ten most liked portals and a
// seven day growth series keyed by calendar date.
func (s *AnalyticsService) Dashboard() (map[string]interface{}, error) {
	totalUsers, err := s.userRepo.Count()
	if err != nil {
		return nil, err
	}
	totalPortals, err := s.portalRepo.CountActive()
	if err != nil {
		return nil, err
	}
	totalReviews, err := s.reviewRepo.Count()
	if err != nil {
		return nil, err
	}
	totalExplorations, err := s.explorationRepo.Count()
	if err != nil {
		return nil, err
	}

	popular, err := s.analyticsRepo.PopularPortals(10)
	if err != nil {
		return nil, err
	}
	popularDicts, err := s.portalPresenter.Many(popular)
	if err != nil {
		return nil, err
	}

	growth, err := s.dailyGrowth(7)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"total_users":        totalUsers,
		"total_portals":      totalPortals,
		"total_reviews":      totalReviews,
		"total_explorations": totalExplorations,
		// Login tracking is not implemented, so there is no activity
		// signal to count yet.
		"active_users":    0,
		"popular_portals": popularDicts,
		"daily_growth":    growth,
	}, nil
}

// UserAnalytics returns a creator's own aggregate numbers and their five
// most liked portals.
func (s *AnalyticsService) UserAnalytics(currentUserID, targetID string) (map[string]interface{}, error) {
	if currentUserID != targetID {
		return nil, forbiddenError("you can only access your own analytics")
	}

	user, err := s.userRepo.GetByID(targetID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFoundError("user not found")
	}

	portalsCount, err := s.portalRepo.CountByCreator(targetID)
	if err != nil {
		return nil, err
	}
	reviewsCount, err := s.reviewRepo.CountByUser(targetID)
	if err != nil {
		return nil, err
	}
	explorationsCount, err := s.explorationRepo.CountByUser(targetID)
	if err != nil {
		return nil, err
	}
	likesReceived, err := s.social.CountLikesForCreator(targetID)
	if err != nil {
		return nil, err
	}
	followers, err := s.social.CountFollowers(targetID)
	if err != nil {
		return nil, err
	}
	following, err := s.social.CountFollowing(targetID)
	if err != nil {
		return nil, err
	}

	popular, err := s.analyticsRepo.PopularPortalsByCreator(targetID, 5)
	if err != nil {
		return nil, err
	}
	popularDicts, err := s.portalPresenter.Many(popular)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"portals_count":        portalsCount,
		"reviews_count":        reviewsCount,
		"explorations_count":   explorationsCount,
		"total_likes_received": likesReceived,
		"followers_count":      followers,
		"following_count":      following,
		"popular_portals":      popularDicts,
	}, nil
}

// PortalAnalytics returns engagement numbers for one of the caller's own
// portals.
func (s *AnalyticsService) PortalAnalytics(currentUserID string, portalID uint) (map[string]interface{}, error) {
	portal, err := s.portalRepo.GetByID(portalID)
	if err != nil {
		return nil, err
	}
	if portal == nil {
		return nil, notFoundError("portal not found")
	}
	if portal.CreatorID != currentUserID {
		return nil, forbiddenError("you can only access analytics for your own portals")
	}

	likes, err := s.social.CountLikes(portalID)
	if err != nil {
		return nil, err
	}
	favorites, err := s.social.CountFavorites(portalID)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviewRepo.CountByPortal(portalID)
	if err != nil {
		return nil, err
	}
	explorations, err := s.explorationRepo.CountByPortal(portalID)
	if err != nil {
		return nil, err
	}
	average, err := s.reviewRepo.AverageRating(portalID)
	if err != nil {
		return nil, err
	}

	// View tracking is not implemented yet; the series keeps the shape
	// clients expect, with zero counts.
	dailyViews := map[string]interface{}{}
	now := time.Now().UTC()
	for i := 0; i < 30; i++ {
		day := now.AddDate(0, 0, -i)
		dailyViews[day.Format("2006-01-02")] = 0
	}

	return map[string]interface{}{
		"likes_count":        likes,
		"favorites_count":    favorites,
		"reviews_count":      reviews,
		"explorations_count": explorations,
		"average_rating":     math.Round(average*100) / 100,
		"daily_views":        dailyViews,
	}, nil
}

// Trending ranks public, active portals created within the window by like
// count.
func (s *AnalyticsService) Trending(days, limit int) (map[string]interface{}, error) {
	if days <= 0 {
		days = 7
	}
	if limit <= 0 {
		limit = 20
	}

	since := time.Now().UTC().AddDate(0, 0, -days)
	portals, err := s.analyticsRepo.TrendingPortals(since, limit)
	if err != nil {
		return nil, err
	}

	dicts, err := s.portalPresenter.Many(portals)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"trending_portals": dicts}, nil
}

// TrackEvent accepts a client-side analytics event. Events are logged and
// published to the broker when one is configured; ingestion never fails
// the request.
func (s *AnalyticsService) TrackEvent(userID, eventType string, payload map[string]interface{}) {
	if userID == "" {
		userID = "anonymous"
	}
	s.logger.Info("analytics event",
		zap.String("event_type", eventType),
		zap.String("user_id", userID),
	)

	if s.events == nil {
		return
	}
	event := map[string]interface{}{
		"user_id": userID,
	}
	for key, value := range payload {
		event[key] = value
	}
	if err := s.events.PublishEvent(eventType, event); err != nil {
		s.logger.Warn("failed to publish event", zap.String("event_type", eventType), zap.Error(err))
	}
}

// dailyGrowth builds per-day signup, portal and review creation counts
// for the last n days, today included.
func (s *AnalyticsService) dailyGrowth(days int) (map[string]interface{}, error) {
	growth := map[string]interface{}{}
	now := time.Now().UTC()
	for i := 0; i < days; i++ {
		day := now.AddDate(0, 0, -i)
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 0, 1)

		newUsers, err := s.userRepo.CountCreatedBetween(start, end)
		if err != nil {
			return nil, err
		}
		newPortals, err := s.portalRepo.CountCreatedBetween(start, end)
		if err != nil {
			return nil, err
		}
		newReviews, err := s.reviewRepo.CountCreatedBetween(start, end)
		if err != nil {
			return nil, err
		}

		growth[start.Format("2006-01-02")] = map[string]interface{}{
			"new_users":   newUsers,
			"new_portals": newPortals,
			"new_reviews": newReviews,
		}
	}
	return growth, nil
}
