package services

import (
	"math"

	"portales/internal/helpers"
	"portales/internal/models"
	"portales/internal/repositories"
)

// Response shaping for entities. Collection counts are always explicit
// queries (batched for lists), never walks of loaded object graphs.

// PortalPresenter shapes portal payloads, pulling like/favorite/review
// stats and category portal counts with batch queries.
type PortalPresenter struct {
	social     repositories.SocialRepository
	reviews    repositories.ReviewRepository
	categories repositories.CategoryRepository
}

// NewPortalPresenter creates a new PortalPresenter.
func NewPortalPresenter(
	social repositories.SocialRepository,
	reviews repositories.ReviewRepository,
	categories repositories.CategoryRepository,
) *PortalPresenter {
	return &PortalPresenter{social: social, reviews: reviews, categories: categories}
}

// Many shapes a list of portals with three grouped stat queries plus one
// for category counts, instead of a query fan-out per row.
func (p *PortalPresenter) Many(portals []models.Portal) ([]map[string]interface{}, error) {
	ids := make([]uint, 0, len(portals))
	categoryIDs := []uint{}
	seenCategories := map[uint]bool{}
	for _, portal := range portals {
		ids = append(ids, portal.ID)
		if portal.CategoryID != nil && !seenCategories[*portal.CategoryID] {
			seenCategories[*portal.CategoryID] = true
			categoryIDs = append(categoryIDs, *portal.CategoryID)
		}
	}

	likes, err := p.social.LikeCountsFor(ids)
	if err != nil {
		return nil, err
	}
	favorites, err := p.social.FavoriteCountsFor(ids)
	if err != nil {
		return nil, err
	}
	reviewStats, err := p.reviews.StatsForPortals(ids)
	if err != nil {
		return nil, err
	}
	categoryCounts, err := p.categories.PortalCounts(categoryIDs)
	if err != nil {
		return nil, err
	}

	dicts := make([]map[string]interface{}, 0, len(portals))
	for i := range portals {
		portal := &portals[i]
		rs := reviewStats[portal.ID]
		dict := portalDict(portal, PortalStats{
			LikesCount:     likes[portal.ID],
			FavoritesCount: favorites[portal.ID],
			RatingAverage:  rs.Average,
			RatingCount:    rs.Count,
		})
		if portal.Category != nil {
			dict["category"] = categoryDict(portal.Category, categoryCounts[portal.Category.ID])
		}
		dicts = append(dicts, dict)
	}
	return dicts, nil
}

// One shapes a single portal.
func (p *PortalPresenter) One(portal *models.Portal) (map[string]interface{}, error) {
	dicts, err := p.Many([]models.Portal{*portal})
	if err != nil {
		return nil, err
	}
	return dicts[0], nil
}

// PortalStats carries the aggregate numbers embedded under "stats" in a
// portal payload.
type PortalStats struct {
	LikesCount     int64
	FavoritesCount int64
	RatingAverage  float64
	RatingCount    int64
}

func portalDict(portal *models.Portal, stats PortalStats) map[string]interface{} {
	dict := map[string]interface{}{
		"id":            portal.ID,
		"title":         portal.Title,
		"description":   portal.Description,
		"image_url":     portal.ImageURL,
		"thumbnail_url": portal.ThumbnailURL,
		"location":      portal.Location,
		"latitude":      portal.Latitude,
		"longitude":     portal.Longitude,
		"is_public":     portal.IsPublic,
		"is_active":     portal.IsActive,
		"is_featured":   portal.IsFeatured,
		"created_at":    helpers.FormatTime(portal.CreatedAt),
		"updated_at":    helpers.FormatTime(portal.UpdatedAt),
		"ai_analysis":   portal.AIAnalysis,
		"ar_effects":    portal.AREffects,
		"stats": map[string]interface{}{
			// View tracking is not implemented yet; always zero.
			"views_count":     0,
			"likes_count":     stats.LikesCount,
			"favorites_count": stats.FavoritesCount,
			"rating_average":  math.Round(stats.RatingAverage*10) / 10,
			"rating_count":    stats.RatingCount,
		},
	}

	if portal.Creator != nil {
		dict["creator"] = map[string]interface{}{
			"id":          portal.Creator.ID,
			"name":        portal.Creator.Name,
			"avatar_url":  portal.Creator.AvatarURL,
			"is_verified": portal.Creator.IsVerified,
		}
	}

	tags := make([]map[string]interface{}, 0, len(portal.Tags))
	for i := range portal.Tags {
		tags = append(tags, tagDict(&portal.Tags[i]))
	}
	dict["tags"] = tags

	return dict
}

// UserPresenter shapes user payloads with their explicit stat counts.
type UserPresenter struct {
	portals repositories.PortalRepository
	social  repositories.SocialRepository
}

// NewUserPresenter creates a new UserPresenter.
func NewUserPresenter(portals repositories.PortalRepository, social repositories.SocialRepository) *UserPresenter {
	return &UserPresenter{portals: portals, social: social}
}

// One shapes a single user with portal/follower/following counts.
func (p *UserPresenter) One(user *models.User) (map[string]interface{}, error) {
	portalsCount, err := p.portals.CountByCreator(user.ID)
	if err != nil {
		return nil, err
	}
	followers, err := p.social.CountFollowers(user.ID)
	if err != nil {
		return nil, err
	}
	following, err := p.social.CountFollowing(user.ID)
	if err != nil {
		return nil, err
	}

	dict := userDict(user)
	dict["stats"] = map[string]interface{}{
		"portals_count":   portalsCount,
		"followers_count": followers,
		"following_count": following,
	}
	return dict, nil
}

// Many shapes a list of users. Search previews and pages stay small, so
// the per-user counts are acceptable here.
func (p *UserPresenter) Many(users []models.User) ([]map[string]interface{}, error) {
	dicts := make([]map[string]interface{}, 0, len(users))
	for i := range users {
		dict, err := p.One(&users[i])
		if err != nil {
			return nil, err
		}
		dicts = append(dicts, dict)
	}
	return dicts, nil
}

func userDict(user *models.User) map[string]interface{} {
	return map[string]interface{}{
		"id":          user.ID,
		"name":        user.Name,
		"email":       user.Email,
		"avatar_url":  user.AvatarURL,
		"bio":         user.Bio,
		"location":    user.Location,
		"website":     user.Website,
		"is_verified": user.IsVerified,
		"created_at":  helpers.FormatTime(user.CreatedAt),
	}
}

func categoryDict(category *models.Category, portalCount int64) map[string]interface{} {
	return map[string]interface{}{
		"id":           category.ID,
		"name":         category.Name,
		"slug":         category.Slug,
		"description":  category.Description,
		"icon":         category.Icon,
		"color":        category.Color,
		"portal_count": portalCount,
	}
}

func tagDict(tag *models.Tag) map[string]interface{} {
	return map[string]interface{}{
		"id":   tag.ID,
		"name": tag.Name,
		"slug": tag.Slug,
	}
}

func reviewDict(review *models.Review) map[string]interface{} {
	dict := map[string]interface{}{
		"id":            review.ID,
		"rating":        review.Rating,
		"title":         review.Title,
		"comment":       review.Comment,
		"is_verified":   review.IsVerified,
		"helpful_count": review.HelpfulCount,
		"created_at":    helpers.FormatTime(review.CreatedAt),
	}
	if review.User != nil {
		dict["user"] = map[string]interface{}{
			"id":         review.User.ID,
			"name":       review.User.Name,
			"avatar_url": review.User.AvatarURL,
		}
	}
	return dict
}

func explorationDict(exploration *models.Exploration) map[string]interface{} {
	dict := map[string]interface{}{
		"id":                   exploration.ID,
		"scan_image_url":       exploration.ScanImageURL,
		"detection_confidence": exploration.DetectionConfidence,
		"ar_activated":         exploration.ARActivated,
		"latitude":             exploration.Latitude,
		"longitude":            exploration.Longitude,
		"created_at":           helpers.FormatTime(exploration.CreatedAt),
	}
	if exploration.Portal != nil {
		dict["portal"] = map[string]interface{}{
			"id":            exploration.Portal.ID,
			"title":         exploration.Portal.Title,
			"image_url":     exploration.Portal.ImageURL,
			"thumbnail_url": exploration.Portal.ThumbnailURL,
		}
	}
	return dict
}

func paginationDict(pg repositories.Pagination) map[string]interface{} {
	return map[string]interface{}{
		"page":     pg.Page,
		"per_page": pg.PerPage,
		"total":    pg.Total,
		"pages":    pg.Pages,
		"has_next": pg.HasNext,
		"has_prev": pg.HasPrev,
	}
}
