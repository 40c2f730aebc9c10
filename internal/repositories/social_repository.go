package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"portales/internal/models"
)

// Toggle outcomes reported back to the client.
const (
	ToggleAdded   = "added"
	ToggleRemoved = "removed"
)

// SocialRepository manages the like, favorite and follow association
// tables. Toggles run check-then-act inside one transaction; the
// composite primary keys reject the duplicate row a concurrent identical
// toggle could otherwise insert.
type SocialRepository interface {
	ToggleLike(userID string, portalID uint) (string, int64, error)
	ToggleFavorite(userID string, portalID uint) (string, int64, error)
	ToggleFollow(followerID, followedID string) (string, int64, error)
	CountLikes(portalID uint) (int64, error)
	CountFavorites(portalID uint) (int64, error)
	CountFollowers(userID string) (int64, error)
	CountFollowing(userID string) (int64, error)
	LikeCountsFor(portalIDs []uint) (map[uint]int64, error)
	FavoriteCountsFor(portalIDs []uint) (map[uint]int64, error)
	CountLikesForCreator(creatorID string) (int64, error)
}

// GORMSocialRepository is a GORM implementation of SocialRepository.
type GORMSocialRepository struct {
	db *gorm.DB
}

// NewGORMSocialRepository creates a new instance of GORMSocialRepository.
func NewGORMSocialRepository(db *gorm.DB) *GORMSocialRepository {
	return &GORMSocialRepository{db: db}
}

// ToggleLike adds the membership when absent and removes it when present,
// returning which action happened and the resulting like count.
func (r *GORMSocialRepository) ToggleLike(userID string, portalID uint) (string, int64, error) {
	var action string
	var count int64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var like models.PortalLike
		err := tx.First(&like, "user_id = ? AND portal_id = ?", userID, portalID).Error
		switch {
		case err == nil:
			action = ToggleRemoved
			if err := tx.Where("user_id = ? AND portal_id = ?", userID, portalID).
				Delete(&models.PortalLike{}).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			action = ToggleAdded
			if err := tx.Create(&models.PortalLike{UserID: userID, PortalID: portalID}).Error; err != nil {
				return err
			}
		default:
			return err
		}

		return tx.Model(&models.PortalLike{}).Where("portal_id = ?", portalID).Count(&count).Error
	})
	if err != nil {
		return "", 0, fmt.Errorf("failed to toggle like: %w", err)
	}
	return action, count, nil
}

// ToggleFavorite mirrors ToggleLike on the favorites table.
func (r *GORMSocialRepository) ToggleFavorite(userID string, portalID uint) (string, int64, error) {
	var action string
	var count int64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var favorite models.PortalFavorite
		err := tx.First(&favorite, "user_id = ? AND portal_id = ?", userID, portalID).Error
		switch {
		case err == nil:
			action = ToggleRemoved
			if err := tx.Where("user_id = ? AND portal_id = ?", userID, portalID).
				Delete(&models.PortalFavorite{}).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			action = ToggleAdded
			if err := tx.Create(&models.PortalFavorite{UserID: userID, PortalID: portalID}).Error; err != nil {
				return err
			}
		default:
			return err
		}

		return tx.Model(&models.PortalFavorite{}).Where("portal_id = ?", portalID).Count(&count).Error
	})
	if err != nil {
		return "", 0, fmt.Errorf("failed to toggle favorite: %w", err)
	}
	return action, count, nil
}

// ToggleFollow toggles followerID's membership among followedID's
// followers and returns the target's follower count.
func (r *GORMSocialRepository) ToggleFollow(followerID, followedID string) (string, int64, error) {
	var action string
	var count int64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var follow models.UserFollow
		err := tx.First(&follow, "follower_id = ? AND followed_id = ?", followerID, followedID).Error
		switch {
		case err == nil:
			action = ToggleRemoved
			if err := tx.Where("follower_id = ? AND followed_id = ?", followerID, followedID).
				Delete(&models.UserFollow{}).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			action = ToggleAdded
			if err := tx.Create(&models.UserFollow{FollowerID: followerID, FollowedID: followedID}).Error; err != nil {
				return err
			}
		default:
			return err
		}

		return tx.Model(&models.UserFollow{}).Where("followed_id = ?", followedID).Count(&count).Error
	})
	if err != nil {
		return "", 0, fmt.Errorf("failed to toggle follow: %w", err)
	}
	return action, count, nil
}

func (r *GORMSocialRepository) CountLikes(portalID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.PortalLike{}).Where("portal_id = ?", portalID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

func (r *GORMSocialRepository) CountFavorites(portalID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.PortalFavorite{}).Where("portal_id = ?", portalID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count favorites: %w", err)
	}
	return count, nil
}

func (r *GORMSocialRepository) CountFollowers(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.UserFollow{}).Where("followed_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count followers: %w", err)
	}
	return count, nil
}

func (r *GORMSocialRepository) CountFollowing(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.UserFollow{}).Where("follower_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count following: %w", err)
	}
	return count, nil
}

// LikeCountsFor batch-counts likes for a set of portals in one grouped
// query.
func (r *GORMSocialRepository) LikeCountsFor(portalIDs []uint) (map[uint]int64, error) {
	return r.membershipCounts(&models.PortalLike{}, portalIDs)
}

// FavoriteCountsFor batch-counts favorites for a set of portals in one
// grouped query.
func (r *GORMSocialRepository) FavoriteCountsFor(portalIDs []uint) (map[uint]int64, error) {
	return r.membershipCounts(&models.PortalFavorite{}, portalIDs)
}

func (r *GORMSocialRepository) membershipCounts(model interface{}, portalIDs []uint) (map[uint]int64, error) {
	counts := map[uint]int64{}
	if len(portalIDs) == 0 {
		return counts, nil
	}

	rows := []struct {
		PortalID uint
		Count    int64
	}{}
	err := r.db.Model(model).
		Select("portal_id, COUNT(*) AS count").
		Where("portal_id IN ?", portalIDs).
		Group("portal_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to batch-count memberships: %w", err)
	}

	for _, row := range rows {
		counts[row.PortalID] = row.Count
	}
	return counts, nil
}

// CountLikesForCreator totals the likes received across every portal the
// creator owns.
func (r *GORMSocialRepository) CountLikesForCreator(creatorID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.PortalLike{}).
		Joins("JOIN portals ON portals.id = user_portal_likes.portal_id").
		Where("portals.creator_id = ?", creatorID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count likes for creator: %w", err)
	}
	return count, nil
}
