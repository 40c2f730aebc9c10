package repositories_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"portales/internal/models"
	"portales/internal/repositories"
)

func seedUser(t *testing.T, db *gorm.DB, id string) *models.User {
	t.Helper()
	user := &models.User{ID: id, Name: "User " + id, Email: id + "@example.com"}
	assert.NoError(t, db.Create(user).Error)
	return user
}

func seedPortal(t *testing.T, db *gorm.DB, creatorID, title string) *models.Portal {
	t.Helper()
	portal := &models.Portal{
		Title:     title,
		ImageURL:  "https://img.example.com/" + title,
		CreatorID: creatorID,
		IsPublic:  true,
		IsActive:  true,
	}
	assert.NoError(t, db.Create(portal).Error)
	return portal
}

func likePortal(t *testing.T, db *gorm.DB, userID string, portalID uint) {
	t.Helper()
	assert.NoError(t, db.Create(&models.PortalLike{UserID: userID, PortalID: portalID}).Error)
}

func TestPopularPortalsRankedByLikes(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMAnalyticsRepository(db)

	creator := seedUser(t, db, "user_creator")
	for i := 1; i <= 3; i++ {
		seedUser(t, db, fmt.Sprintf("user_fan%d", i))
	}

	quiet := seedPortal(t, db, creator.ID, "quiet")
	popular := seedPortal(t, db, creator.ID, "popular")
	middling := seedPortal(t, db, creator.ID, "middling")

	likePortal(t, db, "user_fan1", popular.ID)
	likePortal(t, db, "user_fan2", popular.ID)
	likePortal(t, db, "user_fan3", popular.ID)
	likePortal(t, db, "user_fan1", middling.ID)

	ranked, err := repo.PopularPortals(10)
	assert.NoError(t, err)
	assert.Len(t, ranked, 2, "unliked portals must not rank")
	assert.Equal(t, popular.ID, ranked[0].ID)
	assert.Equal(t, middling.ID, ranked[1].ID)

	for _, p := range ranked {
		assert.NotEqual(t, quiet.ID, p.ID)
	}
}

func TestPopularPortalsTieBreaksOnID(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMAnalyticsRepository(db)

	creator := seedUser(t, db, "user_creator")
	seedUser(t, db, "user_fan")

	first := seedPortal(t, db, creator.ID, "first")
	second := seedPortal(t, db, creator.ID, "second")

	likePortal(t, db, "user_fan", second.ID)
	likePortal(t, db, "user_fan", first.ID)

	ranked, err := repo.PopularPortals(10)
	assert.NoError(t, err)
	assert.Len(t, ranked, 2)
	assert.Equal(t, first.ID, ranked[0].ID)
	assert.Equal(t, second.ID, ranked[1].ID)
}

func TestPopularPortalsByCreatorScopes(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMAnalyticsRepository(db)

	alice := seedUser(t, db, "user_alice")
	bob := seedUser(t, db, "user_bob")

	mine := seedPortal(t, db, alice.ID, "mine")
	theirs := seedPortal(t, db, bob.ID, "theirs")

	likePortal(t, db, bob.ID, mine.ID)
	likePortal(t, db, alice.ID, theirs.ID)

	ranked, err := repo.PopularPortalsByCreator(alice.ID, 5)
	assert.NoError(t, err)
	assert.Len(t, ranked, 1)
	assert.Equal(t, mine.ID, ranked[0].ID)
}

func TestTrendingPortalsWindowAndVisibility(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMAnalyticsRepository(db)

	creator := seedUser(t, db, "user_creator")
	fan := seedUser(t, db, "user_fan")

	recent := seedPortal(t, db, creator.ID, "recent")
	private := seedPortal(t, db, creator.ID, "private")
	assert.NoError(t, db.Model(private).Update("is_public", false).Error)

	old := seedPortal(t, db, creator.ID, "old")
	assert.NoError(t, db.Model(old).Update("created_at", time.Now().UTC().AddDate(0, 0, -30)).Error)

	likePortal(t, db, fan.ID, recent.ID)
	likePortal(t, db, fan.ID, private.ID)
	likePortal(t, db, fan.ID, old.ID)

	since := time.Now().UTC().AddDate(0, 0, -7)
	trending, err := repo.TrendingPortals(since, 20)
	assert.NoError(t, err)
	assert.Len(t, trending, 1)
	assert.Equal(t, recent.ID, trending[0].ID)
}
