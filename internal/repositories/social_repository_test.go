package repositories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"portales/internal/repositories"
)

func TestToggleLikeAddsThenRemoves(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMSocialRepository(db)

	user := seedUser(t, db, "user_fan")
	creator := seedUser(t, db, "user_creator")
	portal := seedPortal(t, db, creator.ID, "likeable")

	action, count, err := repo.ToggleLike(user.ID, portal.ID)
	assert.NoError(t, err)
	assert.Equal(t, repositories.ToggleAdded, action)
	assert.Equal(t, int64(1), count)

	action, count, err = repo.ToggleLike(user.ID, portal.ID)
	assert.NoError(t, err)
	assert.Equal(t, repositories.ToggleRemoved, action)
	assert.Equal(t, int64(0), count)
}

func TestToggleFavoriteIndependentOfLike(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMSocialRepository(db)

	user := seedUser(t, db, "user_fan")
	creator := seedUser(t, db, "user_creator")
	portal := seedPortal(t, db, creator.ID, "saveable")

	_, _, err := repo.ToggleLike(user.ID, portal.ID)
	assert.NoError(t, err)

	action, count, err := repo.ToggleFavorite(user.ID, portal.ID)
	assert.NoError(t, err)
	assert.Equal(t, repositories.ToggleAdded, action)
	assert.Equal(t, int64(1), count)

	likes, err := repo.CountLikes(portal.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), likes)
}

func TestToggleFollowCounts(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMSocialRepository(db)

	alice := seedUser(t, db, "user_alice")
	bob := seedUser(t, db, "user_bob")

	action, followers, err := repo.ToggleFollow(alice.ID, bob.ID)
	assert.NoError(t, err)
	assert.Equal(t, repositories.ToggleAdded, action)
	assert.Equal(t, int64(1), followers)

	following, err := repo.CountFollowing(alice.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), following)

	followersOfAlice, err := repo.CountFollowers(alice.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), followersOfAlice)

	action, followers, err = repo.ToggleFollow(alice.ID, bob.ID)
	assert.NoError(t, err)
	assert.Equal(t, repositories.ToggleRemoved, action)
	assert.Equal(t, int64(0), followers)
}

func TestBatchMembershipCounts(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMSocialRepository(db)

	creator := seedUser(t, db, "user_creator")
	fan1 := seedUser(t, db, "user_fan1")
	fan2 := seedUser(t, db, "user_fan2")

	a := seedPortal(t, db, creator.ID, "a")
	b := seedPortal(t, db, creator.ID, "b")

	likePortal(t, db, fan1.ID, a.ID)
	likePortal(t, db, fan2.ID, a.ID)
	likePortal(t, db, fan1.ID, b.ID)

	counts, err := repo.LikeCountsFor([]uint{a.ID, b.ID})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), counts[a.ID])
	assert.Equal(t, int64(1), counts[b.ID])

	received, err := repo.CountLikesForCreator(creator.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), received)
}
