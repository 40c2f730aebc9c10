package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"portales/internal/handlers"
	"portales/internal/middleware"
	"portales/internal/models"
	"portales/internal/repositories"
	"portales/internal/services"
)

// setupApp builds the full Fiber app against an in-memory SQLite database
// unique to the running test, with development token verification.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.Portal{},
		&models.Review{},
		&models.Exploration{},
		&models.PortalLike{},
		&models.PortalFavorite{},
		&models.UserFollow{},
		&models.PortalTag{},
	)
	assert.NoError(t, err)

	logger := zap.NewNop()
	auth := middleware.NewAuth(services.StaticVerifier{})

	userRepo := repositories.NewGORMUserRepository(db)
	portalRepo := repositories.NewGORMPortalRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	tagRepo := repositories.NewGORMTagRepository(db)
	reviewRepo := repositories.NewGORMReviewRepository(db)
	explorationRepo := repositories.NewGORMExplorationRepository(db)
	socialRepo := repositories.NewGORMSocialRepository(db)
	analyticsRepo := repositories.NewGORMAnalyticsRepository(db)

	portalPresenter := services.NewPortalPresenter(socialRepo, reviewRepo, categoryRepo)
	userPresenter := services.NewUserPresenter(portalRepo, socialRepo)

	userService := services.NewUserService(userRepo, socialRepo, userPresenter)
	portalService := services.NewPortalService(portalRepo, userRepo, socialRepo, portalPresenter, nil, logger)
	categoryService := services.NewCategoryService(categoryRepo)
	reviewService := services.NewReviewService(reviewRepo, portalRepo)
	explorationService := services.NewExplorationService(explorationRepo, portalRepo, nil, logger)
	searchService := services.NewSearchService(portalRepo, userRepo, categoryRepo, tagRepo, portalPresenter, userPresenter)
	analyticsService := services.NewAnalyticsService(
		userRepo, portalRepo, reviewRepo, explorationRepo, analyticsRepo, socialRepo,
		portalPresenter, nil, logger,
	)

	app := fiber.New()
	app.Use(requestid.New(requestid.Config{
		Generator: func() string { return uuid.NewString() },
	}))

	api := app.Group("/api")
	handlers.NewHealthHandler("test").RegisterRoutes(api)
	handlers.NewUserHandler(userService, auth, logger).RegisterRoutes(api)
	handlers.NewPortalHandler(portalService, auth, logger).RegisterRoutes(api)
	handlers.NewCategoryHandler(categoryService, auth, logger).RegisterRoutes(api)
	handlers.NewReviewHandler(reviewService, auth, logger).RegisterRoutes(api)
	handlers.NewExplorationHandler(explorationService, auth, logger).RegisterRoutes(api)
	handlers.NewSearchHandler(searchService, logger).RegisterRoutes(api)
	handlers.NewAnalyticsHandler(analyticsService, auth, logger).RegisterRoutes(api)

	return app
}

// request performs a JSON request; token is sent as a bearer token when
// non-empty.
func request(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()

	decoded := map[string]interface{}{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func createUser(t *testing.T, app *fiber.App, id, name string) {
	t.Helper()
	status, _ := request(t, app, http.MethodPost, "/api/users", "", map[string]interface{}{
		"firebase_uid": id,
		"name":         name,
		"email":        id + "@example.com",
	})
	assert.Equal(t, http.StatusCreated, status)
}

func createPortal(t *testing.T, app *fiber.App, token string, body map[string]interface{}) uint {
	t.Helper()
	status, resp := request(t, app, http.MethodPost, "/api/portals", token, body)
	assert.Equal(t, http.StatusCreated, status)

	portal := resp["portal"].(map[string]interface{})
	return uint(portal["id"].(float64))
}

func TestHealthAndRequestID(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	// A caller-supplied correlation id is kept, not replaced.
	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "caller-supplied-id")
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "caller-supplied-id", resp.Header.Get("X-Request-ID"))
}

func TestUserLifecycle(t *testing.T) {
	app := setupApp(t)

	createUser(t, app, "user_alice", "Alice")

	// Duplicate registration conflicts.
	status, resp := request(t, app, http.MethodPost, "/api/users", "", map[string]interface{}{
		"firebase_uid": "user_alice",
		"name":         "Alice Again",
		"email":        "other@example.com",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "VALIDATION_ERROR", resp["error_code"])

	// Duplicate email conflicts too.
	status, _ = request(t, app, http.MethodPost, "/api/users", "", map[string]interface{}{
		"firebase_uid": "user_alice2",
		"name":         "Alice Two",
		"email":        "user_alice@example.com",
	})
	assert.Equal(t, http.StatusConflict, status)

	// Missing required fields.
	status, resp = request(t, app, http.MethodPost, "/api/users", "", map[string]interface{}{
		"firebase_uid": "user_bob",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, resp, "details")

	// Profile fetch with stats.
	status, resp = request(t, app, http.MethodGet, "/api/users/user_alice", "", nil)
	assert.Equal(t, http.StatusOK, status)
	user := resp["user"].(map[string]interface{})
	assert.Equal(t, "Alice", user["name"])
	stats := user["stats"].(map[string]interface{})
	assert.Equal(t, float64(0), stats["portals_count"])

	// Partial update touches only the sent keys.
	status, resp = request(t, app, http.MethodPut, "/api/users/user_alice", "user_alice", map[string]interface{}{
		"bio": "muralist",
	})
	assert.Equal(t, http.StatusOK, status)
	user = resp["user"].(map[string]interface{})
	assert.Equal(t, "muralist", user["bio"])
	assert.Equal(t, "Alice", user["name"])

	// Updating someone else's profile is forbidden.
	createUser(t, app, "user_bob", "Bob")
	status, resp = request(t, app, http.MethodPut, "/api/users/user_alice", "user_bob", map[string]interface{}{
		"bio": "not yours",
	})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "AUTHORIZATION_ERROR", resp["error_code"])
}

func TestFollowToggleAndSelfFollow(t *testing.T) {
	app := setupApp(t)
	createUser(t, app, "user_alice", "Alice")
	createUser(t, app, "user_bob", "Bob")

	status, resp := request(t, app, http.MethodPost, "/api/users/user_bob/follow", "user_alice", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "added", resp["action"])
	assert.Equal(t, float64(1), resp["followers_count"])

	status, resp = request(t, app, http.MethodPost, "/api/users/user_bob/follow", "user_alice", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "removed", resp["action"])
	assert.Equal(t, float64(0), resp["followers_count"])

	status, resp = request(t, app, http.MethodPost, "/api/users/user_alice/follow", "user_alice", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", resp["error_code"])
}

func TestPortalLifecycle(t *testing.T) {
	app := setupApp(t)
	createUser(t, app, "user_alice", "Alice")
	createUser(t, app, "user_bob", "Bob")

	// Creation requires auth.
	status, _ := request(t, app, http.MethodPost, "/api/portals", "", map[string]interface{}{
		"title":     "No auth",
		"image_url": "https://img.example.com/x.jpg",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	portalID := createPortal(t, app, "user_alice", map[string]interface{}{
		"title":     "Street Mural",
		"image_url": "https://img.example.com/mural.jpg",
		"tags":      []string{"Street Art", "murals"},
	})

	// Tags were created and attached by slug.
	status, resp := request(t, app, http.MethodGet, fmt.Sprintf("/api/portals/%d", portalID), "", nil)
	assert.Equal(t, http.StatusOK, status)
	portal := resp["portal"].(map[string]interface{})
	tags := portal["tags"].([]interface{})
	assert.Len(t, tags, 2)
	creator := portal["creator"].(map[string]interface{})
	assert.Equal(t, "user_alice", creator["id"])

	// Partial update; tags replaced when present.
	status, resp = request(t, app, http.MethodPut, fmt.Sprintf("/api/portals/%d", portalID), "user_alice", map[string]interface{}{
		"description": "Painted in 2023",
		"tags":        []string{"murals"},
	})
	assert.Equal(t, http.StatusOK, status)
	portal = resp["portal"].(map[string]interface{})
	assert.Equal(t, "Painted in 2023", portal["description"])
	assert.Equal(t, "Street Mural", portal["title"])
	assert.Len(t, portal["tags"].([]interface{}), 1)

	// Non-owner edits and deletes are forbidden.
	status, _ = request(t, app, http.MethodPut, fmt.Sprintf("/api/portals/%d", portalID), "user_bob", map[string]interface{}{
		"title": "Hijacked",
	})
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = request(t, app, http.MethodDelete, fmt.Sprintf("/api/portals/%d", portalID), "user_bob", nil)
	assert.Equal(t, http.StatusForbidden, status)

	// Owner delete cascades.
	status, _ = request(t, app, http.MethodDelete, fmt.Sprintf("/api/portals/%d", portalID), "user_alice", nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = request(t, app, http.MethodGet, fmt.Sprintf("/api/portals/%d", portalID), "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestPrivatePortalVisibility(t *testing.T) {
	app := setupApp(t)
	createUser(t, app, "user_alice", "Alice")
	createUser(t, app, "user_bob", "Bob")

	portalID := createPortal(t, app, "user_alice", map[string]interface{}{
		"title":     "Hidden Spot",
		"image_url": "https://img.example.com/hidden.jpg",
		"is_public": false,
	})

	// Anonymous and non-creator viewers both get a plain 404.
	status, _ := request(t, app, http.MethodGet, fmt.Sprintf("/api/portals/%d", portalID), "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = request(t, app, http.MethodGet, fmt.Sprintf("/api/portals/%d", portalID), "user_bob", nil)
	assert.Equal(t, http.StatusNotFound, status)

	// The creator can still see it.
	status, _ = request(t, app, http.MethodGet, fmt.Sprintf("/api/portals/%d", portalID), "user_alice", nil)
	assert.Equal(t, http.StatusOK, status)

	// Private portals stay out of the public listing.
	status, resp := request(t, app, http.MethodGet, "/api/portals", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, resp["portals"].([]interface{}))
}

func TestLikeAndFavoriteToggles(t *testing.T) {
	app := setupApp(t)
	createUser(t, app, "user_alice", "Alice")
	createUser(t, app, "user_bob", "Bob")

	portalID := createPortal(t, app, "user_alice", map[string]interface{}{
		"title":     "Likeable",
		"image_url": "https://img.example.com/like.jpg",
	})

	path := fmt.Sprintf("/api/portals/%d/like", portalID)
	status, resp := request(t, app, http.MethodPost, path, "user_bob", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "added", resp["action"])
	assert.Equal(t, float64(1), resp["likes_count"])

	status, resp = request(t, app, http.MethodPost, path, "user_bob", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "removed", resp["action"])
	assert.Equal(t, float64(0), resp["likes_count"])

	status, resp = request(t, app, http.MethodPost, fmt.Sprintf("/api/portals/%d/favorite", portalID), "user_bob", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "added", resp["action"])
	assert.Equal(t, float64(1), resp["favorites_count"])

	// A like on a missing portal is a 404, not a silent toggle.
	status, _ = request(t, app, http.MethodPost, "/api/portals/99999/like", "user_bob", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestReviewRules(t *testing.T) {
	app := setupApp(t)
	createUser(t, app, "user_alice", "Alice")
	createUser(t, app, "user_bob", "Bob")

	portalID := createPortal(t, app, "user_alice", map[string]interface{}{
		"title":     "Reviewable",
		"image_url": "https://img.example.com/review.jpg",
	})
	reviewsPath := fmt.Sprintf("/api/portals/%d/reviews", portalID)

	// Out-of-range ratings are rejected.
	for _, rating := range []int{0, 6} {
		status, resp := request(t, app, http.MethodPost, reviewsPath, "user_bob", map[string]interface{}{
			"rating": rating,
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "VALIDATION_ERROR", resp["error_code"])
	}

	status, resp := request(t, app, http.MethodPost, reviewsPath, "user_bob", map[string]interface{}{
		"rating":  5,
		"comment": "Stunning",
	})
	assert.Equal(t, http.StatusCreated, status)
	review := resp["review"].(map[string]interface{})
	reviewID := uint(review["id"].(float64))
	assert.Equal(t, float64(5), review["rating"])

	// One review per user and portal.
	status, resp = request(t, app, http.MethodPost, reviewsPath, "user_bob", map[string]interface{}{
		"rating": 3,
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "VALIDATION_ERROR", resp["error_code"])

	// The portal's stats reflect the review.
	status, resp = request(t, app, http.MethodGet, fmt.Sprintf("/api/portals/%d", portalID), "", nil)
	assert.Equal(t, http.StatusOK, status)
	stats := resp["portal"].(map[string]interface{})["stats"].(map[string]interface{})
	assert.Equal(t, float64(5), stats["rating_average"])
	assert.Equal(t, float64(1), stats["rating_count"])

	// Only the author may edit or delete.
	status, _ = request(t, app, http.MethodPut, fmt.Sprintf("/api/reviews/%d", reviewID), "user_alice", map[string]interface{}{
		"rating": 1,
	})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = request(t, app, http.MethodDelete, fmt.Sprintf("/api/reviews/%d", reviewID), "user_bob", nil)
	assert.Equal(t, http.StatusOK, status)

	status, resp = request(t, app, http.MethodGet, reviewsPath, "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, resp["reviews"].([]interface{}))
}

func TestCategoryRules(t *testing.T) {
	app := setupApp(t)
	createUser(t, app, "user_alice", "Alice")

	status, resp := request(t, app, http.MethodPost, "/api/categories", "user_alice", map[string]interface{}{
		"name": "Street Art",
	})
	assert.Equal(t, http.StatusCreated, status)
	category := resp["category"].(map[string]interface{})
	categoryID := uint(category["id"].(float64))
	assert.Equal(t, "street-art", category["slug"])

	// Slug collision conflicts.
	status, _ = request(t, app, http.MethodPost, "/api/categories", "user_alice", map[string]interface{}{
		"name": "street art!!",
	})
	assert.Equal(t, http.StatusConflict, status)

	// A referenced category cannot be deleted.
	createPortal(t, app, "user_alice", map[string]interface{}{
		"title":       "Categorized",
		"image_url":   "https://img.example.com/c.jpg",
		"category_id": categoryID,
	})
	status, resp = request(t, app, http.MethodDelete, fmt.Sprintf("/api/categories/%d", categoryID), "user_alice", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", resp["error_code"])

	// Listing carries portal counts.
	status, resp = request(t, app, http.MethodGet, "/api/categories", "", nil)
	assert.Equal(t, http.StatusOK, status)
	categories := resp["categories"].([]interface{})
	assert.Len(t, categories, 1)
	assert.Equal(t, float64(1), categories[0].(map[string]interface{})["portal_count"])
}

func TestExplorationLifecycle(t *testing.T) {
	app := setupApp(t)
	createUser(t, app, "user_alice", "Alice")
	createUser(t, app, "user_bob", "Bob")

	portalID := createPortal(t, app, "user_alice", map[string]interface{}{
		"title":     "Scannable",
		"image_url": "https://img.example.com/scan.jpg",
	})

	status, resp := request(t, app, http.MethodPost, "/api/explorations", "user_bob", map[string]interface{}{
		"scan_image_url":       "https://img.example.com/capture.jpg",
		"portal_id":            portalID,
		"detection_confidence": 0.92,
		"ar_activated":         true,
	})
	assert.Equal(t, http.StatusCreated, status)
	exploration := resp["exploration"].(map[string]interface{})
	explorationID := uint(exploration["id"].(float64))
	assert.Equal(t, true, exploration["ar_activated"])

	// A dangling portal reference is rejected.
	status, _ = request(t, app, http.MethodPost, "/api/explorations", "user_bob", map[string]interface{}{
		"scan_image_url": "https://img.example.com/capture2.jpg",
		"portal_id":      99999,
	})
	assert.Equal(t, http.StatusNotFound, status)

	// History is owner-scoped.
	status, resp = request(t, app, http.MethodGet, "/api/explorations", "user_bob", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, resp["explorations"].([]interface{}), 1)

	status, resp = request(t, app, http.MethodGet, "/api/explorations", "user_alice", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, resp["explorations"].([]interface{}))

	status, _ = request(t, app, http.MethodGet, fmt.Sprintf("/api/explorations/%d", explorationID), "user_alice", nil)
	assert.Equal(t, http.StatusForbidden, status)

	// Deleting the portal nulls the reference but keeps the record.
	status, _ = request(t, app, http.MethodDelete, fmt.Sprintf("/api/portals/%d", portalID), "user_alice", nil)
	assert.Equal(t, http.StatusOK, status)

	status, resp = request(t, app, http.MethodGet, fmt.Sprintf("/api/explorations/%d", explorationID), "user_bob", nil)
	assert.Equal(t, http.StatusOK, status)
	exploration = resp["exploration"].(map[string]interface{})
	assert.NotContains(t, exploration, "portal")
}

func TestSearchBehaviour(t *testing.T) {
	app := setupApp(t)
	createUser(t, app, "user_alice", "Alice the Muralist")

	createPortal(t, app, "user_alice", map[string]interface{}{
		"title":     "Mural Alley",
		"image_url": "https://img.example.com/1.jpg",
		"tags":      []string{"murals"},
	})
	createPortal(t, app, "user_alice", map[string]interface{}{
		"title":     "Mural Plaza",
		"image_url": "https://img.example.com/2.jpg",
	})

	// Empty query is rejected.
	status, resp := request(t, app, http.MethodGet, "/api/search?q=%20%20", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", resp["error_code"])

	// Unscoped search returns capped sections at the top of the
	// envelope, without pagination.
	status, resp = request(t, app, http.MethodGet, "/api/search?q=mural", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, resp["portals"].([]interface{}), 2)
	assert.Len(t, resp["users"].([]interface{}), 1)
	assert.NotContains(t, resp, "pagination")
	assert.NotContains(t, resp, "results")

	// Scoped search paginates its single section.
	status, resp = request(t, app, http.MethodGet, "/api/search?q=mural&type=portals&per_page=1", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, resp["portals"].([]interface{}), 1)
	pagination := resp["pagination"].(map[string]interface{})
	assert.Equal(t, float64(2), pagination["total"])

	// Suggestions prefer portal titles, then tags.
	status, resp = request(t, app, http.MethodGet, "/api/search/suggestions?q=mur", "", nil)
	assert.Equal(t, http.StatusOK, status)
	suggestions := resp["suggestions"].([]interface{})
	assert.Contains(t, suggestions, "Mural Alley")
	assert.Contains(t, suggestions, "murals")

	// Tags listing.
	status, resp = request(t, app, http.MethodGet, "/api/tags?trending=true", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, resp["tags"].([]interface{}), 1)
}

func TestAnalyticsEndpoints(t *testing.T) {
	app := setupApp(t)
	createUser(t, app, "user_alice", "Alice")
	createUser(t, app, "user_bob", "Bob")

	portalID := createPortal(t, app, "user_alice", map[string]interface{}{
		"title":     "Measured",
		"image_url": "https://img.example.com/m.jpg",
	})
	request(t, app, http.MethodPost, fmt.Sprintf("/api/portals/%d/like", portalID), "user_bob", nil)
	request(t, app, http.MethodPost, fmt.Sprintf("/api/portals/%d/reviews", portalID), "user_bob", map[string]interface{}{
		"rating": 4,
	})

	// Dashboard requires auth and reports totals.
	status, _ := request(t, app, http.MethodGet, "/api/analytics/dashboard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, resp := request(t, app, http.MethodGet, "/api/analytics/dashboard", "user_alice", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), resp["total_users"])
	assert.Equal(t, float64(1), resp["total_portals"])
	assert.Equal(t, float64(0), resp["active_users"])
	assert.Len(t, resp["popular_portals"].([]interface{}), 1)
	growth := resp["daily_growth"].(map[string]interface{})
	assert.Len(t, growth, 7)

	// Today's entry carries all three per-day counters.
	today := growth[time.Now().UTC().Format("2006-01-02")].(map[string]interface{})
	assert.Equal(t, float64(2), today["new_users"])
	assert.Equal(t, float64(1), today["new_portals"])
	assert.Equal(t, float64(1), today["new_reviews"])

	// User analytics are self-only.
	status, _ = request(t, app, http.MethodGet, "/api/analytics/user/user_alice", "user_bob", nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, resp = request(t, app, http.MethodGet, "/api/analytics/user/user_alice", "user_alice", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), resp["portals_count"])
	assert.Equal(t, float64(1), resp["total_likes_received"])

	// Portal analytics are creator-only.
	status, _ = request(t, app, http.MethodGet, fmt.Sprintf("/api/analytics/portal/%d", portalID), "user_bob", nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, resp = request(t, app, http.MethodGet, fmt.Sprintf("/api/analytics/portal/%d", portalID), "user_alice", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), resp["likes_count"])
	assert.Equal(t, float64(4), resp["average_rating"])
	assert.Len(t, resp["daily_views"].(map[string]interface{}), 30)

	// Trending ranks the liked portal.
	status, resp = request(t, app, http.MethodGet, "/api/analytics/trending", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, resp["trending_portals"].([]interface{}), 1)

	// Event tracking accepts anonymous events.
	status, resp = request(t, app, http.MethodPost, "/api/analytics/track", "", map[string]interface{}{
		"event_type": "portal_viewed",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, resp["success"])

	status, _ = request(t, app, http.MethodPost, "/api/analytics/track", "", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAuthGuardEnvelope(t *testing.T) {
	app := setupApp(t)

	status, resp := request(t, app, http.MethodGet, "/api/explorations", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "AUTHENTICATION_ERROR", resp["error_code"])

	req := httptest.NewRequest(http.MethodGet, "/api/explorations", nil)
	req.Header.Set("Authorization", "NotBearer token")
	raw, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer raw.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, raw.StatusCode)

	status, _ = request(t, app, http.MethodGet, "/api/explorations", "bogus-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}
