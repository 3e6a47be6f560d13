package progressController_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	progressRoutes "lms/routers/progressRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupApp(t *testing.T) (*fiber.App, string, uint) {
	t.Helper()

	config.AppConfig = &config.Config{
		Port:      "0",
		JWTKey:    "test-secret",
		SaltRound: 4,
		UploadDir: t.TempDir(),
	}

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	user := models.User{Name: "Sam Student", Email: "s@x.com", Password: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)

	app := fiber.New()
	progressRoutes.SetupProgressRoutes(app)
	return app, token, user.ID
}

func postProgress(t *testing.T, app *fiber.App, token string, body map[string]interface{}) (*http.Response, envelope) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodPost, "/api/progress/update", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp, parsed
}

func TestUpdateProgressClampsWatchedSeconds(t *testing.T) {
	app, token, userID := setupApp(t)

	resp, _ := postProgress(t, app, token, map[string]interface{}{
		"courseId": 1, "videoId": 2, "watchedSeconds": 500, "videoDuration": 120,
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var row models.Progress
	require.NoError(t, database.Database.Db.
		Where("user_id = ? AND course_id = ? AND video_id = ?", userID, 1, 2).
		First(&row).Error)
	assert.Equal(t, float64(120), row.WatchedSeconds)
	assert.Equal(t, float64(120), row.VideoDuration)
	assert.False(t, row.Completed)
}

func TestUpdateProgressUpsertIsIdempotent(t *testing.T) {
	app, token, userID := setupApp(t)

	body := map[string]interface{}{
		"courseId": 1, "videoId": 2, "watchedSeconds": 30, "videoDuration": 120, "completed": true,
	}

	resp, _ := postProgress(t, app, token, body)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, _ = postProgress(t, app, token, body)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var count int64
	database.Database.Db.Model(&models.Progress{}).
		Where("user_id = ? AND course_id = ? AND video_id = ?", userID, 1, 2).
		Count(&count)
	assert.Equal(t, int64(1), count)

	var row models.Progress
	require.NoError(t, database.Database.Db.
		Where("user_id = ?", userID).First(&row).Error)
	assert.Equal(t, float64(30), row.WatchedSeconds)
	assert.True(t, row.Completed)
}

func TestUpdateProgressZeroValuesAreValid(t *testing.T) {
	app, token, _ := setupApp(t)

	resp, _ := postProgress(t, app, token, map[string]interface{}{
		"courseId": 1, "videoId": 2, "watchedSeconds": 0, "videoDuration": 0,
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestUpdateProgressMissingFields(t *testing.T) {
	app, token, _ := setupApp(t)

	resp, body := postProgress(t, app, token, map[string]interface{}{
		"courseId": 1, "watchedSeconds": 10, "videoDuration": 120,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.False(t, body.Success)
}

func TestUpdateProgressRequiresAuth(t *testing.T) {
	app, _, _ := setupApp(t)

	payload, _ := json.Marshal(map[string]interface{}{
		"courseId": 1, "videoId": 2, "watchedSeconds": 10, "videoDuration": 120,
	})
	req := httptest.NewRequest(fiber.MethodPost, "/api/progress/update", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGetCourseProgress(t *testing.T) {
	app, token, userID := setupApp(t)

	rows := []models.Progress{
		{UserID: userID, CourseID: 1, VideoID: 1, WatchedSeconds: 10, VideoDuration: 60},
		{UserID: userID, CourseID: 1, VideoID: 2, WatchedSeconds: 20, VideoDuration: 60},
		{UserID: userID, CourseID: 2, VideoID: 3, WatchedSeconds: 30, VideoDuration: 60},
	}
	require.NoError(t, database.Database.Db.Create(&rows).Error)

	req := httptest.NewRequest(fiber.MethodGet, "/api/progress/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var parsed envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))

	var fetched []models.Progress
	require.NoError(t, json.Unmarshal(parsed.Data, &fetched))
	assert.Len(t, fetched, 2)
}
