package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"

	"github.com/tunestory/api/internal/auth"
	"github.com/tunestory/api/internal/client"
	"github.com/tunestory/api/internal/config"
	"github.com/tunestory/api/internal/service"
	"github.com/tunestory/api/internal/storage"
	ws "github.com/tunestory/api/internal/websocket"
)

const (
	testJWTSecret = "test-secret-for-e2e"
	testUserID    = "test-user-123"
)

type nopEnqueuer struct {
	tasks []*asynq.Task
}

func (e *nopEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	e.tasks = append(e.tasks, task)
	return &asynq.TaskInfo{ID: "task", Queue: service.QueueGenerate}, nil
}

// testApp holds all components needed for testing
type testApp struct {
	app      *fiber.App
	enqueuer *nopEnqueuer
}

// setupApp builds the real router over in-memory storage with every external
// client unconfigured, so services answer with their fallbacks.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	cfg := &config.Config{
		JWT: config.JWTConfig{Secret: testJWTSecret},
		Generation: config.GenerationConfig{
			DefaultDuration:    30,
			DefaultTemperature: 1.0,
			DefaultModelSize:   "small",
		},
	}

	kv := storage.NewMemoryKV()
	store := storage.NewStore(kv)
	enqueuer := &nopEnqueuer{}

	vision := client.NewVisionClient(&config.VisionConfig{})
	spotify := client.NewSpotifyClient(&config.SpotifyConfig{})

	hub := ws.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	app := New(Options{
		Config: cfg,
		Services: Services{
			Refine:         service.NewRefineService(store),
			Augment:        service.NewAugmentService(vision),
			Analysis:       service.NewAnalysisService(vision),
			MusicAnalysis:  service.NewMusicAnalysisService(spotify),
			Recommendation: service.NewRecommendationService(spotify),
			Generation:     service.NewGenerationService(storage.NewJobStore(kv, time.Hour), enqueuer, cfg.Generation),
			Preferences:    service.NewPreferenceService(store),
		},
		Hub:       hub,
		Providers: map[string]bool{"vision": false, "spotify": false, "musicgen": false, "r2": false},
	})

	return &testApp{app: app, enqueuer: enqueuer}
}

// generateToken creates a legacy HMAC JWT token for test requests.
func generateToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.GenerateToken(userID, "test@example.com", testJWTSecret, time.Hour)
	if err != nil {
		t.Fatalf("failed to generate test token: %v", err)
	}
	return token
}

// doRequest is a helper to perform HTTP requests against the test app.
func doRequest(app *fiber.App, method, path string, body string, headers map[string]string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != "" {
		bodyReader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, path, bodyReader)
	if err != nil {
		return nil, err
	}

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return app.Test(req, -1)
}

// doAuthRequest performs a request authenticated as testUserID.
func doAuthRequest(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, error) {
	t.Helper()
	return doUserRequest(t, app, testUserID, method, path, body)
}

func doUserRequest(t *testing.T, app *fiber.App, userID, method, path, body string) (*http.Response, error) {
	t.Helper()
	return doRequest(app, method, path, body, map[string]string{
		"Authorization": "Bearer " + generateToken(t, userID),
	})
}

// doUpload posts a single multipart file field.
func doUpload(t *testing.T, app *fiber.App, path, field, filename, contentType string, data []byte) (*http.Response, error) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	header := make(map[string][]string)
	header["Content-Disposition"] = []string{`form-data; name="` + field + `"; filename="` + filename + `"`}
	header["Content-Type"] = []string{contentType}
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+generateToken(t, testUserID))
	return app.Test(req, -1)
}

// readBody reads and returns the response body as a string.
func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return string(b)
}

// parseJSON parses response body into a map.
func parseJSON(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	body := readBody(t, resp)
	var result map[string]interface{}
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, body)
	}
	return result
}

// assertStatus checks the HTTP status code.
func assertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Errorf("expected status %d, got %d", expected, resp.StatusCode)
	}
}

// errorCode returns error.code of an error envelope
func errorCode(t *testing.T, body map[string]interface{}) string {
	t.Helper()
	e, ok := body["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error envelope, got %v", body)
	}
	code, _ := e["code"].(string)
	return code
}
