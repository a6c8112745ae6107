package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"coverforge/internal/config"
	"coverforge/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// stubGenerator is a canned text-generation provider. It records the last
// prompt and credential it was handed.
type stubGenerator struct {
	mu         sync.Mutex
	text       string
	err        error
	calls      int
	lastPrompt string
	lastKey    string
}

func (g *stubGenerator) Generate(_ context.Context, prompt, apiKey string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	g.lastPrompt = prompt
	g.lastKey = apiKey
	if g.err != nil {
		return "", g.err
	}
	return g.text, nil
}

// captureMailer records reset mails instead of sending them.
type captureMailer struct {
	mu    sync.Mutex
	calls int
	email string
	token string
	err   error
}

func (m *captureMailer) SendPasswordReset(_ context.Context, email, resetToken string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.email = email
	m.token = resetToken
	return m.err
}

type testEnv struct {
	server   *Server
	app      *fiber.App
	redis    *miniredis.Miniredis
	provider *stubGenerator
	mailer   *captureMailer
	cfg      *config.Config
}

func newTestEnv(t *testing.T, opts ...func(*config.Config)) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	// One connection keeps the in-memory database alive for the whole test.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.CoverLetterLog{}))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := &config.Config{
		Port:               "0",
		Env:                "test",
		JWTSecret:          "unit-test-secret",
		LetterTTLMinutes:   60,
		ResetTTLMinutes:    30,
		ProviderTimeoutSec: 5,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	provider := &stubGenerator{text: "Dear Hiring Manager,\n\nI am excited to apply."}
	resetMailer := &captureMailer{}

	srv, err := NewServerWithDeps(cfg, db, rdb, provider, resetMailer)
	require.NoError(t, err)

	app := fiber.New()
	srv.SetupRoutes(app)

	return &testEnv{
		server:   srv,
		app:      app,
		redis:    mr,
		provider: provider,
		mailer:   resetMailer,
		cfg:      cfg,
	}
}

// request performs a JSON request against the test app. An empty token leaves
// the Authorization header unset.
func (e *testEnv) request(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

// signup registers an account and returns its session token and user ID.
func (e *testEnv) signup(t *testing.T, email, password string) (string, uint) {
	t.Helper()
	resp := e.request(t, fiber.MethodPost, "/api/auth/signup", "", fiber.Map{
		"email":    email,
		"password": password,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	user, _ := body["user"].(map[string]any)
	require.NotNil(t, user)
	id, _ := user["id"].(float64)
	require.NotZero(t, id)
	return token, uint(id)
}
