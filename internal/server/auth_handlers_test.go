package server

import (
	"testing"

	"coverforge/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupAndLogin(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	token, userID := env.signup(t, "new@example.com", "pw1234")
	assert.NotEmpty(t, token)
	assert.NotZero(t, userID)

	resp := env.request(t, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "new@example.com",
		"password": "pw1234",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "new@example.com", user["email"])
	// Sensitive fields never serialize.
	assert.NotContains(t, user, "password_hash")
	assert.NotContains(t, user, "api_credential")
}

func TestLoginRejectionsAreUniform(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.signup(t, "known@example.com", "pw1234")

	tests := []struct {
		name  string
		email string
		pass  string
	}{
		{"wrong password", "known@example.com", "not-it"},
		{"unknown email", "ghost@example.com", "pw1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.request(t, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
				"email":    tt.email,
				"password": tt.pass,
			})
			require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
			body := decodeBody(t, resp)
			assert.Equal(t, "Invalid credentials", body["error"])
			assert.Equal(t, "UNAUTHORIZED", body["code"])
		})
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.signup(t, "taken@example.com", "pw1234")

	resp := env.request(t, fiber.MethodPost, "/api/auth/signup", "", fiber.Map{
		"email":    "taken@example.com",
		"password": "pw1234",
	})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Contains(t, body["error"], "already registered")
}

func TestSignupValidation(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	tests := []struct {
		name string
		body fiber.Map
	}{
		{"missing fields", fiber.Map{}},
		{"bad email", fiber.Map{"email": "not-an-email", "password": "pw1234"}},
		{"short password", fiber.Map{"email": "ok@example.com", "password": "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.request(t, fiber.MethodPost, "/api/auth/signup", "", tt.body)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestAuthRequired(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	tests := []struct {
		name  string
		token string
	}{
		{"no token", ""},
		{"garbage token", "not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.request(t, fiber.MethodGet, "/api/dashboard/", tt.token, nil)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestAuthRequiredRejectsForeignSecret(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	other := newTestEnv(t, func(cfg *config.Config) {
		cfg.JWTSecret = "a-completely-different-secret"
	})

	token, _ := other.signup(t, "elsewhere@example.com", "pw1234")

	resp := env.request(t, fiber.MethodGet, "/api/dashboard/", token, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLogoutBlacklistsSession(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	token, _ := env.signup(t, "bye@example.com", "pw1234")

	resp := env.request(t, fiber.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The token is structurally valid but its session is dead.
	resp = env.request(t, fiber.MethodGet, "/api/dashboard/", token, nil)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Session has been logged out", body["error"])
}
