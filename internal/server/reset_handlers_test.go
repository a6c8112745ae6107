package server

import (
	"testing"
	"time"

	"coverforge/internal/token"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetRequestIsUniform(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.signup(t, "member@example.com", "pw1234")

	// Unknown address: same response, no mail.
	resp := env.request(t, fiber.MethodPost, "/api/auth/reset-request", "", fiber.Map{
		"email": "stranger@example.com",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, resetRequestMessage, body["message"])
	assert.Equal(t, 0, env.mailer.calls)

	// Known address: identical response, mail captured.
	resp = env.request(t, fiber.MethodPost, "/api/auth/reset-request", "", fiber.Map{
		"email": "member@example.com",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, resetRequestMessage, body["message"])
	assert.Equal(t, 1, env.mailer.calls)
	assert.Equal(t, "member@example.com", env.mailer.email)
	assert.NotEmpty(t, env.mailer.token)
}

func TestResetConfirmFlow(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.signup(t, "forgot@example.com", "pw1234")

	resp := env.request(t, fiber.MethodPost, "/api/auth/reset-request", "", fiber.Map{
		"email": "forgot@example.com",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()
	require.NotEmpty(t, env.mailer.token)

	resp = env.request(t, fiber.MethodPost, "/api/auth/reset-confirm/"+env.mailer.token, "", fiber.Map{
		"password":         "fresh1",
		"confirm_password": "fresh1",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// The old password no longer works, the new one does.
	resp = env.request(t, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "forgot@example.com",
		"password": "pw1234",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "forgot@example.com",
		"password": "fresh1",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestResetConfirmRejections(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	_, userID := env.signup(t, "victim@example.com", "pw1234")

	expired, err := token.NewService(env.cfg.JWTSecret, 30*time.Minute).
		IssueWithTTL(userID, -time.Minute)
	require.NoError(t, err)

	foreign, err := token.NewService("some-other-secret", 30*time.Minute).Issue(userID)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"expired", expired},
		{"foreign secret", foreign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.request(t, fiber.MethodPost, "/api/auth/reset-confirm/"+tt.token, "", fiber.Map{
				"password":         "fresh1",
				"confirm_password": "fresh1",
			})
			require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			body := decodeBody(t, resp)
			assert.Equal(t, "TOKEN_ERROR", body["code"])
		})
	}
}

func TestResetConfirmPasswordMismatch(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	_, userID := env.signup(t, "mismatch@example.com", "pw1234")

	valid, err := token.NewService(env.cfg.JWTSecret, 30*time.Minute).Issue(userID)
	require.NoError(t, err)

	resp := env.request(t, fiber.MethodPost, "/api/auth/reset-confirm/"+valid, "", fiber.Map{
		"password":         "fresh1",
		"confirm_password": "other1",
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Passwords do not match", body["error"])
}

func TestResetConfirmForDeletedUser(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	sessionToken, userID := env.signup(t, "gone@example.com", "pw1234")

	resetToken, err := token.NewService(env.cfg.JWTSecret, 30*time.Minute).Issue(userID)
	require.NoError(t, err)

	resp := env.request(t, fiber.MethodDelete, "/api/dashboard/", sessionToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// A token for a vanished account degrades to the uniform rejection.
	resp = env.request(t, fiber.MethodPost, "/api/auth/reset-confirm/"+resetToken, "", fiber.Map{
		"password":         "fresh1",
		"confirm_password": "fresh1",
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "TOKEN_ERROR", body["code"])
}
