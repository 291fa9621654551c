package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Evaristo-Paulo/api-ecommerce/internal/models"
)

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	user := models.User{Username: "test_user", Password: "password"}
	require.NoError(t, env.DB.Create(&user).Error)

	load := map[string]string{"username": "test_user", "password": "password"}
	rec := env.doJSONRequest(http.MethodPost, "/api/login", load)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Logged in successfully", messageOf(t, rec))

	var count int64
	require.NoError(t, env.DB.Model(&models.Session{}).Where("user_id = ?", user.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestLoginInvalidCredentials(t *testing.T) {
	env := newTestEnv(t)

	user := models.User{Username: "test_user", Password: "password"}
	require.NoError(t, env.DB.Create(&user).Error)

	badPassword := map[string]string{"username": "test_user", "password": "wrong"}
	rec := env.doJSONRequest(http.MethodPost, "/api/login", badPassword)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Unauthorized. Invalid credentials", messageOf(t, rec))

	unknownUser := map[string]string{"username": "nobody", "password": "password"}
	rec = env.doJSONRequest(http.MethodPost, "/api/login", unknownUser)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Unauthorized. Invalid credentials", messageOf(t, rec))
}

func TestLoginThenAuthenticatedEndpoint(t *testing.T) {
	env := newTestEnv(t)
	ck := login(t, env)

	load := map[string]interface{}{"name": "Widget", "price": 9.99}
	rec := env.doJSONRequest(http.MethodPost, "/api/products/add", load, ck)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestLogOut(t *testing.T) {
	env := newTestEnv(t)
	ck := login(t, env)

	rec := env.doJSONRequest(http.MethodPost, "/api/logout", nil, ck)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Logout successfully", messageOf(t, rec))

	// the session is gone, so the same cookie no longer authenticates
	rec = env.doJSONRequest(http.MethodPost, "/api/products/add", map[string]interface{}{"name": "x", "price": 1.0}, ck)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogOutWithoutLogin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSONRequest(http.MethodPost, "/api/logout", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Unauthorized. User not logged in", messageOf(t, rec))
}
