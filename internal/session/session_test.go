package session

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Evaristo-Paulo/api-ecommerce/internal/models"
)

func newTestManager(t *testing.T) *Manager {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Session{}))

	return &Manager{DB: db}
}

func seedUser(t *testing.T, m *Manager) models.User {
	t.Helper()
	user := models.User{Username: "test_user", Password: "password"}
	require.NoError(t, m.DB.Create(&user).Error)
	return user
}

func TestManagerLogin(t *testing.T) {
	m := newTestManager(t)
	seeded := seedUser(t, m)
	ctx := context.Background()

	user, sess, err := m.Login(ctx, "test_user", "password")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, user.ID)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, seeded.ID, sess.UserID)
}

func TestManagerLoginInvalid(t *testing.T) {
	m := newTestManager(t)
	seedUser(t, m)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "wrong password", username: "test_user", password: "wrong"},
		{name: "unknown user", username: "nobody", password: "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := m.Login(ctx, tt.username, tt.password)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestManagerCurrentUser(t *testing.T) {
	m := newTestManager(t)
	seeded := seedUser(t, m)
	ctx := context.Background()

	_, sess, err := m.Login(ctx, "test_user", "password")
	require.NoError(t, err)

	user, err := m.CurrentUser(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, user.ID)
	assert.Equal(t, "test_user", user.Username)

	_, err = m.CurrentUser(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = m.CurrentUser(ctx, "")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestManagerLogout(t *testing.T) {
	m := newTestManager(t)
	seedUser(t, m)
	ctx := context.Background()

	_, sess, err := m.Login(ctx, "test_user", "password")
	require.NoError(t, err)

	require.NoError(t, m.Logout(ctx, sess.Token))

	_, err = m.CurrentUser(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrNoSession)

	// a second logout has no session left to terminate
	assert.ErrorIs(t, m.Logout(ctx, sess.Token), ErrNoSession)
}

func TestManagerLoadUser(t *testing.T) {
	m := newTestManager(t)
	seeded := seedUser(t, m)
	ctx := context.Background()

	user, err := m.LoadUser(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded.Username, user.Username)

	_, err = m.LoadUser(ctx, 999)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestConcurrentSessionsPerUser(t *testing.T) {
	m := newTestManager(t)
	seedUser(t, m)
	ctx := context.Background()

	_, first, err := m.Login(ctx, "test_user", "password")
	require.NoError(t, err)
	_, second, err := m.Login(ctx, "test_user", "password")
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)

	// both sessions resolve independently
	_, err = m.CurrentUser(ctx, first.Token)
	require.NoError(t, err)
	_, err = m.CurrentUser(ctx, second.Token)
	require.NoError(t, err)
}
