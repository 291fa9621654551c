package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Evaristo-Paulo/api-ecommerce/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoSession          = errors.New("no active session")
)

// Manager maps opaque session tokens to authenticated users. Sessions live in
// the database and never expire on their own.
type Manager struct {
	DB *gorm.DB
}

// Login checks the password with plain equality against the stored value.
// That matches the persisted data model; see the note on models.User.Password.
func (m *Manager) Login(ctx context.Context, username, password string) (*models.User, *models.Session, error) {
	var user models.User
	if err := m.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("user lookup: %w", err)
	}

	if user.Password != password {
		return nil, nil, ErrInvalidCredentials
	}

	sess := models.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: time.Now().Unix(),
	}
	if err := m.DB.WithContext(ctx).Create(&sess).Error; err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}

	return &user, &sess, nil
}

func (m *Manager) Logout(ctx context.Context, token string) error {
	res := m.DB.WithContext(ctx).Where("token = ?", token).Delete(&models.Session{})
	if res.Error != nil {
		return fmt.Errorf("delete session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNoSession
	}
	return nil
}

func (m *Manager) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrNoSession
	}

	var sess models.Session
	if err := m.DB.WithContext(ctx).Where("token = ?", token).First(&sess).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("session lookup: %w", err)
	}

	return m.LoadUser(ctx, sess.UserID)
}

func (m *Manager) LoadUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := m.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("user lookup: %w", err)
	}
	return &user, nil
}
