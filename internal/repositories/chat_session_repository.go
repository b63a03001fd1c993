package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"artdirector/internal/models"

	"gorm.io/gorm"
)

type ChatSessionRepository interface {
	Create(ctx context.Context, session *models.ChatSession) error
	GetByKey(ctx context.Context, sessionKey string) (*models.ChatSession, error)
	Save(ctx context.Context, session *models.ChatSession) error
	List(ctx context.Context) ([]models.ChatSession, error)
	DeleteByKey(ctx context.Context, sessionKey string) error
}

type chatSessionRepository struct {
	db *gorm.DB
}

func NewChatSessionRepository(db *gorm.DB) ChatSessionRepository {
	return &chatSessionRepository{db: db}
}

func (r *chatSessionRepository) Create(ctx context.Context, session *models.ChatSession) error {
	if session == nil {
		return fmt.Errorf("session is required")
	}
	if strings.TrimSpace(session.SessionKey) == "" {
		return fmt.Errorf("session key is required")
	}
	return r.db.WithContext(ctx).Create(session).Error
}

// GetByKey returns nil, nil when no session has the key.
func (r *chatSessionRepository) GetByKey(ctx context.Context, sessionKey string) (*models.ChatSession, error) {
	var session models.ChatSession
	err := r.db.WithContext(ctx).Where("session_key = ?", sessionKey).Take(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *chatSessionRepository) Save(ctx context.Context, session *models.ChatSession) error {
	if session == nil || session.ID == 0 {
		return fmt.Errorf("persisted session is required")
	}
	return r.db.WithContext(ctx).Save(session).Error
}

func (r *chatSessionRepository) List(ctx context.Context) ([]models.ChatSession, error) {
	var sessions []models.ChatSession
	if err := r.db.WithContext(ctx).Order("updated_at desc").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *chatSessionRepository) DeleteByKey(ctx context.Context, sessionKey string) error {
	return r.db.WithContext(ctx).Where("session_key = ?", sessionKey).Delete(&models.ChatSession{}).Error
}
