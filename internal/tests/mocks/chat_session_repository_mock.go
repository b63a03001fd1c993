package mocks

import (
	"context"

	"artdirector/internal/models"
)

type ChatSessionRepositoryMock struct {
	CreateFunc      func(ctx context.Context, session *models.ChatSession) error
	GetByKeyFunc    func(ctx context.Context, sessionKey string) (*models.ChatSession, error)
	SaveFunc        func(ctx context.Context, session *models.ChatSession) error
	ListFunc        func(ctx context.Context) ([]models.ChatSession, error)
	DeleteByKeyFunc func(ctx context.Context, sessionKey string) error
}

func (m *ChatSessionRepositoryMock) Create(ctx context.Context, session *models.ChatSession) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	return nil
}

func (m *ChatSessionRepositoryMock) GetByKey(ctx context.Context, sessionKey string) (*models.ChatSession, error) {
	if m.GetByKeyFunc != nil {
		return m.GetByKeyFunc(ctx, sessionKey)
	}
	return nil, nil
}

func (m *ChatSessionRepositoryMock) Save(ctx context.Context, session *models.ChatSession) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, session)
	}
	return nil
}

func (m *ChatSessionRepositoryMock) List(ctx context.Context) ([]models.ChatSession, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []models.ChatSession{}, nil
}

func (m *ChatSessionRepositoryMock) DeleteByKey(ctx context.Context, sessionKey string) error {
	if m.DeleteByKeyFunc != nil {
		return m.DeleteByKeyFunc(ctx, sessionKey)
	}
	return nil
}
