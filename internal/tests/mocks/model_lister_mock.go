package mocks

import (
	"context"

	"artdirector/internal/llm/client"
)

type ModelListerMock struct {
	ListModelsFunc func(ctx context.Context) ([]client.ModelInfo, error)
	Calls          int
}

func (m *ModelListerMock) ListModels(ctx context.Context) ([]client.ModelInfo, error) {
	m.Calls++
	if m.ListModelsFunc != nil {
		return m.ListModelsFunc(ctx)
	}
	return nil, nil
}
