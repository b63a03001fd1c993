package mocks

import "context"

type ModelCatalogRepositoryMock struct {
	GetFunc    func(ctx context.Context, fingerprint, provider string) ([]string, error)
	UpsertFunc func(ctx context.Context, fingerprint, provider string, options []string) error
}

func (m *ModelCatalogRepositoryMock) Get(ctx context.Context, fingerprint, provider string) ([]string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, fingerprint, provider)
	}
	return nil, nil
}

func (m *ModelCatalogRepositoryMock) Upsert(ctx context.Context, fingerprint, provider string, options []string) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, fingerprint, provider, options)
	}
	return nil
}
