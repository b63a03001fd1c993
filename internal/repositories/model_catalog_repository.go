package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"artdirector/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ModelCatalogRepository interface {
	Get(ctx context.Context, fingerprint, provider string) ([]string, error)
	Upsert(ctx context.Context, fingerprint, provider string, options []string) error
}

type modelCatalogRepository struct {
	db *gorm.DB
}

func NewModelCatalogRepository(db *gorm.DB) ModelCatalogRepository {
	return &modelCatalogRepository{db: db}
}

// Get returns nil, nil when nothing is cached for the fingerprint.
func (r *modelCatalogRepository) Get(ctx context.Context, fingerprint, provider string) ([]string, error) {
	var row models.ModelCatalogCache
	err := r.db.WithContext(ctx).
		Where("fingerprint = ? AND provider = ?", fingerprint, provider).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var options []string
	if err := json.Unmarshal([]byte(row.OptionsJSON), &options); err != nil {
		return nil, fmt.Errorf("decode cached options for %s: %w", fingerprint, err)
	}
	return options, nil
}

func (r *modelCatalogRepository) Upsert(ctx context.Context, fingerprint, provider string, options []string) error {
	if fingerprint == "" {
		return fmt.Errorf("fingerprint is required")
	}
	if provider == "" {
		return fmt.Errorf("provider is required")
	}
	data, err := json.Marshal(options)
	if err != nil {
		return err
	}
	row := models.ModelCatalogCache{
		Fingerprint: fingerprint,
		Provider:    provider,
		OptionsJSON: string(data),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "fingerprint"}, {Name: "provider"}},
		DoUpdates: clause.AssignmentColumns([]string{"options_json", "updated_at"}),
	}).Create(&row).Error
}
