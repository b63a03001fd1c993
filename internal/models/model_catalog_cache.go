package models

import "time"

// ModelCatalogCache stores the model options resolved for one credential,
// keyed by the credential fingerprint rather than the key itself.
type ModelCatalogCache struct {
	ID          uint      `gorm:"primaryKey"`
	Fingerprint string    `gorm:"size:32;not null;uniqueIndex:idx_catalog_fingerprint_provider"`
	Provider    string    `gorm:"size:50;not null;uniqueIndex:idx_catalog_fingerprint_provider"`
	OptionsJSON string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}
