package models

import "time"

// ChatSession persists one conversation: its settings record, the pasted
// upstream payload and both transcripts, all as JSON text columns.
type ChatSession struct {
	ID                uint   `gorm:"primaryKey"`
	SessionKey        string `gorm:"size:64;not null;uniqueIndex"`
	Model             string `gorm:"size:255"`
	KeyFingerprint    string `gorm:"size:32"`
	SettingsJSON      string `gorm:"type:text"`
	UpstreamJSON      string `gorm:"type:text"`
	MessagesJSON      string `gorm:"type:text"`
	ModelMessagesJSON string `gorm:"type:text"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
