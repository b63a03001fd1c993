package services

import (
	"artdirector/internal/config"
	"artdirector/internal/llm/client"
	"artdirector/internal/repositories"

	"gorm.io/gorm"
)

// DbServices aggregates the services backed by the database.
type DbServices struct {
	Sessions ChatSessionService
	Catalog  ModelCatalogService
}

// NewDbServices constructs the service container using repositories backed by db.
func NewDbServices(db *gorm.DB, keys CredentialResolver, cfg *config.Config, systemInstruction string) *DbServices {
	sessionRepo := repositories.NewChatSessionRepository(db)
	catalogRepo := repositories.NewModelCatalogRepository(db)

	return &DbServices{
		Sessions: NewChatSessionService(sessionRepo, keys, client.NewLLMClient, cfg, systemInstruction),
		Catalog:  NewModelCatalogService(catalogRepo, cfg.Provider, cfg.Model, NewGenAIListerFactory()),
	}
}
