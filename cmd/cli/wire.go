//go:build wireinject
// +build wireinject

package cli

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"Stowed/cmd"
	"Stowed/internal/config"
	"Stowed/internal/handlers"
	"Stowed/internal/repository"
	"Stowed/internal/services"
)

func InitializeServer(cfg *config.Configuration, db *gorm.DB) (*cmd.Server, error) {
	wire.Build(
		cmd.NewServer,
		repository.NewFileRepository,
		repository.NewFolderRepository,
		repository.NewShareRepository,
		repository.NewClipboardRepository,
		services.NewBlobService,
		services.NewItemService,
		services.NewShareService,
		services.NewClipboardService,
		services.NewAuthService,
		services.NewLogService,
		services.NewJanitorService,
		handlers.NewFileHandler,
		handlers.NewFolderHandler,
		handlers.NewShareHandler,
		handlers.NewClipboardHandler,
		handlers.NewAuthHandler,
	)
	return nil, nil
}
