package cmd

import (
	"Stowed/internal/handlers"
	"Stowed/internal/services"
)

type Server struct {
	ItemService      services.ItemService
	FileHandler      *handlers.FileHandler
	FolderHandler    *handlers.FolderHandler
	ShareService     services.ShareService
	ShareHandler     *handlers.ShareHandler
	ClipboardHandler *handlers.ClipboardHandler
	AuthHandler      *handlers.AuthHandler
	LogService       services.LogService
	JanitorService   *services.Janitor
}

func NewServer(
	itemService services.ItemService,
	fileHandler *handlers.FileHandler,
	folderHandler *handlers.FolderHandler,
	shareService services.ShareService,
	shareHandler *handlers.ShareHandler,
	clipboardHandler *handlers.ClipboardHandler,
	authHandler *handlers.AuthHandler,
	logService services.LogService,
	janitorService *services.Janitor,
) *Server {
	return &Server{
		ItemService:      itemService,
		FileHandler:      fileHandler,
		FolderHandler:    folderHandler,
		ShareService:     shareService,
		ShareHandler:     shareHandler,
		ClipboardHandler: clipboardHandler,
		AuthHandler:      authHandler,
		LogService:       logService,
		JanitorService:   janitorService,
	}
}
