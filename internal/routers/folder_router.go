package routers

import (
	"Stowed/cmd"
	"github.com/gofiber/fiber/v2"
)

func SetupFolderRouter(app *fiber.App, server *cmd.Server) {
	folderHandler := server.FolderHandler
	app.Post("/folders/create", folderHandler.Create)
	app.Patch("/folders/:id", folderHandler.Patch)
	app.Delete("/folders/:id", folderHandler.Delete)
}
