package routers

import (
	"Stowed/cmd"
	"github.com/gofiber/fiber/v2"
)

func SetupFileRouter(app *fiber.App, server *cmd.Server) {
	fileHandler := server.FileHandler
	app.Get("/files/with-folders", fileHandler.ListWithFolders)
	app.Get("/search", fileHandler.Search)
	app.Post("/files/upload", fileHandler.Upload)
	app.Get("/files/:id/download", fileHandler.DownloadURL)
	app.Patch("/files/:id", fileHandler.Patch)
	app.Delete("/files/:id", fileHandler.Delete)
}
