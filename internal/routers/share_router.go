package routers

import (
	"Stowed/cmd"
	"github.com/gofiber/fiber/v2"
)

// Share resolution and ticketed downloads carry their own grant in the
// URL, so they are mounted before the auth middleware.
func SetupShareRouter(app *fiber.App, server *cmd.Server) {
	shareHandler := server.ShareHandler
	app.Get("/share/:token", shareHandler.Resolve)
	app.Get("/share/:token/download", shareHandler.Download)
	app.Get("/dl/:token", server.FileHandler.Content)
}
