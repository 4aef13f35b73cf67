package routers

import (
	"Stowed/cmd"
	"github.com/gofiber/fiber/v2"
)

func SetupClipboardRouter(app *fiber.App, server *cmd.Server) {
	clipboardHandler := server.ClipboardHandler
	app.Post("/clipboard/copy/:kind/:id", clipboardHandler.Copy)
	app.Post("/clipboard/cut/:kind/:id", clipboardHandler.Cut)
	app.Post("/clipboard/paste/:target", clipboardHandler.Paste)
	app.Post("/clipboard/paste", clipboardHandler.Paste)
	app.Get("/clipboard", clipboardHandler.Get)
}
