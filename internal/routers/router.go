package routers

import (
	"Stowed/cmd"
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes wires all route groups. Login, share resolution and
// signed downloads stay public; everything else requires a bearer
// token.
func SetupRoutes(app *fiber.App, server *cmd.Server) {
	auth := server.AuthHandler

	app.Post("/auth/login", auth.Login)
	SetupShareRouter(app, server)

	app.Use(auth.RequireAuth)
	app.Get("/auth/me", auth.Me)
	app.Post("/auth/logout", auth.Logout)

	SetupFileRouter(app, server)
	SetupFolderRouter(app, server)
	SetupClipboardRouter(app, server)
	SetupJanitorRouter(app, server)
}
