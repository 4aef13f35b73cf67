package cli

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/cobra"

	"Stowed/database"
	"Stowed/internal/routers"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Stowed API server",
	RunE: func(cobraCmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := database.SetupDatabase(cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to the database: %w", err)
		}
		defer database.CloseDatabase(db)

		server, err := InitializeServer(cfg, db)
		if err != nil {
			return err
		}
		server.JanitorService.StartCleanCycle()
		defer server.JanitorService.Stop()

		app := fiber.New(fiber.Config{
			BodyLimit:   cfg.Server.RequestConfig.SizeLimit * 1024 * 1024,
			Concurrency: cfg.Server.Concurrency * 1024,
			AppName:     "Stowed",
		})
		app.Use(logger.New())
		routers.SetupRoutes(app, server)

		return app.Listen(fmt.Sprintf(":%d", cfg.Server.Port))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
