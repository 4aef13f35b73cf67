package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"Stowed/internal/config"
	"Stowed/internal/dto"
	"Stowed/internal/filetypes"
	"Stowed/internal/gateway"
	"Stowed/internal/services"
	"Stowed/internal/viewmodel"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "stowed",
	Short:         "Stowed is a command line client for the Stowed drive API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "stowed.yaml", "configuration file")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Configuration, error) {
	return config.LoadConfiguration(configPath)
}

// newSession builds a gateway client and a view model bound to it,
// preloaded with the stored token.
func newSession() (*config.Configuration, gateway.Gateway, *viewmodel.ViewModel, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	gw := gateway.NewClient(cfg.Client)
	logService := services.NewLogServiceFrom(cfg.Client.LogConfig)
	vm := viewmodel.New(gw, logService.Log)
	vm.OnSessionExpired(func() {
		fmt.Fprintln(os.Stderr, "session expired, run `stowed login` again")
	})
	return cfg, gw, vm, nil
}

func parseItemID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid item id %q", arg)
	}
	return uint(id), nil
}

// parseKind accepts the folder flag shorthand used by the item
// commands.
func parseKind(folder bool) string {
	if folder {
		return dto.KindFolder
	}
	return dto.KindFile
}

func printItems(items []dto.Item) {
	for _, item := range items {
		info := filetypes.Classify(item.Format)
		if item.Kind == dto.KindFolder {
			fmt.Printf("%6d  folder/    %s\n", item.ID, item.Name)
			continue
		}
		fmt.Printf("%6d  %-10s %s (%s)\n", item.ID, info.Category, item.Name, formatSize(item.Size))
	}
}

func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
