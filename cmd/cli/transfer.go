package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"Stowed/internal/gateway"
	"Stowed/internal/transfer"
)

var (
	uploadFolder uint
	downloadOut  string
)

// progressPrinter feeds the tracker and redraws the percentage line.
// The tracker handles monotonicity, so stale callbacks never move the
// bar backwards.
func progressPrinter(tracker *transfer.Tracker, id uint, label string) gateway.ProgressFunc {
	tracker.Start(id)
	return func(percent int) {
		tracker.Update(id, percent)
		if shown, ok := tracker.Percent(id); ok {
			fmt.Printf("\r%s %3d%%", label, shown)
		}
	}
}

var uploadCmd = &cobra.Command{
	Use:   "upload <path>",
	Short: "Upload a local file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cobraCmd *cobra.Command, args []string) error {
		cfg, gw, _, err := newSession()
		if err != nil {
			return err
		}
		src, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer src.Close()
		info, err := src.Stat()
		if err != nil {
			return err
		}

		var folderID *uint
		if uploadFolder != 0 {
			folderID = &uploadFolder
		}

		tracker := transfer.NewTracker(cfg.Client.ProgressHold)
		name := filepath.Base(args[0])
		item, err := gw.UploadFile(cobraCmd.Context(), name, src, info.Size(), folderID, progressPrinter(tracker, 1, "uploading"))
		fmt.Println()
		if err != nil {
			tracker.Fail(1)
			return err
		}
		fmt.Printf("uploaded %q (id %d)\n", item.Name, item.ID)
		return nil
	},
}

var downloadCmd = &cobra.Command{
	Use:   "download <id>",
	Short: "Download a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cobraCmd *cobra.Command, args []string) error {
		cfg, gw, _, err := newSession()
		if err != nil {
			return err
		}
		id, err := parseItemID(args[0])
		if err != nil {
			return err
		}

		tmp, err := os.CreateTemp(".", ".stowed-download-*")
		if err != nil {
			return err
		}
		defer os.Remove(tmp.Name())

		tracker := transfer.NewTracker(cfg.Client.ProgressHold)
		resp, err := gw.DownloadItem(cobraCmd.Context(), id, tmp, progressPrinter(tracker, id, "downloading"))
		fmt.Println()
		if closeErr := tmp.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			tracker.Fail(id)
			return err
		}

		out := downloadOut
		if out == "" {
			out = resp.FileName
		}
		if err := os.Rename(tmp.Name(), out); err != nil {
			return err
		}
		fmt.Printf("saved %s (%s)\n", out, formatSize(resp.FileSize))
		return nil
	},
}

func init() {
	uploadCmd.Flags().UintVar(&uploadFolder, "folder", 0, "destination folder id (0 for root)")
	downloadCmd.Flags().StringVarP(&downloadOut, "output", "o", "", "output path (defaults to the remote name)")
	rootCmd.AddCommand(uploadCmd, downloadCmd)
}
