package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"Stowed/internal/dto"
)

var (
	shareRole       string
	shareNoDownload bool
	shareExpiresIn  time.Duration
	shareMaxAccess  int
)

var shareCmd = &cobra.Command{
	Use:   "share <id>",
	Short: "Create a shareable link for a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cobraCmd *cobra.Command, args []string) error {
		_, gw, _, err := newSession()
		if err != nil {
			return err
		}
		id, err := parseItemID(args[0])
		if err != nil {
			return err
		}

		req := dto.ShareRequest{
			Role:        shareRole,
			CanDownload: !shareNoDownload,
			CanPreview:  true,
		}
		if shareExpiresIn > 0 {
			expiry := time.Now().Add(shareExpiresIn)
			req.ExpiresAt = &expiry
		}
		if shareMaxAccess > 0 {
			req.MaxAccessCount = &shareMaxAccess
		}

		resp, err := gw.ShareItem(cobraCmd.Context(), id, req)
		if err != nil {
			return err
		}
		fmt.Println(resp.ShareableLink)
		return nil
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <token>",
	Short: "Inspect a share link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cobraCmd *cobra.Command, args []string) error {
		_, gw, _, err := newSession()
		if err != nil {
			return err
		}
		resp, err := gw.ResolveShare(cobraCmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s)\n", resp.File.Name, formatSize(resp.File.Size))
		fmt.Printf("role=%s download=%t preview=%t\n",
			resp.Permissions.Role, resp.Permissions.CanDownload, resp.Permissions.CanPreview)
		return nil
	},
}

func init() {
	shareCmd.Flags().StringVar(&shareRole, "role", "view", "grant role (view or edit)")
	shareCmd.Flags().BoolVar(&shareNoDownload, "no-download", false, "forbid downloads via the link")
	shareCmd.Flags().DurationVar(&shareExpiresIn, "expires-in", 0, "link lifetime (0 for no expiry)")
	shareCmd.Flags().IntVar(&shareMaxAccess, "max-access", 0, "maximum accesses (0 for unlimited)")
	rootCmd.AddCommand(shareCmd, resolveCmd)
}
