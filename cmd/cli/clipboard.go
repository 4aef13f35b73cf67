package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	copyFolderFlag bool
	cutFolderFlag  bool
	pasteTarget    uint
)

var copyCmd = &cobra.Command{
	Use:   "copy <id>",
	Short: "Place an item on the clipboard for copying",
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
		if err := gw.CopyToClipboard(cobraCmd.Context(), id, parseKind(copyFolderFlag)); err != nil {
			return err
		}
		fmt.Println("copied to clipboard")
		return nil
	},
}

var cutCmd = &cobra.Command{
	Use:   "cut <id>",
	Short: "Place an item on the clipboard for moving",
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
		if err := gw.CutToClipboard(cobraCmd.Context(), id, parseKind(cutFolderFlag)); err != nil {
			return err
		}
		fmt.Println("cut to clipboard")
		return nil
	},
}

var pasteCmd = &cobra.Command{
	Use:   "paste",
	Short: "Paste the clipboard into a folder",
	RunE: func(cobraCmd *cobra.Command, args []string) error {
		_, gw, _, err := newSession()
		if err != nil {
			return err
		}
		var target *uint
		if pasteTarget != 0 {
			target = &pasteTarget
		}
		item, err := gw.PasteFromClipboard(cobraCmd.Context(), target)
		if err != nil {
			return err
		}
		fmt.Printf("pasted %q (id %d)\n", item.Name, item.ID)
		return nil
	},
}

var clipboardCmd = &cobra.Command{
	Use:   "clipboard",
	Short: "Show the pending clipboard entry",
	RunE: func(cobraCmd *cobra.Command, args []string) error {
		_, gw, _, err := newSession()
		if err != nil {
			return err
		}
		entries, err := gw.GetClipboard(cobraCmd.Context())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("clipboard is empty")
			return nil
		}
		for _, entry := range entries {
			fmt.Printf("%s %s %d\n", entry.Operation, entry.ItemKind, entry.ItemID)
		}
		return nil
	},
}

func init() {
	copyCmd.Flags().BoolVar(&copyFolderFlag, "folder", false, "target is a folder")
	cutCmd.Flags().BoolVar(&cutFolderFlag, "folder", false, "target is a folder")
	pasteCmd.Flags().UintVar(&pasteTarget, "into", 0, "destination folder id (0 for root)")
	rootCmd.AddCommand(copyCmd, cutCmd, pasteCmd, clipboardCmd)
}
