package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"Stowed/internal/gateway"
)

var (
	renameFolderFlag bool
	moveFolderFlag   bool
	removeFolderFlag bool
	mkdirParent      uint
)

var mkdirCmd = &cobra.Command{
	Use:   "mkdir <name>",
	Short: "Create a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cobraCmd *cobra.Command, args []string) error {
		_, gw, _, err := newSession()
		if err != nil {
			return err
		}
		var parentID *uint
		if mkdirParent != 0 {
			parentID = &mkdirParent
		}
		item, err := gw.CreateFolder(cobraCmd.Context(), args[0], parentID)
		if err != nil {
			return err
		}
		fmt.Printf("created folder %q (id %d)\n", item.Name, item.ID)
		return nil
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename <id> <new-name>",
	Short: "Rename a file or folder",
	Args:  cobra.ExactArgs(2),
	RunE: func(cobraCmd *cobra.Command, args []string) error {
		_, gw, _, err := newSession()
		if err != nil {
			return err
		}
		id, err := parseItemID(args[0])
		if err != nil {
			return err
		}
		item, err := gw.RenameItem(cobraCmd.Context(), id, parseKind(renameFolderFlag), args[1])
		if err != nil {
			return err
		}
		fmt.Printf("renamed to %q\n", item.Name)
		return nil
	},
}

var mvCmd = &cobra.Command{
	Use:   "mv <id> <target-folder-id|root>",
	Short: "Move a file or folder into another folder",
	Args:  cobra.ExactArgs(2),
	RunE: func(cobraCmd *cobra.Command, args []string) error {
		_, gw, _, err := newSession()
		if err != nil {
			return err
		}
		id, err := parseItemID(args[0])
		if err != nil {
			return err
		}
		var target *uint
		if args[1] != "root" {
			targetID, err := parseItemID(args[1])
			if err != nil {
				return err
			}
			target = &targetID
		}
		item, err := gw.MoveItem(cobraCmd.Context(), id, parseKind(moveFolderFlag), target)
		if err != nil {
			return err
		}
		fmt.Printf("moved %q\n", item.Name)
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a file or an empty folder",
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
		kind := parseKind(removeFolderFlag)
		if err := gw.DeleteItem(cobraCmd.Context(), id, kind); err != nil {
			if gateway.IsConflict(err) {
				return fmt.Errorf("folder %d is not empty", id)
			}
			return err
		}
		fmt.Printf("deleted %s %d\n", kind, id)
		return nil
	},
}

func init() {
	mkdirCmd.Flags().UintVar(&mkdirParent, "parent", 0, "parent folder id (0 for root)")
	renameCmd.Flags().BoolVar(&renameFolderFlag, "folder", false, "target is a folder")
	mvCmd.Flags().BoolVar(&moveFolderFlag, "folder", false, "target is a folder")
	rmCmd.Flags().BoolVar(&removeFolderFlag, "folder", false, "target is a folder")
	rootCmd.AddCommand(mkdirCmd, renameCmd, mvCmd, rmCmd)
}
