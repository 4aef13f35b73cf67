package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"Stowed/internal/dto"
	"Stowed/internal/viewmodel"
)

var lsCmd = &cobra.Command{
	Use:   "ls [folder-id]",
	Short: "List the contents of a folder",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cobraCmd *cobra.Command, args []string) error {
		_, _, vm, err := newSession()
		if err != nil {
			return err
		}

		var folderID *uint
		if len(args) == 1 {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}
			folderID = &id
		}
		if err := vm.SelectFolder(cobraCmd.Context(), folderID); err != nil {
			return err
		}

		crumbs := vm.Breadcrumbs()
		names := make([]string, len(crumbs))
		for i, crumb := range crumbs {
			names[i] = crumb.Name
		}
		fmt.Println(strings.Join(names, " / "))
		printItems(vm.VisibleItems())
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search items by name across all folders",
	Args:  cobra.ExactArgs(1),
	RunE: func(cobraCmd *cobra.Command, args []string) error {
		_, _, vm, err := newSession()
		if err != nil {
			return err
		}
		if err := vm.Search(cobraCmd.Context(), args[0]); err != nil {
			return err
		}
		items := vm.VisibleItems()
		if len(items) == 0 {
			fmt.Println("no matches")
			return nil
		}
		printItems(items)
		return nil
	},
}

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the whole folder hierarchy",
	RunE: func(cobraCmd *cobra.Command, args []string) error {
		_, _, vm, err := newSession()
		if err != nil {
			return err
		}
		if err := vm.Refresh(cobraCmd.Context()); err != nil {
			return err
		}

		children := map[string][]dto.Item{}
		for _, item := range vm.Items() {
			key := parentKey(item.EffectiveParentID())
			children[key] = append(children[key], item)
		}
		fmt.Println(viewmodel.RootName)
		printTree(children, parentKey(nil), "")
		return nil
	},
}

func parentKey(id *uint) string {
	if id == nil {
		return "root"
	}
	return fmt.Sprint(*id)
}

func printTree(children map[string][]dto.Item, key, indent string) {
	items := children[key]
	for i, item := range items {
		connector := "├── "
		childIndent := indent + "│   "
		if i == len(items)-1 {
			connector = "└── "
			childIndent = indent + "    "
		}
		fmt.Println(indent + connector + item.Name)
		if item.Kind == dto.KindFolder {
			printTree(children, fmt.Sprint(item.ID), childIndent)
		}
	}
}

func init() {
	rootCmd.AddCommand(lsCmd, searchCmd, treeCmd)
}
