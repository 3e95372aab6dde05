package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage asset groups",
}

var groupCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create an empty asset group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("CreateGroup")
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.Service().CreateGroup(args[0]); err != nil {
			return err
		}
		fmt.Printf("Created group %s\n", args[0])
		return nil
	},
}

var groupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List asset groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListGroups")
		if err != nil {
			return err
		}
		defer a.Close()

		ids, err := a.Service().ListGroups()
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			fmt.Println("No asset groups.")
			return nil
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		return nil
	},
}

var groupDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete an asset group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirm(cmd, fmt.Sprintf("Delete group %q and its version history?", args[0])) {
			fmt.Println("Aborted.")
			return nil
		}

		a, err := newApp("DeleteGroup")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service().DeleteGroup(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted group %s\n", args[0])
		return nil
	},
}

var groupRenameCmd = &cobra.Command{
	Use:   "rename OLD NEW",
	Short: "Rename an asset group",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("RenameGroup")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service().RenameGroup(args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Renamed group %s to %s\n", args[0], args[1])
		return nil
	},
}

var groupDuplicateCmd = &cobra.Command{
	Use:   "duplicate SRC DST",
	Short: "Duplicate an asset group",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("DuplicateGroup")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service().DuplicateGroup(args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Duplicated group %s to %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	groupCmd.AddCommand(groupCreateCmd)
	groupCmd.AddCommand(groupListCmd)
	groupCmd.AddCommand(groupDeleteCmd)
	groupDeleteCmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")
	groupCmd.AddCommand(groupRenameCmd)
	groupCmd.AddCommand(groupDuplicateCmd)
}
