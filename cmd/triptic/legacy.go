package main

import (
	"fmt"
	"path/filepath"

	"triptic/internal/rotation"

	"github.com/spf13/cobra"
)

var legacyCmd = &cobra.Command{
	Use:   "legacy",
	Short: "Manage path-suffix backups for legacy in-place image files",
}

// legacyPath resolves a legacy file argument against the configured legacy
// dir; absolute paths pass through unchanged.
func legacyPath(legacyDir, arg string) string {
	if filepath.IsAbs(arg) {
		return arg
	}
	return filepath.Join(legacyDir, arg)
}

var legacyBackupCmd = &cobra.Command{
	Use:   "backup FILE",
	Short: "Rotate backups and snapshot the live file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("LegacyBackup")
		if err != nil {
			return err
		}
		defer a.Close()

		path := legacyPath(a.Config().LegacyDir, args[0])
		if err := rotation.CreateBackup(path); err != nil {
			return err
		}
		fmt.Printf("Backed up %s\n", path)
		return nil
	},
}

var legacyVersionsCmd = &cobra.Command{
	Use:   "versions FILE",
	Short: "List available backup versions for a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("LegacyVersions")
		if err != nil {
			return err
		}
		defer a.Close()

		path := legacyPath(a.Config().LegacyDir, args[0])
		versions, err := rotation.ListAvailableBackups(path)
		if err != nil {
			return err
		}
		if len(versions) == 0 {
			fmt.Println("No versions.")
			return nil
		}
		for _, v := range versions {
			if v == rotation.LiveVersion {
				fmt.Printf("%d (live)\n", v)
			} else {
				fmt.Println(v)
			}
		}
		return nil
	},
}

var legacyCompactCmd = &cobra.Command{
	Use:   "compact FILE",
	Short: "Renumber backup files to remove gaps",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("LegacyCompact")
		if err != nil {
			return err
		}
		defer a.Close()

		path := legacyPath(a.Config().LegacyDir, args[0])
		if err := rotation.Compact(path); err != nil {
			return err
		}
		fmt.Printf("Compacted backups for %s\n", path)
		return nil
	},
}

func init() {
	legacyCmd.AddCommand(legacyBackupCmd)
	legacyCmd.AddCommand(legacyVersionsCmd)
	legacyCmd.AddCommand(legacyCompactCmd)
}
