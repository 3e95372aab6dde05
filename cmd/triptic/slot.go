package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"triptic/internal/triptic"

	"github.com/spf13/cobra"
)

var slotCmd = &cobra.Command{
	Use:   "slot",
	Short: "Manage slot content and version history",
}

var slotRegenerateCmd = &cobra.Command{
	Use:   "regenerate GROUP SLOT [PROMPT]",
	Short: "Generate a new image for a slot",
	Long: `Generate a new image for a slot and make it the current version.
With no prompt, the newest version's prompt is reused.
With --async, returns a job token immediately; poll with "triptic job status".`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		async, _ := cmd.Flags().GetBool("async")

		slot, err := triptic.ParseSlotName(args[1])
		if err != nil {
			return err
		}
		prompt := ""
		if len(args) > 2 {
			prompt = args[2]
		}

		a, err := newApp("Regenerate")
		if err != nil {
			return err
		}
		defer a.Close()

		if async {
			token, err := a.Service().StartRegenerate(args[0], slot, prompt)
			if err != nil {
				return err
			}
			fmt.Printf("Job started: %s\n", token)
			return nil
		}

		contentRef, err := a.Service().Regenerate(cmd.Context(), args[0], slot, prompt)
		if err != nil {
			return err
		}
		fmt.Printf("New version: %s\n", contentRef)
		return nil
	},
}

var slotEditCmd = &cobra.Command{
	Use:   "edit GROUP SLOT PROMPT",
	Short: "Edit a slot's current image with a prompt",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, err := triptic.ParseSlotName(args[1])
		if err != nil {
			return err
		}

		a, err := newApp("Edit")
		if err != nil {
			return err
		}
		defer a.Close()

		contentRef, err := a.Service().Edit(cmd.Context(), args[0], slot, args[2])
		if err != nil {
			return err
		}
		fmt.Printf("New version: %s\n", contentRef)
		return nil
	},
}

var slotFlipCmd = &cobra.Command{
	Use:   "flip GROUP SLOT",
	Short: "Mirror a slot's current image",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, err := triptic.ParseSlotName(args[1])
		if err != nil {
			return err
		}

		a, err := newApp("Flip")
		if err != nil {
			return err
		}
		defer a.Close()

		contentRef, err := a.Service().Flip(cmd.Context(), args[0], slot)
		if err != nil {
			return err
		}
		fmt.Printf("New version: %s\n", contentRef)
		return nil
	},
}

var slotUploadCmd = &cobra.Command{
	Use:   "upload GROUP SLOT FILE",
	Short: "Upload an image file as a slot's new current version",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, err := triptic.ParseSlotName(args[1])
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[2])
		if err != nil {
			return fmt.Errorf("reading upload file: %w", err)
		}
		ext := strings.TrimPrefix(filepath.Ext(args[2]), ".")

		a, err := newApp("Upload")
		if err != nil {
			return err
		}
		defer a.Close()

		contentRef, err := a.Service().Upload(args[0], slot, data, ext)
		if err != nil {
			return err
		}
		fmt.Printf("New version: %s\n", contentRef)
		return nil
	},
}

var slotVersionsCmd = &cobra.Command{
	Use:   "versions GROUP SLOT",
	Short: "List a slot's version history",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, err := triptic.ParseSlotName(args[1])
		if err != nil {
			return err
		}

		a, err := newApp("Versions")
		if err != nil {
			return err
		}
		defer a.Close()

		infos, err := a.Service().Versions(args[0], slot)
		if err != nil {
			return err
		}
		if len(infos) == 0 {
			fmt.Println("No versions.")
			return nil
		}
		for _, info := range infos {
			current := ""
			if info.IsCurrent {
				current = "  [current]"
			}
			fmt.Printf("%d  %s  %s  %q%s\n",
				info.Ordinal,
				info.ContentRef,
				info.CreatedAt.Format("2006-01-02 15:04:05"),
				info.Prompt,
				current,
			)
		}
		return nil
	},
}

var slotRestoreCmd = &cobra.Command{
	Use:   "restore GROUP SLOT VERSION",
	Short: "Make an older version current",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, err := triptic.ParseSlotName(args[1])
		if err != nil {
			return err
		}
		ordinal, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("version must be a number: %w", err)
		}

		a, err := newApp("RestoreVersion")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service().RestoreVersion(args[0], slot, ordinal); err != nil {
			return err
		}
		fmt.Printf("Restored %s/%s to version %d\n", args[0], slot, ordinal)
		return nil
	},
}

var slotDeleteVersionCmd = &cobra.Command{
	Use:   "delete-version GROUP SLOT",
	Short: "Delete a slot's current version and fall back to the previous one",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, err := triptic.ParseSlotName(args[1])
		if err != nil {
			return err
		}

		if !confirm(cmd, fmt.Sprintf("Delete the current version of %s/%s?", args[0], slot)) {
			fmt.Println("Aborted.")
			return nil
		}

		a, err := newApp("DeleteVersion")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service().DeleteVersion(args[0], slot); err != nil {
			return err
		}
		fmt.Printf("Deleted current version of %s/%s\n", args[0], slot)
		return nil
	},
}

var slotSwapCmd = &cobra.Command{
	Use:   "swap GROUP SLOT_A SLOT_B",
	Short: "Swap the histories of two slots in a group",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		slotA, err := triptic.ParseSlotName(args[1])
		if err != nil {
			return err
		}
		slotB, err := triptic.ParseSlotName(args[2])
		if err != nil {
			return err
		}

		a, err := newApp("SwapSlots")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service().SwapSlots(args[0], slotA, slotB); err != nil {
			return err
		}
		fmt.Printf("Swapped %s and %s in %s\n", slotA, slotB, args[0])
		return nil
	},
}

var slotCopyCmd = &cobra.Command{
	Use:   "copy SRC_GROUP SRC_SLOT DST_GROUP DST_SLOT",
	Short: "Copy a slot's current version to another slot",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		srcSlot, err := triptic.ParseSlotName(args[1])
		if err != nil {
			return err
		}
		dstSlot, err := triptic.ParseSlotName(args[3])
		if err != nil {
			return err
		}

		a, err := newApp("CopySlot")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service().CopySlot(args[0], srcSlot, args[2], dstSlot); err != nil {
			return err
		}
		fmt.Printf("Copied %s/%s to %s/%s\n", args[0], srcSlot, args[2], dstSlot)
		return nil
	},
}

func init() {
	slotCmd.AddCommand(slotRegenerateCmd)
	slotRegenerateCmd.Flags().Bool("async", false, "Run as a background job and print the token")
	slotCmd.AddCommand(slotEditCmd)
	slotCmd.AddCommand(slotFlipCmd)
	slotCmd.AddCommand(slotUploadCmd)
	slotCmd.AddCommand(slotVersionsCmd)
	slotCmd.AddCommand(slotRestoreCmd)
	slotCmd.AddCommand(slotDeleteVersionCmd)
	slotDeleteVersionCmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")
	slotCmd.AddCommand(slotSwapCmd)
	slotCmd.AddCommand(slotCopyCmd)
}
