package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var playlistCmd = &cobra.Command{
	Use:   "playlist",
	Short: "Manage playlists",
}

var playlistCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create an empty playlist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("CreatePlaylist")
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.Service().CreatePlaylist(args[0]); err != nil {
			return err
		}
		fmt.Printf("Created playlist %s\n", args[0])
		return nil
	},
}

var playlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List playlists",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListPlaylists")
		if err != nil {
			return err
		}
		defer a.Close()

		names, err := a.Service().ListPlaylists()
		if err != nil {
			return err
		}
		current, err := a.Service().CurrentPlaylist()
		if err != nil {
			return err
		}

		if len(names) == 0 {
			fmt.Println("No playlists.")
			return nil
		}
		for _, name := range names {
			marker := " "
			if name == current {
				marker = "*"
			}
			fmt.Printf("%s %s\n", marker, name)
		}
		return nil
	},
}

var playlistDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a playlist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirm(cmd, fmt.Sprintf("Delete playlist %q?", args[0])) {
			fmt.Println("Aborted.")
			return nil
		}

		a, err := newApp("DeletePlaylist")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service().DeletePlaylist(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted playlist %s\n", args[0])
		return nil
	},
}

var playlistRenameCmd = &cobra.Command{
	Use:   "rename OLD NEW",
	Short: "Rename a playlist",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("RenamePlaylist")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service().RenamePlaylist(args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Renamed playlist %s to %s\n", args[0], args[1])
		return nil
	},
}

var playlistAddCmd = &cobra.Command{
	Use:   "add PLAYLIST GROUP",
	Short: "Add a group to a playlist",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("AddToPlaylist")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service().AddToPlaylist(args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Added %s to %s\n", args[1], args[0])
		return nil
	},
}

var playlistRemoveCmd = &cobra.Command{
	Use:   "remove PLAYLIST GROUP",
	Short: "Remove a group from a playlist",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("RemoveFromPlaylist")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service().RemoveFromPlaylist(args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Removed %s from %s\n", args[1], args[0])
		return nil
	},
}

var playlistReorderCmd = &cobra.Command{
	Use:   "reorder PLAYLIST GROUP...",
	Short: "Replace a playlist's member order",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ReorderPlaylist")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service().ReorderPlaylist(args[0], args[1:]); err != nil {
			return err
		}
		fmt.Printf("Reordered %s (%d members)\n", args[0], len(args)-1)
		return nil
	},
}

var playlistNextCmd = &cobra.Command{
	Use:   "next PLAYLIST",
	Short: "Advance the playlist cursor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("NextInPlaylist")
		if err != nil {
			return err
		}
		defer a.Close()

		member, err := a.Service().NextInPlaylist(args[0])
		if err != nil {
			return err
		}
		if member == "" {
			fmt.Println("Playlist is empty.")
			return nil
		}
		fmt.Println(member)
		return nil
	},
}

var playlistPrevCmd = &cobra.Command{
	Use:   "prev PLAYLIST",
	Short: "Retreat the playlist cursor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("PreviousInPlaylist")
		if err != nil {
			return err
		}
		defer a.Close()

		member, err := a.Service().PreviousInPlaylist(args[0])
		if err != nil {
			return err
		}
		if member == "" {
			fmt.Println("Playlist is empty.")
			return nil
		}
		fmt.Println(member)
		return nil
	},
}

var playlistItemsCmd = &cobra.Command{
	Use:   "items PLAYLIST",
	Short: "Resolve a playlist's members to screen content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("PlaylistItems")
		if err != nil {
			return err
		}
		defer a.Close()

		items, err := a.Service().PlaylistItems(args[0])
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Println("Playlist is empty.")
			return nil
		}
		for _, item := range items {
			fmt.Printf("%s\n  left:   %s\n  center: %s\n  right:  %s\n",
				item.Name, item.Left, item.Center, item.Right)
		}
		return nil
	},
}

var playlistUseCmd = &cobra.Command{
	Use:   "use PLAYLIST",
	Short: "Select the playlist driving the display",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("SetCurrentPlaylist")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service().SetCurrentPlaylist(args[0]); err != nil {
			return err
		}
		fmt.Printf("Display now driven by %s\n", args[0])
		return nil
	},
}

func init() {
	playlistCmd.AddCommand(playlistCreateCmd)
	playlistCmd.AddCommand(playlistListCmd)
	playlistCmd.AddCommand(playlistDeleteCmd)
	playlistDeleteCmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")
	playlistCmd.AddCommand(playlistRenameCmd)
	playlistCmd.AddCommand(playlistAddCmd)
	playlistCmd.AddCommand(playlistRemoveCmd)
	playlistCmd.AddCommand(playlistReorderCmd)
	playlistCmd.AddCommand(playlistNextCmd)
	playlistCmd.AddCommand(playlistPrevCmd)
	playlistCmd.AddCommand(playlistItemsCmd)
	playlistCmd.AddCommand(playlistUseCmd)
}
