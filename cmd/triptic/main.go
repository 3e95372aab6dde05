package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"triptic/internal/app"
	"triptic/internal/config"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates a TripticApp. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "CreateGroup", "Regenerate").
func newApp(operation string) (*app.TripticApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewTripticApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

// confirm asks the user to approve a destructive action. Returns true without
// prompting when stdin is not a terminal or the --yes flag was given.
func confirm(cmd *cobra.Command, prompt string) bool {
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return true
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return true
	}

	fmt.Printf("%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

var rootCmd = &cobra.Command{
	Use:   "triptic",
	Short: "Triptych digital signage server",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Base Dir:   %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:    %s\n", cfg.LogDir)
		fmt.Printf("Legacy Dir: %s\n", cfg.LegacyDir)
		fmt.Printf("Store:      %s\n", cfg.Store.Type)
		fmt.Printf("Blob:       %s\n", cfg.Blob.Type)
		fmt.Printf("Renderer:   %s\n", cfg.Renderer.Type)
		return nil
	},
}

// job command
var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Inspect background render jobs",
}

var jobStatusCmd = &cobra.Command{
	Use:   "status TOKEN",
	Short: "View the status of a render job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("JobStatus")
		if err != nil {
			return err
		}
		defer a.Close()

		job, err := a.Service().JobStatus(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Job:     %s\n", job.Token)
		fmt.Printf("Group:   %s\n", job.GroupID)
		fmt.Printf("Slot:    %s\n", job.Slot)
		fmt.Printf("State:   %s\n", job.State)
		if job.ContentRef != "" {
			fmt.Printf("Content: %s\n", job.ContentRef)
		}
		if job.Err != "" {
			fmt.Printf("Error:   %s\n", job.Err)
		}
		return nil
	},
}

// heartbeat command
var heartbeatCmd = &cobra.Command{
	Use:   "heartbeat [SCREEN_ID]",
	Short: "Record or list screen heartbeats",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Heartbeat")
		if err != nil {
			return err
		}
		defer a.Close()

		if len(args) == 1 {
			if err := a.Service().Heartbeat(args[0]); err != nil {
				return err
			}
			fmt.Printf("Heartbeat recorded for %s\n", args[0])
			return nil
		}

		beats, err := a.Service().Heartbeats()
		if err != nil {
			return err
		}
		if len(beats) == 0 {
			fmt.Println("No heartbeats recorded.")
			return nil
		}
		for _, b := range beats {
			fmt.Printf("%-12s %s\n", b.ScreenID, b.LastSync.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	jobCmd.AddCommand(jobStatusCmd)

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(groupCmd)
	rootCmd.AddCommand(slotCmd)
	rootCmd.AddCommand(playlistCmd)
	rootCmd.AddCommand(legacyCmd)
	rootCmd.AddCommand(jobCmd)
	rootCmd.AddCommand(heartbeatCmd)
}
