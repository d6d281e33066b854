package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/services"
)

// checkpointCmd represents the checkpoint command group
var checkpointCmd = &cobra.Command{
	Use:   "checkpoint",
	Short: "Manage saved pipeline checkpoints",
	Long: `Manage saved pipeline checkpoints.

Available subcommands:
  list   - List all saved checkpoints
  show   - Show the state of a checkpoint
  delete - Delete a checkpoint`,
}

// checkpointShowCmd represents the checkpoint show command
var checkpointShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the state of a saved checkpoint",
	Long: `Display the saved state of a checkpoint by run name.

Equivalent to 'wrangler status <name>'.

Example:
  wrangler checkpoint show nightly`,
	Args: cobra.ExactArgs(1),
	RunE: runStatus,
}

// checkpointListCmd represents the checkpoint list command
var checkpointListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all saved checkpoints",
	Long: `List all saved checkpoints with their last completed step and age.

Example:
  wrangler checkpoint list`,
	RunE: runCheckpointList,
}

// checkpointDeleteCmd represents the checkpoint delete command
var checkpointDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved checkpoint",
	Long: `Delete a saved checkpoint by run name.

Example:
  wrangler checkpoint delete nightly`,
	Args: cobra.ExactArgs(1),
	RunE: runCheckpointDelete,
}

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status <name>",
	Short: "Show the state of a checkpointed run",
	Long: `Display the saved state of a pipeline run.

Shows:
  • Current step and completed steps
  • Candidate and ranking counts
  • Error message if the run failed

Example:
  wrangler status nightly`,
	Args: cobra.ExactArgs(1),
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(checkpointCmd)
	rootCmd.AddCommand(statusCmd)
	checkpointCmd.AddCommand(checkpointListCmd)
	checkpointCmd.AddCommand(checkpointShowCmd)
	checkpointCmd.AddCommand(checkpointDeleteCmd)
}

func openStore() (services.CheckpointStore, error) {
	config, err := services.LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return services.NewCheckpointStore(config.Checkpoint)
}

func runCheckpointList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	infos, err := store.List()
	if err != nil {
		return err
	}

	if len(infos) == 0 {
		fmt.Println("No checkpoints found")
		return nil
	}

	fmt.Printf("%-24s %-12s %s\n", "NAME", "STEP", "AGE")
	fmt.Println("--------------------------------------------------")
	for _, info := range infos {
		fmt.Printf("%-24s %-12s %s\n", info.Name, info.Step, formatAge(time.Since(info.SavedAt)))
	}

	return nil
}

func runCheckpointDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	if err := store.Delete(args[0]); err != nil {
		return err
	}

	fmt.Printf("Checkpoint %q deleted\n", args[0])
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	state, err := store.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Run:             %s\n", args[0])
	fmt.Printf("Current step:    %s\n", state.CurrentStep)
	fmt.Printf("Completed steps: %d\n", len(state.CompletedSteps))
	for _, step := range state.CompletedSteps {
		fmt.Printf("  ✓ %s\n", step)
	}
	fmt.Printf("Candidates:      %d\n", len(state.Candidates))
	fmt.Printf("Ranked:          %d\n", len(state.RankedTransformations))

	if state.Error != "" {
		fmt.Printf("Error:           %s\n", state.Error)
	}

	return nil
}

// formatAge renders a duration as a compact human-readable age
func formatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}
