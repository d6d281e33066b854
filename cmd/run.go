package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/lib"
	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/pipeline"
	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/services"
	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/ui"
)

// timeRounding keeps reported durations readable
const timeRounding = time.Millisecond

var (
	runName    string
	outputPath string
	noProgress bool
	topN       int
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <input.csv>",
	Short: "Run the full pipeline on a dataset",
	Long: `Run the full data wrangling pipeline on a CSV dataset.

The pipeline profiles the data, generates transformation candidates,
evaluates each candidate on a bounded worker pool (execute, validate,
score), ranks the survivors and applies the best one. State is
checkpointed under the run name after every step.

Examples:
  # Run with defaults
  wrangler run data.csv

  # Name the run and write the cleaned dataset
  wrangler run data.csv --name nightly --output cleaned.csv

  # Run without progress indicators
  wrangler run data.csv --no-progress`,
	Args: cobra.ExactArgs(1),
	RunE: runPipeline,
}

// resumeCmd represents the resume command
var resumeCmd = &cobra.Command{
	Use:   "resume <input.csv>",
	Short: "Resume an interrupted run from its checkpoint",
	Long: `Resume a pipeline run from its last checkpoint.

The input dataset must be the same file the original run used; the saved
profile and candidates are trusted, and only the unfinished steps run.

Examples:
  # Resume the run named nightly
  wrangler resume data.csv --name nightly`,
	Args: cobra.ExactArgs(1),
	RunE: runResume,
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(resumeCmd)

	for _, cmd := range []*cobra.Command{runCmd, resumeCmd} {
		cmd.Flags().StringVar(&runName, "name", "default", "Run name used for checkpoints")
		cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the cleaned dataset to this CSV file")
		cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable progress indicators")
		cmd.Flags().IntVar(&topN, "top", 5, "Number of ranked transformations to display")
	}
}

func runPipeline(cmd *cobra.Command, args []string) error {
	run, err := setupRun(args[0])
	if err != nil {
		return err
	}
	defer run.logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var result *pipeline.Result
	err = services.WithRunLock(run.config.Checkpoint.Dir, runName, run.logger, func() error {
		var runErr error
		result, runErr = run.orch.Run(ctx, run.dataset, runName)
		return runErr
	})
	if err != nil {
		return err
	}

	return reportResult(result)
}

func runResume(cmd *cobra.Command, args []string) error {
	run, err := setupRun(args[0])
	if err != nil {
		return err
	}
	defer run.logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var result *pipeline.Result
	err = services.WithRunLock(run.config.Checkpoint.Dir, runName, run.logger, func() error {
		var runErr error
		result, runErr = run.orch.Resume(ctx, run.dataset, runName)
		return runErr
	})
	if err != nil {
		return err
	}

	return reportResult(result)
}

// runContext bundles the wiring shared by run and resume
type runContext struct {
	config  *models.ProjectConfig
	orch    *pipeline.Orchestrator
	dataset *models.Dataset
	logger  *lib.Logger
}

// setupRun loads config, dataset and wiring shared by run and resume
func setupRun(inputPath string) (*runContext, error) {
	config, err := services.LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	logger := lib.NewLogger(level)

	ds, err := services.ReadDatasetCSV(inputPath)
	if err != nil {
		return nil, err
	}
	logger.Info("Dataset loaded",
		"path", inputPath,
		"rows", ds.RowCount(),
		"columns", ds.ColumnCount())

	store, err := services.NewCheckpointStore(config.Checkpoint)
	if err != nil {
		return nil, err
	}

	orch, err := pipeline.NewOrchestrator(*config, store, logger)
	if err != nil {
		return nil, err
	}

	if !noProgress {
		orch.SetProgressFactory(func(total int64, description string) pipeline.ProgressSink {
			return ui.NewEvaluationBar(total, description)
		})
	}

	return &runContext{config: config, orch: orch, dataset: ds, logger: logger}, nil
}

func reportResult(result *pipeline.Result) error {
	if !result.Success {
		fmt.Printf("\n✗ Pipeline failed after %v: %s\n", result.ExecutionTime.Round(timeRounding), result.Error)
		return fmt.Errorf("pipeline failed")
	}

	fmt.Printf("\n✓ Pipeline completed in %v\n", result.ExecutionTime.Round(timeRounding))

	if result.Profile != nil {
		fmt.Printf("\nDataset: %d rows, %d columns, %.1f%% missing, %d duplicate rows\n",
			result.Profile.RowCount,
			result.Profile.ColumnCount,
			result.Profile.OverallMissingPercentage,
			result.Profile.DuplicateRows)
	}

	if len(result.RankedTransformations) == 0 {
		fmt.Println("\nNo passing transformation candidates found.")
	} else {
		fmt.Printf("\nTop transformations (%d candidates ranked):\n", len(result.RankedTransformations))
		limit := topN
		if limit > len(result.RankedTransformations) {
			limit = len(result.RankedTransformations)
		}
		for _, ranked := range result.RankedTransformations[:limit] {
			fmt.Printf("  %2d. [%.3f] %s\n", ranked.Rank, ranked.CompositeScore, ranked.Candidate.Transformation.Description)
		}
	}

	if outputPath != "" && result.Data != nil {
		if err := services.WriteDatasetCSV(outputPath, result.Data); err != nil {
			return err
		}
		fmt.Printf("\nCleaned dataset written to %s\n", outputPath)
	}

	return nil
}
