package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"steamdex/pkg/checkpoint"
	"steamdex/pkg/collector"
	"steamdex/pkg/config"
	"steamdex/pkg/keys"
	"steamdex/pkg/logger"
	"steamdex/pkg/models"
	"steamdex/pkg/sample"
	"steamdex/pkg/steam"
	"steamdex/pkg/storage"
	"steamdex/pkg/ui"
)

var (
	// Collect command flags
	collectCount       int
	collectSeed        int64
	collectResume      bool
	forceRestart       bool
	assumeYes          bool
	exportXLSX         bool
	exportSQLite       bool
	collectOutputDir   string
	collectDelay       time.Duration
	checkpointInterval int
	apiKeyFlag         string
)

// sampleSizeMenu holds the preset sample sizes of the interactive menu.
var sampleSizeMenu = []int{100, 1000, 5000, 10000}

// collectCmd represents the collect command
var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Sample random Steam titles and collect their data",
	Long: `Sample a random subset of the Steam app catalog and collect store
details, current player counts, review counters and achievement counts for
every sampled title.

The run proceeds one title at a time with a fixed delay between titles, and
writes a full checkpoint every N titles. An interrupted run restarts from
the newest checkpoint with --resume.

Results are written as JSON and CSV under the output directory; XLSX and
SQLite exports are optional.`,
	Example: `  # Interactive: choose sample size and confirm
  steamdex collect

  # Collect 1000 titles reproducibly, no questions asked
  steamdex collect --count 1000 --seed 42 --yes

  # Resume an interrupted run
  steamdex collect --count 1000 --seed 42 --resume --yes

  # Also export to Excel and SQLite
  steamdex collect --count 500 --yes --xlsx --sqlite`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCollect(cmd)
	},
}

func init() {
	rootCmd.AddCommand(collectCmd)

	collectCmd.Flags().IntVar(&collectCount, "count", 0, "number of titles to sample (0 asks interactively)")
	collectCmd.Flags().Int64Var(&collectSeed, "seed", 0, "random seed for reproducible sampling")
	collectCmd.Flags().BoolVar(&collectResume, "resume", false, "resume from the newest checkpoint")
	collectCmd.Flags().BoolVar(&forceRestart, "force-restart", false, "ignore existing checkpoints and start over")
	collectCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip confirmation prompts")
	collectCmd.Flags().BoolVar(&exportXLSX, "xlsx", false, "also export results as an Excel workbook")
	collectCmd.Flags().BoolVar(&exportSQLite, "sqlite", false, "also export results into a SQLite database")
	collectCmd.Flags().StringVarP(&collectOutputDir, "output", "o", "", "output directory for result files")
	collectCmd.Flags().DurationVar(&collectDelay, "delay", 0, "pause after each collected title")
	collectCmd.Flags().IntVar(&checkpointInterval, "checkpoint-interval", 0, "titles between checkpoint snapshots")
	collectCmd.Flags().StringVar(&apiKeyFlag, "api-key", "", "Steam Web API key")
}

func runCollect(cmd *cobra.Command) error {
	flags := globalFlags()
	if collectOutputDir != "" {
		flags["output"] = collectOutputDir
	}
	if cmd.Flags().Changed("delay") {
		flags["delay"] = collectDelay
	}
	if checkpointInterval > 0 {
		flags["checkpoint-interval"] = checkpointInterval
	}
	if apiKeyFlag != "" {
		flags["api-key"] = apiKeyFlag
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		return err
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		ui.PrintError("Failed to initialize logger", err.Error())
		return err
	}

	// Config and flags take precedence; the key manager covers the
	// keychain and encrypted-file fallbacks.
	if cfg.Steam.APIKey == "" {
		if manager, err := keys.NewManager(); err == nil {
			if key, err := manager.Get(); err == nil {
				cfg.Steam.APIKey = key
			}
		}
	}
	if cfg.Steam.APIKey == "" {
		ui.PrintWarning("No API key configured; the app list will include non-game entries")
	}

	client := steam.NewClient(steam.Options{
		APIKey:    cfg.Steam.APIKey,
		UserAgent: cfg.Steam.UserAgent,
		Language:  cfg.Steam.Language,
		Timeout:   cfg.Steam.RequestTimeout,
	}, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ui.PrintInfo("Fetching app list", "this can take a minute")
	universe, err := client.GetAppList(ctx)
	if err != nil {
		ui.PrintError("Failed to fetch app list", err.Error())
		return err
	}
	ui.PrintInfo("Catalog size", strconv.Itoa(len(universe)))

	prompter := ui.StdPrompter()

	target := collectCount
	if target <= 0 {
		target, err = askSampleSize(prompter)
		if err != nil {
			return err
		}
	}

	opts := sample.Options{Seed: collectSeed, Seeded: cmd.Flags().Changed("seed")}
	if !opts.Seeded && !assumeYes {
		if seed, ok, err := prompter.AskOptionalInt("Random seed for a reproducible sample"); err == nil && ok {
			opts.Seed = int64(seed)
			opts.Seeded = true
		}
	}

	picked, err := sample.Pick(universe, target, opts)
	if err != nil {
		ui.PrintError("Sampling failed", err.Error())
		return err
	}

	if !assumeYes {
		// Three sub-requests per title plus the per-title delay.
		perItem := cfg.Collector.RequestDelay + 3*cfg.Collector.SubRequestPause
		estimate := time.Duration(len(picked)) * perItem
		question := fmt.Sprintf("Collect %d titles (estimated %s)?", len(picked), estimate.Round(time.Minute))
		ok, err := prompter.AskYesNo(question, true)
		if err != nil {
			return err
		}
		if !ok {
			ui.PrintWarning("Aborted")
			return nil
		}
	}

	checkpoints, err := checkpoint.NewManager(cfg.Collector.CheckpointDir, cfg.Output.FilePrefix, log)
	if err != nil {
		ui.PrintError("Failed to set up checkpoints", err.Error())
		return err
	}

	resume := collectResume && !forceRestart
	fetcher := collector.NewFetcher(client, cfg.Collector.SubRequestPause, log)
	coll := collector.New(fetcher, checkpoints, cfg.Collector.RequestDelay, cfg.Collector.CheckpointInterval, log)

	records, err := coll.Run(ctx, picked, resume)
	if err != nil {
		if ctx.Err() != nil && len(records) > 0 {
			ui.PrintWarning("Interrupted; partial results follow the last checkpoint")
		} else {
			ui.PrintError("Collection failed", err.Error())
			return err
		}
	}

	return writeResults(cfg, log, prompter, records, coll.Stats())
}

func askSampleSize(prompter *ui.Prompter) (int, error) {
	options := make([]string, 0, len(sampleSizeMenu)+1)
	for _, n := range sampleSizeMenu {
		options = append(options, fmt.Sprintf("%d titles", n))
	}
	options = append(options, "custom")

	choice, err := prompter.AskChoice("How many titles should be sampled?", options)
	if err != nil {
		return 0, err
	}
	if choice < len(sampleSizeMenu) {
		return sampleSizeMenu[choice], nil
	}
	return prompter.AskInt("Sample size", 1, 200000)
}

func writeResults(cfg *config.Config, log logger.Logger, prompter *ui.Prompter, records []models.GameRecord, stats *collector.RunStats) error {
	if len(records) == 0 {
		ui.PrintWarning("No records collected, nothing to write")
		return nil
	}

	store, err := storage.NewManager(cfg.Output.Directory, log)
	if err != nil {
		ui.PrintError("Failed to set up output directory", err.Error())
		return err
	}

	stamp := time.Now().Format("20060102_150405")
	base := fmt.Sprintf("%s_%s", cfg.Output.FilePrefix, stamp)

	jsonPath, err := store.WriteJSON(base+".json", records)
	if err != nil {
		ui.PrintError("Failed to write JSON", err.Error())
		return err
	}
	csvPath, err := store.WriteCSV(base+".csv", records)
	if err != nil {
		ui.PrintError("Failed to write CSV", err.Error())
		return err
	}

	ui.PrintSuccess(fmt.Sprintf("Collected %d of %d titles (%d skipped, %d absent, %d errors)",
		stats.Successful, stats.TotalRequested, stats.Skipped, stats.Absent, stats.Errors))
	ui.PrintInfo("JSON", jsonPath)
	ui.PrintInfo("CSV", csvPath)

	wantXLSX := exportXLSX
	if !wantXLSX && !assumeYes {
		wantXLSX, _ = prompter.AskYesNo("Also export an Excel workbook?", false)
	}
	if wantXLSX {
		path, err := store.WriteXLSX(base+".xlsx", records)
		if err != nil {
			ui.PrintError("Failed to write XLSX", err.Error())
		} else {
			ui.PrintInfo("XLSX", path)
		}
	}

	if exportSQLite {
		path, err := store.WriteSQLite(base+".db", records)
		if err != nil {
			ui.PrintError("Failed to write SQLite database", err.Error())
		} else {
			ui.PrintInfo("SQLite", path)
		}
	}

	return nil
}
