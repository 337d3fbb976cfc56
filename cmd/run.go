package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"youtube-stats/config"
	"youtube-stats/pipeline"
	"youtube-stats/scraper/youtube"
	"youtube-stats/services"
	"youtube-stats/storage"
	"youtube-stats/utils"
)

var (
	maxResults int
	dryRun     bool
	noInsights bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one extract, validate and load run",
	Long: `Run fetches the most-popular chart, builds the video statistics table,
validates it and replaces the warehouse table with it.

A failed run is retried MAX_RETRIES times, waiting RETRY_DELAY before the first
retry and doubling the wait each time.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if cmd.Flags().Changed("max-results") {
			cfg.MaxResults = maxResults
		}
		if err := cfg.Validate(); err != nil {
			return errors.Wrap(err, "invalid configuration")
		}

		logger, err := utils.NewFileLogger(cfg.LogFile, cfg.LogLevel)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runPipeline(ctx, cfg, logger)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntVarP(&maxResults, "max-results", "n", 50, "Videos to fetch from the chart (1-50), overrides MAX_RESULTS")
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Extract and validate without loading")
	runCmd.Flags().BoolVar(&noInsights, "no-insights", false, "Do not print the summary after a successful run")
}

func runPipeline(ctx context.Context, cfg *config.Config, logger *utils.Logger) error {
	logger.Info("=== YouTube statistics pipeline starting ===")
	logger.Info("Config: region: %q | max results: %d | warehouse: %s | retries: %d",
		cfg.RegionCode, cfg.MaxResults, cfg.Warehouse, cfg.MaxRetries)

	categories, err := services.LoadCategoryMapper(cfg.CategoryFile)
	if err != nil {
		return err
	}

	client, err := youtube.New(ctx, youtube.Options{
		APIKey:      cfg.YouTubeAPIKey,
		Endpoint:    cfg.YouTubeEndpoint,
		RegionCode:  cfg.RegionCode,
		RateLimitMs: cfg.APIRateLimitMs,
	}, logger)
	if err != nil {
		return err
	}

	var loader storage.DatasetLoader
	if !dryRun {
		loader, err = newLoader(ctx, cfg)
		if err != nil {
			logger.Error("Failed to prepare %s warehouse: %v", cfg.Warehouse, err)
			return err
		}
		defer loader.Close()
	}

	assembler := services.NewAssembler(client, categories, services.AssemblerOptions{
		MaxResults:    int64(cfg.MaxResults),
		CacheChannels: cfg.ChannelCache,
	}, logger)
	p := pipeline.New(assembler, loader, pipeline.Options{DryRun: dryRun}, logger)

	retry := utils.RetryConfig{
		MaxAttempts: cfg.MaxRetries + 1,
		BaseDelay:   cfg.RetryDelay,
		Logger:      logger,
	}

	var result *pipeline.Result
	err = retry.Do(ctx, "pipeline run", func(ctx context.Context) error {
		var runErr error
		result, runErr = p.Run(ctx)
		return runErr
	})
	if err != nil {
		logger.Error("Pipeline failed: %v", err)
		return err
	}

	logger.Info("Run %s finished: %d rows in %s", result.RunID, result.Rows, result.Elapsed)

	if !noInsights {
		insightSvc := services.NewInsightService(logger)
		insightSvc.Print(insightSvc.Generate(result.Dataset))
	}
	return nil
}

func newLoader(ctx context.Context, cfg *config.Config) (storage.DatasetLoader, error) {
	switch cfg.Warehouse {
	case config.WarehouseBigQuery:
		return storage.NewBigQueryLoader(ctx, storage.BigQueryOptions{
			Project:         cfg.BigQueryProject,
			Dataset:         cfg.BigQueryDataset,
			Table:           cfg.BigQueryTable,
			CredentialsFile: cfg.BigQueryCredentialsFile,
		})
	case config.WarehousePostgres:
		return storage.NewPostgresWriter(cfg.DSN(), cfg.PostgresTable)
	case config.WarehouseCSV:
		return storage.NewCSVWriter(cfg.CSVOutputPath)
	}
	return nil, errors.Errorf("unknown warehouse %q", cfg.Warehouse)
}
