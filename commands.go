package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/example/skillspace/internal/ai"
	"github.com/example/skillspace/internal/api"
	"github.com/example/skillspace/internal/bot"
	"github.com/example/skillspace/internal/catalog"
	"github.com/example/skillspace/internal/config"
	"github.com/example/skillspace/internal/database"
	"github.com/example/skillspace/internal/excel"
	"github.com/example/skillspace/internal/logging"
	"github.com/example/skillspace/internal/scheduler"
	"github.com/example/skillspace/internal/session"
)

var (
	envFile string
	verbose bool
	withBot bool

	importKind     string
	importSheet    string
	importStartRow int

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "skillspace",
	Short: "SkillSpace - gamified learning dashboard",
	Long: `SkillSpace tracks skill progress, daily missions, guilds and study tasks,
and proxies questions to a Gemini-backed AI mentor.

The dashboard is served as a JSON API (serve) and as a Telegram bot (bot).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(envFile)
		if err != nil {
			return err
		}
		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(level)
		if err != nil {
			return err
		}
		zap.ReplaceGlobals(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), true, withBot)
	},
}

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram bot",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), false, true)
	},
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import daily missions or challenges from an .xlsx or .csv file",
	Long: `Reads catalog rows into the catalog database.

Columns: id, title, description, then
  missions:   reward_xp, icon
  challenges: difficulty, starter_code`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the AI mentor a single question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mentor, err := ai.New(cmd.Context(), aiConfig(), logger)
		if err != nil {
			return err
		}
		reply := mentor.Ask(cmd.Context(), session.DefaultMentorDomain, strings.Join(args, " "))
		fmt.Fprintln(cmd.OutOrStdout(), reply.Text)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "Path to a .env file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	serveCmd.Flags().BoolVar(&withBot, "with-bot", false, "Also run the Telegram bot")

	importCmd.Flags().StringVar(&importKind, "kind", string(excel.KindMissions), "What the sheet holds: missions or challenges")
	importCmd.Flags().StringVar(&importSheet, "sheet", "Sheet1", "Excel sheet name")
	importCmd.Flags().IntVar(&importStartRow, "start-row", 2, "First data row (1-based)")

	rootCmd.AddCommand(serveCmd, botCmd, importCmd, askCmd)
}

func aiConfig() ai.Config {
	return ai.Config{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		Timeout: cfg.Gemini.Timeout,
	}
}

func connectDatabase() error {
	return database.Connect(database.Config{
		Type: cfg.Database.Type,
		Path: cfg.Database.Path,
		DSN:  cfg.Database.DSN,
	})
}

// loadCatalog reads the bundled or configured catalog and overlays database rows
func loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	var (
		base *catalog.Catalog
		err  error
	)
	if cfg.Game.CatalogFile != "" {
		base, err = catalog.LoadFile(cfg.Game.CatalogFile)
	} else {
		base, err = catalog.Default()
	}
	if err != nil {
		return nil, err
	}
	return database.LoadCatalog(ctx, base)
}

// run wires the session store to the requested surfaces and blocks until ctx ends
func run(ctx context.Context, serveHTTP, runBot bool) error {
	if err := connectDatabase(); err != nil {
		return err
	}
	defer database.Close()

	cat, err := loadCatalog(ctx)
	if err != nil {
		return err
	}

	opts := session.Options{
		Catalog:      cat,
		ExpPolicy:    cfg.Game.GuildExpPolicy,
		TickInterval: cfg.Game.StrikeTick,
		Logger:       logger,
	}
	mentor, err := ai.New(ctx, aiConfig(), logger)
	if err != nil {
		logger.Warn("AI mentor disabled, replies will use fallbacks", zap.Error(err))
	} else {
		opts.Mentor = mentor
	}

	store := session.NewStore(opts)
	defer store.CloseAll()

	sched := scheduler.New(store, cfg.Game.DailyResetAt, logger)
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	var tg *bot.Bot
	if runBot {
		if tg, err = bot.New(cfg.Telegram, store, cat, logger); err != nil {
			return err
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	if serveHTTP {
		server := api.NewServer(cfg.Server, store, cat, logger)
		g.Go(func() error {
			return server.ListenAndServe(ctx)
		})
	}
	if tg != nil {
		g.Go(func() error {
			return tg.Start(ctx)
		})
	}

	logger.Info("skillspace started",
		zap.Bool("http", serveHTTP),
		zap.Bool("bot", runBot),
		zap.Int("skills", len(cat.Skills)),
		zap.Int("challenges", len(cat.Challenges)),
		zap.Time("next_daily_reset", sched.NextReset()),
	)
	return g.Wait()
}

func runImport(cmd *cobra.Command, args []string) error {
	kind, err := excel.ParseKind(importKind)
	if err != nil {
		return err
	}
	if err := connectDatabase(); err != nil {
		return err
	}
	defer database.Close()

	importConfig := excel.DefaultImportConfig()
	importConfig.FilePath = args[0]
	importConfig.Kind = kind
	importConfig.SheetName = importSheet
	importConfig.StartRow = importStartRow

	result, err := excel.NewImporter(excel.NewDatabaseSaver(), logger).Import(cmd.Context(), importConfig)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Processed: %d, created: %d, updated: %d\n", result.TotalProcessed, result.Created, result.Updated)
	for _, e := range result.Errors {
		fmt.Fprintln(out, "  "+e)
	}
	return nil
}
