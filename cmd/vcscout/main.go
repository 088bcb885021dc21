package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"vcscout/internal/config"
	"vcscout/internal/directory"
	"vcscout/internal/domain"
	"vcscout/internal/history"
	"vcscout/internal/metrics"
	"vcscout/internal/research"
	"vcscout/internal/search"
	"vcscout/internal/server"
	"vcscout/internal/tool"
)

var (
	version    = "0.1.0"
	logger     *slog.Logger
	configPath string // overridable via --config flag
)

func main() {
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	root := &cobra.Command{
		Use:   "vcscout",
		Short: "vcscout: AI venture capital research tools over MCP",
		Long:  "vcscout exposes a static directory of AI-focused VC firms and web-search-backed research tools to MCP clients.",
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.json (default: ~/.vcscout/config.json)")

	root.AddCommand(initCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(historyCmd())
	root.AddCommand(doctorCmd())
	root.AddCommand(configCmd())
	root.AddCommand(versionCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfigPath returns the config path from --config flag or default.
func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultConfigPath()
}

// loadConfig loads the config file, falling back to defaults when missing.
func loadConfig() *config.Config {
	cfgPath := resolveConfigPath()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Warn("config not found, using defaults", "path", cfgPath, "err", err)
		return config.Defaults()
	}
	return cfg
}

// buildLogger rebuilds the process logger from config. Output stays on
// stderr (or a file) so the stdio MCP transport owns stdout.
func buildLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.General.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var out io.Writer = os.Stderr
	if cfg.General.LogFile != "" {
		f, err := os.OpenFile(cfg.General.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			logger.Warn("cannot open log file, using stderr", "path", cfg.General.LogFile, "err", err)
		} else {
			out = f
		}
	}

	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath := resolveConfigPath()
			if _, err := os.Stat(cfgPath); err == nil {
				return fmt.Errorf("config already exists at %s", cfgPath)
			}
			if err := config.Save(cfgPath, config.Defaults()); err != nil {
				return err
			}
			logger.Info("initialized", "config", cfgPath)
			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	var httpAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the research tools over MCP (stdio by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Mirror the usual MCP server bootstrap: pick up a local
			// .env before config resolution.
			_ = godotenv.Load()

			cfg := loadConfig()
			logger = buildLogger(cfg)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			store, err := buildStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			registry, err := buildRegistry(cfg, store)
			if err != nil {
				return err
			}

			srv, err := server.New(registry, version, logger)
			if err != nil {
				return err
			}

			if cfg.Metrics.Enabled {
				go serveMetrics(cfg.Metrics.Addr)
			}

			if httpAddr != "" {
				return srv.ServeHTTP(ctx, httpAddr)
			}
			return srv.ServeStdio(ctx)
		},
	}

	cmd.Flags().StringVar(&httpAddr, "http", "", "serve over streamable HTTP on this address instead of stdio")
	return cmd
}

// buildStore opens the history store, or a no-op store when disabled.
func buildStore(cfg *config.Config) (domain.ResearchStore, error) {
	if !cfg.History.Enabled {
		return history.NopStore{}, nil
	}
	store, err := history.NewSQLiteStore(cfg.History.DBPath, logger)
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}
	return store, nil
}

// buildRegistry wires the directory, search client, and researcher into
// the full tool set.
func buildRegistry(cfg *config.Config, store domain.ResearchStore) (*tool.Registry, error) {
	dir, err := directory.New()
	if err != nil {
		return nil, fmt.Errorf("load firm directory: %w", err)
	}

	client := search.NewClient(search.Config{
		APIKey:         cfg.Search.APIKey,
		BaseURL:        cfg.Search.BaseURL,
		Market:         cfg.Search.Market,
		SafeSearch:     cfg.Search.SafeSearch,
		Freshness:      cfg.Search.Freshness,
		TimeoutSeconds: cfg.Search.TimeoutSeconds,
	}, logger)

	pacer := research.NewFixedPacer(time.Duration(cfg.Search.PauseMillis) * time.Millisecond)
	researcher := research.New(client, pacer, logger)

	registry := tool.NewRegistry(logger)
	registry.Register(tool.NewListFirmsTool(dir))
	registry.Register(tool.NewFirmInfoTool(dir))
	registry.Register(tool.NewSearchFirmsTool(client))
	registry.Register(tool.NewFirmURLsTool(researcher, store, logger))
	registry.Register(tool.NewResearchFirmTool(researcher, store, logger))
	registry.Register(tool.NewPortfolioURLsTool(client))
	registry.Register(tool.NewCompareFirmsTool(researcher, store, logger))
	return registry, nil
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Collector.Handler())
	logger.Info("metrics endpoint listening", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Warn("metrics endpoint stopped", "err", err)
	}
}

func historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent research runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if !cfg.History.Enabled {
				fmt.Println("History is disabled in config.")
				return nil
			}

			store, err := history.NewSQLiteStore(cfg.History.DBPath, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("No research runs recorded yet.")
				return nil
			}

			for _, run := range runs {
				status := ""
				if run.Degraded {
					status = "  [degraded]"
				}
				fmt.Printf("%s  %-20s %-18s results=%d urls=%d%s\n",
					run.CreatedAt.Local().Format("2006-01-02 15:04"),
					run.FirmName, run.Tool, run.ResultCount, run.URLCount, status)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of runs to show")
	return cmd
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or modify configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get <path>",
		Short: "Get a config value by dot path (e.g. search.freshness)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			v, err := config.GetByPath(config.Sanitize(cfg), args[0])
			if err != nil {
				return err
			}
			fmt.Println(v)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <path> <value>",
		Short: "Set a config value by dot path",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath := resolveConfigPath()
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if err := config.SetByPath(cfg, args[0], args[1]); err != nil {
				return err
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}
			return config.Save(cfgPath, cfg)
		},
	})

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("vcscout v%s\n", version)
		},
	}
}
