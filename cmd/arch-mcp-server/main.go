package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Citizen4our/arch-mcp-server/internal/config"
	"github.com/Citizen4our/arch-mcp-server/internal/docindex"
	"github.com/Citizen4our/arch-mcp-server/internal/logging"
	"github.com/Citizen4our/arch-mcp-server/internal/mcp"
	"github.com/Citizen4our/arch-mcp-server/pkg/fileops"
)

func main() {
	settings := &config.Settings{}

	rootCmd := &cobra.Command{
		Use:   config.AppName,
		Short: "MCP server for a team's architecture documentation",
		Long: `arch-mcp-server scans a documentation tree, classifies every file
against a declarative mapping, and serves the resulting index over the
Model Context Protocol on stdio or HTTP.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(settings)
		},
	}

	rootCmd.Flags().StringVar(&settings.DocsRoot, "docs-root", "", "path to the documentation root (required)")
	rootCmd.Flags().StringVar(&settings.MappingPath, "config", "", "path to the mapping file (default: <docs-root>/"+config.MappingFileName+", then XDG config)")
	rootCmd.Flags().StringVar(&settings.HTTPAddr, "http", "", "serve HTTP on this address instead of stdio, e.g. :8080")
	rootCmd.Flags().StringVar(&settings.LogLevel, "log-level", "info", "log level: debug, info, warn, error")
	if err := rootCmd.MarkFlagRequired("docs-root"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(settings *config.Settings) error {
	logger := logging.NewAppLogger(settings.LogLevel)

	root, err := fileops.ResolveRoot(settings.DocsRoot)
	if err != nil {
		logger.Error("invalid docs root", "error", err)
		return err
	}

	mappingPath, err := config.ResolveMappingPath(root, settings.MappingPath)
	if err != nil {
		logger.Error("mapping file resolution failed", "error", err)
		return err
	}
	logger.Info("loading mapping", "path", mappingPath)

	rules, err := docindex.LoadRuleSet(mappingPath)
	if err != nil {
		logger.Error("mapping file invalid", "error", err)
		return err
	}
	logger.Info("mapping loaded", "rules", rules.Len())

	scanner := docindex.NewScanner(root, rules, logger)
	idx, stats, err := scanner.Scan()
	if err != nil {
		logger.Error("scan failed", "error", err)
		return err
	}
	logger.Info("scan complete",
		"indexed", stats.Indexed,
		"seen", stats.Seen,
		"skipped_unsupported", stats.SkippedUnsupported,
		"skipped_unmatched", stats.SkippedUnmatched,
		"duplicates", stats.Duplicates,
		"duration", stats.Duration,
	)

	store := docindex.NewStore(idx)
	reader := docindex.NewContentReader(root)
	srv := mcp.NewServer(logger, store, reader)

	if settings.HTTPAddr != "" {
		return srv.ServeHTTP(settings.HTTPAddr)
	}
	return srv.ServeStdio()
}
