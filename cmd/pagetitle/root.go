// Package main provides the entry point for the pagetitle CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/pagetitle/internal/config"
	"github.com/nao1215/pagetitle/internal/fetch"
	"github.com/nao1215/pagetitle/internal/history"
	applog "github.com/nao1215/pagetitle/internal/log"
	"github.com/nao1215/pagetitle/internal/model"
	"github.com/nao1215/pagetitle/internal/page"
	"github.com/nao1215/pagetitle/internal/report"
)

// NewRootCmd creates the root command for pagetitle.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pagetitle <url>",
		Short: "Fetch a web page and print its title",
		Long: `pagetitle fetches a web page, parses the HTML, and prints the content
of the first <title> element.

The result is a single line in one of two shapes:

  The title for <url> was <title>
  <url> had no title

A missing title is a normal outcome, not an error. Fetch or parse
failures abort the run with a non-zero exit code.

Examples:
  # Print the title of a page
  pagetitle https://example.com

  # Output JSON for scripting
  pagetitle --json https://example.com

  # Send a cookie configured for the host in .pagetitle
  pagetitle -c myconfig.yaml https://members.example.com

Configuration file (.pagetitle) example:
  sites:
    members.example.com:
      cookie: "session_id=abc123"
      headers:
        Authorization: "Bearer token"`,
		Version:       getVersion(),
		Args:          cobra.ExactArgs(1),
		RunE:          runRootCmd,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging and output")

	// Fetch behavior flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Connection timeout for the request")
	cmd.Flags().StringP("user-agent", "u", config.DefaultUserAgent,
		"User-Agent header to send")
	cmd.Flags().Int64("max-body-size", config.DefaultMaxBodySize,
		"Maximum response body size in bytes")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .pagetitle in current or home directory)")

	// Output flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write output to specified file path (creates directories if needed)")
	cmd.Flags().Bool("no-history", false,
		"Do not record this lookup in the history database")

	// Add subcommands
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runRootCmd executes the lookup.
func runRootCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := applog.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runLookup(ctx, cmd, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Target = args[0]
	cfg.Verbose = getVerboseFlag(cmd)

	var err error

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.UserAgent, err = cmd.Flags().GetString("user-agent")
	if err != nil {
		return nil, err
	}

	cfg.MaxBodySize, err = cmd.Flags().GetInt64("max-body-size")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load site-specific configurations from config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.SiteConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.SiteConfigs = &config.File{
			Sites: make(map[string]config.SiteConfig),
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return nil, err
	}
	cfg.SaveHistory = !noHistory

	return cfg, nil
}

// runLookup fetches the target, extracts the title, and writes the result.
func runLookup(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	siteConfig := getSiteConfig(cfg)

	userAgent := cfg.UserAgent
	if siteConfig.UserAgent != "" {
		userAgent = siteConfig.UserAgent
	}

	client := fetch.NewClient(
		fetch.WithTimeout(cfg.Timeout),
		fetch.WithUserAgent(userAgent),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
		fetch.WithHeaders(siteConfig.Headers),
		fetch.WithCookie(siteConfig.Cookie),
	)

	logger.Debug("fetching page",
		"url", cfg.Target,
		"timeout", cfg.Timeout,
		"userAgent", userAgent,
	)

	start := time.Now()

	resp, err := client.Fetch(ctx, cfg.Target)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", cfg.Target, err)
	}

	info, err := page.Extract(strings.NewReader(resp.Body))
	if err != nil {
		return fmt.Errorf("%w: %s: %w", fetch.ErrParse, cfg.Target, err)
	}

	result := model.NewResult(cfg.Target)
	result.StatusCode = resp.StatusCode
	result.ContentType = resp.ContentType
	result.Description = info.Description
	result.Canonical = info.Canonical
	result.Elapsed = time.Since(start)
	if info.TitleFound {
		result.SetTitle(info.Title)
	}

	logger.Debug("page fetched",
		"statusCode", resp.StatusCode,
		"contentType", resp.ContentType,
		"titleFound", result.TitleFound,
		"elapsed", result.Elapsed,
	)

	if err := outputResult(cmd, cfg, result); err != nil {
		return err
	}

	// History is best effort: a failed write must not fail the lookup.
	if cfg.SaveHistory {
		if err := saveResult(ctx, cfg, result); err != nil {
			logger.Warn("failed to record lookup history", "error", err)
		}
	}

	return nil
}

// getSiteConfig returns the site-specific configuration for the target URL.
// An unparseable target falls back to the defaults.
func getSiteConfig(cfg *config.Config) config.SiteConfig {
	if cfg.SiteConfigs == nil {
		return config.SiteConfig{}
	}

	u, err := url.Parse(cfg.Target)
	if err != nil || u.Host == "" {
		return cfg.SiteConfigs.Defaults
	}

	return cfg.SiteConfigs.GetSiteConfig(u.Host)
}

// outputResult writes the result in the requested format.
func outputResult(cmd *cobra.Command, cfg *config.Config, result *model.Result) error {
	// Determine output destination
	var output io.Writer = cmd.OutOrStdout()
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output)
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	_, err := writer.Write(result)
	return err
}

// saveResult records the lookup in the history database.
func saveResult(ctx context.Context, cfg *config.Config, result *model.Result) error {
	db, err := history.Open(cfg.DataDir, history.DefaultOptions())
	if err != nil {
		return err
	}
	defer db.Close()

	return db.Save(ctx, result)
}
