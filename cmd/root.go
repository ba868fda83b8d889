package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/s0up4200/ytchannel/config"
	"github.com/s0up4200/ytchannel/output"
	"github.com/s0up4200/ytchannel/youtube"
)

// Client is everything the commands need from the YouTube client
type Client interface {
	youtube.API
	youtube.CommentFetcher
}

var (
	cfgFile    string
	apiKeys    string
	format     string
	pretty     bool
	outputPath string
	logLevel   string

	appVersion = "dev"

	cfg    *config.Config
	logger zerolog.Logger
	client Client

	// outputFs receives --output files
	outputFs afero.Fs = afero.NewOsFs()

	// newClient builds the client once config and logger are ready
	newClient = func(cfg *config.Config, logger zerolog.Logger) (Client, error) {
		return youtube.NewClient(cfg.YouTube.APIKeys, logger,
			youtube.WithBaseURL(cfg.YouTube.BaseURL),
			youtube.WithTimeout(cfg.YouTube.Timeout),
			youtube.WithMaxAttempts(cfg.YouTube.MaxAttempts),
			youtube.WithBackoffUnit(cfg.YouTube.BackoffUnit),
			youtube.WithMaxCommentPages(cfg.YouTube.MaxCommentPages),
			youtube.WithUserAgent(userAgent()),
		)
	}
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ytchannel",
	Short: "Query YouTube channels, videos and comments within API quota",
	Long: `ytchannel fetches channel profiles, recent uploads, video statistics and
comment threads from the YouTube Data API v3.

Several API keys can be given as a comma-separated list. When a key runs out
of quota the next one is used automatically, and network failures are retried
with exponential backoff.`,
	PersistentPreRunE: initializeApp,
	SilenceErrors:     true,
	SilenceUsage:      true,
}

// SetVersion sets the version reported by --version
func SetVersion(version, buildTime string) {
	appVersion = version
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("ytchannel {{.Version}} (built %s)\n", buildTime))
}

func userAgent() string {
	return "ytchannel/" + appVersion
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiKeys, "keys", "", "API key or comma-separated list of keys")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "", "output format: json, tree or table")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "indent JSON output")
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "write output to a file instead of stdout")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
}

// initializeApp loads .env and configuration, then creates the client
func initializeApp(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	var err error
	cfg, err = config.Load(cfgFile, flagOverrides(cmd))
	if err != nil {
		return err
	}

	logger = setupLogger(cfg.Logging, os.Stderr)

	client, err = newClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create YouTube client: %w", err)
	}

	logger.Debug().
		Str("format", cfg.Output.Format).
		Int("max_attempts", cfg.YouTube.MaxAttempts).
		Msg("Initialized")

	return nil
}

// flagOverrides maps explicitly set persistent flags onto config keys
func flagOverrides(cmd *cobra.Command) map[string]any {
	overrides := make(map[string]any)
	flags := cmd.Flags()
	if flags.Changed("keys") {
		overrides["youtube.api_keys"] = apiKeys
	}
	if flags.Changed("format") {
		overrides["output.format"] = format
	}
	if flags.Changed("pretty") {
		overrides["output.pretty"] = pretty
	}
	if flags.Changed("log-level") {
		overrides["logging.level"] = strings.ToLower(logLevel)
	}
	return overrides
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig, out *os.File) zerolog.Logger {
	// Set log level
	level := zerolog.WarnLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(out).With().Timestamp().Logger()
	}

	// Console format
	console := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(out.Fd()),
	}

	return zerolog.New(console).With().Timestamp().Logger()
}

// render opens the configured destination and hands a renderer to fn
func render(cmd *cobra.Command, fn func(*output.Renderer) error) (err error) {
	f, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	var w io.WriteCloser
	w, err = output.Open(outputFs, outputPath, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := w.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close output: %w", closeErr)
		}
	}()

	if err := fn(output.NewRenderer(w, f, cfg.Output.Pretty)); err != nil {
		return err
	}

	if outputPath != "" && outputPath != "-" {
		logger.Info().Str("path", outputPath).Msg("Output written")
	}
	return nil
}
