package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/nestoria/config"
	"github.com/s0up4200/nestoria/filter"
	"github.com/s0up4200/nestoria/nestoria"
)

var (
	cfgFile  string
	cfg      *config.Config
	logger   zerolog.Logger
	client   *nestoria.Client
	filters  *filter.Manager
	registry *prometheus.Registry

	// Command flags
	countryCode string
	useCache    bool
	jsonOutput  bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "nestoria",
	Short: "Query the Nestoria property listings API",
	Long: `nestoria is a CLI for the Nestoria property listings API. It searches
listings, looks up average prices for a location and lists the keywords
that can be used to narrow a search.`,
	PersistentPreRunE:  initializeApp,
	PersistentPostRunE: reportMetrics,
	SilenceUsage:       true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&countryCode, "country", "c", "", "country code (au, br, de, es, fr, in, it, uk)")
	rootCmd.PersistentFlags().BoolVar(&useCache, "cache", false, "cache responses for cache.max_age seconds")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print raw JSON results")
}

// initializeApp initializes the configuration and client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Command line overrides
	if cmd.Flags().Changed("country") {
		cfg.Country = countryCode
	}
	if cmd.Flags().Changed("cache") {
		cfg.Cache.Enabled = useCache
	}

	country, err := nestoria.ParseCountry(cfg.Country)
	if err != nil {
		return err
	}

	opts := []nestoria.Option{
		nestoria.WithTimeout(cfg.HTTP.Timeout),
		nestoria.WithUserAgent(cfg.HTTP.UserAgent),
	}
	if cfg.HTTP.Endpoint != "" {
		opts = append(opts, nestoria.WithEndpoint(cfg.HTTP.Endpoint))
	}
	if cfg.Cache.Enabled {
		opts = append(opts, nestoria.WithCache(cfg.Cache.MaxAgeDuration()))
	}
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		opts = append(opts, nestoria.WithMetrics(nestoria.NewMetrics(registry)))
	}

	client, err = nestoria.NewClient(country, logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to create Nestoria client: %w", err)
	}

	filters = filter.NewManager()
	if err := filters.RegisterFilters(cfg.Filter.Presets); err != nil {
		return err
	}

	logger.Debug().
		Str("country", country.String()).
		Bool("cache", cfg.Cache.Active()).
		Msg("Nestoria client ready")

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
