package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"sisuva-scraper/internal/configutil"
	"sisuva-scraper/internal/serviceutil"
	"sisuva-scraper/internal/sis"
	"sisuva-scraper/internal/telemetry"

	"github.com/spf13/cobra"
)

type Config struct {
	Endpoints sis.Endpoints `json:"endpoints"`
	OutputDir string        `json:"output_dir"`
	// Db is the path of a sqlite database results are also saved to, empty means no database.
	Db string `json:"db"`
}

func defaultConfig() Config {
	return Config{
		Endpoints: sis.DefaultEndpoints(),
		OutputDir: ".",
	}
}

var (
	configPath *string
	outputDir  *string
	dbPath     *string
	showTable  *bool
	verbose    *bool
)

// set up in PersistentPreRun
var (
	config    Config
	tel       telemetry.API
	providers telemetry.Telemetry
)

func init() {
	flags := rootCmd.PersistentFlags()
	configPath = flags.String("config", "sis.json5", "The config file, sis.local.json5 next to it is merged over it.")
	outputDir = flags.String("out", "", "The directory to write json files to, overrides output_dir in the config.")
	dbPath = flags.String("db", "", "A sqlite database to also save results to, overrides db in the config.")
	showTable = flags.Bool("table", false, "Print the results as a table.")
	verbose = flags.BoolP("verbose", "v", false, "Enable debug logging.")
}

var rootCmd = &cobra.Command{
	Use:   "sis-cli",
	Short: "sis-cli fetches department and course listings from the UVA SIS class search.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)
		tel = telemetry.SlogAPI{}

		var err error
		providers, err = telemetry.SetupFromEnv(cmd.Context(), "sis-cli")
		if err != nil {
			serviceutil.Fatal("setup telemetry", err)
		}

		config, err = configutil.ReadConfigWithDefaults(*configPath, defaultConfig())
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}
		if cmd.Flags().Changed("out") {
			config.OutputDir = *outputDir
		}
		if cmd.Flags().Changed("db") {
			config.Db = *dbPath
		}
		slog.Debug("loaded config", "output_dir", config.OutputDir, "db", config.Db)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		err := providers.Shutdown(context.Background())
		if err != nil {
			slog.Warn("failed to shutdown telemetry", "err", err)
		}
	},
}

func newService() sis.Service {
	return sis.NewService(sis.Options{
		Endpoints: config.Endpoints,
		OutputDir: config.OutputDir,
	}, telemetry.NewScopedAPI("sis", tel))
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
