package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"worldvoice.in/web/internal/cms"
	"worldvoice.in/web/internal/config"
	"worldvoice.in/web/internal/handlers"
	"worldvoice.in/web/internal/observability"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type rootFlags struct {
	envFile    string
	contentDir string
	logLevel   string
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:   "web",
		Short: "World Voice web front-end",
		Long: `Serves World Voice pages with their search metadata and structured data.

Configuration is read from the environment (WV_* keys) and an optional .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "dotenv file with configuration overrides")
	root.PersistentFlags().StringVar(&flags.contentDir, "content-dir", "", "content directory (overrides WV_CONTENT_DIR)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (overrides WV_LOG_LEVEL)")

	root.AddCommand(newServeCommand(flags), newMetaCommand(flags))
	return root
}

// loadConfig resolves configuration and applies command-line overrides.
func (f *rootFlags) loadConfig() (config.Config, error) {
	overrides := map[string]string{}
	if f.contentDir != "" {
		overrides["WV_CONTENT_DIR"] = f.contentDir
	}
	if f.logLevel != "" {
		overrides["WV_LOG_LEVEL"] = f.logLevel
	}
	return config.Load(config.WithEnvFile(f.envFile), config.WithEnvMap(overrides))
}

// app bundles the wired dependencies shared by the commands.
type app struct {
	cfg     config.Config
	logger  *zap.Logger
	metrics *observability.Metrics
	content *cms.Client
	pages   *handlers.Server
}

func newApp(cfg config.Config, logger *zap.Logger) *app {
	if logger == nil {
		logger = zap.NewNop()
	}
	content := cms.NewClient(cfg.Content.APIURL)
	content.SetContentDir(cfg.Content.Dir)
	content.SetLogger(logger.Named("cms"))

	metrics := observability.NewMetrics()
	pages := handlers.New(content, handlers.Options{
		SEO:           cfg.SEO(),
		Defaults:      cfg.Defaults(),
		SiteURL:       cfg.Identity.SiteURL,
		HomePostLimit: cfg.Content.HomePostLimit,
		Metrics:       metrics,
	})
	return &app{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
		content: content,
		pages:   pages,
	}
}
