package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/ddtrack/internal/config"
	"github.com/alexanderramin/ddtrack/internal/domain"
	"github.com/alexanderramin/ddtrack/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// App holds the services and settings used by CLI commands.
type App struct {
	Properties service.PropertyService
	Items      service.ItemService
	Templates  service.TemplateService
	Stats      service.StatsService
	Reports    service.ReportService

	Config *config.Config
	Logger *zap.Logger
	Now    func() time.Time

	// IsInteractive reports whether stdin is a terminal that can answer prompts.
	IsInteractive func() bool
	// Confirm overrides the huh confirmation prompt.
	Confirm func(title string) (bool, error)
	// Setup wires services from the resolved configuration. It runs once,
	// before any command, when Config is still nil.
	Setup func(cfg *config.Config) error
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "ddtrack" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:           "ddtrack",
		Short:         "Due diligence checklist tracker for real estate acquisitions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Config != nil {
				return nil
			}
			cfg, err := config.Load(config.Options{File: cfgFile, Flags: cmd.Flags()})
			if err != nil {
				return err
			}
			app.Config = cfg
			if app.Setup != nil {
				return app.Setup(cfg)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ./config.yaml or ~/.ddtrack/config.yaml)")
	root.PersistentFlags().String("db", "", "SQLite database path (default ~/.ddtrack/ddtrack.db)")
	root.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")

	root.AddCommand(
		newPropertyCmd(app),
		newItemCmd(app),
		newTemplateCmd(app),
		newDashboardCmd(app),
		newPortfolioCmd(app),
		newReportCmd(app),
		newServeCmd(app),
	)

	return root
}

func parseID(raw, what string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s id %q", domain.ErrValidation, what, raw)
	}
	return id, nil
}

// windowOr returns days when the flag was given, otherwise def.
func windowOr(cmd *cobra.Command, flag string, days, def int) int {
	if cmd.Flags().Changed(flag) {
		return days
	}
	return def
}
