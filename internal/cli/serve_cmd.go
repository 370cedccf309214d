package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/ddtrack/internal/api"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := app.Logger
			if logger == nil {
				logger = zap.NewNop()
			}
			srv := api.New(api.Services{
				Properties: app.Properties,
				Items:      app.Items,
				Templates:  app.Templates,
				Stats:      app.Stats,
				Reports:    app.Reports,
			},
				api.WithLogger(logger),
				api.WithWindows(api.Windows{
					DueSoonDays:  app.Config.DueSoon.Days,
					RiskDays:     app.Config.Risk.Days,
					DeadlineDays: app.Config.Deadlines.Days,
				}),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "Serving on http://%s\n", app.Config.HTTP.Addr)
			return srv.ListenAndServe(ctx, app.Config.HTTP.Addr)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (default 127.0.0.1:8080)")
	return cmd
}

