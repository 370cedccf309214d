package cli

import (
	"fmt"

	"github.com/alexanderramin/ddtrack/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newPortfolioCmd(app *App) *cobra.Command {
	summary := newPortfolioSummaryCmd(app)

	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Cross-property views of active deals",
		RunE:  summary.RunE,
	}

	cmd.AddCommand(
		summary,
		newPortfolioRiskCmd(app),
		newPortfolioFlaggedCmd(app),
		newPortfolioHeatmapCmd(app),
		newPortfolioDeadlinesCmd(app),
	)

	return cmd
}

func newPortfolioSummaryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Totals and per-property progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := app.Stats.PortfolioSummary(cmd.Context())
			if err != nil {
				return err
			}
			props, err := app.Stats.PropertiesWithStats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPortfolioSummary(sum, props))
			return nil
		},
	}
}

func newPortfolioRiskCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Properties with many open items due soon",
		RunE: func(cmd *cobra.Command, args []string) error {
			days = windowOr(cmd, "days", days, app.Config.Risk.Days)
			rows, err := app.Stats.PropertiesAtRisk(cmd.Context(), days)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRisk(rows, days, app.Config.Risk.Threshold))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Window in days (default from config)")
	return cmd
}

func newPortfolioFlaggedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "flagged",
		Short: "Flagged items across all active properties",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := app.Stats.AllFlaggedItemsByProperty(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatFlaggedByProperty(items))
			return nil
		},
	}
}

func newPortfolioHeatmapCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "heatmap",
		Short: "Category completion per property",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := app.Stats.CompletionMatrix(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHeatmap(m))
			return nil
		},
	}
}

func newPortfolioDeadlinesCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "deadlines",
		Short: "Open items due soon, grouped by urgency",
		RunE: func(cmd *cobra.Command, args []string) error {
			days = windowOr(cmd, "days", days, app.Config.Deadlines.Days)
			ds, err := app.Stats.UpcomingDeadlines(cmd.Context(), days)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDeadlines(ds, days))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Window in days (default from config)")
	return cmd
}
