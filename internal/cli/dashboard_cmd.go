package cli

import (
	"fmt"

	"github.com/alexanderramin/ddtrack/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newDashboardCmd(app *App) *cobra.Command {
	var (
		propertyID int64
		days       int
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show a property's progress, flagged issues and upcoming items",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := app.Properties.GetByID(ctx, propertyID)
			if err != nil {
				return err
			}

			v := formatter.DashboardView{
				Property:    p,
				DueSoonDays: windowOr(cmd, "days", days, app.Config.DueSoon.Days),
				Now:         app.now(),
			}
			if v.Stats, err = app.Stats.OverallStats(ctx, propertyID); err != nil {
				return err
			}
			if v.Categories, err = app.Stats.SummaryByCategory(ctx, propertyID); err != nil {
				return err
			}
			if v.Flagged, err = app.Stats.FlaggedItems(ctx, propertyID); err != nil {
				return err
			}
			if v.DueSoon, err = app.Stats.ItemsDueSoon(ctx, propertyID, v.DueSoonDays); err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDashboard(v))
			return nil
		},
	}

	cmd.Flags().Int64VarP(&propertyID, "property", "p", 0, "Property ID")
	cmd.Flags().IntVar(&days, "days", 0, "Due-soon window in days (default from config)")
	_ = cmd.MarkFlagRequired("property")

	return cmd
}
