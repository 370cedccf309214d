package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

func newReportCmd(app *App) *cobra.Command {
	var (
		propertyID int64
		portfolio  bool
		out        string
		render     bool
		days       int
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a markdown status report",
		Long: "Generate a markdown status report for one property (--property) or for\n" +
			"all active properties (--portfolio). Write it to a file with --out or\n" +
			"render it in the terminal with --render.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (propertyID == 0) == !portfolio {
				return fmt.Errorf("exactly one of --property or --portfolio is required")
			}

			var (
				md  string
				err error
			)
			if portfolio {
				md, err = app.Reports.PortfolioReport(cmd.Context(), app.Config.Risk.Days, windowOr(cmd, "days", days, app.Config.Deadlines.Days))
			} else {
				md, err = app.Reports.PropertyReport(cmd.Context(), propertyID, windowOr(cmd, "days", days, app.Config.DueSoon.Days))
			}
			if err != nil {
				return err
			}

			if out != "" {
				if err := os.WriteFile(out, []byte(md), 0o644); err != nil {
					return fmt.Errorf("writing report: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
				return nil
			}

			if render {
				r, err := glamour.NewTermRenderer(
					glamour.WithAutoStyle(),
					glamour.WithWordWrap(100),
				)
				if err != nil {
					return fmt.Errorf("creating renderer: %w", err)
				}
				if md, err = r.Render(md); err != nil {
					return fmt.Errorf("rendering report: %w", err)
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		},
	}

	cmd.Flags().Int64VarP(&propertyID, "property", "p", 0, "Property ID")
	cmd.Flags().BoolVar(&portfolio, "portfolio", false, "Report on all active properties")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the markdown to this file")
	cmd.Flags().BoolVar(&render, "render", false, "Render markdown for the terminal")
	cmd.Flags().IntVar(&days, "days", 0, "Due-soon (property) or deadline (portfolio) window")

	return cmd
}
