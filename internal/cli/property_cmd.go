package cli

import (
	"fmt"

	"github.com/alexanderramin/ddtrack/internal/cli/formatter"
	"github.com/alexanderramin/ddtrack/internal/domain"
	"github.com/spf13/cobra"
)

func newPropertyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "property",
		Aliases: []string{"prop"},
		Short:   "Manage properties",
	}

	cmd.AddCommand(
		newPropertyAddCmd(app),
		newPropertyListCmd(app),
		newPropertyShowCmd(app),
		newPropertyUpdateCmd(app),
		newPropertyRemoveCmd(app),
	)

	return cmd
}

func newPropertyAddCmd(app *App) *cobra.Command {
	var name, address, assetType, status string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a property",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Property{
				Name:      name,
				Address:   address,
				AssetType: domain.AssetType(assetType),
				Status:    domain.PropertyStatus(status),
			}
			if err := app.Properties.Create(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created property %s [%d]\n", p.Name, p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Property name")
	cmd.Flags().StringVar(&address, "address", "", "Street address")
	cmd.Flags().StringVar(&assetType, "type", string(domain.AssetOther), "Asset type (Office, Retail, Multifamily, Industrial, Mixed-Use, Land, Hospitality, Other)")
	cmd.Flags().StringVar(&status, "status", string(domain.PropertyActive), "Status (Active, On Hold, Closed, Cancelled)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPropertyListCmd(app *App) *cobra.Command {
	var active bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List properties",
		RunE: func(cmd *cobra.Command, args []string) error {
			props, err := app.Properties.List(cmd.Context(), active)
			if err != nil {
				return err
			}
			if len(props) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No properties found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPropertyList(props))
			return nil
		},
	}

	cmd.Flags().BoolVar(&active, "active", false, "Only active properties")
	return cmd
}

func newPropertyShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "property")
			if err != nil {
				return err
			}
			p, err := app.Properties.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			stats, err := app.Stats.OverallStats(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPropertyDetail(p, stats))
			return nil
		},
	}
}

func newPropertyUpdateCmd(app *App) *cobra.Command {
	var name, address, assetType, status string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update property fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "property")
			if err != nil {
				return err
			}
			p, err := app.Properties.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}

			f := cmd.Flags()
			if f.Changed("name") {
				p.Name = name
			}
			if f.Changed("address") {
				p.Address = address
			}
			if f.Changed("type") {
				p.AssetType = domain.AssetType(assetType)
			}
			if f.Changed("status") {
				p.Status = domain.PropertyStatus(status)
			}

			if err := app.Properties.Update(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated property %s [%d]\n", p.Name, p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Property name")
	cmd.Flags().StringVar(&address, "address", "", "Street address")
	cmd.Flags().StringVar(&assetType, "type", "", "Asset type")
	cmd.Flags().StringVar(&status, "status", "", "Status (Active, On Hold, Closed, Cancelled)")
	return cmd
}

func newPropertyRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a property and all of its checklist items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "property")
			if err != nil {
				return err
			}
			p, err := app.Properties.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}

			ok, err := confirm(app, yes, fmt.Sprintf("Delete %s and all of its checklist items?", p.Name))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}

			if err := app.Properties.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted property %s [%d]\n", p.Name, p.ID)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}
