package cli

import (
	"fmt"

	"github.com/alexanderramin/ddtrack/internal/cli/formatter"
	"github.com/alexanderramin/ddtrack/internal/domain"
	"github.com/spf13/cobra"
)

func newItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage checklist items",
	}

	cmd.AddCommand(
		newItemAddCmd(app),
		newItemListCmd(app),
		newItemShowCmd(app),
		newItemUpdateCmd(app),
		newItemRemoveCmd(app),
		newItemCategoriesCmd(app),
	)

	return cmd
}

func newItemAddCmd(app *App) *cobra.Command {
	var (
		propertyID                                int64
		category, name, status, party, due, notes string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a checklist item to a property",
		RunE: func(cmd *cobra.Command, args []string) error {
			dueDate, err := domain.ParseDate(due)
			if err != nil {
				return err
			}
			item := &domain.ChecklistItem{
				PropertyID:       propertyID,
				Category:         category,
				ItemName:         name,
				Status:           domain.ItemStatus(status),
				ResponsibleParty: party,
				DueDate:          dueDate,
				Notes:            notes,
			}
			if err := app.Items.Create(cmd.Context(), item); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added item %s [%d] to %s\n", item.ItemName, item.ID, item.Category)
			return nil
		},
	}

	cmd.Flags().Int64Var(&propertyID, "property", 0, "Property ID")
	cmd.Flags().StringVar(&category, "category", "", "Category")
	cmd.Flags().StringVar(&name, "name", "", "Item name")
	cmd.Flags().StringVar(&status, "status", string(domain.ItemNotStarted), "Status")
	cmd.Flags().StringVar(&party, "responsible", "", "Responsible party")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes")
	_ = cmd.MarkFlagRequired("property")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newItemListCmd(app *App) *cobra.Command {
	var (
		propertyID       int64
		category, status string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a property's checklist items",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.Properties.GetByID(cmd.Context(), propertyID); err != nil {
				return err
			}
			items, err := app.Items.List(cmd.Context(), domain.ItemFilter{
				PropertyID: propertyID,
				Category:   category,
				Status:     status,
			})
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No items found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatItemList(items, app.now()))
			return nil
		},
	}

	cmd.Flags().Int64Var(&propertyID, "property", 0, "Property ID")
	cmd.Flags().StringVar(&category, "category", domain.FilterAll, "Category filter")
	cmd.Flags().StringVar(&status, "status", domain.FilterAll, "Status filter")
	_ = cmd.MarkFlagRequired("property")

	return cmd
}

func newItemShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a checklist item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "item")
			if err != nil {
				return err
			}
			item, err := app.Items.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatItemDetail(item, app.now()))
			return nil
		},
	}
}

// newItemUpdateCmd changes only the flags given; --due "" clears the date.
func newItemUpdateCmd(app *App) *cobra.Command {
	var status, party, due, notes string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update an item's status, responsible party, due date or notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "item")
			if err != nil {
				return err
			}
			current, err := app.Items.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}

			upd := domain.ItemUpdate{
				Status:           current.Status,
				ResponsibleParty: current.ResponsibleParty,
				DueDate:          current.DueDate,
				Notes:            current.Notes,
			}
			f := cmd.Flags()
			if f.Changed("status") {
				upd.Status = domain.ItemStatus(status)
			}
			if f.Changed("responsible") {
				upd.ResponsibleParty = party
			}
			if f.Changed("notes") {
				upd.Notes = notes
			}
			if f.Changed("due") {
				if upd.DueDate, err = domain.ParseDate(due); err != nil {
					return err
				}
			}

			item, err := app.Items.Update(cmd.Context(), id, upd)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s [%d]: %s\n", item.ItemName, item.ID, item.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Status (Not Started, In Progress, Under Review, Complete, Issue Flagged)")
	cmd.Flags().StringVar(&party, "responsible", "", "Responsible party")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD), empty to clear")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes")
	return cmd
}

func newItemRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a checklist item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "item")
			if err != nil {
				return err
			}
			item, err := app.Items.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			ok, err := confirm(app, yes, fmt.Sprintf("Delete item %q?", item.ItemName))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
			if err := app.Items.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted item %s [%d]\n", item.ItemName, item.ID)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

func newItemCategoriesCmd(app *App) *cobra.Command {
	var propertyID int64

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List distinct categories, for one property or all",
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, err := app.Items.ListCategories(cmd.Context(), propertyID)
			if err != nil {
				return err
			}
			if len(cats) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No categories found.")
				return nil
			}
			for _, c := range cats {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&propertyID, "property", 0, "Property ID (0 for all)")
	return cmd
}
