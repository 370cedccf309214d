package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/ddtrack/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTemplateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage reusable checklist templates",
	}

	cmd.AddCommand(
		newTemplateListCmd(app),
		newTemplateShowCmd(app),
		newTemplateSaveCmd(app),
		newTemplateApplyCmd(app),
		newTemplateRemoveCmd(app),
		newTemplateExportCmd(app),
		newTemplateImportCmd(app),
	)

	return cmd
}

func newTemplateListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := app.Templates.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(templates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No templates found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTemplateList(templates))
			return nil
		},
	}
}

func newTemplateShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a template and its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "template")
			if err != nil {
				return err
			}
			t, err := app.Templates.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			items, err := app.Templates.ListItems(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTemplateDetail(t, items))
			return nil
		},
	}
}

func newTemplateSaveCmd(app *App) *cobra.Command {
	var (
		propertyID        int64
		name, description string
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save a property's checklist as a template",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.Templates.SaveAsTemplate(cmd.Context(), propertyID, name, description)
			if err != nil {
				return err
			}
			items, err := app.Templates.ListItems(cmd.Context(), t.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved template %s [%d] with %d items\n", t.Name, t.ID, len(items))
			return nil
		},
	}

	cmd.Flags().Int64Var(&propertyID, "property", 0, "Source property ID")
	cmd.Flags().StringVar(&name, "name", "", "Template name")
	cmd.Flags().StringVar(&description, "description", "", "Template description")
	_ = cmd.MarkFlagRequired("property")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newTemplateApplyCmd(app *App) *cobra.Command {
	var propertyID, templateID int64

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Add a template's items to a property",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := app.Templates.ApplyTemplate(cmd.Context(), propertyID, templateID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d items to property %d\n", n, propertyID)
			return nil
		},
	}

	cmd.Flags().Int64Var(&propertyID, "property", 0, "Target property ID")
	cmd.Flags().Int64Var(&templateID, "template", 0, "Template ID")
	_ = cmd.MarkFlagRequired("property")
	_ = cmd.MarkFlagRequired("template")

	return cmd
}

func newTemplateRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "template")
			if err != nil {
				return err
			}
			t, err := app.Templates.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			ok, err := confirm(app, yes, fmt.Sprintf("Delete template %q?", t.Name))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
			if err := app.Templates.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted template %s [%d]\n", t.Name, t.ID)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

func newTemplateExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export ID",
		Short: "Write a template as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "template")
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				return app.Templates.ExportTemplate(cmd.Context(), id, cmd.OutOrStdout())
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			if err := app.Templates.ExportTemplate(cmd.Context(), id, f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}

func newTemplateImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Create a template from a YAML file (- for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening %s: %w", args[0], err)
				}
				defer f.Close()
				r = f
			}
			t, err := app.Templates.ImportTemplate(cmd.Context(), r)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported template %s [%d]\n", t.Name, t.ID)
			return nil
		},
	}
}
