package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/template"
	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/ui"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage saved panel templates",
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		templates := templateStore().Load()
		if len(templates) == 0 {
			fmt.Println(ui.Meta("no saved templates"))
			return nil
		}
		table := ui.NewTable([]ui.Column{
			{Title: "NAME", Width: 24},
			{Title: "CONTRACT", Width: 44},
			{Title: "METHODS", Width: 8},
			{Title: "UPDATED", Width: 22},
		})
		for _, t := range templates {
			table.AddRow(ui.Row{
				t.Name,
				t.Panel.ContractAddress,
				fmt.Sprintf("%d", len(t.MethodStates)),
				t.UpdatedAt,
			})
		}
		fmt.Println(table.Render())
		return nil
	},
}

var templateSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save the current panel as a template",
	Long: `Save the current panel configuration under a name. Saving again
with the same name updates that template in place; method parameter
drafts are captured when saving from the dashboard.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		saved, err := templateStore().Save(template.Template{
			Name:         args[0],
			Panel:        *panel,
			MethodStates: make(map[string]template.MethodDraft),
		})
		if err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("saved template %q (%s)", saved.Name, saved.ID)))
		return nil
	},
}

var templateUseCmd = &cobra.Command{
	Use:   "use <id-or-name>",
	Short: "Restore a template's panel configuration",
	Long: `Replace the current panel with a saved template's panel snapshot
and save it. Method drafts stay with the template; load them in the
dashboard with --template.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := templateStore().Get(args[0])
		if err != nil {
			return err
		}
		panel.Apply(t.Panel)
		if err := panel.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("panel restored from template %q", t.Name)))
		if t.Panel.ContractAddress != "" {
			fmt.Println(ui.Meta("  contract " + t.Panel.ContractAddress))
		}
		return nil
	},
}

var templateDeleteCmd = &cobra.Command{
	Use:   "delete <id-or-name>",
	Short: "Delete a saved template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := templateStore()
		t, err := store.Get(args[0])
		if err != nil {
			return err
		}
		if !ui.ConfirmDanger(fmt.Sprintf("Delete template %q?", t.Name)) {
			fmt.Println(ui.Meta("aborted"))
			return nil
		}
		if err := store.Delete(t.ID); err != nil {
			return err
		}
		fmt.Println(ui.Success("deleted " + t.Name))
		return nil
	},
}

var templateExportOut string

var templateExportCmd = &cobra.Command{
	Use:   "export [id-or-name...]",
	Short: "Export templates to JSON",
	Long:  `Export the named templates (or all of them) as a JSON bundle.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := templateStore().Export(args)
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(file, "", "  ")
		if err != nil {
			return err
		}
		if templateExportOut == "" {
			fmt.Println(string(data))
			return nil
		}
		if err := os.WriteFile(templateExportOut, data, 0o644); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("exported %d template(s) to %s", len(file.Templates), templateExportOut)))
		return nil
	},
}

var templateImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import templates from a JSON bundle",
	Long: `Import templates from an export bundle, a bare template list, or a
single template object. Imported templates colliding with existing ids
get fresh ids.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		imported, err := templateStore().Import(data)
		if err != nil {
			return err
		}
		for _, t := range imported {
			fmt.Println(ui.Success("imported " + t.Name))
		}
		return nil
	},
}

func init() {
	templateExportCmd.Flags().StringVarP(&templateExportOut, "out", "o", "", "write the bundle to a file instead of stdout")
	templateCmd.AddCommand(
		templateListCmd,
		templateSaveCmd,
		templateUseCmd,
		templateDeleteCmd,
		templateExportCmd,
		templateImportCmd,
	)
}
