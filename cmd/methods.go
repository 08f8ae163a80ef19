package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/abi"
	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/ui"
)

var methodsCmd = &cobra.Command{
	Use:   "methods",
	Short: "List the contract's read and write functions",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := panelABI()
		if err != nil {
			return err
		}

		printSection := func(label string, fns []abi.Entry) {
			if len(fns) == 0 {
				return
			}
			fmt.Printf("%s\n", ui.StyleTitle.Render(fmt.Sprintf("%s (%d)", label, len(fns))))
			table := ui.NewTable([]ui.Column{
				{Title: "SELECTOR", Width: 10},
				{Title: "SIGNATURE", Width: 46},
				{Title: "KEY", Width: 52},
			})
			for _, fn := range fns {
				table.AddRow(ui.Row{fn.Selector(), fn.Signature(), fn.MethodKey()})
			}
			fmt.Println(table.Render())
		}

		printSection("Read", abi.ReadFunctions(entries))
		printSection("Write", abi.WriteFunctions(entries))
		return nil
	},
}
