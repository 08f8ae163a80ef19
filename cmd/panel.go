package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/chain"
	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/ens"
	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/rpc"
	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/ui"
)

var panelCmd = &cobra.Command{
	Use:   "panel",
	Short: "Manage the panel configuration",
}

var panelShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current panel",
	RunE: func(cmd *cobra.Command, args []string) error {
		abiSummary := "not set"
		if panel.ABIText != "" {
			abiSummary = fmt.Sprintf("%d bytes", len(panel.ABIText))
		}
		fmt.Println(ui.KeyValueBlock("Panel", [][2]string{
			{"rpcs", strings.Join(panel.RPCList(), ", ")},
			{"selected rpc", panel.SelectedRPC},
			{"chain id", panel.ChainID},
			{"contract", panel.ContractAddress},
			{"explorer", panel.ExplorerBase},
			{"explorer api", panel.ExplorerAPI},
			{"abi", abiSummary},
		}))
		fmt.Println(ui.Meta("Workspace: " + panel.Dir()))
		return nil
	},
}

var panelSetCmd = &cobra.Command{
	Use:   "set <field> <value>",
	Short: "Set a panel field",
	Long: `Set one panel field and save.

Fields:
  rpcs          newline- or comma-separated RPC URL list
  rpc           the selected RPC URL (must be in the list)
  chain         chain id (decimal)
  contract      contract address
  explorer      explorer web base URL
  explorer-api  Etherscan-compatible API base URL
  api-key       explorer API key`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		field, value := args[0], args[1]
		switch field {
		case "rpcs":
			panel.SetRPCListText(strings.ReplaceAll(value, ",", "\n"))
		case "rpc":
			found := false
			for _, u := range panel.RPCList() {
				if u == value {
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("%q is not in the RPC list; set rpcs first", value)
			}
			panel.SelectedRPC = value
		case "chain":
			panel.ChainID = value
		case "contract":
			if ens.IsName(value) {
				if panel.SelectedRPC == "" {
					return fmt.Errorf("resolving %q needs an RPC; set rpcs first", value)
				}
				resolved, err := ens.Resolve(context.Background(), value, chain.NewEVMClient(panel.SelectedRPC))
				if err != nil {
					return err
				}
				fmt.Println(ui.Meta(value + " → " + resolved))
				value = resolved
			}
			panel.ContractAddress = value
		case "explorer":
			panel.ExplorerBase = value
		case "explorer-api":
			panel.ExplorerAPI = value
		case "api-key":
			panel.ExplorerAPIKey = value
		default:
			return fmt.Errorf("unknown field %q", field)
		}
		if err := panel.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("panel %s updated", field)))
		return nil
	},
}

var panelRPCsFastest bool

var panelRPCsCmd = &cobra.Command{
	Use:   "rpcs",
	Short: "Probe the RPC list and select a healthy endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		urls := panel.RPCList()
		if len(urls) == 0 {
			return fmt.Errorf("RPC list is empty; run: evmdash panel set rpcs <urls>")
		}

		sp := ui.NewSpinner("probing RPC endpoints…")
		sp.Start()
		endpoints := rpc.ProbeAll(context.Background(), urls, nil)
		sp.Stop()

		table := ui.NewTable([]ui.Column{
			{Title: "URL", Width: 44},
			{Title: "LATENCY", Width: 10},
			{Title: "BLOCK", Width: 12},
			{Title: "STATUS", Width: 8},
		})
		for _, e := range endpoints {
			status := "ok"
			if !e.Healthy {
				status = "down"
			}
			table.AddRow(ui.Row{e.URL, e.Latency.String(), fmt.Sprintf("%d", e.BlockNumber), status})
		}
		fmt.Println(table.Render())

		var winner rpc.Endpoint
		var err error
		if panelRPCsFastest {
			winner, err = rpc.Fastest(endpoints)
		} else {
			winner, err = rpc.Failover(endpoints)
		}
		if err != nil {
			return err
		}
		panel.SelectedRPC = winner.URL
		if err := panel.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success("selected RPC: " + winner.URL))
		return nil
	},
}

func init() {
	panelRPCsCmd.Flags().BoolVar(&panelRPCsFastest, "fastest", false, "pick the lowest-latency endpoint instead of the first healthy one")
	panelCmd.AddCommand(panelShowCmd, panelSetCmd, panelRPCsCmd)
}
