package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/rpc"
	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/ui"
)

var (
	callScales  []string
	callBestRPC bool
)

var callCmd = &cobra.Command{
	Use:   "call <function> [args...]",
	Short: "Call a read-only contract function",
	Long: `Call a read-only (view/pure) function on the panel's contract.

Arguments are positional, one per ABI input. Tuple and tuple-array inputs
take a JSON literal. Amount inputs can be entered as decimals and scaled
with --scale index=exponent.

Examples:
  evmdash call totalSupply
  evmdash call balanceOf 0xYourAddress
  evmdash call allowance 0xOwner 0xSpender
  evmdash call quote '["0xToken", "1.5"]' --scale 0=18`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := panelABI()
		if err != nil {
			return err
		}
		fn, err := findMethod(entries, args[0])
		if err != nil {
			return err
		}
		if !fn.IsReadFunction() {
			return fmt.Errorf("%q is a write function; use: evmdash send %s", fn.Name, fn.Name)
		}
		draft, err := positionalDraft(fn, args[1:], callScales)
		if err != nil {
			return err
		}

		ctx := context.Background()
		if callBestRPC {
			url, err := rpc.SelectBest(ctx, panel.RPCList(), false)
			if err != nil {
				return err
			}
			panel.SelectedRPC = url
			log.Debug().Str("rpc", url).Msg("selected RPC by probing")
		}

		sp := ui.NewSpinner("calling " + fn.Name + "…")
		sp.Start()
		outputs, err := buildReader().Read(ctx, panel.ContractAddress, fn, draft)
		sp.Stop()
		if err != nil {
			return err
		}

		pairs := make([][2]string, len(outputs))
		for i, out := range outputs {
			name := fmt.Sprintf("out%d", i)
			if i < len(fn.Outputs) && fn.Outputs[i].Name != "" {
				name = fn.Outputs[i].Name
			}
			pairs[i] = [2]string{name, out}
		}
		if len(pairs) == 0 {
			pairs = [][2]string{{"result", "(no outputs)"}}
		}
		fmt.Println(ui.KeyValueBlock(fn.Signature(), pairs))
		return nil
	},
}

func init() {
	callCmd.Flags().StringArrayVar(&callScales, "scale", nil, "decimal scale per argument, index=exponent (e.g. 1=18)")
	callCmd.Flags().BoolVar(&callBestRPC, "best-rpc", false, "probe the RPC list and use the first healthy endpoint")
}
