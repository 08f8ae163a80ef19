package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/invoke"
	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/ui"
)

var (
	sendScales []string
	sendValue  string
	sendWallet string
	sendNoWait bool
	sendYes    bool
)

var sendCmd = &cobra.Command{
	Use:   "send <function> [args...]",
	Short: "Send a transaction to a contract function",
	Long: `Send a state-changing transaction to the panel's contract.

The wallet is aligned with the panel's chain id before signing: a
mismatch triggers a chain switch, and an unregistered chain is added
from the panel's RPC and explorer first.

Examples:
  evmdash send transfer 0xRecipient 1.5 --scale 1=18
  evmdash send deposit --value 0.1
  evmdash send setConfig '{"threshold": "3", "owner": "0xAbc..."}'`,
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
		if fn.IsReadFunction() {
			return fmt.Errorf("%q is a read function; use: evmdash call %s", fn.Name, fn.Name)
		}
		draft, err := positionalDraft(fn, args[1:], sendScales)
		if err != nil {
			return err
		}
		if sendValue != "" {
			if !fn.IsPayable() {
				return fmt.Errorf("%q is not payable", fn.Name)
			}
			draft.PayableValue = sendValue
		}

		writer, err := buildWriter(sendWallet)
		if err != nil {
			return err
		}

		chainID, err := panel.ChainIDInt()
		if err != nil {
			return err
		}
		prompt := fmt.Sprintf("Send %s to %s on %s?",
			fn.Signature(), panel.ContractAddress, ui.ChainName(chainName(chainID)))
		if !sendYes && !ui.Confirm(prompt) {
			fmt.Println(ui.Meta("aborted"))
			return nil
		}

		ctx := context.Background()
		sp := ui.NewSpinner("sending " + fn.Name + "…")
		sp.Start()
		sub, err := writer.Write(ctx, panel.ContractAddress, fn, draft)
		sp.Stop()
		if err != nil {
			return err
		}
		fmt.Println(ui.Success("submitted:") + " " + ui.Val(sub.Hash))
		if panel.ExplorerBase != "" {
			fmt.Println(ui.Meta("  " + panel.ExplorerBase + "/tx/" + sub.Hash))
		}
		if sendNoWait {
			return nil
		}

		sp = ui.NewSpinner("waiting for receipt…")
		sp.Start()
		receipt, status, err := sub.Wait(ctx)
		sp.Stop()
		if err != nil {
			fmt.Println(ui.Warn("receipt: " + err.Error()))
			return nil
		}
		switch status {
		case invoke.StatusSuccess:
			fmt.Println(ui.Success(fmt.Sprintf("mined in block %d (gas used %d)", receipt.BlockNumber, receipt.GasUsed)))
		case invoke.StatusFailure:
			fmt.Println(ui.Err(fmt.Sprintf("reverted in block %d", receipt.BlockNumber)))
		default:
			fmt.Println(ui.Warn("status: " + status.String()))
		}
		return nil
	},
}

func init() {
	sendCmd.Flags().StringArrayVar(&sendScales, "scale", nil, "decimal scale per argument, index=exponent (e.g. 1=18)")
	sendCmd.Flags().StringVar(&sendValue, "value", "", "ETH value to attach (payable functions)")
	sendCmd.Flags().StringVar(&sendWallet, "wallet", "", "wallet name (default: the default wallet)")
	sendCmd.Flags().BoolVar(&sendNoWait, "no-wait", false, "return after broadcast without waiting for the receipt")
	sendCmd.Flags().BoolVarP(&sendYes, "yes", "y", false, "skip the confirmation prompt")
}
