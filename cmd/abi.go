package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/abi"
	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/ui"
)

var abiCmd = &cobra.Command{
	Use:   "abi",
	Short: "Load or fetch the contract ABI",
}

var abiLoadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Load the ABI from a JSON file",
	Long: `Load the ABI from a JSON file and store it in the panel.

Accepts a raw ABI array or a compiler artifact ({"abi": [...]}) as
produced by Hardhat and Foundry.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, text, err := abi.LoadFromFile(args[0])
		if err != nil {
			return err
		}
		panel.ABIText = text
		if err := panel.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("ABI loaded: %d read, %d write",
			len(abi.ReadFunctions(entries)), len(abi.WriteFunctions(entries)))))
		return nil
	},
}

var abiFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the verified ABI from the explorer",
	RunE: func(cmd *cobra.Command, args []string) error {
		if panel.ContractAddress == "" {
			return fmt.Errorf("no contract address set; run: evmdash panel set contract <address>")
		}
		explorer := buildExplorer()
		if explorer == nil {
			return fmt.Errorf("no explorer API configured; run: evmdash panel set explorer-api <url>")
		}

		sp := ui.NewSpinner("fetching ABI from explorer…")
		sp.Start()
		text, err := explorer.FetchABI(context.Background(), panel.ContractAddress)
		sp.Stop()
		if err != nil {
			return fmt.Errorf("fetching ABI: %w", err)
		}

		entries, err := abi.ParseText(text)
		if err != nil {
			return fmt.Errorf("explorer returned an unusable ABI: %w", err)
		}
		panel.ABIText = text
		if err := panel.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("ABI fetched: %d read, %d write",
			len(abi.ReadFunctions(entries)), len(abi.WriteFunctions(entries)))))
		return nil
	},
}

var abiURLCmd = &cobra.Command{
	Use:   "url <url>",
	Short: "Fetch the ABI from a URL",
	Long: `Download the ABI from an HTTP(S) URL — a raw ABI array or a
Hardhat/Foundry artifact — and store it in the panel. Useful for ABIs
published alongside deployment manifests.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sp := ui.NewSpinner("downloading ABI…")
		sp.Start()
		entries, text, err := abi.FetchURL(context.Background(), args[0])
		sp.Stop()
		if err != nil {
			return err
		}
		panel.ABIText = text
		if err := panel.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("ABI downloaded: %d read, %d write",
			len(abi.ReadFunctions(entries)), len(abi.WriteFunctions(entries)))))
		return nil
	},
}

func init() {
	abiCmd.AddCommand(abiLoadCmd, abiFetchCmd, abiURLCmd)
}
