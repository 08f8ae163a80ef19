package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/abi"
	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/chain"
	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/template"
	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/ui"
)

var dashboardWallet string
var dashboardTemplate string

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the interactive contract dashboard",
	Long: `Open the full-screen dashboard: browse the contract's methods, fill
in parameters (nested tuples and repeatable rows included), run read
calls and send transactions, and save the whole panel plus parameter
state as a named template.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		states := make(map[string]template.MethodDraft)
		store := templateStore()
		if dashboardTemplate != "" {
			tmpl, err := store.Get(dashboardTemplate)
			if err != nil {
				return err
			}
			// The template carries the whole panel snapshot, not just
			// the drafts; run the session against it.
			panel.Apply(tmpl.Panel)
			for key, draft := range tmpl.MethodStates {
				states[key] = draft
			}
		}

		// makeBrowser reads the current panel; called again after a
		// template restores a different one.
		makeBrowser := func() (ui.BrowserModel, error) {
			entries, err := panelABI()
			if err != nil {
				return ui.BrowserModel{}, err
			}
			chainID, err := panel.ChainIDInt()
			if err != nil {
				return ui.BrowserModel{}, err
			}
			return ui.BrowserModel{
				ContractAddress: panel.ContractAddress,
				ChainName:       chainName(chainID),
				ChainID:         chainID,
				Reads:           abi.ReadFunctions(entries),
				Writes:          abi.WriteFunctions(entries),
			}, nil
		}

		browser, err := makeBrowser()
		if err != nil {
			return err
		}

		var walletAddress string

		actions := ui.Actions{
			Read: func(fn abi.Entry, draft template.MethodDraft) (string, error) {
				outputs, err := buildReader().Read(context.Background(), panel.ContractAddress, fn, draft)
				if err != nil {
					return "", err
				}
				return strings.Join(outputs, "\n"), nil
			},
			Save: func(name string, states map[string]template.MethodDraft) error {
				_, err := store.Save(template.Template{
					Name:         name,
					Panel:        *panel,
					MethodStates: states,
				})
				return err
			},
			Templates: store.Load,
			Use: func(t template.Template) (ui.BrowserModel, error) {
				panel.Apply(t.Panel)
				refreshed, err := makeBrowser()
				if err != nil {
					return ui.BrowserModel{}, err
				}
				refreshed.WalletAddress = walletAddress
				return refreshed, nil
			},
		}

		// Writes need a wallet; leave the action nil without one so the
		// dashboard can degrade to read-only.
		if w, err := connectWallet(dashboardWallet); err == nil {
			walletAddress = w.Address()
			browser.WalletAddress = walletAddress
			actions.Write = func(fn abi.Entry, draft template.MethodDraft) (string, error) {
				writer, err := buildWriter(dashboardWallet)
				if err != nil {
					return "", err
				}
				ctx := context.Background()
				sub, err := writer.Write(ctx, panel.ContractAddress, fn, draft)
				if err != nil {
					return "", err
				}
				receipt, status, err := sub.Wait(ctx)
				if err != nil {
					return fmt.Sprintf("%s (%s)", sub.Hash, err), nil
				}
				if receipt != nil {
					return fmt.Sprintf("%s — %s in block %d", sub.Hash, status, receipt.BlockNumber), nil
				}
				return fmt.Sprintf("%s — %s", sub.Hash, status), nil
			}
		}

		return ui.RunDashboard(browser, states, actions)
	},
}

// chainName maps the configured chain id to a registry name, or "chain".
func chainName(id int64) string {
	if c, ok := chain.NewRegistry().Get(id); ok {
		return c.Name
	}
	return "chain"
}

func init() {
	dashboardCmd.Flags().StringVar(&dashboardWallet, "wallet", "", "wallet name (default: the default wallet)")
	dashboardCmd.Flags().StringVar(&dashboardTemplate, "template", "", "start from a saved template (panel snapshot plus drafts)")
}
