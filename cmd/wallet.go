package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/ui"
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage local signing wallets",
}

var walletImportCmd = &cobra.Command{
	Use:   "import <name>",
	Short: "Import a private key",
	Long: `Import a hex private key under a name. The key is prompted without
echo and stored in the OS keychain (file-backed on headless Linux);
only the derived address and a key reference are written to disk.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Print("Private key (hex): ")
		keyBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("reading key: %w", err)
		}
		hexKey := strings.TrimSpace(string(keyBytes))
		if hexKey == "" {
			return fmt.Errorf("no key entered")
		}

		acct, err := accountManager().Import(args[0], hexKey)
		if err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("imported %q — %s", acct.Name, acct.Address)))
		return nil
	},
}

var walletListCmd = &cobra.Command{
	Use:   "list",
	Short: "List wallets",
	RunE: func(cmd *cobra.Command, args []string) error {
		accounts := accountManager().List()
		if len(accounts) == 0 {
			fmt.Println(ui.Meta("no wallets; import one with: evmdash wallet import <name>"))
			return nil
		}
		table := ui.NewTable([]ui.Column{
			{Title: "NAME", Width: 16},
			{Title: "ADDRESS", Width: 44},
			{Title: "TYPE", Width: 12},
			{Title: "DEFAULT", Width: 8},
		})
		for _, acct := range accounts {
			def := ""
			if acct.IsDefault {
				def = "✓"
			}
			table.AddRow(ui.Row{acct.Name, acct.Address, acct.Type, def})
		}
		fmt.Println(table.Render())
		return nil
	},
}

var walletRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a wallet and its stored key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !ui.ConfirmDanger(fmt.Sprintf("Remove wallet %q and delete its key?", args[0])) {
			fmt.Println(ui.Meta("aborted"))
			return nil
		}
		if err := accountManager().Remove(args[0]); err != nil {
			return err
		}
		fmt.Println(ui.Success("removed " + args[0]))
		return nil
	},
}

var walletDefaultCmd = &cobra.Command{
	Use:   "default <name>",
	Short: "Set the default wallet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := accountManager().SetDefault(args[0]); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("default wallet set to %q", args[0])))
		return nil
	},
}

func init() {
	walletCmd.AddCommand(walletImportCmd, walletListCmd, walletRemoveCmd, walletDefaultCmd)
}
