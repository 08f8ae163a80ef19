package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/config"
	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/ui"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/suiyuan1314/CommonEVMContractDashboard/cmd.Version=1.2.3" .
var Version = "1.0.0"

var (
	cfgDir  string
	panel   *config.Panel
	verbose bool
	log     zerolog.Logger
)

// rootCmd is the top-level command.
var rootCmd = &cobra.Command{
	Use:   "evmdash",
	Short: "Terminal dashboard for any EVM contract",
	Long: `evmdash — drive any EVM smart contract from the terminal.

  Point the panel at an RPC endpoint, a contract address and its ABI,
  then browse methods, fill in parameters (nested tuples included),
  run read calls with explorer fallback, and send transactions with a
  local wallet. Panel and parameter state can be saved as templates.`,
	Version: Version,
	// Bare `evmdash` shows the banner and the command list.
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(ui.Banner())
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		if verbose {
			log = log.Level(zerolog.DebugLevel)
		} else {
			log = log.Level(zerolog.WarnLevel)
		}
		var err error
		panel, err = config.Load(cfgDir)
		if err != nil {
			return fmt.Errorf("loading panel: %w", err)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// EVMDASH_DIR env var overrides --dir flag.
	if envDir := os.Getenv("EVMDASH_DIR"); envDir != "" {
		cfgDir = envDir
	}

	rootCmd.PersistentFlags().StringVar(&cfgDir, "dir", cfgDir, "workspace directory (default: ~/.evmdash)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		panelCmd,
		abiCmd,
		methodsCmd,
		callCmd,
		sendCmd,
		templateCmd,
		walletCmd,
		dashboardCmd,
	)
}
