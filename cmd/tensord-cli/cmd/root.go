package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tensord/cli"
	"tensord/cmd/tensord-cli/cmd/model"
)

var rootCmd = &cobra.Command{
	Use:   "tensord-cli",
	Short: "Command-line client for tensord.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String(cli.FlagAddr, "127.0.0.1:8080", "Daemon address to exchange with.")
	rootCmd.PersistentFlags().String(cli.FlagHome, "~/.tensord", "Home directory of the daemon whose store model commands operate on.")
	model.AddCmd(rootCmd)
}
