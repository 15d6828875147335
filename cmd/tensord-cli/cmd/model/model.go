package model

import (
	"github.com/spf13/cobra"
	"github.com/syndtr/goleveldb/leveldb"

	"tensord/cli"
	"tensord/config"
	"tensord/store"
)

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Manages the daemon's stored models. The daemon must be stopped.",
}

func AddCmd(root *cobra.Command) {
	root.AddCommand(modelCmd)
}

func openDB(cmd *cobra.Command) (*leveldb.DB, error) {
	homeDir := cli.GetHomeDir(cmd)
	if err := config.EnsureHomeDir(homeDir); err != nil {
		return nil, err
	}
	return store.Open(config.ExpandDBPath(homeDir))
}
