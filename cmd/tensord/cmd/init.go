package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"tensord/cli"
	"tensord/config"
	"tensord/nn"
	"tensord/store"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initializes the daemon's home directory and seeds the builtin models.",
	RunE: func(cmd *cobra.Command, args []string) error {
		homeDir, err := cli.InitHomeDir(cmd)
		if err != nil {
			return err
		}

		db, err := store.Open(config.ExpandDBPath(homeDir))
		if err != nil {
			return err
		}
		defer db.Close()
		for name, model := range nn.Builtins() {
			if err := store.PutModel(db, name, model); err != nil {
				return errors.Wrapf(err, "error seeding model %s", name)
			}
		}

		fmt.Printf("Successfully initialized tensord in %s.\n", homeDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
