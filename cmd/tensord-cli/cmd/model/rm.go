package model

import (
	"fmt"

	"github.com/spf13/cobra"

	"tensord/store"
)

var rmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Removes a stored model.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := store.DeleteModel(db, args[0]); err != nil {
			return err
		}
		fmt.Printf("Removed model %s.\n", args[0])
		return nil
	},
}

func init() {
	modelCmd.AddCommand(rmCmd)
}
