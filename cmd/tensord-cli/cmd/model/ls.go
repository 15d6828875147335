package model

import (
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"tensord/store"
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "Lists stored models.",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer db.Close()

		manifests, err := store.ListManifests(db)
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Name", "Kind", "Params", "Created At"})
		for _, manifest := range manifests {
			table.Append([]string{
				manifest.Name,
				manifest.Kind,
				strings.Join(manifest.Params, ", "),
				manifest.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		table.Render()
		return nil
	},
}

func init() {
	modelCmd.AddCommand(lsCmd)
}
