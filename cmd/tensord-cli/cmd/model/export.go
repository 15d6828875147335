package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"tensord/npy"
	"tensord/store"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Exports a stored model's parameters as .npy files.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer db.Close()

		m, err := store.GetModel(db, args[0])
		if err != nil {
			return err
		}

		for name, t := range m.Params() {
			outPath := filepath.Join(exportDir, fmt.Sprintf("%s.%s.npy", args[0], name))
			f, err := os.Create(outPath)
			if err != nil {
				return errors.Wrapf(err, "error creating %s", outPath)
			}
			if err := npy.Encode(f, t); err != nil {
				f.Close()
				return errors.Wrapf(err, "error writing %s", outPath)
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Println(outPath)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportDir, "out", ".", "Directory to write the .npy files into.")
	modelCmd.AddCommand(exportCmd)
}
