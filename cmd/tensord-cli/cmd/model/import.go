package model

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"tensord/nn"
	"tensord/npy"
	"tensord/store"
	"tensord/tensor"
)

var (
	importKind   string
	importParams []string
)

var importCmd = &cobra.Command{
	Use:   "import <name>",
	Short: "Imports a model from .npy parameter files.",
	Long: `Imports a model into the daemon's store. Each --param maps a
parameter name to a .npy file, e.g.:

  tensord-cli model import my-affine --kind affine --param weight=w.npy`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := make(map[string]*tensor.Tensor, len(importParams))
		for _, arg := range importParams {
			kv := strings.SplitN(arg, "=", 2)
			if len(kv) != 2 {
				return errors.Errorf("invalid --param %q, want name=file.npy", arg)
			}
			t, err := readNpyFile(kv[1])
			if err != nil {
				return errors.Wrapf(err, "error reading parameter %s", kv[0])
			}
			params[kv[0]] = t
		}

		m, err := nn.FromParams(importKind, params)
		if err != nil {
			return err
		}

		db, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := store.PutModel(db, args[0], m); err != nil {
			return err
		}
		fmt.Printf("Imported model %s.\n", args[0])
		return nil
	},
}

func readNpyFile(path string) (*tensor.Tensor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return npy.Decode(bufio.NewReader(f))
}

func init() {
	importCmd.Flags().StringVar(&importKind, "kind", nn.KindAffine, "Model kind: affine or mlp.")
	importCmd.Flags().StringArrayVar(&importParams, "param", nil, "Parameter as name=file.npy. Repeatable.")
	modelCmd.AddCommand(importCmd)
}
