package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"tensord/cli"
	"tensord/client"
	"tensord/npy"
	"tensord/tensor"
)

var (
	exchangeInPath  string
	exchangeOutPath string
	exchangeEye     int
	exchangeRandn   string
)

var exchangeCmd = &cobra.Command{
	Use:   "exchange",
	Short: "Sends one array to the daemon and prints the reply.",
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := exchangeInput()
		if err != nil {
			return err
		}

		result, err := client.Exchange(cmd.Context(), cli.GetAddr(cmd), input)
		if err != nil {
			return err
		}

		if exchangeOutPath != "" {
			f, err := os.Create(exchangeOutPath)
			if err != nil {
				return errors.Wrap(err, "error creating output file")
			}
			defer f.Close()
			return npy.Encode(f, result)
		}

		printTensor(result)
		return nil
	},
}

func exchangeInput() (*tensor.Tensor, error) {
	switch {
	case exchangeEye > 0:
		return tensor.Eye(exchangeEye), nil
	case exchangeRandn != "":
		shape, err := parseShapeArg(exchangeRandn)
		if err != nil {
			return nil, err
		}
		return tensor.Randn(shape...), nil
	case exchangeInPath != "":
		f, err := os.Open(exchangeInPath)
		if err != nil {
			return nil, errors.Wrap(err, "error opening input file")
		}
		defer f.Close()
		return npy.Decode(bufio.NewReader(f))
	default:
		if isatty.IsTerminal(os.Stdin.Fd()) {
			return nil, errors.New("no input array: pass --in, --eye or --randn, or pipe a .npy file on stdin")
		}
		return npy.Decode(bufio.NewReader(os.Stdin))
	}
}

func parseShapeArg(arg string) ([]int, error) {
	parts := strings.Split(arg, ",")
	shape := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return nil, errors.Errorf("invalid shape argument %q", arg)
		}
		shape[i] = n
	}
	return shape, nil
}

func printTensor(t *tensor.Tensor) {
	fmt.Printf("shape: %s\n", tensor.ShapeString(t.Shape()))
	if t.Dims() == 2 {
		rows, cols := t.Dim(0), t.Dim(1)
		for i := 0; i < rows; i++ {
			parts := make([]string, cols)
			for j := 0; j < cols; j++ {
				parts[j] = strconv.FormatFloat(t.At(i, j), 'g', -1, 64)
			}
			fmt.Println(strings.Join(parts, " "))
		}
		return
	}
	parts := make([]string, len(t.Data()))
	for i, v := range t.Data() {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	fmt.Println(strings.Join(parts, " "))
}

func init() {
	exchangeCmd.Flags().StringVar(&exchangeInPath, "in", "", "Path to a .npy file to send.")
	exchangeCmd.Flags().StringVar(&exchangeOutPath, "out", "", "Write the reply to this .npy file instead of printing it.")
	exchangeCmd.Flags().IntVar(&exchangeEye, "eye", 0, "Send an NxN identity matrix.")
	exchangeCmd.Flags().StringVar(&exchangeRandn, "randn", "", "Send a standard-normal array of the given shape, e.g. 2,2.")
	rootCmd.AddCommand(exchangeCmd)
}
