package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"tensord/cli"
	"tensord/client"
	"tensord/tensor"
)

var (
	benchCount       int
	benchConcurrency int
	benchShape       string
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Runs repeated concurrent exchanges and reports timing.",
	RunE: func(cmd *cobra.Command, args []string) error {
		shape, err := parseShapeArg(benchShape)
		if err != nil {
			return err
		}
		addr := cli.GetAddr(cmd)

		start := time.Now()
		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(benchConcurrency)
		for i := 0; i < benchCount; i++ {
			g.Go(func() error {
				_, err := client.Exchange(ctx, addr, tensor.Randn(shape...))
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		elapsed := time.Since(start)

		fmt.Printf(
			"%d exchanges in %s (%.1f/s, concurrency %d)\n",
			benchCount, elapsed,
			float64(benchCount)/elapsed.Seconds(),
			benchConcurrency,
		)
		return nil
	},
}

func init() {
	benchCmd.Flags().IntVarP(&benchCount, "count", "n", 100, "Number of exchanges to run.")
	benchCmd.Flags().IntVarP(&benchConcurrency, "concurrency", "c", 8, "Number of exchanges in flight at once.")
	benchCmd.Flags().StringVar(&benchShape, "randn", "2,2", "Shape of the standard-normal array sent in each exchange.")
	rootCmd.AddCommand(benchCmd)
}
