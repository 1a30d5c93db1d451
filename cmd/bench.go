package cmd

import (
	"github.com/pingcap/errors"
	"github.com/spf13/cobra"

	"github.com/sqlcoach/sqlcoach/bench"
)

func newBenchCmd() *cobra.Command {
	var conf string
	var outDir string
	var n uint
	var concurrency uint
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Query Latency Benchmark",
		RunE: func(cmd *cobra.Command, args []string) error {
			if conf == "" {
				return errors.New("no config")
			}
			return bench.RunBench(conf, outDir, n, concurrency)
		},
	}
	cmd.Flags().StringVar(&conf, "config", "", "Lesson config path")
	cmd.Flags().StringVarP(&outDir, "output-dir", "o", "result", "Directory to store the results")
	cmd.Flags().UintVarP(&n, "runs", "n", 10, "Times to run each query")
	cmd.Flags().UintVar(&concurrency, "concurrency", 4, "The connections opened for each instance")
	return cmd
}
