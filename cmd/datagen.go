package cmd

import (
	"github.com/pingcap/errors"
	"github.com/spf13/cobra"

	"github.com/sqlcoach/sqlcoach/datagen"
)

func newDatagenCmd() *cobra.Command {
	var dataset string
	var genArgs string
	var dir string
	cmd := &cobra.Command{
		Use:   "datagen",
		Short: "Data Generator",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dataset == "" || dir == "" {
				return errors.Errorf("invalid arguments")
			}
			return datagen.Generate(dataset, genArgs, dir)
		},
	}
	cmd.Flags().StringVar(&dataset, "dataset", "shop", "Dataset name to generate")
	cmd.Flags().StringVar(&genArgs, "args", "", "Arguments, e.g. 'customers=200,orders=1000,seed=42'")
	cmd.Flags().StringVar(&dir, "dir", "", "Directory to store data")
	return cmd
}
