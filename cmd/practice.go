package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sqlcoach/sqlcoach/practice"
	"github.com/sqlcoach/sqlcoach/store"
)

func newPracticeCmd() *cobra.Command {
	var tableName, outFile string
	var n uint
	opt := new(store.Option)
	cmd := &cobra.Command{
		Use:   "practice",
		Short: "Practice Query Generator",
		RunE: func(cmd *cobra.Command, args []string) error {
			return practice.RunPracticeGen(*opt, tableName, n, outFile)
		},
	}
	cmd.Flags().StringVar(&tableName, "table", "", "Table Name")
	cmd.Flags().StringVarP(&outFile, "output-file", "o", "practice.sql", "File to store the generated queries")
	cmd.Flags().UintVarP(&n, "query-num", "n", 20, "Number of queries to generate")
	cmd.MarkFlagRequired("table")
	registerInstanceFlags(cmd, opt)
	return cmd
}
