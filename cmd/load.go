package cmd

import (
	"fmt"
	"strings"

	"github.com/pingcap/errors"
	"github.com/spf13/cobra"

	"github.com/sqlcoach/sqlcoach/loader"
	"github.com/sqlcoach/sqlcoach/store"
)

func newLoadCmd() *cobra.Command {
	var dir string
	opt := new(store.Option)
	cmd := &cobra.Command{
		Use:   "load",
		Short: "CSV Loader",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				return errors.New("no data directory")
			}
			ins, err := store.ConnectTo(*opt)
			if err != nil {
				return err
			}
			defer ins.Close()
			summaries, err := loader.Load(ins, dir)
			if err != nil {
				return err
			}
			for _, s := range summaries {
				fmt.Printf("%v: %v rows (%v)\n", s.Table, s.Rows, strings.Join(s.Columns, ", "))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Directory containing CSV files")
	registerInstanceFlags(cmd, opt)
	return cmd
}
