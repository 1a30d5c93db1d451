package cmd

import (
	"fmt"
	"strings"

	"github.com/pingcap/errors"
	"github.com/spf13/cobra"

	"github.com/sqlcoach/sqlcoach/store"
)

func newExecCmd() *cobra.Command {
	var query string
	opt := new(store.Option)
	cmd := &cobra.Command{
		Use:   "exec",
		Short: "Ad-hoc Statement Runner",
		RunE: func(cmd *cobra.Command, args []string) error {
			if query == "" {
				return errors.New("no SQL statement")
			}
			ins, err := store.ConnectTo(*opt)
			if err != nil {
				return err
			}
			defer ins.Close()
			if !strings.HasPrefix(strings.ToUpper(strings.TrimSpace(query)), "SELECT") {
				return ins.Exec(query)
			}
			cols, rows, err := store.QueryGrid(ins, query)
			if err != nil {
				return err
			}
			fmt.Println(strings.Join(cols, "\t"))
			for _, row := range rows {
				fmt.Println(strings.Join(row, "\t"))
			}
			fmt.Printf("%d rows\n", len(rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&query, "sql", "", "SQL statement to run")
	registerInstanceFlags(cmd, opt)
	return cmd
}
