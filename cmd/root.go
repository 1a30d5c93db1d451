package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sqlcoach/sqlcoach/store"
)

var (
	rootCmd = &cobra.Command{
		Use:   "sqlcoach",
		Short: "SQL Teaching Toolkit",
	}
)

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize()
	rootCmd.AddCommand(newDatagenCmd())
	rootCmd.AddCommand(newLoadCmd())
	rootCmd.AddCommand(newLessonCmd())
	rootCmd.AddCommand(newExecCmd())
	rootCmd.AddCommand(newBenchCmd())
	rootCmd.AddCommand(newPracticeCmd())
}

// registerInstanceFlags adds the flags shared by every command that talks
// to a single database instance.
func registerInstanceFlags(cmd *cobra.Command, opt *store.Option) {
	cmd.Flags().StringVar(&opt.Engine, "engine", store.EngineSQLite, "Database engine (sqlite or mysql)")
	cmd.Flags().StringVar(&opt.Path, "db", "", "SQLite database file")
	cmd.Flags().StringVar(&opt.Addr, "addr", "127.0.0.1", "MySQL address")
	cmd.Flags().IntVar(&opt.Port, "port", 3306, "MySQL port")
	cmd.Flags().StringVar(&opt.User, "user", "root", "MySQL user")
	cmd.Flags().StringVar(&opt.Password, "password", "", "MySQL password")
	cmd.Flags().StringVar(&opt.DB, "dbname", "", "MySQL database name")
}
