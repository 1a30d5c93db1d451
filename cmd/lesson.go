package cmd

import (
	"github.com/pingcap/errors"
	"github.com/spf13/cobra"

	"github.com/sqlcoach/sqlcoach/lesson"
)

func newLessonCmd() *cobra.Command {
	var conf string
	cmd := &cobra.Command{
		Use:   "lesson",
		Short: "Lesson Runner",
		RunE: func(cmd *cobra.Command, args []string) error {
			if conf == "" {
				return errors.New("no config")
			}
			return lesson.RunLessonsWithConfig(conf)
		},
	}
	cmd.Flags().StringVar(&conf, "config", "", "Lesson config path")
	return cmd
}
