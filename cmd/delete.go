package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wrqqqr/todoList/internal/util"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	s, err := openSession(true)
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := s.resolveID(args[0])
	if err != nil {
		return err
	}
	task, _ := s.eng.Get(id)
	s.eng.DeleteTask(id)

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, taskResponse{Status: statusDeleted, ID: id})
	}
	if !isQuiet() {
		fmt.Fprintf(out, "✓ Deleted %s: %s\n", util.ShortID(id, 0), task.Text)
	}
	return nil
}
