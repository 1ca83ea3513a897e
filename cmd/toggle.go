package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wrqqqr/todoList/internal/util"
)

var toggleCmd = &cobra.Command{
	Use:     "toggle <id>",
	Aliases: []string{"done"},
	Short:   "Move a task between the active and completed lists",
	Long: `Toggle a task. An active task moves to the end of the completed list;
a completed task moves back to the end of the active list.

The id may be any unique prefix shown by "todolist list".`,
	Args: cobra.ExactArgs(1),
	RunE: runToggle,
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}

func runToggle(cmd *cobra.Command, args []string) error {
	s, err := openSession(true)
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := s.resolveID(args[0])
	if err != nil {
		return err
	}
	s.eng.ToggleTask(id)
	task, _ := s.eng.Get(id)

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, taskResponse{Status: statusUpdated, Task: &task})
	}
	if !isQuiet() {
		state := "active"
		if task.Completed {
			state = "completed"
		}
		fmt.Fprintf(out, "✓ %s is now %s: %s\n", util.ShortID(task.ID, 0), state, task.Text)
	}
	return nil
}
