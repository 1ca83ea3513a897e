package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wrqqqr/todoList/internal/util"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <text...>",
	Short: "Add a task to the end of the active list",
	Long: `Add a task. All arguments are joined with single spaces and stored as-is.

Examples:
  todolist add buy milk
  todolist add "call the plumber about the sink"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	s, err := openSession(true)
	if err != nil {
		return err
	}
	defer s.Close()

	s.eng.SetDraftText(strings.Join(args, " "))
	task, ok := s.eng.AddTask()

	out := cmd.OutOrStdout()
	if !ok {
		if isJSON() {
			return printJSON(out, taskResponse{Status: statusNoChange})
		}
		if !isQuiet() {
			fmt.Fprintln(out, "No change: task text is empty")
		}
		return nil
	}
	if isJSON() {
		return printJSON(out, taskResponse{Status: statusCreated, Task: &task})
	}
	if !isQuiet() {
		fmt.Fprintf(out, "✓ Added %s: %s\n", util.ShortID(task.ID, 0), task.Text)
	}
	return nil
}
