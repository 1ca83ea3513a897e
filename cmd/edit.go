package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wrqqqr/todoList/internal/ui"
)

var editCmd = &cobra.Command{
	Use:   "edit <id> <text...>",
	Short: "Replace a task's text",
	Long: `Replace the text of a task. The task keeps its position and list.
Empty text is allowed:

  todolist edit 3f2a "buy oat milk"
  todolist edit 3f2a ""`,
	Args: cobra.MinimumNArgs(2),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	s, err := openSession(true)
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := s.resolveID(args[0])
	if err != nil {
		return err
	}
	s.eng.EditTask(id, strings.Join(args[1:], " "))
	task, _ := s.eng.Get(id)

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, taskResponse{Status: statusUpdated, Task: &task})
	}
	if !isQuiet() {
		fmt.Fprint(out, "✓ Edited ")
		ui.RenderTask(out, task)
	}
	return nil
}
