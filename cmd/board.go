package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/wrqqqr/todoList/internal/ui"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Open the interactive board",
	Long: `Open a two-column board of active and completed tasks.

Keys:
  tab, ←/→   switch column          ↑/↓        move cursor
  a          add a task             /          search
  e          edit text              space, x   toggle
  d          delete                 K / J      move up / down
  m          pick up, then ↑/↓/tab to choose a slot, enter to drop, esc to cancel
  q          quit`,
	Args: cobra.NoArgs,
	RunE: runBoard,
}

func init() {
	rootCmd.AddCommand(boardCmd)
}

func runBoard(cmd *cobra.Command, args []string) error {
	if !ui.IsInteractive() {
		return errors.New("board needs an interactive terminal; use \"todolist list\" instead")
	}

	s, err := openSession(true)
	if err != nil {
		return err
	}
	defer s.Close()

	return ui.RunBoard(s.eng)
}
