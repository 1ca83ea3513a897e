package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wrqqqr/todoList/internal/engine"
	"github.com/wrqqqr/todoList/internal/util"
	"github.com/wrqqqr/todoList/models"
)

var (
	moveTo    string
	moveIndex int
)

var moveCmd = &cobra.Command{
	Use:   "move <id> --to <active|completed> [--index n]",
	Short: "Reorder a task or move it to the other list",
	Long: `Move a task to a position in either list. Positions are 0-based and
counted as if the task had already been taken out of its list. Without
--index the task goes to the end. Moving into the completed list marks the
task done; moving into the active list reopens it.

Examples:
  todolist move 3f2a --to active --index 0     # move to the top
  todolist move 3f2a --to completed            # finish it, last in line`,
	Args: cobra.ExactArgs(1),
	RunE: runMove,
}

func init() {
	rootCmd.AddCommand(moveCmd)
	moveCmd.Flags().StringVar(&moveTo, "to", "", "destination list: active (a, todo) or completed (c, done)")
	moveCmd.Flags().IntVar(&moveIndex, "index", -1, "0-based destination position (default: end)")
	_ = moveCmd.MarkFlagRequired("to")
}

func runMove(cmd *cobra.Command, args []string) error {
	dest, err := models.ParseCollection(moveTo)
	if err != nil {
		return err
	}

	s, err := openSession(true)
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := s.resolveID(args[0])
	if err != nil {
		return err
	}
	src, _ := s.eng.Locate(id)

	index := moveIndex
	if !cmd.Flags().Changed("index") {
		index = len(s.eng.Snapshot().Collection(dest))
		if dest == src.Collection {
			index--
		}
	}

	dst := models.Location{Collection: dest, Index: index}
	outcome := s.eng.MoveTask(src, &dst)

	resp := moveResponse{
		Status:     statusUpdated,
		Outcome:    outcome.String(),
		ID:         id,
		Collection: dest.String(),
		Index:      index,
	}
	if outcome != engine.MoveApplied {
		resp.Status = statusNoChange
	}
	if task, ok := s.eng.Get(id); ok {
		resp.Task = &task
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, resp)
	}
	if isQuiet() {
		return nil
	}
	if outcome != engine.MoveApplied {
		fmt.Fprintf(out, "No change: position %d is outside the %s list\n", index, dest)
		return nil
	}
	fmt.Fprintf(out, "✓ Moved %s to %s #%d\n", util.ShortID(id, 0), dest, index)
	return nil
}
