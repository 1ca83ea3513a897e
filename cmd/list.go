package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wrqqqr/todoList/internal/ui"
	"github.com/wrqqqr/todoList/models"
	"github.com/wrqqqr/todoList/store"
)

var (
	listSearch    string
	listActive    bool
	listCompleted bool
	listWatch     bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show active and completed tasks",
	Long: `List tasks in their saved order. --search keeps tasks whose text contains
the query, ignoring case. --watch redraws whenever another todolist process
saves changes.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "only show tasks containing this text (case-insensitive)")
	listCmd.Flags().BoolVar(&listActive, "active", false, "only show active tasks")
	listCmd.Flags().BoolVar(&listCompleted, "completed", false, "only show completed tasks")
	listCmd.Flags().BoolVarP(&listWatch, "watch", "w", false, "redraw when the saved tasks change")
	listCmd.MarkFlagsMutuallyExclusive("active", "completed")
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := openSession(false)
	if err != nil {
		return err
	}
	defer s.Close()

	out := cmd.OutOrStdout()
	if !listWatch {
		return renderList(out, s)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchList(ctx, out, s)
}

func listCollections() []models.CollectionID {
	switch {
	case listActive:
		return []models.CollectionID{models.CollectionActive}
	case listCompleted:
		return []models.CollectionID{models.CollectionCompleted}
	default:
		return models.Collections()
	}
}

func renderList(out io.Writer, s *session) error {
	s.eng.SetSearchQuery(listSearch)
	view := s.eng.QueryVisible()

	if isJSON() {
		switch {
		case listActive:
			view.Completed = nil
		case listCompleted:
			view.Active = nil
		}
		return printJSON(out, listResponse{Query: listSearch, View: view})
	}

	ui.RenderTaskList(out, view, ui.ListOptions{
		Collections: listCollections(),
		Styled:      out == io.Writer(os.Stdout) && ui.IsInteractive(),
		Query:       listSearch,
	})
	return nil
}

// watchList renders, then re-renders after every external save until ctx ends.
func watchList(ctx context.Context, out io.Writer, s *session) error {
	if s.opts.Backend == store.BackendMemory {
		return errors.New("--watch needs the file or sqlite backend")
	}

	changed := make(chan struct{}, 1)
	w, err := store.NewWatcher(s.opts.Dir, s.opts.WatchFiles(), store.DefaultWatchDebounce, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", s.opts.Dir, err)
	}
	defer w.Close()
	go w.Run(ctx)

	redraw := out == io.Writer(os.Stdout) && ui.IsInteractive()
	for {
		if redraw {
			fmt.Fprint(out, "\033[H\033[2J")
		}
		if err := renderList(out, s); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-changed:
			s.log.Debug("saved tasks changed, reloading")
			s.reload()
			if !redraw {
				fmt.Fprintln(out)
			}
		}
	}
}
