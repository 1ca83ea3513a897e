package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/wrqqqr/todoList/internal/engine"
	"github.com/wrqqqr/todoList/internal/util"
	"github.com/wrqqqr/todoList/models"
)

// ListOptions controls RenderTaskList.
type ListOptions struct {
	// Collections to show, in order. Empty means both.
	Collections []models.CollectionID
	// Styled renders tables with lipgloss; plain output is stable for pipes.
	Styled bool
	// Query is echoed in the header when non-empty.
	Query string
}

// RenderTaskList writes the visible tasks grouped by collection.
func RenderTaskList(w io.Writer, view engine.View, opts ListOptions) {
	collections := opts.Collections
	if len(collections) == 0 {
		collections = models.Collections()
	}

	if opts.Query != "" {
		fmt.Fprintf(w, "Filter: %q\n\n", opts.Query)
	}

	for i, c := range collections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		tasks := view.Collection(c)
		title := fmt.Sprintf("%s (%d)", collectionTitle(c), len(tasks))

		if !opts.Styled {
			fmt.Fprintln(w, title)
			if len(tasks) == 0 {
				fmt.Fprintln(w, "  (none)")
			}
			for _, t := range tasks {
				fmt.Fprintf(w, "  %s %s  %s\n", Checkbox(t.Completed), util.ShortID(t.ID, 0), t.Text)
			}
			continue
		}

		fmt.Fprintln(w, StyleHeader.Render(title))
		if len(tasks) == 0 {
			fmt.Fprintln(w, StyleSubtle.Render("  nothing here"))
			continue
		}
		// Leave room for the checkbox and id columns.
		table := &Table{Headers: []string{"", "ID", "Text"}, MaxWidth: max(20, TerminalWidth(80)-20)}
		for _, t := range tasks {
			table.Rows = append(table.Rows, []string{Checkbox(t.Completed), util.ShortID(t.ID, 0), t.Text})
		}
		fmt.Fprint(w, table.Render())
	}
}

func collectionTitle(c models.CollectionID) string {
	if c == models.CollectionCompleted {
		return "Completed"
	}
	return "Active"
}

// RenderTask writes a one-line summary of a single task.
func RenderTask(w io.Writer, t models.Task) {
	text := t.Text
	if strings.TrimSpace(text) == "" {
		text = "(empty)"
	}
	fmt.Fprintf(w, "%s %s  %s\n", Checkbox(t.Completed), util.ShortID(t.ID, 0), text)
}
