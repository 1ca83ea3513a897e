package engine

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/wrqqqr/todoList/models"
)

// View is the filtered, read-only projection handed to presentation layers.
type View struct {
	Active    []models.Task `json:"active"`
	Completed []models.Task `json:"completed"`
}

// Collection returns the visible tasks of c.
func (v View) Collection(c models.CollectionID) []models.Task {
	if c == models.CollectionCompleted {
		return v.Completed
	}
	return v.Active
}

// QueryVisible returns, per collection, the tasks whose text contains the
// search query case-insensitively, in collection order. An empty query
// matches everything.
func (e *Engine) QueryVisible() View {
	return View{
		Active:    filterTasks(e.pair.Active, e.searchQuery),
		Completed: filterTasks(e.pair.Completed, e.searchQuery),
	}
}

func filterTasks(tasks []models.Task, query string) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	if query == "" {
		return append(out, tasks...)
	}

	needle := lower(query)
	for _, t := range tasks {
		if strings.Contains(lower(t.Text), needle) {
			out = append(out, t)
		}
	}
	return out
}

// lower applies full Unicode lowercasing (context-sensitive final sigma
// included), which strings.ToLower does not.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
