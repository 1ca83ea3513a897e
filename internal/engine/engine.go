// Package engine owns the task collection pair and every operation on it.
//
// The engine is single-writer: callers drive it from one goroutine (a cobra
// command or the bubbletea update loop). Invalid input never produces an
// error; it degrades to "no state change" and the boolean results only tell
// the caller whether anything happened.
package engine

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/wrqqqr/todoList/models"
	"github.com/wrqqqr/todoList/store"
)

// ChangeKind names the operation that produced a committed mutation.
type ChangeKind string

const (
	ChangeAdd    ChangeKind = "add"
	ChangeToggle ChangeKind = "toggle"
	ChangeDelete ChangeKind = "delete"
	ChangeEdit   ChangeKind = "edit"
	ChangeMove   ChangeKind = "move"
)

// Change is delivered to subscribers after every committed mutation.
type Change struct {
	Kind   ChangeKind
	TaskID string
}

// NewID is the default identifier generator (UUID v4).
func NewID() string {
	return uuid.NewString()
}

// Engine is the task state engine.
type Engine struct {
	pair models.Pair

	draftText   string
	searchQuery string

	newID     func() string
	logger    *slog.Logger
	sync      *dispatcher
	listeners map[int]func(Change)
	nextSubID int
}

// Option configures an Engine.
type Option func(*Engine)

// WithIDGenerator replaces the UUID generator. The generator must return
// values unique within the session.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		if fn != nil {
			e.newID = fn
		}
	}
}

// WithLogger sets the logger used for load and persistence diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New hydrates an engine from the adapter. Absent or corrupt persisted state
// yields empty collections. A nil adapter gives a purely in-memory engine.
func New(adapter store.Adapter, opts ...Option) *Engine {
	e := &Engine{
		pair:      models.Pair{Active: []models.Task{}, Completed: []models.Task{}},
		newID:     NewID,
		logger:    slog.Default(),
		listeners: make(map[int]func(Change)),
	}
	for _, opt := range opts {
		opt(e)
	}

	if adapter != nil {
		e.pair = e.hydrate(adapter)
		e.sync = newDispatcher(adapter, e.logger)
	}
	return e
}

func (e *Engine) hydrate(adapter store.Adapter) models.Pair {
	empty := models.Pair{Active: []models.Task{}, Completed: []models.Task{}}

	pair, found, err := adapter.Load()
	if err != nil {
		e.logger.Warn("persisted state unreadable, starting empty", "error", err)
		return empty
	}
	if !found {
		e.logger.Debug("no persisted state, starting empty")
		return empty
	}
	if err := models.ValidatePair(pair); err != nil {
		e.logger.Warn("persisted state invalid, starting empty", "error", err)
		return empty
	}

	pair = models.Normalize(pair.Clone())
	e.logger.Debug("state loaded", "active", len(pair.Active), "completed", len(pair.Completed))
	return pair
}

// SetDraftText replaces the pending new-task text.
func (e *Engine) SetDraftText(text string) {
	e.draftText = text
}

// DraftText returns the pending new-task text.
func (e *Engine) DraftText() string {
	return e.draftText
}

// SetSearchQuery replaces the filter used by QueryVisible.
func (e *Engine) SetSearchQuery(text string) {
	e.searchQuery = text
}

// SearchQuery returns the current filter.
func (e *Engine) SearchQuery() string {
	return e.searchQuery
}

// AddTask appends the draft as a new active task and clears the draft.
// An empty or whitespace-only draft is a no-op. The text is stored verbatim.
func (e *Engine) AddTask() (models.Task, bool) {
	if strings.TrimSpace(e.draftText) == "" {
		return models.Task{}, false
	}

	task := models.Task{
		ID:        e.newID(),
		Text:      e.draftText,
		Completed: false,
	}
	e.pair.Active = append(e.pair.Active, task)
	e.draftText = ""

	e.commit(Change{Kind: ChangeAdd, TaskID: task.ID})
	return task, true
}

// ToggleTask moves a task to the end of the other collection and flips its
// Completed flag. Prior position is not remembered.
func (e *Engine) ToggleTask(id string) bool {
	loc, ok := e.Locate(id)
	if !ok {
		return false
	}

	task := e.removeAt(loc)
	dest := loc.Collection.Other()
	task.Completed = dest.CompletedFlag()
	e.insertAt(models.Location{Collection: dest, Index: len(e.pair.Collection(dest))}, task)

	e.commit(Change{Kind: ChangeToggle, TaskID: id})
	return true
}

// DeleteTask removes a task from whichever collection holds it.
func (e *Engine) DeleteTask(id string) bool {
	loc, ok := e.Locate(id)
	if !ok {
		return false
	}

	e.removeAt(loc)
	e.commit(Change{Kind: ChangeDelete, TaskID: id})
	return true
}

// EditTask replaces a task's text verbatim. Empty text is accepted.
func (e *Engine) EditTask(id, text string) bool {
	loc, ok := e.Locate(id)
	if !ok {
		return false
	}

	e.collection(loc.Collection)[loc.Index].Text = text
	e.commit(Change{Kind: ChangeEdit, TaskID: id})
	return true
}

// Locate finds the collection and index holding id.
func (e *Engine) Locate(id string) (models.Location, bool) {
	for _, c := range models.Collections() {
		if i := slices.IndexFunc(e.pair.Collection(c), func(t models.Task) bool { return t.ID == id }); i >= 0 {
			return models.Location{Collection: c, Index: i}, true
		}
	}
	return models.Location{}, false
}

// Get returns a copy of the task with id.
func (e *Engine) Get(id string) (models.Task, bool) {
	loc, ok := e.Locate(id)
	if !ok {
		return models.Task{}, false
	}
	return e.pair.Collection(loc.Collection)[loc.Index], true
}

// Snapshot returns a deep copy of the collection pair.
func (e *Engine) Snapshot() models.Pair {
	return e.pair.Clone()
}

// Subscribe registers fn to run after every committed mutation. The returned
// function removes the subscription.
func (e *Engine) Subscribe(fn func(Change)) (unsubscribe func()) {
	id := e.nextSubID
	e.nextSubID++
	e.listeners[id] = fn
	return func() { delete(e.listeners, id) }
}

// Flush blocks until every committed snapshot has been handed to the adapter.
func (e *Engine) Flush() {
	if e.sync != nil {
		e.sync.Flush()
	}
}

// Close flushes pending writes and stops the persistence dispatcher.
func (e *Engine) Close() {
	if e.sync != nil {
		e.sync.Close()
	}
}

// commit publishes the current state: one snapshot to persistence, then one
// notification to each subscriber.
func (e *Engine) commit(ch Change) {
	if e.sync != nil {
		e.sync.Dispatch(e.pair.Clone())
	}
	for _, id := range e.subscriberIDs() {
		if fn, ok := e.listeners[id]; ok {
			fn(ch)
		}
	}
}

func (e *Engine) subscriberIDs() []int {
	ids := make([]int, 0, len(e.listeners))
	for id := range e.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (e *Engine) collection(c models.CollectionID) []models.Task {
	return e.pair.Collection(c)
}

func (e *Engine) setCollection(c models.CollectionID, tasks []models.Task) {
	switch c {
	case models.CollectionActive:
		e.pair.Active = tasks
	case models.CollectionCompleted:
		e.pair.Completed = tasks
	}
}

// removeAt deletes and returns the task at loc. loc must be valid.
func (e *Engine) removeAt(loc models.Location) models.Task {
	tasks := e.collection(loc.Collection)
	task := tasks[loc.Index]
	e.setCollection(loc.Collection, slices.Delete(tasks, loc.Index, loc.Index+1))
	return task
}

// insertAt places task at loc, shifting later tasks right. loc.Index must be
// within [0, len].
func (e *Engine) insertAt(loc models.Location, task models.Task) {
	e.setCollection(loc.Collection, slices.Insert(e.collection(loc.Collection), loc.Index, task))
}
