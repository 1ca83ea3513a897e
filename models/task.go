package models

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Task is a single todo item. It carries no behavior; the engine owns all mutation.
type Task struct {
	ID        string `json:"id" yaml:"id" toml:"id" validate:"required"`
	Text      string `json:"text" yaml:"text" toml:"text"`
	Completed bool   `json:"completed" yaml:"completed" toml:"completed"`
}

// Pair is the authoritative state: two ordered sequences of tasks.
// Order is significant and is the order rendered and persisted.
type Pair struct {
	Active    []Task `json:"active" yaml:"active" toml:"active" validate:"dive"`
	Completed []Task `json:"completed" yaml:"completed" toml:"completed" validate:"dive"`
}

// Len returns the total number of tasks in both collections.
func (p Pair) Len() int {
	return len(p.Active) + len(p.Completed)
}

// Clone returns a deep copy so snapshots never alias engine state.
func (p Pair) Clone() Pair {
	return Pair{
		Active:    CloneTasks(p.Active),
		Completed: CloneTasks(p.Completed),
	}
}

// Collection returns the sequence for id, or nil for an unknown id.
func (p Pair) Collection(id CollectionID) []Task {
	switch id {
	case CollectionActive:
		return p.Active
	case CollectionCompleted:
		return p.Completed
	default:
		return nil
	}
}

// CloneTasks copies a task slice. A nil input yields an empty, non-nil slice.
func CloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}

// global validator instance
var validate = validator.New()

// ValidatePair checks that every task has an id and that no id appears twice
// across the two collections.
func ValidatePair(p Pair) error {
	if err := validate.Struct(p); err != nil {
		ve, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		var msgs []string
		for _, e := range ve {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed rule '%s'", e.StructNamespace(), e.Tag()))
		}
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}

	seen := make(map[string]CollectionID, p.Len())
	for _, c := range Collections() {
		for _, t := range p.Collection(c) {
			if prev, dup := seen[t.ID]; dup {
				return fmt.Errorf("duplicate task id %q in %s and %s", t.ID, prev, c)
			}
			seen[t.ID] = c
		}
	}
	return nil
}

// Normalize forces each task's Completed flag to match the collection holding it.
func Normalize(p Pair) Pair {
	for i := range p.Active {
		p.Active[i].Completed = false
	}
	for i := range p.Completed {
		p.Completed[i].Completed = true
	}
	return p
}
