package engine

import "github.com/wrqqqr/todoList/models"

// MoveOutcome reports what MoveTask did.
type MoveOutcome int

const (
	// MoveApplied means the task was moved and the change committed.
	MoveApplied MoveOutcome = iota
	// MoveCancelled means no destination was given (the drag was abandoned).
	MoveCancelled
	// MoveRejected means a collection or index was out of range.
	MoveRejected
)

func (o MoveOutcome) String() string {
	switch o {
	case MoveApplied:
		return "applied"
	case MoveCancelled:
		return "cancelled"
	case MoveRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// MoveTask removes the task at src and inserts it at dst, which may be in the
// same collection. dst.Index is interpreted after the removal, so it ranges
// over [0, len(destination without the moved task)]. A cross-collection move
// sets the task's Completed flag to the destination's semantics. A nil dst is
// a cancelled gesture.
//
// The whole move commits once: observers never see the intermediate state.
func (e *Engine) MoveTask(src models.Location, dst *models.Location) MoveOutcome {
	if dst == nil {
		return MoveCancelled
	}
	if !src.Collection.Valid() || !dst.Collection.Valid() {
		return MoveRejected
	}

	source := e.collection(src.Collection)
	if src.Index < 0 || src.Index >= len(source) {
		return MoveRejected
	}

	destLen := len(e.collection(dst.Collection))
	if dst.Collection == src.Collection {
		destLen--
	}
	if dst.Index < 0 || dst.Index > destLen {
		return MoveRejected
	}

	task := e.removeAt(src)
	if dst.Collection != src.Collection {
		task.Completed = dst.Collection.CompletedFlag()
	}
	e.insertAt(*dst, task)

	e.commit(Change{Kind: ChangeMove, TaskID: task.ID})
	return MoveApplied
}
