package models

import (
	"fmt"
	"strings"
)

// CollectionID names one of the two ordered task sequences.
type CollectionID string

const (
	CollectionActive    CollectionID = "active"
	CollectionCompleted CollectionID = "completed"
)

// Collections returns both ids in display order.
func Collections() []CollectionID {
	return []CollectionID{CollectionActive, CollectionCompleted}
}

// Valid reports whether c is a known collection.
func (c CollectionID) Valid() bool {
	return c == CollectionActive || c == CollectionCompleted
}

// CompletedFlag is the Completed value a task takes on when it lives in c.
func (c CollectionID) CompletedFlag() bool {
	return c == CollectionCompleted
}

// Other returns the opposite collection.
func (c CollectionID) Other() CollectionID {
	if c == CollectionCompleted {
		return CollectionActive
	}
	return CollectionCompleted
}

func (c CollectionID) String() string {
	return string(c)
}

// ParseCollection accepts the canonical names plus short aliases used on the command line.
func ParseCollection(s string) (CollectionID, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active", "todo", "a":
		return CollectionActive, nil
	case "completed", "done", "c":
		return CollectionCompleted, nil
	default:
		return "", fmt.Errorf("unknown collection %q (want active or completed)", s)
	}
}

// Location addresses a position inside one collection.
type Location struct {
	Collection CollectionID `json:"collection"`
	Index      int          `json:"index"`
}
