package cmd

import (
	"github.com/wrqqqr/todoList/internal/engine"
	"github.com/wrqqqr/todoList/models"
)

type taskResponse struct {
	Status string       `json:"status"`
	Task   *models.Task `json:"task,omitempty"`
	ID     string       `json:"id,omitempty"`
}

type moveResponse struct {
	Status     string       `json:"status"`
	Outcome    string       `json:"outcome"`
	ID         string       `json:"id"`
	Collection string       `json:"collection"`
	Index      int          `json:"index"`
	Task       *models.Task `json:"task,omitempty"`
}

type listResponse struct {
	Query string `json:"query,omitempty"`
	engine.View
}

const (
	statusCreated  = "created"
	statusUpdated  = "updated"
	statusDeleted  = "deleted"
	statusNoChange = "no change"
)
