package main

import (
	"github.com/wrqqqr/todoList/cmd"
	"github.com/wrqqqr/todoList/internal/logger"
)

func main() {
	defer logger.HandlePanic()
	cmd.Execute()
}
