package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wrqqqr/todoList/internal/logger"
)

var crashesCmd = &cobra.Command{
	Use:   "crashes",
	Short: "List crash reports in the data directory",
	Long: `List the crash reports written when todolist panicked, oldest first.
At most the ten newest reports are kept.`,
	Args: cobra.NoArgs,
	RunE: runCrashes,
}

func init() {
	rootCmd.AddCommand(crashesCmd)
}

type crashesResponse struct {
	Logs []string `json:"logs"`
}

func runCrashes(cmd *cobra.Command, args []string) error {
	logger.SetBasePath(GetConfig().Data.Dir)
	logs, err := logger.ListCrashLogs()
	if err != nil {
		return fmt.Errorf("list crash logs: %w", err)
	}
	if logs == nil {
		logs = []string{}
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, crashesResponse{Logs: logs})
	}
	if isQuiet() {
		return nil
	}
	if len(logs) == 0 {
		fmt.Fprintln(out, "No crash reports")
		return nil
	}
	for _, path := range logs {
		fmt.Fprintln(out, path)
	}
	return nil
}
