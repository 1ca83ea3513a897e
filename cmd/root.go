package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wrqqqr/todoList/internal/logger"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// version is the application version.
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "todolist",
	Short: "todolist - a personal task tracker",
	Long: `todolist keeps two ordered lists: active tasks and completed tasks.

Add, toggle, edit, delete and reorder tasks from the command line, or open the
interactive board with "todolist board". Tasks are saved after every change.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetCommand(strings.TrimSpace(cmd.CommandPath() + " " + strings.Join(args, " ")))
		logger.SetLastInput(strings.Join(args, " "))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	logger.SetVersion(version)
	if err := rootCmd.Execute(); err != nil {
		PrintError(err.Error(), err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.todolist/.todolist.yaml or $HOME/.todolist.yaml)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output and debug logging")
	pf.Bool("json", false, "print machine-readable JSON")
	pf.BoolP("quiet", "q", false, "suppress non-essential output")
	pf.String("data-dir", "", "directory holding persisted tasks")

	_ = viper.BindPFlag("config", pf.Lookup("config"))
	_ = viper.BindPFlag("verbose", pf.Lookup("verbose"))
	_ = viper.BindPFlag("json", pf.Lookup("json"))
	_ = viper.BindPFlag("quiet", pf.Lookup("quiet"))
	_ = viper.BindPFlag("data.dir", pf.Lookup("data-dir"))
}
