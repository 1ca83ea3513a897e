package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wrqqqr/todoList/internal/config"
	"github.com/wrqqqr/todoList/internal/ui"
	"github.com/wrqqqr/todoList/types"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
	Long: `Inspect the effective configuration or write a value to the config file.

Settings are read from --config, ./.todolist/.todolist.yaml or ~/.todolist.yaml,
then from TODOLIST_* environment variables. "config set" writes to the file that
was loaded, or creates ~/.todolist.yaml.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}

type setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type configResponse struct {
	ConfigFile string    `json:"configFile,omitempty"`
	Settings   []setting `json:"settings"`
}

func settingsOf(cfg *types.AppConfig) []setting {
	return []setting{
		{"data.dir", cfg.Data.Dir},
		{"data.backend", cfg.Data.Backend},
		{"data.format", cfg.Data.Format},
		{"data.activeKey", cfg.Data.ActiveKey},
		{"data.completedKey", cfg.Data.CompletedKey},
		{"log.file", cfg.Log.File},
		{"log.level", cfg.Log.Level},
	}
}

// applySetting updates the field key names on cfg.
func applySetting(cfg *types.AppConfig, key, value string) error {
	switch strings.ToLower(key) {
	case "data.dir":
		cfg.Data.Dir = value
	case "data.backend":
		cfg.Data.Backend = strings.ToLower(value)
	case "data.format":
		cfg.Data.Format = strings.ToLower(value)
	case "data.activekey":
		cfg.Data.ActiveKey = value
	case "data.completedkey":
		cfg.Data.CompletedKey = value
	case "log.file":
		cfg.Log.File = value
	case "log.level":
		cfg.Log.Level = value
	default:
		return fmt.Errorf("unknown config key: %s\n\nAvailable keys:\n  %s", key, strings.Join(config.SettableKeys, "\n  "))
	}
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	resp := configResponse{
		ConfigFile: viper.ConfigFileUsed(),
		Settings:   settingsOf(GetConfig()),
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, resp)
	}

	file := resp.ConfigFile
	if file == "" {
		file = "(none, using defaults and environment)"
	}
	fmt.Fprintln(out, "todolist configuration")
	fmt.Fprintln(out, "Config file:", file)
	fmt.Fprintln(out)

	table := &ui.Table{Headers: []string{"Key", "Value"}, MaxWidth: 60}
	for _, s := range resp.Settings {
		table.Rows = append(table.Rows, []string{s.Key, s.Value})
	}
	fmt.Fprint(out, table.Render())
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	for _, s := range settingsOf(GetConfig()) {
		if !strings.EqualFold(s.Key, key) {
			continue
		}
		if isJSON() {
			return printJSON(cmd.OutOrStdout(), s)
		}
		fmt.Fprintln(cmd.OutOrStdout(), s.Value)
		return nil
	}
	return fmt.Errorf("unknown config key: %s", key)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	trial := *GetConfig()
	if err := applySetting(&trial, key, value); err != nil {
		return err
	}
	if err := validate.Struct(&trial); err != nil {
		return fmt.Errorf("invalid value %q for %s: %w", value, key, err)
	}

	path := viper.ConfigFileUsed()
	if path == "" {
		var err error
		if path, err = config.GetGlobalConfigFile(); err != nil {
			return err
		}
	}
	if err := config.SaveSetting(path, key, value); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, configResponse{ConfigFile: path, Settings: []setting{{key, value}}})
	}
	if !isQuiet() {
		fmt.Fprintf(out, "✓ Set %s = %s in %s\n", key, value, path)
	}
	return nil
}
