package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/wrqqqr/todoList/internal/config"
	"github.com/wrqqqr/todoList/store"
	"github.com/wrqqqr/todoList/types"
)

const (
	configName = ".todolist"
	envPrefix  = "TODOLIST"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// validate is a single instance of Validate, it caches struct info
var validate = validator.New()

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	// A missing .env is fine.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfgFileFlag := viper.GetString("config")
	if cfgFileFlag != "" {
		viper.SetConfigFile(cfgFileFlag)
	} else {
		if info, err := os.Stat(config.LocalDataDir); err == nil && info.IsDir() {
			viper.AddConfigPath(config.LocalDataDir)
		}
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(configName)
	}

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	} else {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			if viper.GetBool("verbose") {
				fmt.Fprintln(os.Stderr, "No config file found. Using defaults and environment variables.")
			}
		default:
			// An explicit --config that does not exist lands here too.
			fmt.Fprintln(os.Stderr, "Error reading config file:", viper.ConfigFileUsed(), "-", err)
		}
	}

	setDefaults()

	cfg, err := LoadAppConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %s\n", err)
		os.Exit(1)
	}
	GlobalAppConfig = cfg
}

func setDefaults() {
	viper.SetDefault("data.dir", "")
	viper.SetDefault("data.backend", string(store.BackendFile))
	viper.SetDefault("data.format", string(store.FormatJSON))
	viper.SetDefault("data.activeKey", store.DefaultActiveKey)
	viper.SetDefault("data.completedKey", store.DefaultCompletedKey)
	viper.SetDefault("log.file", "todolist.log")
	viper.SetDefault("log.level", "info")
}

// LoadAppConfig unmarshals and validates the configuration viper currently holds.
func LoadAppConfig() (types.AppConfig, error) {
	var cfg types.AppConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Data.Backend = strings.ToLower(cfg.Data.Backend)
	cfg.Data.Format = strings.ToLower(cfg.Data.Format)
	if cfg.Data.Dir == "" {
		cfg.Data.Dir = config.GetDataDir()
	}

	if err := validate.Struct(&cfg); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return cfg, fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// GetConfig returns a pointer to the global types.AppConfig instance.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}
