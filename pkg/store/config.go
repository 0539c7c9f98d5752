package store

import (
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	// DefaultKey is the storage key the document lives under. It matches the
	// key the browser build used so exported documents can be dropped in.
	DefaultKey = "yearInDotsState"

	defaultPath      = "~/.dots.db"
	defaultCountdown = "separate"
	defaultLogLevel  = "warn"
)

// Config locates the store and carries the presentation settings that are
// not part of the document itself.
type Config interface {
	BasePath() string
	Key() string
	Countdown() string
	LogLevel() string
}

// LoadConfig reads .dots.yaml from $DOTS_CONFIG_PATH or the working directory,
// overlaid with DOTS_* environment variables and any flags bound into viper.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", defaultPath)
	viper.SetDefault("key", DefaultKey)
	viper.SetDefault("countdown", defaultCountdown)
	viper.SetDefault("log_level", defaultLogLevel)
	viper.SetConfigName(".dots") // .yaml is implicit
	viper.SetEnvPrefix("DOTS")
	viper.AutomaticEnv()

	if override := os.Getenv("DOTS_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	return &fileConfig{
		Path:          path,
		StorageKey:    viper.GetString("key"),
		CountdownMode: viper.GetString("countdown"),
		Level:         viper.GetString("log_level"),
	}, nil
}

// StaticConfig builds a Config without consulting viper, mostly for tests and
// embedding.
func StaticConfig(path string) Config {
	return &fileConfig{
		Path:          path,
		StorageKey:    DefaultKey,
		CountdownMode: defaultCountdown,
		Level:         defaultLogLevel,
	}
}

type fileConfig struct {
	Path          string `json:"path"`
	StorageKey    string `json:"key"`
	CountdownMode string `json:"countdown"`
	Level         string `json:"log_level"`
}

func (f *fileConfig) BasePath() string { return f.Path }

func (f *fileConfig) Key() string {
	if f.StorageKey == "" {
		return DefaultKey
	}
	return f.StorageKey
}

func (f *fileConfig) Countdown() string { return f.CountdownMode }

func (f *fileConfig) LogLevel() string { return f.Level }
