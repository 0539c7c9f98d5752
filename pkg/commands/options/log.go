package options

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogOptions
type LogOptions struct {
	Level string
}

// AddLogArgs adds --log-level to every command and binds it to the viper key
// log_level so .dots.yaml and DOTS_LOG_LEVEL can set it too.
func AddLogArgs(cmd *cobra.Command, o *LogOptions) {
	cmd.PersistentFlags().StringVar(&o.Level, "log-level", "warn",
		"Log level: debug, info, warn or error. Logs go to stderr.")
	_ = viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))
}

// Logger builds a console logger writing to stderr at level. An empty level
// falls back to the flag value.
func (o *LogOptions) Logger(level string) (*zap.Logger, error) {
	if level == "" {
		level = o.Level
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(enc),
		zapcore.Lock(os.Stderr),
		lvl,
	)
	return zap.New(core), nil
}
