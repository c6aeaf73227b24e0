package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Standard field names for structured logging.
const (
	FieldFile     = "file"
	FieldSection  = "section"
	FieldSelector = "selector"
	FieldMode     = "mode"
	FieldCount    = "count"
	FieldError    = "error"
)

// Logger is the process-wide logger. It discards everything until
// Initialize is called.
var Logger = zap.NewNop().Sugar()

// Initialize installs a console logger on stderr, or a JSON logger when
// jsonOutput is set. Debug messages are only written when verbose.
func Initialize(verbose, jsonOutput bool) error {
	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}

	if jsonOutput {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(level)
		cfg.OutputPaths = []string{"stderr"}
		z, err := cfg.Build()
		if err != nil {
			return err
		}
		Logger = z.Sugar()
		return nil
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	Logger = zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(os.Stderr),
		level,
	)).Sugar()
	return nil
}

// Sync flushes buffered entries.
func Sync() {
	_ = Logger.Sync()
}
