package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileName is the log file created inside Options.Dir.
const FileName = "marquee.log"

// Options configure New.
type Options struct {
	// Dir receives the rotated log file. Empty disables the file sink.
	Dir string
	// Debug lowers the level to debug and switches to the console encoder.
	Debug bool
	// Console, when non-nil, receives a copy of every entry. The terminal UI
	// leaves it nil because stdout belongs to the renderer.
	Console io.Writer
}

// New builds the application logger.
func New(opts Options) (*zap.Logger, error) {
	level := zap.InfoLevel
	if opts.Debug {
		level = zap.DebugLevel
	}

	var cores []zapcore.Core
	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		// The file stays JSON so Tail can parse it back.
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   filepath.Join(opts.Dir, FileName),
			MaxSize:    10, // MB
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig(false)), fileWriter, level))
	}
	if opts.Console != nil {
		var encoder zapcore.Encoder = zapcore.NewJSONEncoder(encoderConfig(false))
		if opts.Debug {
			encoder = zapcore.NewConsoleEncoder(encoderConfig(true))
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(opts.Console), level))
	}
	if len(cores) == 0 {
		return zap.NewNop(), nil
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

// encoderConfig returns the key layout for a sink. JSON sinks use the
// production keys (level, msg, logger) that Tail parses.
func encoderConfig(development bool) zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	if development {
		cfg = zap.NewDevelopmentEncoderConfig()
	}
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.CallerKey = "caller"
	cfg.EncodeCaller = zapcore.ShortCallerEncoder
	if !development {
		cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	}
	return cfg
}
