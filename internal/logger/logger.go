// Package logger provides structured logging using Zap.
package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Options tune the global logger.
type Options struct {
	// Env "production" selects JSON output on stdout; anything else is a
	// human-readable console encoder at debug level.
	Env string
	// FilePath, when set, tees JSON entries at info level and above into a
	// rotated file.
	FilePath string
}

// Init initializes the global logger for the given environment.
func Init(env string) {
	InitWithOptions(Options{Env: env})
}

// InitWithOptions initializes the global logger once; later calls are no-ops.
func InitWithOptions(opts Options) {
	once.Do(func() {
		sugar = zap.New(newCore(opts), zap.AddCaller()).Sugar()
	})
}

func newCore(opts Options) zapcore.Core {
	prod := opts.Env == "production"

	jsonEncoder := zapcore.NewJSONEncoder(productionEncoderConfig())

	var consoleEncoder zapcore.Encoder
	level := zap.DebugLevel
	if prod {
		consoleEncoder = jsonEncoder
		level = zap.InfoLevel
	} else {
		consoleEncoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}
	core := zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stdout), level)

	if opts.FilePath == "" {
		return core
	}

	rotator := &lumberjack.Logger{
		Filename:   opts.FilePath,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}
	fileCore := zapcore.NewCore(jsonEncoder, zapcore.AddSync(rotator), zap.InfoLevel)
	return zapcore.NewTee(core, fileCore)
}

func productionEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg
}

// Get returns the global sugared logger.
// If Init has not been called, it initializes a development logger.
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development")
	}
	return sugar
}

// Sync flushes any buffered log entries. Call this before application exit.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
