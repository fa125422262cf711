package common

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LoggerOptions controls where the JSON log file goes and how it is rotated.
type LoggerOptions struct {
	Dir        string
	FileName   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

func DefaultLoggerOptions() LoggerOptions {
	return LoggerOptions{
		Dir:        "logs",
		FileName:   "app.log",
		MaxSizeMB:  10,
		MaxBackups: 5,
		MaxAgeDays: 28,
		Compress:   true,
	}
}

var (
	logger     atomic.Pointer[zap.Logger]
	once       sync.Once
	loggerOpts = DefaultLoggerOptions()
)

// ConfigureLogger must be called before the first GetLogger call to take effect.
func ConfigureLogger(opts LoggerOptions) {
	defaults := DefaultLoggerOptions()
	if opts.Dir == "" {
		opts.Dir = defaults.Dir
	}
	if opts.FileName == "" {
		opts.FileName = defaults.FileName
	}
	if opts.MaxSizeMB <= 0 {
		opts.MaxSizeMB = defaults.MaxSizeMB
	}
	if opts.MaxBackups <= 0 {
		opts.MaxBackups = defaults.MaxBackups
	}
	if opts.MaxAgeDays <= 0 {
		opts.MaxAgeDays = defaults.MaxAgeDays
	}
	loggerOpts = opts
}

func getLogger() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	initLogger()
	return logger.Load()
}

func GetLogger() *zap.Logger {
	return getLogger().Named("default")
}

func GetLoggerWith(name string, fields ...zap.Field) *zap.Logger {
	return getLogger().Named(name).With(fields...)
}

func initLogger() {
	once.Do(func() {
		logsDir := loggerOpts.Dir
		if !filepath.IsAbs(logsDir) {
			dir, err := os.Getwd()
			if err != nil {
				log.Fatalf("Error getting current directory: %v", err)
			}
			logsDir = filepath.Join(dir, logsDir)
		}

		if err := os.MkdirAll(logsDir, os.ModePerm); err != nil {
			log.Fatalf("Error find/create logs directory: %v", err)
		}

		logFile := &lumberjack.Logger{
			Filename:   filepath.Join(logsDir, loggerOpts.FileName),
			MaxSize:    loggerOpts.MaxSizeMB, // megabytes
			MaxBackups: loggerOpts.MaxBackups,
			MaxAge:     loggerOpts.MaxAgeDays, // days
			Compress:   loggerOpts.Compress,   // gzip
		}

		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			zapcore.AddSync(logFile),
			zap.InfoLevel,
		)

		var l *zap.Logger
		if IsProduction() {
			l = zap.New(fileCore, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
		} else {
			consoleEncoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
			consoleCore := zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stdout), zap.DebugLevel)

			combinedCore := zapcore.NewTee(fileCore, consoleCore)
			l = zap.New(combinedCore, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
		}
		// a test logger stored before the first use wins
		logger.CompareAndSwap(nil, l)
	})
}

func SetTestCaptureLogger(buf *bytes.Buffer, level zapcore.Level) {
	_ = GetLogger()

	writer := zapcore.Lock(zapcore.AddSync(buf))
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	core := zapcore.NewCore(encoder, writer, level)
	logger.Store(zap.New(core))
}

func SetTestLoggerNop() {
	_ = GetLogger()

	logger.Store(zap.NewNop())
}
