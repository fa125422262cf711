package common

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	_ "liyu1981.xyz/weather-monitor-service/pkg/testing"
)

func TestLoggingCapture(t *testing.T) {
	var buf bytes.Buffer
	SetTestCaptureLogger(&buf, zapcore.InfoLevel)

	logger := GetLogger()
	logger.Info("Test log message", zap.String("key", "value"))

	logOutput := buf.String()
	if !strings.Contains(logOutput, "Test log message") {
		t.Errorf("expected log output to contain message, got: %s", logOutput)
	}
}

func TestLoggingCaptureWithName(t *testing.T) {
	var buf bytes.Buffer
	SetTestCaptureLogger(&buf, zapcore.InfoLevel)

	logger := GetLoggerWith(LoggerNameMonitor, zap.String(LoggerFieldCategory, LoggerCategoryLoop))
	logger.Debug("hidden below info")
	logger.Info("cycle finished")

	logOutput := buf.String()
	if strings.Contains(logOutput, "hidden below info") {
		t.Errorf("expected debug message to be filtered, got: %s", logOutput)
	}
	if !strings.Contains(logOutput, `"logger":"monitor"`) || !strings.Contains(logOutput, `"category":"loop"`) {
		t.Errorf("expected named logger with category field, got: %s", logOutput)
	}
}

// run with -race: named loggers are handed out while the test logger is swapped
func TestGetLoggerWith_Concurrent(t *testing.T) {
	SetTestLoggerNop()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				GetLoggerWith(LoggerNameMonitor, zap.String(LoggerFieldCategory, LoggerCategoryLoop)).Debug("tick")
				_ = GetLogger()
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 10 {
			SetTestLoggerNop()
		}
	}()
	wg.Wait()

	if GetLogger() == nil {
		t.Fatal("expected a logger after concurrent use")
	}
}
