package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// InitLogger initializes a zap logger writing human-readable output to the
// console and JSON to a timestamped file under logDir. An empty logDir
// disables the file sink. consoleLevel accepts zap level names ("debug",
// "info", "warn", "error"); the file always captures debug.
func InitLogger(logDir, consoleLevel string) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if consoleLevel != "" {
		if err := level.Set(consoleLevel); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", consoleLevel, err)
		}
	}

	consoleEncoderConfig := zap.NewDevelopmentEncoderConfig()
	consoleEncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	consoleEncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	consoleEncoder := zapcore.NewConsoleEncoder(consoleEncoderConfig)

	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stderr), level),
	}

	if logDir != "" {
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create logs directory: %w", err)
		}

		timestamp := time.Now().Format("2006-01-02_15-04-05")
		logFileName := filepath.Join(logDir, fmt.Sprintf("roster_%s.log", timestamp))
		logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}

		fileEncoderConfig := zap.NewProductionEncoderConfig()
		fileEncoderConfig.TimeKey = "timestamp"
		fileEncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		fileEncoder := zapcore.NewJSONEncoder(fileEncoderConfig)

		cores = append(cores, zapcore.NewCore(fileEncoder, zapcore.AddSync(logFile), zapcore.DebugLevel))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	return logger, nil
}
