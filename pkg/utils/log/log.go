// Package log 提供全局日志记录器的初始化和获取功能
// 使用 zerolog 作为日志库，支持多种输出模式（控制台、文件、两者）
// 日志写到 stderr，stdout 留给服务启动信息
package log

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/yeisme/ptserve/pkg/configs"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger 定义全局日志记录器类型
type Logger = *zerolog.Logger

// globalLogger 全局日志记录器实例，由 InitLogger 初始化
var globalLogger Logger

// consoleOut 控制台输出目标
var consoleOut io.Writer = os.Stderr

// InitLogger 初始化日志记录器
func InitLogger(ctx context.Context, config *configs.LogConfig, appConfig *configs.AppConfig) Logger {
	// 优先级：quiet > debug > verbose > config.Level
	if appConfig.Quiet {
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
		logger := zerolog.New(io.Discard)
		globalLogger = &logger
		log.Logger = logger
		return &logger
	}
	zerolog.SetGlobalLevel(resolveLevel(config, appConfig))

	// 创建输出目标
	var writers []io.Writer

	// 根据模式配置输出
	switch strings.ToLower(config.Mode) {
	case "file":
		writers = append(writers, createFileWriter(config))
	case "both":
		writers = append(writers, createConsoleWriter(config.JSON))
		writers = append(writers, createFileWriter(config))
	default:
		// 默认输出到控制台
		writers = append(writers, createConsoleWriter(config.JSON))
	}

	var output io.Writer
	if len(writers) == 1 {
		output = writers[0]
	} else {
		output = io.MultiWriter(writers...)
	}

	var logger zerolog.Logger
	switch {
	case appConfig.Debug:
		logger = zerolog.New(output).With().Caller().
			Str("app", appConfig.Name).
			Ctx(ctx).Timestamp().Logger()
	case appConfig.Verbose:
		logger = zerolog.New(output).With().
			Str("app", appConfig.Name).
			Ctx(ctx).Timestamp().Logger()
	default:
		logger = zerolog.New(output).With().Timestamp().Logger()
	}

	globalLogger = &logger
	log.Logger = logger
	return &logger
}

// resolveLevel 按 debug > verbose > config.Level 的顺序确定日志级别
func resolveLevel(config *configs.LogConfig, appConfig *configs.AppConfig) zerolog.Level {
	switch {
	case appConfig.Debug:
		return zerolog.DebugLevel
	case appConfig.Verbose:
		return zerolog.InfoLevel
	default:
		return ParseLevel(config.Level)
	}
}

// ApplyLevel 重新应用配置中的日志级别，用于配置热加载
func ApplyLevel(config *configs.LogConfig, appConfig *configs.AppConfig) zerolog.Level {
	level := resolveLevel(config, appConfig)
	if appConfig.Quiet {
		level = zerolog.PanicLevel
	}
	zerolog.SetGlobalLevel(level)
	return level
}

// createConsoleWriter 创建控制台输出写入器
func createConsoleWriter(useJSON bool) io.Writer {
	if useJSON {
		return consoleOut
	}
	return zerolog.ConsoleWriter{
		Out:        consoleOut,
		TimeFormat: "2006-01-02 15:04:05",
	}
}

// createFileWriter 创建文件输出写入器
func createFileWriter(config *configs.LogConfig) io.Writer {
	// 确保日志目录存在
	logDir := filepath.Dir(config.FilePath)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return consoleOut
	}

	// 使用 lumberjack 进行日志轮转
	return &lumberjack.Logger{
		Filename:   config.FilePath,
		MaxSize:    config.MaxSize,    // megabytes
		MaxBackups: config.MaxBackups, // 保留备份数量
		MaxAge:     config.MaxAge,     // days
		Compress:   true,              // 压缩旧日志文件
	}
}

// GetLogger 获取全局日志记录器，未初始化时返回 info 级别的控制台日志
func GetLogger() Logger {
	if globalLogger == nil {
		return InitLogger(context.Background(),
			&configs.LogConfig{Level: "info", Mode: "console"},
			&configs.AppConfig{Name: "ptserve"})
	}
	return globalLogger
}

// ParseLevel 解析日志级别，无法识别时返回 info
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}
