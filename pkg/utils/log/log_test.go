package log

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/yeisme/ptserve/pkg/configs"
)

func TestParseLevel(t *testing.T) {
	testCases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"fatal":   zerolog.FatalLevel,
		"panic":   zerolog.PanicLevel,
		"verbose": zerolog.InfoLevel,
		"":        zerolog.InfoLevel,
	}
	for in, want := range testCases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLevelPriority(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logCfg := &configs.LogConfig{Level: "error", Mode: "console"}
	testCases := []struct {
		name string
		app  configs.AppConfig
		want zerolog.Level
	}{
		{"config level", configs.AppConfig{}, zerolog.ErrorLevel},
		{"verbose", configs.AppConfig{Verbose: true}, zerolog.InfoLevel},
		{"debug over verbose", configs.AppConfig{Debug: true, Verbose: true}, zerolog.DebugLevel},
		{"quiet over debug", configs.AppConfig{Quiet: true, Debug: true}, zerolog.PanicLevel},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ApplyLevel(logCfg, &tc.app); got != tc.want {
				t.Errorf("ApplyLevel() = %v, want %v", got, tc.want)
			}
			if got := zerolog.GlobalLevel(); got != tc.want {
				t.Errorf("global level = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestInitLoggerConsoleJSON(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	orig := consoleOut
	consoleOut = &buf
	defer func() { consoleOut = orig }()

	logger := InitLogger(context.Background(),
		&configs.LogConfig{Level: "info", Mode: "console", JSON: true},
		&configs.AppConfig{Name: "ptserve"})
	logger.Info().Int("port", 8000).Msg("listening")
	logger.Debug().Msg("hidden")

	out := buf.String()
	if !strings.Contains(out, `"port":8000`) || !strings.Contains(out, `"message":"listening"`) {
		t.Errorf("unexpected log output: %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message written at info level: %q", out)
	}
	if GetLogger() != logger {
		t.Error("GetLogger should return the initialized logger")
	}
}

func TestInitLoggerFile(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	path := filepath.Join(t.TempDir(), "logs", "ptserve.log")
	logger := InitLogger(context.Background(),
		&configs.LogConfig{Level: "info", Mode: "file", FilePath: path, MaxSize: 1},
		&configs.AppConfig{Name: "ptserve"})
	logger.Info().Msg("to file")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file missing message: %q", data)
	}
}

func TestInitLoggerQuiet(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	orig := consoleOut
	consoleOut = &buf
	defer func() { consoleOut = orig }()

	logger := InitLogger(context.Background(),
		&configs.LogConfig{Level: "debug", Mode: "console"},
		&configs.AppConfig{Quiet: true})
	logger.Error().Msg("nothing")

	if buf.Len() != 0 {
		t.Errorf("quiet logger wrote output: %q", buf.String())
	}
}
