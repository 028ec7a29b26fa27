package context

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".ptserve.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestInitServeContext(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	path := writeConfig(t, "server:\n  port: 9002\nlog:\n  level: error\n")
	ctx, err := InitServeContext(context.Background(), GlobalFlags{ConfigPath: path, Quiet: true})
	if err != nil {
		t.Fatalf("InitServeContext returned an error: %v", err)
	}

	if ctx.Config.Server.Port != 9002 {
		t.Errorf("Port = %d, want 9002", ctx.Config.Server.Port)
	}
	if !ctx.Config.App.Quiet {
		t.Error("--quiet flag not applied to config")
	}
	if ctx.Viper.ConfigFileUsed() != path {
		t.Errorf("ConfigFileUsed() = %q, want %q", ctx.Viper.ConfigFileUsed(), path)
	}
	if ctx.Logger == nil {
		t.Fatal("Logger is nil")
	}
}

func TestInitServeContextBadFile(t *testing.T) {
	path := writeConfig(t, "server: [")
	if _, err := InitServeContext(context.Background(), GlobalFlags{ConfigPath: path, Quiet: true}); err == nil {
		t.Fatal("expected an error for a malformed config file")
	}
}

func TestReloadKeepsFlags(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	path := writeConfig(t, "log:\n  level: error\n")
	flags := GlobalFlags{ConfigPath: path, Quiet: true}
	ctx, err := InitServeContext(context.Background(), flags)
	if err != nil {
		t.Fatalf("InitServeContext returned an error: %v", err)
	}

	if err := os.WriteFile(path, []byte("log:\n  level: trace\n"), 0644); err != nil {
		t.Fatalf("Failed to rewrite config file: %v", err)
	}
	if err := ctx.Viper.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig returned an error: %v", err)
	}
	if err := ctx.reload(flags); err != nil {
		t.Fatalf("reload returned an error: %v", err)
	}

	if ctx.Config.Log.Level != "trace" {
		t.Errorf("Log.Level = %q, want %q", ctx.Config.Log.Level, "trace")
	}
	if !ctx.Config.App.Quiet {
		t.Error("flags lost after reload")
	}
}

func TestWatchConfigWithoutFile(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	defer func() { _ = os.Chdir(wd) }()
	t.Setenv("HOME", dir)

	ctx, err := InitServeContext(context.Background(), GlobalFlags{Quiet: true})
	if err != nil {
		t.Fatalf("InitServeContext returned an error: %v", err)
	}
	if ctx.WatchConfig(GlobalFlags{Quiet: true}) {
		t.Error("WatchConfig should not start without a config file")
	}
}
