package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/cristianoliveira/contacts/internal/config"
	"github.com/stretchr/testify/require"
)

func setupTest(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmp, "state"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("HOME", tmp)
	config.Load()
	return tmp
}

func readLastLine(t *testing.T, dir string) string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	data, err := os.ReadFile(filepath.Join(dir, entries[len(entries)-1].Name()))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	return lines[len(lines)-1]
}

func TestConfigFromGlobal(t *testing.T) {
	setupTest(t)
	t.Setenv("CONTACTS_LOGGING_ENABLED", "true")
	t.Setenv("CONTACTS_LOGGING_LEVEL", "debug")
	t.Setenv("CONTACTS_LOGGING_MAX_FILES", "5")
	config.Load()

	cfg := FromGlobalConfig()
	require.True(t, cfg.Enabled)
	require.Equal(t, "debug", cfg.Level)
	require.Equal(t, 5, cfg.MaxFiles)
	require.Equal(t, filepath.Base(os.Args[0]), cfg.Command)
	require.Equal(t, os.Getpid(), cfg.PID)
}

func TestLogLevelMapping(t *testing.T) {
	setupTest(t)

	t.Setenv("CONTACTS_DEBUG", "true")
	t.Setenv("CONTACTS_LOGGING_LEVEL", "info")
	config.Load()
	require.Equal(t, "debug", FromGlobalConfig().Level)

	t.Setenv("CONTACTS_QUIET", "true")
	config.Load()
	require.Equal(t, "debug", FromGlobalConfig().Level, "debug wins over quiet")

	t.Setenv("CONTACTS_DEBUG", "")
	config.Load()
	require.Equal(t, "error", FromGlobalConfig().Level)

	t.Setenv("CONTACTS_QUIET", "")
	t.Setenv("CONTACTS_LOGGING_LEVEL", "warn")
	config.Load()
	require.Equal(t, "warn", FromGlobalConfig().Level)
}

func TestLogDir(t *testing.T) {
	tmp := setupTest(t)

	stateDir := config.Get("state_dir", "")
	require.True(t, strings.HasPrefix(stateDir, tmp), "state_dir %s not in temp dir %s", stateDir, tmp)

	logDir, err := LogDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(stateDir, "logs"), logDir)
	info, err := os.Stat(logDir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
	require.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestInitDisabled(t *testing.T) {
	logger, err := Init(Config{Enabled: false})
	require.NoError(t, err)
	require.IsType(t, noopLogger{}, logger)
	logger.Debug("test")
	logger.Info("test")
	logger.Warn("test")
	logger.Error("test")
	require.NoError(t, logger.Shutdown())
}

func TestInitEnabledCreatesFile(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Dir = dir
	cfg.Command = "contacts list"

	logger, err := Init(cfg)
	require.NoError(t, err)
	defer logger.Shutdown()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	fname := entries[0].Name()
	require.True(t, strings.HasPrefix(fname, "contacts_"))
	require.Contains(t, fname, fmt.Sprintf("_PID%d_", os.Getpid()))
	require.True(t, strings.HasSuffix(fname, "_contacts_list.log"))
	info, err := os.Stat(filepath.Join(dir, fname))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoggingWritesJSON(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Dir = dir

	logger, err := Init(cfg)
	require.NoError(t, err)
	logger.Info("fetch complete", "count", 42, "token_seq", "ignored")
	require.NoError(t, logger.Shutdown())

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(readLastLine(t, dir)), &entry))
	require.Equal(t, "info", entry["level"])
	require.Equal(t, "fetch complete", entry["msg"])
	require.Equal(t, float64(os.Getpid()), entry["pid"])
	require.IsType(t, "", entry["command"])
	require.Equal(t, float64(42), entry["count"])
}

func TestLevelFiltering(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Dir = dir
	cfg.Level = "warn"

	logger, err := Init(cfg)
	require.NoError(t, err)
	logger.Info("dropped")
	logger.Warn("kept")
	require.NoError(t, logger.Shutdown())

	line := readLastLine(t, dir)
	require.Contains(t, line, `"msg":"kept"`)
	require.NotContains(t, line, "dropped")
}

func TestRedaction(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Dir = dir

	logger, err := Init(cfg)
	require.NoError(t, err)
	logger.Info("contact created", "id", 7, "email", "ana@example.com", "contactPhone", "+14155552671", "password", "x")
	require.NoError(t, logger.Shutdown())

	line := readLastLine(t, dir)
	require.Contains(t, line, `"email":"[REDACTED]"`)
	require.Contains(t, line, `"contactPhone":"[REDACTED]"`)
	require.Contains(t, line, `"password":"[REDACTED]"`)
	require.Contains(t, line, `"id":7`)
	require.NotContains(t, line, "ana@example.com")
}

func TestRedactionEdgeCases(t *testing.T) {
	r := newRedactor()

	require.Equal(t, []any{"password", "[REDACTED]"}, r.redact([]any{"password", "secret"}))
	require.Equal(t, []any{"PASSWORD", "[REDACTED]"}, r.redact([]any{"PASSWORD", "secret"}))
	require.Equal(t, []any{"api_token", "[REDACTED]"}, r.redact([]any{"api_token", "xyz"}))
	require.Equal(t, []any{"api-token", "[REDACTED]"}, r.redact([]any{"api-token", "xyz"}))
	require.Equal(t, []any{"api.token", "[REDACTED]"}, r.redact([]any{"api.token", "xyz"}))
	require.Equal(t, []any{"workEmail", "[REDACTED]"}, r.redact([]any{"workEmail", "a@b.c"}))

	require.Equal(t, []any{"apitoken", "xyz"}, r.redact([]any{"apitoken", "xyz"}))
	require.Equal(t, []any{"secretary", "value"}, r.redact([]any{"secretary", "value"}))
	require.Equal(t, []any{"isActive", true}, r.redact([]any{"isActive", true}))

	input := []any{"phone", "555", "name", "Ana", "status", 200}
	output := r.redact(input)
	require.Equal(t, []any{"phone", "[REDACTED]", "name", "Ana", "status", 200}, output)
	require.Equal(t, "555", input[1], "input must not be modified")

	require.Equal(t, []any{"password", "[REDACTED]", "extra"}, r.redact([]any{"password", "hidden", "extra"}))
	require.Empty(t, r.redact([]any{}))
}

func TestRotation(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 3; i++ {
		path := filepath.Join(dir, fmt.Sprintf("contacts_20250101_12000%d_PID999_test.log", i))
		require.NoError(t, os.WriteFile(path, nil, 0600))
		old := time.Now().Add(-time.Duration(i+1) * time.Hour)
		require.NoError(t, os.Chtimes(path, old, old))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.log"), nil, 0600))

	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Dir = dir
	cfg.MaxFiles = 2
	logger, err := Init(cfg)
	require.NoError(t, err)
	require.NoError(t, logger.Shutdown())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	require.Len(t, names, 3, "one old log, the new log, and the unrelated file")
	require.Contains(t, names, "other.log")
	require.Contains(t, names, "contacts_20250101_120000_PID999_test.log")
}

func TestRotationKeepsFilesUnderLimit(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 5; i++ {
		path := filepath.Join(dir, fmt.Sprintf("contacts_20250101_12000%d_PID999_test.log", i))
		require.NoError(t, os.WriteFile(path, nil, 0600))
	}
	require.NoError(t, rotate(dir, 10))
	require.NoError(t, rotate(dir, 0))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 5)
}

func TestMaxFilesValidatorFallsBack(t *testing.T) {
	setupTest(t)
	t.Setenv("CONTACTS_LOGGING_MAX_FILES", "0")
	config.Load()
	require.Equal(t, 10, FromGlobalConfig().MaxFiles)
}

func TestWith(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Dir = dir

	logger, err := Init(cfg)
	require.NoError(t, err)

	child := logger.With("request_id", "abc")
	child.Info("with context")
	require.NoError(t, child.Shutdown(), "child shutdown leaves the file open")
	logger.Info("after child")
	require.NoError(t, logger.Shutdown())

	data, err := os.ReadFile(filepath.Join(dir, mustOnlyEntry(t, dir)))
	require.NoError(t, err)
	require.Contains(t, string(data), `"request_id":"abc"`)
	require.Contains(t, string(data), `"msg":"after child"`)
}

func mustOnlyEntry(t *testing.T, dir string) string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	return entries[0].Name()
}

func TestGlobalLoggerDefaultsToNoop(t *testing.T) {
	require.NotNil(t, GetGlobal())
	GetGlobal().Info("nothing happens")
	GetGlobal().With("count", 1).Warn("still nothing")
	require.Empty(t, CurrentLogFile())
	require.NoError(t, ShutdownGlobal())
}

func TestGlobalLifecycle(t *testing.T) {
	setupTest(t)
	t.Setenv("CONTACTS_LOGGING_ENABLED", "true")
	config.Load()

	require.NoError(t, InitGlobal())
	path := CurrentLogFile()
	require.NotEmpty(t, path)
	require.NoError(t, InitGlobal(), "second call keeps the first logger")
	require.Equal(t, path, CurrentLogFile())

	GetGlobal().Info("fetch", "email", "ana@example.com")
	require.NoError(t, ShutdownGlobal())
	require.Empty(t, CurrentLogFile())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"fetch"`)
	require.Contains(t, string(data), `"version":`)
	require.NotContains(t, string(data), "ana@example.com")
}

func TestFileName(t *testing.T) {
	cfg := Config{PID: 42, Command: "contacts add"}
	now := time.Date(2026, 3, 1, 9, 5, 7, 0, time.UTC)
	require.Equal(t, "contacts_20260301_090507_PID42_contacts_add.log", fileName(cfg, now))
}

func TestLevelParsing(t *testing.T) {
	require.Equal(t, clog.DebugLevel, parseLevel("debug"))
	require.Equal(t, clog.InfoLevel, parseLevel("info"))
	require.Equal(t, clog.WarnLevel, parseLevel("warn"))
	require.Equal(t, clog.WarnLevel, parseLevel("warning"))
	require.Equal(t, clog.ErrorLevel, parseLevel("error"))
	require.Equal(t, clog.InfoLevel, parseLevel("unknown"))
}
