package common

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("LogLevel.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{" DEBUG ", LevelDebug},
		{"warning", LevelWarn},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"info", LevelInfo},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLogLevel(tt.in); got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestAppLogger_LogFiltering(t *testing.T) {
	var buf bytes.Buffer

	logger := &AppLogger{
		level:  LevelWarn,
		output: &buf,
	}
	logger.logger = newTestLogger(&buf)

	logger.Debug("debug message")
	logger.Info("info message")

	if buf.Len() > 0 {
		t.Error("Debug/Info messages should be filtered when level is Warn")
	}

	logger.Warn("warn message")
	if !strings.Contains(buf.String(), "WARN") {
		t.Error("Warn message should be logged")
	}

	buf.Reset()
	logger.Error("error message")
	if !strings.Contains(buf.String(), "ERROR") {
		t.Error("Error message should be logged")
	}
}

func TestAppLogger_LogFormatting(t *testing.T) {
	var buf bytes.Buffer

	logger := &AppLogger{
		level:  LevelDebug,
		output: &buf,
	}
	logger.logger = newTestLogger(&buf)

	logger.Info("Connected to %s", "de1017")

	output := buf.String()

	if !strings.Contains(output, time.Now().Format("2006/01/02")) {
		t.Error("Log should contain date in YYYY/MM/DD format")
	}
	if !strings.Contains(output, "[INFO]") {
		t.Error("Log should contain level indicator")
	}
	if !strings.Contains(output, "Connected to de1017") {
		t.Error("Log should contain formatted message")
	}
	if !strings.Contains(output, "logger_test.go") {
		t.Errorf("Log should contain caller file, got %q", output)
	}
}

func TestLogShorthand_ReportsCaller(t *testing.T) {
	var buf bytes.Buffer
	logger := GetLogger()
	logger.SetOutput(&buf)
	defer logger.SetOutput(os.Stdout)

	LogWarn("quick connect failed")

	output := buf.String()
	if !strings.Contains(output, "logger_test.go:") {
		t.Errorf("LogWarn() caller = %q, want logger_test.go", output)
	}
	if strings.Contains(output, "logger.go:") {
		t.Errorf("LogWarn() reported its own frame: %q", output)
	}
}

func TestAppLogger_RotateFallsBackToConsole(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer

	logger := &AppLogger{
		level:       LevelInfo,
		console:     &console,
		maxFileSize: 1,
		maxBackups:  defaultMaxBackups,
	}
	if err := logger.EnableFileLogging(dir); err != nil {
		t.Fatalf("EnableFileLogging() error = %v", err)
	}
	logger.Info("before rotation")

	logger.rotate(filepath.Join(dir, LogFileName))
	logger.Info("between rotation and reopen")

	if !strings.Contains(console.String(), "between rotation and reopen") {
		t.Errorf("console output = %q, want the line logged after rotation", console.String())
	}
	if logger.output != &console {
		t.Error("output still writes to the closed log file after rotate()")
	}

	if err := logger.EnableFileLogging(dir); err != nil {
		t.Fatalf("EnableFileLogging() after rotation error = %v", err)
	}
	logger.Info("after reopen")
	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "after reopen") {
		t.Errorf("log file = %q, want the line logged after reopen", data)
	}
	logger.Close()
}

func TestAppLogger_EnableFileLogging(t *testing.T) {
	dir := t.TempDir()

	logger := &AppLogger{
		level:       LevelInfo,
		maxFileSize: defaultMaxFileSize,
		maxBackups:  defaultMaxBackups,
	}
	if err := logger.EnableFileLogging(dir); err != nil {
		t.Fatalf("EnableFileLogging() error = %v", err)
	}
	defer logger.Close()

	want := filepath.Join(dir, LogFileName)
	if got := logger.LogFilePath(); got != want {
		t.Errorf("LogFilePath() = %v, want %v", got, want)
	}

	logger.Info("written to file")

	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("log file content = %q, want message", string(data))
	}
}

func TestAppLogger_EnableFileLoggingRejectsSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real")
	if err := os.Mkdir(target, 0700); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skip("symlinks not supported")
	}

	logger := &AppLogger{level: LevelInfo, maxFileSize: defaultMaxFileSize}
	if err := logger.EnableFileLogging(link); err == nil {
		t.Error("EnableFileLogging() should refuse a symlinked directory")
	}
}

func TestDefaultLogConfig(t *testing.T) {
	if defaultMaxFileSize != 5*1024*1024 {
		t.Errorf("defaultMaxFileSize = %v, want 5MB", defaultMaxFileSize)
	}

	if defaultMaxBackups != 5 {
		t.Errorf("defaultMaxBackups = %v, want 5", defaultMaxBackups)
	}
}

func TestGetConfigDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if !strings.HasSuffix(dir, filepath.Join(".config", ConfigDirName)) {
		t.Errorf("GetConfigDir() = %v, should end with .config/%v", dir, ConfigDirName)
	}
	if !FileExists(dir) {
		t.Errorf("GetConfigDir() should create %v", dir)
	}
}

func TestFileExists(t *testing.T) {
	tempFile, err := os.CreateTemp("", "test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tempFile.Name())
	tempFile.Close()

	if !FileExists(tempFile.Name()) {
		t.Error("FileExists() should return true for existing file")
	}

	if FileExists("/nonexistent/path/to/file") {
		t.Error("FileExists() should return false for non-existing file")
	}
}

func TestMarkers(t *testing.T) {
	path := filepath.Join(t.TempDir(), ServerMarkerFileName)

	if got := ReadMarker(path); got != "" {
		t.Errorf("ReadMarker() on missing file = %q, want empty", got)
	}

	if err := WriteMarker(path, "de1017"); err != nil {
		t.Fatalf("WriteMarker() error = %v", err)
	}
	if got := ReadMarker(path); got != "de1017" {
		t.Errorf("ReadMarker() = %q, want %q", got, "de1017")
	}

	if err := os.WriteFile(path, []byte("  de1018\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if got := ReadMarker(path); got != "de1018" {
		t.Errorf("ReadMarker() should trim whitespace, got %q", got)
	}

	if err := WriteMarker(path, ""); err != nil {
		t.Fatalf("WriteMarker(\"\") error = %v", err)
	}
	if FileExists(path) {
		t.Error("WriteMarker(\"\") should remove the marker")
	}
	if err := WriteMarker(path, ""); err != nil {
		t.Errorf("WriteMarker(\"\") on missing file error = %v", err)
	}
}

func TestTouchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), AccountMarkerFileName)

	if err := TouchFile(path); err != nil {
		t.Fatalf("TouchFile() error = %v", err)
	}
	if !FileExists(path) {
		t.Error("TouchFile() should create the file")
	}
	if err := TouchFile(path); err != nil {
		t.Errorf("TouchFile() on existing file error = %v", err)
	}
}

func TestWrapError(t *testing.T) {
	originalErr := ErrTimeout
	wrapped := WrapError(originalErr, "nordvpn status")

	if wrapped == nil {
		t.Fatal("WrapError should return non-nil error")
	}
	if !strings.Contains(wrapped.Error(), "nordvpn status") {
		t.Error("WrapError should include additional context")
	}
	if !errors.Is(wrapped, ErrTimeout) {
		t.Error("WrapError should unwrap to the original error")
	}

	if WrapError(nil, "context") != nil {
		t.Error("WrapError(nil) should return nil")
	}
}

func TestCommandError(t *testing.T) {
	err := &CommandError{Command: "nordvpn connect", Code: 124, Err: ErrTimeout}

	if !errors.Is(err, ErrTimeout) {
		t.Error("CommandError should unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "124") {
		t.Errorf("CommandError.Error() = %q, want exit code", err.Error())
	}
}

func TestLogRotation(t *testing.T) {
	tempDir := t.TempDir()
	logFile := filepath.Join(tempDir, "test.log")

	largeContent := strings.Repeat("x", 1024*1024) // 1MB
	if err := os.WriteFile(logFile, []byte(largeContent), 0600); err != nil {
		t.Fatal(err)
	}

	logger := &AppLogger{
		level:       LevelInfo,
		maxFileSize: 512 * 1024,
		maxBackups:  2,
	}

	if !logger.rotateIfNeeded(logFile) {
		t.Error("rotateIfNeeded() should report a rotation")
	}

	info, err := os.Stat(logFile)
	if err == nil && info.Size() > 0 {
		t.Error("Original log file should be removed or empty after rotation")
	}

	matches, _ := filepath.Glob(filepath.Join(tempDir, "test.log.*"))
	if len(matches) == 0 {
		t.Error("Backup file should be created after rotation")
	}
}

// Helper to create a test logger
func newTestLogger(buf *bytes.Buffer) *log.Logger {
	return log.New(buf, "", 0)
}
