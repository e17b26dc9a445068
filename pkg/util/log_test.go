package util

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

// saveLoggerState saves the current logger state for restoration
func saveLoggerState() (io.Writer, logrus.Level, logrus.Formatter) {
	return Logger.Out, Logger.Level, Logger.Formatter
}

// restoreLoggerState restores the logger to its previous state
func restoreLoggerState(out io.Writer, level logrus.Level, formatter logrus.Formatter) {
	Logger.SetOutput(out)
	Logger.SetLevel(level)
	Logger.SetFormatter(formatter)
}

func TestSetLogLevel(t *testing.T) {
	out, level, formatter := saveLoggerState()
	defer restoreLoggerState(out, level, formatter)

	tests := []struct {
		level   string
		wantErr bool
	}{
		{"debug", false},
		{"info", false},
		{"warn", false},
		{"error", false},
		{"invalid", true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			err := SetLogLevel(tt.level)
			if (err != nil) != tt.wantErr {
				t.Errorf("SetLogLevel(%q) error = %v, wantErr %v", tt.level, err, tt.wantErr)
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	out, level, formatter := saveLoggerState()
	defer restoreLoggerState(out, level, formatter)

	var buf bytes.Buffer
	SetLogOutput(&buf)
	SetLogLevel("warn")

	Debugf("hidden %d", 1)
	Infof("hidden %d", 2)
	if buf.Len() != 0 {
		t.Errorf("expected no output below warn, got %q", buf.String())
	}

	Warnf("shown %d", 3)
	if !strings.Contains(buf.String(), "shown 3") {
		t.Errorf("expected warn output, got %q", buf.String())
	}
}

func TestSetJSONFormat(t *testing.T) {
	out, level, formatter := saveLoggerState()
	defer restoreLoggerState(out, level, formatter)

	var buf bytes.Buffer
	SetLogOutput(&buf)
	SetJSONFormat()

	WithRouter(3).Infof("computed %d routes", 4)

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if line["router"] != float64(3) {
		t.Errorf("router field = %v, want 3", line["router"])
	}
	if line["msg"] != "computed 4 routes" {
		t.Errorf("msg = %v", line["msg"])
	}
}

func TestWithTopologyShortensFingerprint(t *testing.T) {
	entry := WithTopology("0123456789abcdef0123")
	if got := entry.Data["topology"]; got != "0123456789ab" {
		t.Errorf("topology field = %v, want 0123456789ab", got)
	}

	entry = WithTopology("abc")
	if got := entry.Data["topology"]; got != "abc" {
		t.Errorf("topology field = %v, want abc", got)
	}
}

func TestWithOperation(t *testing.T) {
	entry := WithOperation("failure.set")
	if entry.Data["operation"] != "failure.set" {
		t.Errorf("operation field = %v", entry.Data["operation"])
	}
}

func TestErrorf(t *testing.T) {
	out, level, formatter := saveLoggerState()
	defer restoreLoggerState(out, level, formatter)

	var buf bytes.Buffer
	SetLogOutput(&buf)

	Errorf("error %s %d", "message", 999)

	if buf.Len() == 0 {
		t.Error("Expected error output")
	}
}

func TestSetLogFile(t *testing.T) {
	out, level, formatter := saveLoggerState()
	defer restoreLoggerState(out, level, formatter)

	path := filepath.Join(t.TempDir(), "logs", "lsrsim.log")
	closer := SetLogFile(path)
	Logger.SetLevel(logrus.InfoLevel)
	WithRouter(3).Infof("router %d marked as failed", 3)
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "router 3 marked as failed") || !strings.Contains(string(data), "router=3") {
		t.Errorf("log file = %q", data)
	}
}
