/*
 * Copyright 2025 The HQLGen Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package logger

import (
	"bytes"
	"strings"
	"testing"
)

// TestLevelString 测试级别名称
func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{DEBUG, "DEBUG"},
		{INFO, "INFO"},
		{WARN, "WARN"},
		{ERROR, "ERROR"},
		{OFF, "OFF"},
		{Level(999), "UNKNOWN"},
	}

	for _, test := range tests {
		if got := test.level.String(); got != test.expected {
			t.Errorf("Level(%d).String() = %q, want %q", test.level, got, test.expected)
		}
	}
}

// TestLoggerOutput 格式化输出带级别与时间戳
func TestLoggerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(DEBUG, &buf)

	logger.Info("generated hql for event %s", "login")
	output := buf.String()

	if !strings.Contains(output, "generated hql for event login") {
		t.Errorf("Expected formatted message in output, got: %s", output)
	}
	if !strings.Contains(output, "[INFO]") {
		t.Errorf("Expected [INFO] in output, got: %s", output)
	}
	if !strings.Contains(output, "[20") {
		t.Errorf("Expected timestamp in output, got: %s", output)
	}
}

// TestLevelFiltering 低于设定级别的日志被过滤
func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		loggerLevel  Level
		messageLevel Level
		shouldLog    bool
	}{
		{DEBUG, DEBUG, true},
		{INFO, DEBUG, false},
		{INFO, WARN, true},
		{WARN, INFO, false},
		{ERROR, WARN, false},
		{ERROR, ERROR, true},
		{OFF, ERROR, false},
	}

	for _, test := range tests {
		var buf bytes.Buffer
		logger := NewLogger(test.loggerLevel, &buf)

		switch test.messageLevel {
		case DEBUG:
			logger.Debug("msg")
		case INFO:
			logger.Info("msg")
		case WARN:
			logger.Warn("msg")
		case ERROR:
			logger.Error("msg")
		}

		if hasOutput := buf.Len() > 0; hasOutput != test.shouldLog {
			t.Errorf("logger %s message %s: shouldLog=%v hasOutput=%v",
				test.loggerLevel, test.messageLevel, test.shouldLog, hasOutput)
		}
	}
}

// TestSetLevel 运行时调整级别
func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(DEBUG, &buf)
	logger.SetLevel(ERROR)

	logger.Debug("debug message")
	logger.Info("info message")
	if buf.Len() > 0 {
		t.Errorf("Expected no output below ERROR, got: %s", buf.String())
	}

	logger.Error("error message")
	if !strings.Contains(buf.String(), "error message") {
		t.Errorf("Expected error message, got: %s", buf.String())
	}
}

// TestDiscardLogger 丢弃日志器所有方法静默
func TestDiscardLogger(t *testing.T) {
	logger := NewDiscardLogger()
	if logger == nil {
		t.Fatal("NewDiscardLogger() returned nil")
	}
	logger.Debug("debug %s", "x")
	logger.Info("info %d", 1)
	logger.Warn("warn")
	logger.Error("error")
	logger.SetLevel(DEBUG)
}

// TestGlobalLogger 全局默认日志器可替换可恢复
func TestGlobalLogger(t *testing.T) {
	original := GetDefault()
	defer SetDefault(original)

	var buf bytes.Buffer
	SetDefault(NewLogger(DEBUG, &buf))

	Debug("global debug")
	Info("global info")
	Warn("global warn")
	Error("global error")

	output := buf.String()
	for _, msg := range []string{"global debug", "global info", "global warn", "global error"} {
		if !strings.Contains(output, msg) {
			t.Errorf("Expected output to contain %q, got: %s", msg, output)
		}
	}
}
