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

// Package logger 提供HQL生成核心的日志能力。
// 支持分级输出与可替换的日志后端。
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// Level 日志级别
type Level int

const (
	// DEBUG 调试级别，输出生成过程的细节
	DEBUG Level = iota
	// INFO 信息级别
	INFO
	// WARN 警告级别
	WARN
	// ERROR 错误级别
	ERROR
	// OFF 关闭日志
	OFF
)

// String 返回级别名称
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case OFF:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// Logger 日志接口
type Logger interface {
	// Debug 记录调试级别的日志
	Debug(format string, args ...interface{})
	// Info 记录信息级别的日志
	Info(format string, args ...interface{})
	// Warn 记录警告级别的日志
	Warn(format string, args ...interface{})
	// Error 记录错误级别的日志
	Error(format string, args ...interface{})
	// SetLevel 设置日志级别
	SetLevel(level Level)
}

// defaultLogger 默认实现
type defaultLogger struct {
	level  Level
	logger *log.Logger
}

// NewLogger 创建日志器。
//
//	logger := NewLogger(INFO, os.Stdout)
//	logger.Info("generator ready")
func NewLogger(level Level, output io.Writer) Logger {
	return &defaultLogger{
		level:  level,
		logger: log.New(output, "", 0), // 自定义时间戳格式，不用标准库前缀
	}
}

// Debug 记录调试级别的日志
func (l *defaultLogger) Debug(format string, args ...interface{}) {
	if l.level <= DEBUG {
		l.log(DEBUG, format, args...)
	}
}

// Info 记录信息级别的日志
func (l *defaultLogger) Info(format string, args ...interface{}) {
	if l.level <= INFO {
		l.log(INFO, format, args...)
	}
}

// Warn 记录警告级别的日志
func (l *defaultLogger) Warn(format string, args ...interface{}) {
	if l.level <= WARN {
		l.log(WARN, format, args...)
	}
}

// Error 记录错误级别的日志
func (l *defaultLogger) Error(format string, args ...interface{}) {
	if l.level <= ERROR {
		l.log(ERROR, format, args...)
	}
}

// SetLevel 设置日志级别
func (l *defaultLogger) SetLevel(level Level) {
	l.level = level
}

func (l *defaultLogger) log(level Level, format string, args ...interface{}) {
	if l.level == OFF {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	message := fmt.Sprintf(format, args...)
	l.logger.Println(fmt.Sprintf("[%s] [%s] %s", timestamp, level.String(), message))
}

// discardLogger 丢弃全部输出
type discardLogger struct{}

// NewDiscardLogger 创建丢弃所有日志的日志器，用于不需要输出的场景
func NewDiscardLogger() Logger {
	return &discardLogger{}
}

func (d *discardLogger) Debug(format string, args ...interface{}) {}
func (d *discardLogger) Info(format string, args ...interface{})  {}
func (d *discardLogger) Warn(format string, args ...interface{})  {}
func (d *discardLogger) Error(format string, args ...interface{}) {}
func (d *discardLogger) SetLevel(level Level)                     {}

// 全局默认日志器
var defaultInstance Logger = NewLogger(INFO, os.Stdout)

// SetDefault 设置全局默认日志器
func SetDefault(logger Logger) {
	defaultInstance = logger
}

// GetDefault 获取全局默认日志器
func GetDefault() Logger {
	return defaultInstance
}

// 便捷的全局日志方法

// Debug 用默认日志器记录调试信息
func Debug(format string, args ...interface{}) {
	defaultInstance.Debug(format, args...)
}

// Info 用默认日志器记录信息
func Info(format string, args ...interface{}) {
	defaultInstance.Info(format, args...)
}

// Warn 用默认日志器记录警告
func Warn(format string, args ...interface{}) {
	defaultInstance.Warn(format, args...)
}

// Error 用默认日志器记录错误
func Error(format string, args ...interface{}) {
	defaultInstance.Error(format, args...)
}
