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

package hqlgen

import (
	"io"

	"github.com/ieudata/hqlgen/logger"
	"github.com/ieudata/hqlgen/validator"
)

// Option 表示对引擎默认行为的修改配置。
// 通过函数式选项模式，用户可以灵活地配置引擎的各种行为。
type Option func(*Engine)

// WithLogger 设置自定义日志记录器。
// 允许用户提供自己的日志实现，支持不同的日志后端和格式。
//
// 示例:
//
//	customLogger := logger.NewLogger(logger.DEBUG, os.Stderr)
//	engine := hqlgen.New(hqlgen.WithLogger(customLogger))
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		logger.SetDefault(log)
	}
}

// WithLogLevel 设置日志级别。
// 这是设置日志级别的便捷方法，使用默认的日志输出目标。
//
// 示例:
//
//	// 调试级别
//	engine := hqlgen.New(hqlgen.WithLogLevel(logger.DEBUG))
//
//	// 关闭日志
//	engine := hqlgen.New(hqlgen.WithLogLevel(logger.OFF))
func WithLogLevel(level logger.Level) Option {
	return func(e *Engine) {
		logger.GetDefault().SetLevel(level)
	}
}

// WithLogOutput 设置日志输出目标。
//
// 示例:
//
//	logFile, _ := os.OpenFile("hqlgen.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
//	engine := hqlgen.New(hqlgen.WithLogOutput(logFile, logger.INFO))
func WithLogOutput(output io.Writer, level logger.Level) Option {
	return func(e *Engine) {
		logger.SetDefault(logger.NewLogger(level, output))
	}
}

// WithDiscardLog 禁用所有日志输出。
//
// 示例:
//
//	engine := hqlgen.New(hqlgen.WithDiscardLog())
func WithDiscardLog() Option {
	return func(e *Engine) {
		logger.SetDefault(logger.NewDiscardLogger())
	}
}

// WithCacheSize 设置请求缓存的最大条目数。
// 缺省为cache.DefaultMaxSize。
//
// 示例:
//
//	engine := hqlgen.New(hqlgen.WithCacheSize(1024))
func WithCacheSize(size int) Option {
	return func(e *Engine) {
		e.cacheSize = size
	}
}

// WithoutCache 禁用请求缓存。
// 每次Generate都会完整执行生成流程。
//
// 示例:
//
//	engine := hqlgen.New(hqlgen.WithoutCache())
func WithoutCache() Option {
	return func(e *Engine) {
		e.cacheEnabled = false
	}
}

// WithTokenizer 为语法校验器指定token级扫描器。
// 缺省使用内置的SQL tokenizer。
//
// 示例:
//
//	engine := hqlgen.New(hqlgen.WithTokenizer(validator.NewSQLTokenizer()))
func WithTokenizer(tokenizer validator.Tokenizer) Option {
	return func(e *Engine) {
		e.tokenizer = tokenizer
		e.hasTokenizer = true
	}
}

// WithoutTokenizer 关闭token级扫描，校验器只做结构检查。
// 校验结果会带一条dependency_missing告警。
//
// 示例:
//
//	engine := hqlgen.New(hqlgen.WithoutTokenizer())
func WithoutTokenizer() Option {
	return func(e *Engine) {
		e.tokenizer = nil
		e.hasTokenizer = true
	}
}
