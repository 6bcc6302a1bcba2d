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

package validator

import (
	"regexp"

	"github.com/xwb1989/sqlparser"
)

// Tokenizer 可选的token级扫描器。产出的一律是告警，
// 结构检查不依赖它。
type Tokenizer interface {
	Scan(hql string) []Issue
}

// hiveVariablePattern Hive占位符，tokenize前替换为普通字面量
var hiveVariablePattern = regexp.MustCompile(`\$\{[A-Za-z_][A-Za-z0-9_]*\}`)

// sqlTokenizer 基于sqlparser的token扫描。
// Hive方言与MySQL并不完全兼容，所以词法错误只降级为告警。
type sqlTokenizer struct{}

// NewSQLTokenizer 创建默认的token扫描器
func NewSQLTokenizer() Tokenizer {
	return &sqlTokenizer{}
}

// Scan 逐token扫描，词法错误产出告警
func (t *sqlTokenizer) Scan(hql string) []Issue {
	// ${ds}这类占位符不是合法SQL，先换成日期字面量
	sanitized := hiveVariablePattern.ReplaceAllString(hql, "20240101")

	var issues []Issue
	tokens := sqlparser.NewStringTokenizer(sanitized)
	for {
		typ, value := tokens.Scan()
		if typ == 0 {
			break
		}
		if typ == sqlparser.LEX_ERROR {
			issues = append(issues, Issue{
				Code:       "lex_error",
				Message:    "unrecognised token near '" + string(value) + "'",
				Suggestion: "check the statement near the reported token",
			})
			break
		}
	}
	return issues
}
