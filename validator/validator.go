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

// Package validator performs structural and best-practice checks over
// an HQL string. It is deliberately not a SQL parser: a mix of string
// scans and regex heuristics classifies findings into errors and
// warnings with line/column hints. Malformed input never fails the
// call; it only produces diagnostics.
package validator

import (
	"fmt"
	"regexp"
	"strings"
)

// Issue 一条诊断信息
type Issue struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Line       int    `json:"line,omitempty"`
	Column     int    `json:"column,omitempty"`
	Suggestion string `json:"suggestion"`
}

// Result 校验结果。任何错误都会置Valid为false。
type Result struct {
	Valid    bool    `json:"is_valid"`
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// partitionEqualityPattern 识别常见分区字段的等值过滤
var partitionEqualityPattern = regexp.MustCompile(`(?i)\b(ds|dt|day|date)\s*=`)

// onKeywordPattern 把ON当作词法单元匹配，换行与制表符同样是合法分隔
var onKeywordPattern = regexp.MustCompile(`\bON\b`)

// joinOnWindow JOIN之后寻找ON子句的字符窗口
const joinOnWindow = 100

// maxSubqueryDepth 括号嵌套深度超过该值时告警
const maxSubqueryDepth = 3

// SyntaxValidator HQL结构校验器。
// tokenizer可选，缺失时退化为纯结构检查并给出dependency_missing告警。
type SyntaxValidator struct {
	tokenizer Tokenizer
}

// NewSyntaxValidator 创建带默认tokenizer的校验器
func NewSyntaxValidator() *SyntaxValidator {
	return &SyntaxValidator{tokenizer: NewSQLTokenizer()}
}

// NewSyntaxValidatorWithTokenizer 使用指定tokenizer创建校验器，nil表示无tokenizer
func NewSyntaxValidatorWithTokenizer(tokenizer Tokenizer) *SyntaxValidator {
	return &SyntaxValidator{tokenizer: tokenizer}
}

// Validate 校验一条HQL。从不返回error，一切问题都进Result。
func (v *SyntaxValidator) Validate(hql string) *Result {
	result := &Result{Valid: true, Errors: []Issue{}, Warnings: []Issue{}}
	upper := strings.ToUpper(hql)

	v.checkStatementShape(upper, result)
	v.checkQuoteParity(hql, result)
	v.checkParentheses(hql, result)
	v.checkJoinOn(upper, hql, result)
	v.checkDoubleQuotes(hql, result)
	v.checkSelectStar(upper, result)
	v.checkUnionAll(upper, result)
	v.checkPartitionFilter(upper, result)
	v.checkSubqueryDepth(hql, result)

	if v.tokenizer == nil {
		result.Warnings = append(result.Warnings, Issue{
			Code:       "dependency_missing",
			Message:    "SQL tokenizer dependency unavailable, structural checks only",
			Suggestion: "install the tokenizer to enable token-level diagnostics",
		})
	} else {
		result.Warnings = append(result.Warnings, v.tokenizer.Scan(hql)...)
	}

	result.Valid = len(result.Errors) == 0
	return result
}

// checkStatementShape SELECT/CREATE VIEW、FROM、WHERE的在场检查
func (v *SyntaxValidator) checkStatementShape(upper string, result *Result) {
	hasSelect := strings.Contains(upper, "SELECT")
	hasCreateView := strings.Contains(upper, "CREATE VIEW")
	if !hasSelect && !hasCreateView {
		result.Errors = append(result.Errors, Issue{
			Code:       "missing_select",
			Message:    "statement contains neither SELECT nor CREATE VIEW",
			Suggestion: "start the statement with SELECT or CREATE VIEW",
		})
		return
	}
	if !strings.Contains(upper, "FROM") {
		result.Errors = append(result.Errors, Issue{
			Code:       "missing_from",
			Message:    "SELECT without a FROM clause",
			Suggestion: "add a FROM clause naming the source table",
		})
	}
	if !strings.Contains(upper, "WHERE") {
		result.Errors = append(result.Errors, Issue{
			Code:       "missing_where",
			Message:    "statement has no WHERE clause",
			Suggestion: "add a WHERE clause with at least the partition filter",
		})
	}
}

// checkQuoteParity 单引号数量的奇偶检查
func (v *SyntaxValidator) checkQuoteParity(hql string, result *Result) {
	if strings.Count(hql, "'")%2 != 0 {
		result.Errors = append(result.Errors, Issue{
			Code:       "unbalanced_quotes",
			Message:    "odd number of single quotes",
			Suggestion: "close every string literal",
		})
	}
}

// checkParentheses 用栈追踪括号配对，带行列定位
func (v *SyntaxValidator) checkParentheses(hql string, result *Result) {
	type position struct{ line, column int }
	var stack []position
	line, column := 1, 0
	for _, ch := range hql {
		column++
		switch ch {
		case '\n':
			line++
			column = 0
		case '(':
			stack = append(stack, position{line, column})
		case ')':
			if len(stack) == 0 {
				result.Errors = append(result.Errors, Issue{
					Code:       "unbalanced_parentheses",
					Message:    "closing parenthesis without a match",
					Line:       line,
					Column:     column,
					Suggestion: "remove the extra ')' or add the matching '('",
				})
				continue
			}
			stack = stack[:len(stack)-1]
		}
	}
	for _, pos := range stack {
		result.Errors = append(result.Errors, Issue{
			Code:       "unbalanced_parentheses",
			Message:    "opening parenthesis never closed",
			Line:       pos.line,
			Column:     pos.column,
			Suggestion: "add the matching ')'",
		})
	}
}

// checkJoinOn JOIN之后限定窗口内必须出现ON，CROSS JOIN除外
func (v *SyntaxValidator) checkJoinOn(upper, original string, result *Result) {
	offset := 0
	for {
		idx := strings.Index(upper[offset:], "JOIN")
		if idx < 0 {
			return
		}
		idx += offset
		offset = idx + len("JOIN")

		before := strings.TrimRight(upper[:idx], " \t\n")
		if strings.HasSuffix(before, "CROSS") {
			continue
		}
		end := idx + joinOnWindow
		if end > len(upper) {
			end = len(upper)
		}
		if !onKeywordPattern.MatchString(upper[idx:end]) {
			line, column := locate(original, idx)
			result.Errors = append(result.Errors, Issue{
				Code:       "join_without_on",
				Message:    "JOIN without an ON clause",
				Line:       line,
				Column:     column,
				Suggestion: "add an ON clause or use CROSS JOIN explicitly",
			})
		}
	}
}

func (v *SyntaxValidator) checkDoubleQuotes(hql string, result *Result) {
	if idx := strings.IndexByte(hql, '"'); idx >= 0 {
		line, column := locate(hql, idx)
		result.Warnings = append(result.Warnings, Issue{
			Code:       "double_quotes",
			Message:    "double quotes found",
			Line:       line,
			Column:     column,
			Suggestion: "Hive prefers single quotes for string literals",
		})
	}
}

func (v *SyntaxValidator) checkSelectStar(upper string, result *Result) {
	if strings.Contains(upper, "SELECT *") {
		result.Warnings = append(result.Warnings, Issue{
			Code:       "select_star",
			Message:    "SELECT * reads every column",
			Suggestion: "project only the columns you need",
		})
	}
}

// checkUnionAll UNION未跟ALL时告警
func (v *SyntaxValidator) checkUnionAll(upper string, result *Result) {
	offset := 0
	for {
		idx := strings.Index(upper[offset:], "UNION")
		if idx < 0 {
			return
		}
		idx += offset
		offset = idx + len("UNION")

		rest := strings.TrimLeft(upper[idx+len("UNION"):], " \t\n")
		if !strings.HasPrefix(rest, "ALL") {
			result.Warnings = append(result.Warnings, Issue{
				Code:       "union_without_all",
				Message:    "UNION without ALL deduplicates rows",
				Suggestion: "use UNION ALL unless deduplication is intended",
			})
		}
	}
}

// checkPartitionFilter WHERE在场但没有识别到分区字段等值过滤时告警
func (v *SyntaxValidator) checkPartitionFilter(upper string, result *Result) {
	if !strings.Contains(upper, "WHERE") {
		return
	}
	if !partitionEqualityPattern.MatchString(upper) {
		result.Warnings = append(result.Warnings, Issue{
			Code:       "missing_partition_filter",
			Message:    "WHERE clause has no partition field equality check",
			Suggestion: "filter on the partition column (ds/dt/day/date) to avoid full scans",
		})
	}
}

// checkSubqueryDepth 括号嵌套深度近似子查询深度
func (v *SyntaxValidator) checkSubqueryDepth(hql string, result *Result) {
	depth, maxDepth := 0, 0
	for _, ch := range hql {
		switch ch {
		case '(':
			depth++
			if depth > maxDepth {
				maxDepth = depth
			}
		case ')':
			if depth > 0 {
				depth--
			}
		}
	}
	if maxDepth > maxSubqueryDepth {
		result.Warnings = append(result.Warnings, Issue{
			Code:       "deep_nesting",
			Message:    fmt.Sprintf("nesting depth %d exceeds %d", maxDepth, maxSubqueryDepth),
			Suggestion: "flatten subqueries or stage intermediate tables",
		})
	}
}

// locate 把字节偏移转换为行列（1起）
func locate(s string, offset int) (line, column int) {
	line = 1
	column = 1
	for i, ch := range s {
		if i >= offset {
			return line, column
		}
		if ch == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return line, column
}
