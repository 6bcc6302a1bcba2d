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

package incremental

import (
	"regexp"
	"strings"
)

// 片段提取只针对生成器自己输出的canonical骨架，
// 任何偏离都视为提取失败。
var (
	fromClausePattern = regexp.MustCompile(`(?m)^FROM[ \t]+\S.*$`)
	selectListPattern = regexp.MustCompile(`(?s)SELECT\n  (.*?)\nFROM `)
	whereBodyPattern  = regexp.MustCompile(`(?s)\nWHERE\n  (.*)$`)
)

// extractLeadingComments 提取头部注释行（含结尾换行），没有则返回空串
func extractLeadingComments(hql string) string {
	var sb strings.Builder
	for _, line := range strings.Split(hql, "\n") {
		if !strings.HasPrefix(line, "--") {
			break
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

// extractFromClause 提取FROM行
func extractFromClause(hql string) (string, bool) {
	match := fromClausePattern.FindString(hql)
	if match == "" {
		return "", false
	}
	return strings.TrimRight(match, " \t"), true
}

// extractSelectList 提取SELECT与FROM之间的字段列表
func extractSelectList(hql string) (string, bool) {
	match := selectListPattern.FindStringSubmatch(hql)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// extractWhereBody 提取WHERE之后的全部条件文本
func extractWhereBody(hql string) (string, bool) {
	match := whereBodyPattern.FindStringSubmatch(hql)
	if match == nil {
		return "", false
	}
	return strings.TrimRight(match[1], " \n\t"), true
}
