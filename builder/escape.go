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

package builder

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/ieudata/hqlgen/model"
)

// identifierPattern 反引号转义前必须通过的标识符规则
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*$`)

// forbiddenTokens 自定义表达式中禁止出现的关键字与片段。
// 全部以大写扫描，包含即拒绝。
var forbiddenTokens = []string{
	"DROP", "DELETE", "TRUNCATE", "ALTER", "CREATE", "INSERT", "UPDATE",
	"EXEC", "EXECUTE", "SCRIPT", "XP_", "SP_",
	";", "--", "/*", "*/",
}

// EscapeIdentifier 校验标识符并加反引号
func EscapeIdentifier(name string) (string, error) {
	if !identifierPattern.MatchString(name) {
		return "", model.NewBuildErrorf(model.ErrorTypeInvalidIdentifier, "invalid identifier '%s'", name).
			WithSuggestions("identifiers must match [A-Za-z_][A-Za-z0-9_$]*")
	}
	return "`" + name + "`", nil
}

// EscapeString 转义SQL字符串字面量的内容，反斜杠与单引号加倍
func EscapeString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "'", "''")
	return s
}

// FormatValue 把任意值格式化为HQL字面量。
// nil输出NULL，布尔输出TRUE/FALSE，数值输出十进制文本，
// 字符串加单引号并转义，其余类型按字符串形式同样转义。
func FormatValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "NULL"
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case string:
		return "'" + EscapeString(v) + "'"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return "'" + EscapeString(cast.ToString(v)) + "'"
	}
}

// CheckExpressionSafety 扫描表达式中的破坏性关键字。
// 这是用户文本进入语句拼接前的唯一防线，任何新的文本路径都必须过这里。
func CheckExpressionSafety(expression string) error {
	upper := strings.ToUpper(expression)
	for _, token := range forbiddenTokens {
		if strings.Contains(upper, token) {
			return model.NewBuildErrorf(model.ErrorTypeUnsafeExpression, "expression contains forbidden token").
				WithFragment(token).
				WithSuggestions("remove DDL/DML keywords, comments and semicolons from the expression")
		}
	}
	return nil
}
