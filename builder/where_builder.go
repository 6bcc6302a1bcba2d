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
	"strings"

	"github.com/spf13/cast"

	"github.com/ieudata/hqlgen/model"
)

// ConjunctSeparator WHERE条件之间的连接文本。
// 固定格式是对外契约的一部分，调用方按它切分条件。
const ConjunctSeparator = " AND\n  "

// WhereBuilder 生成WHERE子句文本（不含WHERE关键字本身），
// 并负责前置两个系统过滤条件：分区过滤与事件名过滤。
type WhereBuilder struct{}

// NewWhereBuilder 创建WHERE构建器
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{}
}

// Build 构建WHERE子句。
// 输出顺序固定：分区过滤、事件名过滤、用户条件（按输入顺序）。
// event可以为nil，此时分区字段取默认值ds且不输出事件名过滤。
func (b *WhereBuilder) Build(conditions []model.Condition, event *model.Event) (string, error) {
	conjuncts, err := b.systemFilters(event)
	if err != nil {
		return "", err
	}

	for _, cond := range conditions {
		rendered, err := b.renderCondition(cond)
		if err != nil {
			return "", err
		}
		conjuncts = append(conjuncts, rendered)
	}

	return strings.Join(conjuncts, ConjunctSeparator), nil
}

// BuildComplexConditions 按逻辑连接符分组构建WHERE子句。
// 连续的AND条件并入同一组，OR条件各自成组；多元素组加括号，
// 组之间用AND连接。分区过滤永远插在条件列表头部。
func (b *WhereBuilder) BuildComplexConditions(conditions []model.Condition, event *model.Event) (string, error) {
	head, err := b.systemFilters(event)
	if err != nil {
		return "", err
	}
	// 复杂分组路径只前置分区过滤
	groups := [][]string{{head[0]}}

	for _, cond := range conditions {
		rendered, err := b.renderCondition(cond)
		if err != nil {
			return "", err
		}
		if cond.LogicalOpOrDefault() == model.LogicalOr {
			groups = append(groups, []string{rendered})
		} else {
			groups[len(groups)-1] = append(groups[len(groups)-1], rendered)
		}
	}

	parts := make([]string, 0, len(groups))
	for _, group := range groups {
		joined := strings.Join(group, " AND ")
		if len(group) > 1 && len(groups) > 1 {
			joined = "(" + joined + ")"
		}
		parts = append(parts, joined)
	}
	return strings.Join(parts, " AND "), nil
}

// systemFilters 构建永远在场的系统过滤条件
func (b *WhereBuilder) systemFilters(event *model.Event) ([]string, error) {
	partitionField := model.DefaultPartitionField
	if event != nil {
		partitionField = event.PartitionFieldOrDefault()
	}
	filters := []string{fmt.Sprintf("%s = '${ds}'", partitionField)}

	if event != nil && event.Name != "" {
		filters = append(filters, fmt.Sprintf("event_name = '%s'", EscapeString(event.Name)))
	}
	return filters, nil
}

// renderCondition 渲染单个条件
func (b *WhereBuilder) renderCondition(cond model.Condition) (string, error) {
	if err := cond.Validate(); err != nil {
		return "", err
	}
	switch cond.Operator {
	case model.OpIsNull, model.OpIsNotNull:
		return fmt.Sprintf("%s %s", cond.Field, cond.Operator), nil
	case model.OpIn, model.OpNotIn:
		values, ok := model.ValueList(cond.Value)
		if !ok {
			return "", model.NewBuildErrorf(model.ErrorTypeInOperatorNeedsList, "operator '%s' requires a list value", cond.Operator)
		}
		if len(values) == 0 {
			return "", model.NewBuildErrorf(model.ErrorTypeEmptyInList, "operator '%s' requires a non-empty list", cond.Operator)
		}
		formatted := make([]string, len(values))
		for i, v := range values {
			formatted[i] = FormatValue(v)
		}
		return fmt.Sprintf("%s %s (%s)", cond.Field, cond.Operator, strings.Join(formatted, ", ")), nil
	case model.OpLike:
		return fmt.Sprintf("%s LIKE '%s'", cond.Field, EscapeString(cast.ToString(cond.Value))), nil
	default:
		return fmt.Sprintf("%s %s %s", cond.Field, cond.Operator, FormatValue(cond.Value)), nil
	}
}
