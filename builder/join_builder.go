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

	"github.com/ieudata/hqlgen/model"
)

// JoinBuilder 生成多事件语句的FROM与JOIN部分
type JoinBuilder struct{}

// NewJoinBuilder 创建连接构建器
func NewJoinBuilder() *JoinBuilder {
	return &JoinBuilder{}
}

// BuildJoin 构建FROM加链式JOIN。
// 第一行是基表，之后每个事件输出一行JOIN，CROSS连接不输出ON。
func (b *JoinBuilder) BuildJoin(events []model.Event, joinConditions []model.JoinKey, joinType model.JoinType, useAliases bool) (string, error) {
	if len(events) < 2 {
		return "", model.NewBuildErrorf(model.ErrorTypeTooFewEventsForJoin, "join requires at least 2 events, got %d", len(events))
	}
	switch joinType {
	case model.JoinInner, model.JoinLeft, model.JoinRight, model.JoinCross:
	default:
		return "", model.NewBuildErrorf(model.ErrorTypeInvalidJoinType, "invalid join type '%s'", joinType).
			WithSuggestions("use one of: INNER, LEFT, RIGHT, CROSS")
	}
	if joinType != model.JoinCross && len(joinConditions) == 0 {
		return "", model.NewBuildError(model.ErrorTypeMissingJoinConditions, "join requires at least one join condition")
	}

	var sb strings.Builder
	sb.WriteString("FROM ")
	sb.WriteString(b.tableRef(events[0], useAliases))

	for _, event := range events[1:] {
		sb.WriteString(fmt.Sprintf("\n%s JOIN %s", joinType, b.tableRef(event, useAliases)))
		if joinType == model.JoinCross {
			continue
		}
		predicates := b.onPredicates(events[0], event, joinConditions)
		sb.WriteString(" ON ")
		sb.WriteString(strings.Join(predicates, " AND "))
	}
	return sb.String(), nil
}

// BuildJoinWithWhere 构建JOIN并附加WHERE子句。
// WHERE只包含调用方给出的条件，不前置系统过滤。
func (b *JoinBuilder) BuildJoinWithWhere(events []model.Event, joinConditions []model.JoinKey, joinType model.JoinType, whereConditions []model.Condition, useAliases bool) (string, error) {
	joinPart, err := b.BuildJoin(events, joinConditions, joinType, useAliases)
	if err != nil {
		return "", err
	}
	if len(whereConditions) == 0 {
		return joinPart, nil
	}
	wb := NewWhereBuilder()
	conjuncts := make([]string, 0, len(whereConditions))
	for _, cond := range whereConditions {
		rendered, err := wb.renderCondition(cond)
		if err != nil {
			return "", err
		}
		conjuncts = append(conjuncts, rendered)
	}
	return joinPart + "\nWHERE " + strings.Join(conjuncts, " AND "), nil
}

// BuildJoinWithPartitionFilter 构建JOIN并为每个事件附加分区过滤，
// 分区值使用${bizdate}占位符。
func (b *JoinBuilder) BuildJoinWithPartitionFilter(events []model.Event, joinConditions []model.JoinKey, joinType model.JoinType, useAliases bool) (string, error) {
	joinPart, err := b.BuildJoin(events, joinConditions, joinType, useAliases)
	if err != nil {
		return "", err
	}
	filters := make([]string, 0, len(events))
	for _, event := range events {
		filters = append(filters, fmt.Sprintf("%s.%s = '${bizdate}'", event.DisplayName(), event.PartitionFieldOrDefault()))
	}
	return joinPart + "\nWHERE " + strings.Join(filters, " AND "), nil
}

// BuildCrossJoin 构建笛卡尔积连接
func (b *JoinBuilder) BuildCrossJoin(events []model.Event, useAliases bool) (string, error) {
	return b.BuildJoin(events, nil, model.JoinCross, useAliases)
}

// FormatSelectFields 格式化多事件语句的SELECT字段列表。
// 空字段列表输出*。useEventPrefix时base字段带上基表事件名前缀。
func (b *JoinBuilder) FormatSelectFields(fields []model.Field, events []model.Event, useEventPrefix bool) (string, error) {
	if len(fields) == 0 {
		return "*", nil
	}
	fb := NewFieldBuilder()
	exprs := make([]string, 0, len(fields))
	for _, field := range fields {
		// 已限定的字段名不再加前缀
		if useEventPrefix && field.Type == model.FieldTypeBase && len(events) > 0 && !strings.Contains(field.Name, ".") {
			expr, err := b.prefixedBaseField(events[0], field)
			if err != nil {
				return "", err
			}
			exprs = append(exprs, expr)
			continue
		}
		expr, err := fb.Build(field)
		if err != nil {
			return "", err
		}
		exprs = append(exprs, expr)
	}
	return strings.Join(exprs, ",\n  "), nil
}

// prefixedBaseField 构建带事件名前缀的base字段表达式
func (b *JoinBuilder) prefixedBaseField(event model.Event, field model.Field) (string, error) {
	column, err := EscapeIdentifier(field.Name)
	if err != nil {
		return "", err
	}
	expr := event.DisplayName() + "." + column
	if field.AggregateFunc != "" {
		expr = fmt.Sprintf("%s(%s)", field.AggregateFunc, expr)
	}
	if field.Alias != "" {
		alias, err := EscapeIdentifier(field.Alias)
		if err != nil {
			return "", err
		}
		expr += " AS " + alias
	}
	return expr, nil
}

// tableRef 输出表引用，useAliases时附加AS事件名
func (b *JoinBuilder) tableRef(event model.Event, useAliases bool) string {
	if useAliases {
		return event.TableName + " AS " + event.DisplayName()
	}
	return event.TableName
}

// onPredicates 选出本次JOIN适用的连接条件。
// 匹配基表事件名或当前事件名；无匹配时退回全部条件。
func (b *JoinBuilder) onPredicates(base, current model.Event, joinConditions []model.JoinKey) []string {
	selected := make([]model.JoinKey, 0, len(joinConditions))
	for _, key := range joinConditions {
		if key.LeftEvent == base.Name || key.RightEvent == current.Name {
			selected = append(selected, key)
		}
	}
	if len(selected) == 0 {
		selected = joinConditions
	}
	predicates := make([]string, 0, len(selected))
	for _, key := range selected {
		predicates = append(predicates, fmt.Sprintf("%s.%s %s %s.%s",
			key.LeftEvent, key.LeftField, key.OperatorOrDefault(), key.RightEvent, key.RightField))
	}
	return predicates
}
