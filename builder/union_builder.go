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

// UnionSeparator 子SELECT之间的连接文本
const UnionSeparator = "\nUNION ALL\n"

// UnionBuilder 生成UNION ALL连接的并行SELECT。
// 各子SELECT的字段顺序一致且稳定，调用方依赖位置对应关系。
type UnionBuilder struct{}

// NewUnionBuilder 创建UNION构建器
func NewUnionBuilder() *UnionBuilder {
	return &UnionBuilder{}
}

// EventConditions 某个事件在UNION中的专属WHERE条件
type EventConditions struct {
	Event      model.Event
	Conditions []model.Condition
}

// EventFields 某个事件在UNION中的专属字段列表
type EventFields struct {
	Event  model.Event
	Fields []model.Field
}

// BuildUnionAll 构建UNION ALL语句，每个事件一个子SELECT，
// 字段列表在所有子SELECT中完全一致。
func (b *UnionBuilder) BuildUnionAll(events []model.Event, fields []model.Field, useAliases bool) (string, error) {
	if err := b.checkInputs(events, fields); err != nil {
		return "", err
	}
	fieldList, err := NewFieldBuilder().BuildAll(fields)
	if err != nil {
		return "", err
	}
	selects := make([]string, 0, len(events))
	for _, event := range events {
		selects = append(selects, b.subSelect(event, fieldList, "", useAliases))
	}
	return strings.Join(selects, UnionSeparator), nil
}

// BuildUnionWithPartitionFilter 构建UNION ALL并为每个子SELECT附加分区过滤
func (b *UnionBuilder) BuildUnionWithPartitionFilter(events []model.Event, fields []model.Field, useAliases bool) (string, error) {
	if err := b.checkInputs(events, fields); err != nil {
		return "", err
	}
	fieldList, err := NewFieldBuilder().BuildAll(fields)
	if err != nil {
		return "", err
	}
	selects := make([]string, 0, len(events))
	for _, event := range events {
		where := fmt.Sprintf("%s = '${ds}'", event.PartitionFieldOrDefault())
		selects = append(selects, b.subSelect(event, fieldList, where, useAliases))
	}
	return strings.Join(selects, UnionSeparator), nil
}

// BuildUnionWithWhere 构建UNION ALL，每个事件使用自己的WHERE条件
func (b *UnionBuilder) BuildUnionWithWhere(eventConditions []EventConditions, fields []model.Field, useAliases bool) (string, error) {
	events := make([]model.Event, 0, len(eventConditions))
	for _, ec := range eventConditions {
		events = append(events, ec.Event)
	}
	if err := b.checkInputs(events, fields); err != nil {
		return "", err
	}
	fieldList, err := NewFieldBuilder().BuildAll(fields)
	if err != nil {
		return "", err
	}
	wb := NewWhereBuilder()
	selects := make([]string, 0, len(eventConditions))
	for _, ec := range eventConditions {
		event := ec.Event
		where, err := wb.Build(ec.Conditions, &event)
		if err != nil {
			return "", err
		}
		selects = append(selects, b.subSelect(event, fieldList, where, useAliases))
	}
	return strings.Join(selects, UnionSeparator), nil
}

// BuildUnionWithCustomFields 构建UNION ALL，每个事件使用自己的字段列表。
// 异构投影由调用方保证位置对应，这里只要求每个列表非空。
func (b *UnionBuilder) BuildUnionWithCustomFields(eventFields []EventFields, useAliases bool) (string, error) {
	if len(eventFields) < 2 {
		return "", model.NewBuildErrorf(model.ErrorTypeWrongEventCount, "union requires at least 2 events, got %d", len(eventFields))
	}
	fb := NewFieldBuilder()
	selects := make([]string, 0, len(eventFields))
	for _, ef := range eventFields {
		if len(ef.Fields) == 0 {
			return "", model.NewBuildErrorf(model.ErrorTypeEmptyFields, "event '%s' has no fields for union", ef.Event.Name)
		}
		fieldList, err := fb.BuildAll(ef.Fields)
		if err != nil {
			return "", err
		}
		selects = append(selects, b.subSelect(ef.Event, fieldList, "", useAliases))
	}
	return strings.Join(selects, UnionSeparator), nil
}

// BuildUnionWithAlias 构建UNION ALL并整体包裹为带别名的子查询
func (b *UnionBuilder) BuildUnionWithAlias(events []model.Event, fields []model.Field, alias string, useAliases bool) (string, error) {
	union, err := b.BuildUnionAll(events, fields, useAliases)
	if err != nil {
		return "", err
	}
	escaped, err := EscapeIdentifier(alias)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(\n%s\n) AS %s", union, escaped), nil
}

// checkInputs 校验事件数与字段列表
func (b *UnionBuilder) checkInputs(events []model.Event, fields []model.Field) error {
	if len(events) < 2 {
		return model.NewBuildErrorf(model.ErrorTypeWrongEventCount, "union requires at least 2 events, got %d", len(events))
	}
	if len(fields) == 0 {
		return model.NewBuildError(model.ErrorTypeEmptyFields, "union requires at least one field")
	}
	return nil
}

// subSelect 渲染一个子SELECT
func (b *UnionBuilder) subSelect(event model.Event, fieldList []string, where string, useAliases bool) string {
	var sb strings.Builder
	sb.WriteString("SELECT\n  ")
	sb.WriteString(strings.Join(fieldList, ",\n  "))
	sb.WriteString("\nFROM ")
	sb.WriteString(event.TableName)
	if useAliases {
		sb.WriteString(" AS " + event.DisplayName())
	}
	if where != "" {
		sb.WriteString("\nWHERE\n  ")
		sb.WriteString(where)
	}
	return sb.String()
}
