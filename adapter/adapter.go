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

// Package adapter 把管理层的记录翻译成模型值。
// 业务侧的ID约定（ods库名、game_gid表名模式）只允许出现在这里，
// 其余包一律只消费模型。
package adapter

import (
	"fmt"

	"github.com/spf13/cast"

	"github.com/ieudata/hqlgen/model"
)

// Record 管理层传入的一行记录，键允许camelCase或snake_case
type Record map[string]interface{}

// EventLookup 按game_gid与event_id解析事件名。
// 由宿主实现，通常查管理库的事件登记表。
type EventLookup interface {
	EventName(gameGID int64, eventID int64) (string, error)
}

// Adapter 记录到模型的转换器
type Adapter struct {
	OdsDB  string
	Lookup EventLookup
}

// NewAdapter 创建适配器，lookup可为nil（此时只接受显式命名的事件记录）
func NewAdapter(odsDB string, lookup EventLookup) *Adapter {
	return &Adapter{OdsDB: odsDB, Lookup: lookup}
}

// pick 依次尝试多个键名，返回首个存在的值
func pick(record Record, keys ...string) (interface{}, bool) {
	for _, key := range keys {
		if value, ok := record[key]; ok {
			return value, true
		}
	}
	return nil, false
}

func pickString(record Record, keys ...string) string {
	value, ok := pick(record, keys...)
	if !ok {
		return ""
	}
	return cast.ToString(value)
}

// EventFromRecord 把一条事件记录转成模型事件。
// 接受两种形态：显式 {name|event_name, table_name}，
// 或业务ID形态 {game_gid, event_id}，后者需要Lookup解析事件名，
// 表名按 <ods_db>.ods_<game_gid>_all_view 约定推导。
func (a *Adapter) EventFromRecord(record Record) (model.Event, error) {
	name := pickString(record, "name", "event_name", "eventName")
	tableName := pickString(record, "table_name", "tableName")

	if name != "" && tableName != "" {
		event, err := model.NewEvent(name, tableName)
		if err != nil {
			return model.Event{}, err
		}
		event.Alias = pickString(record, "alias")
		if pf := pickString(record, "partition_field", "partitionField"); pf != "" {
			event.PartitionField = pf
		}
		return event, nil
	}

	gidValue, hasGID := pick(record, "game_gid", "gameGid")
	eidValue, hasEID := pick(record, "event_id", "eventId")
	if !hasGID || !hasEID {
		return model.Event{}, model.NewBuildError(model.ErrorTypeMissingRecordKey,
			"event record needs name+table_name or game_gid+event_id").
			WithSuggestions("provide event_name and table_name explicitly",
				"or provide game_gid and event_id for lookup")
	}
	if a.Lookup == nil {
		return model.Event{}, model.NewBuildError(model.ErrorTypeUnknownEvent,
			"game_gid/event_id record requires an event lookup")
	}

	gameGID, err := cast.ToInt64E(gidValue)
	if err != nil {
		return model.Event{}, model.NewBuildErrorf(model.ErrorTypeMissingRecordKey,
			"game_gid is not numeric: %v", gidValue)
	}
	eventID, err := cast.ToInt64E(eidValue)
	if err != nil {
		return model.Event{}, model.NewBuildErrorf(model.ErrorTypeMissingRecordKey,
			"event_id is not numeric: %v", eidValue)
	}

	name, err = a.Lookup.EventName(gameGID, eventID)
	if err != nil {
		return model.Event{}, model.NewBuildErrorf(model.ErrorTypeUnknownEvent,
			"event %d not registered for game %d", eventID, gameGID)
	}

	event, err := model.NewEvent(name, a.TableNameFor(gameGID))
	if err != nil {
		return model.Event{}, err
	}
	return event, nil
}

// TableNameFor 业务表名约定，仅此一处
func (a *Adapter) TableNameFor(gameGID int64) string {
	return fmt.Sprintf("%s.ods_%d_all_view", a.OdsDB, gameGID)
}

// FieldFromRecord 把一条字段记录转成模型字段
func (a *Adapter) FieldFromRecord(record Record) (model.Field, error) {
	name := pickString(record, "name", "field_name", "fieldName")
	if name == "" {
		return model.Field{}, model.NewBuildError(model.ErrorTypeMissingRecordKey,
			"field record has no name")
	}

	fieldType := model.FieldType(pickString(record, "type", "field_type", "fieldType"))
	if fieldType == "" {
		fieldType = model.FieldTypeBase
	}

	field := model.Field{Name: name, Type: fieldType}
	field.Alias = pickString(record, "alias")
	field.AggregateFunc = model.AggregateFunc(pickString(record, "aggregate_func", "aggregateFunc"))
	field.JsonPath = pickString(record, "json_path", "jsonPath")
	field.CustomExpression = pickString(record, "custom_expression", "customExpression")
	field.HiveType = pickString(record, "hive_type", "hiveType")
	if value, ok := pick(record, "fixed_value", "fixedValue"); ok {
		field.FixedValue = value
	}

	if err := field.Validate(); err != nil {
		return model.Field{}, err
	}
	return field, nil
}

// ConditionFromRecord 把一条条件记录转成模型条件
func (a *Adapter) ConditionFromRecord(record Record) (model.Condition, error) {
	fieldName := pickString(record, "field", "field_name", "fieldName")
	if fieldName == "" {
		return model.Condition{}, model.NewBuildError(model.ErrorTypeMissingRecordKey,
			"condition record has no field")
	}

	operator := model.Operator(pickString(record, "operator", "op"))
	if operator == "" {
		operator = model.OpEQ
	}
	value, _ := pick(record, "value")

	condition, err := model.NewCondition(fieldName, operator, value)
	if err != nil {
		return model.Condition{}, err
	}
	if lop := pickString(record, "logical_op", "logicalOp"); lop != "" {
		condition.LogicalOp = model.LogicalOp(lop)
	}

	if err := condition.Validate(); err != nil {
		return model.Condition{}, err
	}
	return condition, nil
}

// EventsFromRecords 批量转换事件记录
func (a *Adapter) EventsFromRecords(records []Record) ([]model.Event, error) {
	events := make([]model.Event, 0, len(records))
	for i, record := range records {
		event, err := a.EventFromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("event record %d: %w", i, err)
		}
		events = append(events, event)
	}
	return events, nil
}

// FieldsFromRecords 批量转换字段记录
func (a *Adapter) FieldsFromRecords(records []Record) ([]model.Field, error) {
	fields := make([]model.Field, 0, len(records))
	for i, record := range records {
		field, err := a.FieldFromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("field record %d: %w", i, err)
		}
		fields = append(fields, field)
	}
	return fields, nil
}

// ConditionsFromRecords 批量转换条件记录
func (a *Adapter) ConditionsFromRecords(records []Record) ([]model.Condition, error) {
	conditions := make([]model.Condition, 0, len(records))
	for i, record := range records {
		condition, err := a.ConditionFromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("condition record %d: %w", i, err)
		}
		conditions = append(conditions, condition)
	}
	return conditions, nil
}
