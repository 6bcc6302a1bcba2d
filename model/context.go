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

package model

// Mode 生成模式
type Mode string

const (
	ModeSingle Mode = "single"
	ModeJoin   Mode = "join"
	ModeUnion  Mode = "union"
)

// SQLMode 输出形态，仅用于展示层区分，不影响生成语义
type SQLMode string

const (
	SQLModeView      SQLMode = "VIEW"
	SQLModeProcedure SQLMode = "PROCEDURE"
	SQLModeCustom    SQLMode = "CUSTOM"
)

// HQLContext 一次生成请求的完整上下文
type HQLContext struct {
	Events     []Event
	Fields     []Field
	Conditions []Condition
	Mode       Mode
	SQLMode    SQLMode
	JoinConfig *JoinConfig
}

// NewHQLContext 创建并校验生成上下文
func NewHQLContext(events []Event, fields []Field, conditions []Condition, mode Mode) (HQLContext, error) {
	ctx := HQLContext{
		Events:     events,
		Fields:     fields,
		Conditions: conditions,
		Mode:       mode,
		SQLMode:    SQLModeView,
	}
	if err := ctx.Validate(); err != nil {
		return HQLContext{}, err
	}
	return ctx, nil
}

// Validate 校验上下文不变式
func (ctx HQLContext) Validate() error {
	if len(ctx.Events) == 0 {
		return NewBuildError(ErrorTypeEmptyEvents, "context requires at least one event")
	}
	if len(ctx.Fields) == 0 {
		return NewBuildError(ErrorTypeEmptyFields, "context requires at least one field")
	}
	switch ctx.Mode {
	case ModeSingle, ModeJoin, ModeUnion:
	default:
		return NewBuildErrorf(ErrorTypeUnsupportedMode, "unsupported mode '%s'", ctx.Mode).
			WithSuggestions("use one of: single, join, union")
	}
	if ctx.Mode == ModeJoin && ctx.JoinConfig == nil {
		return NewBuildError(ErrorTypeMissingJoinConfig, "join mode requires a join config")
	}
	for _, e := range ctx.Events {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	for _, f := range ctx.Fields {
		if err := f.Validate(); err != nil {
			return err
		}
	}
	for _, c := range ctx.Conditions {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	if ctx.JoinConfig != nil {
		if err := ctx.JoinConfig.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// HQLDiff 增量生成的差异结果
type HQLDiff struct {
	AddedFields        []string
	RemovedFields      []string
	ModifiedFields     []string
	AddedConditions    []string
	RemovedConditions  []string
	ModifiedConditions []string
	EventsChanged      bool
}

// Empty 判断差异是否为空
func (d HQLDiff) Empty() bool {
	return !d.EventsChanged &&
		len(d.AddedFields) == 0 && len(d.RemovedFields) == 0 && len(d.ModifiedFields) == 0 &&
		len(d.AddedConditions) == 0 && len(d.RemovedConditions) == 0 && len(d.ModifiedConditions) == 0
}

// OnlyModifications 判断差异是否只含同名修改，不含增删和事件变化。
// 只有这类差异才允许走增量生成路径。
func (d HQLDiff) OnlyModifications() bool {
	if d.EventsChanged {
		return false
	}
	if len(d.AddedFields) > 0 || len(d.RemovedFields) > 0 ||
		len(d.AddedConditions) > 0 || len(d.RemovedConditions) > 0 {
		return false
	}
	return len(d.ModifiedFields) > 0 || len(d.ModifiedConditions) > 0
}
