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

package generator

import (
	"fmt"
	"strings"

	"github.com/ieudata/hqlgen/builder"
	"github.com/ieudata/hqlgen/model"
)

// Options 一次生成调用的选项
type Options struct {
	// Mode 生成模式，默认single
	Mode model.Mode
	// SQLMode 输出形态，仅展示层使用，不影响生成语义
	SQLMode model.SQLMode
	// IncludeComments 是否输出头部注释块，默认true
	IncludeComments bool
	// JoinConfig join模式必填
	JoinConfig *model.JoinConfig
	// UseAliases union/join模式下是否输出AS别名
	UseAliases bool
	// IncludePartitionFilter union模式下是否为每个子SELECT附加分区过滤
	IncludePartitionFilter bool
}

// DefaultOptions 返回默认生成选项
func DefaultOptions() Options {
	return Options{
		Mode:                   model.ModeSingle,
		SQLMode:                model.SQLModeView,
		IncludeComments:        true,
		UseAliases:             true,
		IncludePartitionFilter: true,
	}
}

// HQLGenerator 顶层装配器，按模式编排各个构建器并组装最终语句。
// 无跨调用的可变状态，可安全复用。
type HQLGenerator struct {
	fieldBuilder *builder.FieldBuilder
	whereBuilder *builder.WhereBuilder
	joinBuilder  *builder.JoinBuilder
	unionBuilder *builder.UnionBuilder
}

// NewHQLGenerator 创建生成器
func NewHQLGenerator() *HQLGenerator {
	return &HQLGenerator{
		fieldBuilder: builder.NewFieldBuilder(),
		whereBuilder: builder.NewWhereBuilder(),
		joinBuilder:  builder.NewJoinBuilder(),
		unionBuilder: builder.NewUnionBuilder(),
	}
}

// Generate 生成一条HQL语句（不带结尾分号）
func (g *HQLGenerator) Generate(events []model.Event, fields []model.Field, conditions []model.Condition, opts Options) (string, error) {
	if opts.Mode == "" {
		opts.Mode = model.ModeSingle
	}
	if opts.SQLMode == "" {
		opts.SQLMode = model.SQLModeView
	}

	var body string
	var err error
	switch opts.Mode {
	case model.ModeSingle:
		body, err = g.generateSingle(events, fields, conditions)
	case model.ModeJoin:
		body, err = g.generateJoin(events, fields, conditions, opts)
	case model.ModeUnion:
		body, err = g.generateUnion(events, fields, opts)
	default:
		return "", model.NewBuildErrorf(model.ErrorTypeUnsupportedMode, "unsupported mode '%s'", opts.Mode).
			WithSuggestions("use one of: single, join, union")
	}
	if err != nil {
		return "", err
	}

	if opts.IncludeComments {
		return g.commentBlock(events) + body, nil
	}
	return body, nil
}

// generateSingle 单事件模式：恰好一个事件
func (g *HQLGenerator) generateSingle(events []model.Event, fields []model.Field, conditions []model.Condition) (string, error) {
	if len(events) != 1 {
		return "", model.NewBuildErrorf(model.ErrorTypeWrongEventCount, "single mode requires exactly 1 event, got %d", len(events))
	}
	if len(fields) == 0 {
		return "", model.NewBuildError(model.ErrorTypeEmptyFields, "at least one field is required")
	}
	event := events[0]

	fieldExprs, err := g.fieldBuilder.BuildAll(fields)
	if err != nil {
		return "", err
	}
	where, err := g.whereBuilder.Build(conditions, &event)
	if err != nil {
		return "", err
	}

	return g.assembleSelect(strings.Join(fieldExprs, ",\n  "), "FROM "+event.TableName, where), nil
}

// generateJoin 连接模式：至少两个事件加连接配置
func (g *HQLGenerator) generateJoin(events []model.Event, fields []model.Field, conditions []model.Condition, opts Options) (string, error) {
	if len(events) < 2 {
		return "", model.NewBuildErrorf(model.ErrorTypeWrongEventCount, "join mode requires at least 2 events, got %d", len(events))
	}
	if opts.JoinConfig == nil {
		return "", model.NewBuildError(model.ErrorTypeMissingJoinConfig, "join mode requires a join config")
	}

	selectList, err := g.joinBuilder.FormatSelectFields(fields, events, true)
	if err != nil {
		return "", err
	}
	joinPart, err := g.joinBuilder.BuildJoin(events, opts.JoinConfig.JoinKeys, opts.JoinConfig.JoinType, opts.UseAliases)
	if err != nil {
		return "", err
	}
	where, err := g.whereBuilder.Build(conditions, &events[0])
	if err != nil {
		return "", err
	}

	return g.assembleSelect(selectList, joinPart, where), nil
}

// generateUnion 并联模式：至少两个事件
func (g *HQLGenerator) generateUnion(events []model.Event, fields []model.Field, opts Options) (string, error) {
	if len(events) < 2 {
		return "", model.NewBuildErrorf(model.ErrorTypeWrongEventCount, "union mode requires at least 2 events, got %d", len(events))
	}
	if opts.IncludePartitionFilter {
		return g.unionBuilder.BuildUnionWithPartitionFilter(events, fields, opts.UseAliases)
	}
	return g.unionBuilder.BuildUnionAll(events, fields, opts.UseAliases)
}

// assembleSelect 组装SELECT/FROM/WHERE骨架
func (g *HQLGenerator) assembleSelect(selectList, fromPart, where string) string {
	var sb strings.Builder
	sb.WriteString("SELECT\n  ")
	sb.WriteString(selectList)
	sb.WriteString("\n")
	sb.WriteString(fromPart)
	sb.WriteString("\nWHERE\n  ")
	sb.WriteString(where)
	return sb.String()
}

// commentBlock 头部注释块。事件列表为空时不输出注释也不报错。
func (g *HQLGenerator) commentBlock(events []model.Event) string {
	if len(events) == 0 {
		return ""
	}
	name := events[0].Name
	return fmt.Sprintf("-- Event Node: %s\n-- 中文: %s\n", name, name)
}
