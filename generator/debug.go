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
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ieudata/hqlgen/builder"
	"github.com/ieudata/hqlgen/model"
)

// DebugStep 生成过程的一个中间步骤及其输出
type DebugStep struct {
	Name    string
	Output  string
	Elapsed time.Duration
}

// DebugResult 可调试生成的完整记录
type DebugResult struct {
	TraceID    string
	Steps      []DebugStep
	Events     []model.Event
	Fields     []model.Field
	Conditions []model.Condition
	FinalHQL   string
}

// DebuggableHQLGenerator 在普通生成之上记录每一步的中间文本，
// 供排查问题时回放。输出与HQLGenerator逐字节一致。
type DebuggableHQLGenerator struct {
	generator *HQLGenerator
}

// NewDebuggableHQLGenerator 创建可调试生成器
func NewDebuggableHQLGenerator() *DebuggableHQLGenerator {
	return &DebuggableHQLGenerator{generator: NewHQLGenerator()}
}

// Generate 生成HQL并记录build_fields、build_where、assemble三个步骤
func (g *DebuggableHQLGenerator) Generate(events []model.Event, fields []model.Field, conditions []model.Condition, opts Options) (*DebugResult, error) {
	result := &DebugResult{
		TraceID:    uuid.NewString(),
		Events:     events,
		Fields:     fields,
		Conditions: conditions,
	}

	start := time.Now()
	fieldExprs, err := builder.NewFieldBuilder().BuildAll(fields)
	if err != nil {
		return nil, err
	}
	result.Steps = append(result.Steps, DebugStep{
		Name:    "build_fields",
		Output:  strings.Join(fieldExprs, ",\n  "),
		Elapsed: time.Since(start),
	})

	start = time.Now()
	var event *model.Event
	if len(events) > 0 {
		event = &events[0]
	}
	where, err := builder.NewWhereBuilder().Build(conditions, event)
	if err != nil {
		return nil, err
	}
	result.Steps = append(result.Steps, DebugStep{
		Name:    "build_where",
		Output:  where,
		Elapsed: time.Since(start),
	})

	start = time.Now()
	hql, err := g.generator.Generate(events, fields, conditions, opts)
	if err != nil {
		return nil, err
	}
	result.Steps = append(result.Steps, DebugStep{
		Name:    "assemble",
		Output:  hql,
		Elapsed: time.Since(start),
	})
	result.FinalHQL = hql
	return result, nil
}
