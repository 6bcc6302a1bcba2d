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

package hqlgen

import (
	"sync"

	"github.com/ieudata/hqlgen/analyzer"
	"github.com/ieudata/hqlgen/cache"
	"github.com/ieudata/hqlgen/condition"
	"github.com/ieudata/hqlgen/generator"
	"github.com/ieudata/hqlgen/incremental"
	"github.com/ieudata/hqlgen/logger"
	"github.com/ieudata/hqlgen/model"
	"github.com/ieudata/hqlgen/validator"
)

// Engine 是HQL生成核心的主要接口。
// 封装了语句生成、增量生成、语法校验、性能分析与请求缓存。
//
// 使用示例:
//
//	engine := hqlgen.New()
//	hql, err := engine.Generate(events, fields, conditions, generator.DefaultOptions())
type Engine struct {
	generator      *generator.HQLGenerator
	debugGenerator *generator.DebuggableHQLGenerator
	incrementalGen *incremental.IncrementalHQLGenerator
	syntaxChecker  *validator.SyntaxValidator
	perfAnalyzer   *analyzer.PerformanceAnalyzer
	ddlGenerator   *generator.DDLGenerator
	dmlGenerator   *generator.DMLGenerator

	// mu 串行化对缓存与增量快照的访问。
	// 核心本身是纯函数，唯一的跨调用状态在这两处。
	mu           sync.Mutex
	requestCache *cache.HQLCacheManager

	// 构造期配置
	cacheEnabled bool
	cacheSize    int
	tokenizer    validator.Tokenizer
	hasTokenizer bool
}

// New 创建一个新的引擎实例。
// 支持通过可选的Option参数进行配置。
//
// 示例:
//
//	// 默认实例
//	engine := hqlgen.New()
//
//	// 关闭请求缓存
//	engine := hqlgen.New(hqlgen.WithoutCache())
//
//	// 调整缓存容量并关闭日志
//	engine := hqlgen.New(hqlgen.WithCacheSize(1024), hqlgen.WithDiscardLog())
func New(options ...Option) *Engine {
	e := &Engine{
		cacheEnabled: true,
		cacheSize:    cache.DefaultMaxSize,
	}

	for _, option := range options {
		option(e)
	}

	e.generator = generator.NewHQLGenerator()
	e.debugGenerator = generator.NewDebuggableHQLGenerator()
	e.incrementalGen = incremental.NewIncrementalHQLGenerator()
	e.perfAnalyzer = analyzer.NewPerformanceAnalyzer()
	e.ddlGenerator = generator.NewDDLGenerator()
	e.dmlGenerator = generator.NewDMLGenerator()

	if e.hasTokenizer {
		e.syntaxChecker = validator.NewSyntaxValidatorWithTokenizer(e.tokenizer)
	} else {
		e.syntaxChecker = validator.NewSyntaxValidator()
	}

	if e.cacheEnabled {
		e.requestCache = cache.NewHQLCacheManager(e.cacheSize)
	}

	return e
}

// Generate 生成一条HQL语句。
// 相同结构的请求命中缓存时直接返回缓存的文本，不重新生成。
//
// 参数:
//   - events: 事件列表，single模式恰好一个
//   - fields: 输出字段列表
//   - conditions: 用户条件，系统过滤（分区、事件名）自动附加
//   - opts: 生成选项，零值等价于generator.DefaultOptions()的语义
//
// 示例:
//
//	hql, err := engine.Generate(
//	    []model.Event{{Name: "login", TableName: "ieu_ods.ods_1_all_view"}},
//	    []model.Field{{Name: "role_id", Type: model.FieldTypeBase}},
//	    nil,
//	    generator.DefaultOptions(),
//	)
func (e *Engine) Generate(events []model.Event, fields []model.Field, conditions []model.Condition, opts generator.Options) (string, error) {
	if e.requestCache == nil {
		return e.generator.Generate(events, fields, conditions, opts)
	}

	key, err := cache.Key(events, fields, conditions, opts)
	if err != nil {
		// 指纹失败不阻塞生成，只是绕过缓存
		logger.Warn("cache key computation failed: %v", err)
		return e.generator.Generate(events, fields, conditions, opts)
	}

	e.mu.Lock()
	cached, hit := e.requestCache.Get(key)
	e.mu.Unlock()
	if hit {
		logger.Debug("cache hit for key %s", key[:12])
		return cached, nil
	}

	hql, err := e.generator.Generate(events, fields, conditions, opts)
	if err != nil {
		return "", err
	}

	e.mu.Lock()
	e.requestCache.Set(key, hql)
	e.mu.Unlock()
	return hql, nil
}

// GenerateDebug 生成HQL并返回逐步骤的调试轨迹。
// 调试路径不读写缓存，每次都完整执行。
func (e *Engine) GenerateDebug(events []model.Event, fields []model.Field, conditions []model.Condition, opts generator.Options) (*generator.DebugResult, error) {
	return e.debugGenerator.Generate(events, fields, conditions, opts)
}

// GenerateIncremental 增量生成。
// previousHQL为上一次的输出；与内部快照匹配且差异仅为同名修改时
// 复用稳定片段，否则退回全量生成。
func (e *Engine) GenerateIncremental(events []model.Event, fields []model.Field, conditions []model.Condition, previousHQL string, opts generator.Options) (*incremental.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.incrementalGen.GenerateIncremental(events, fields, conditions, previousHQL, opts)
}

// ResetIncremental 丢弃增量生成器的请求快照
func (e *Engine) ResetIncremental() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.incrementalGen.Reset()
}

// Validate 校验一条HQL。
// 从不返回error：结构问题与最佳实践告警都在返回值里。
func (e *Engine) Validate(hql string) *validator.Result {
	return e.syntaxChecker.Validate(hql)
}

// Analyze 对一条HQL做性能打分。
// 从不返回error：不可打分的输入得到满分空结论。
func (e *Engine) Analyze(hql string) *analyzer.Result {
	return e.perfAnalyzer.Analyze(hql)
}

// PreviewConditions 对一组过滤条件做试算：把条件编译为表达式程序，
// 在给定的样本行上求值，返回该行是否命中。
// 供管理端在保存条件前做干跑验证；样本行的键为字段名。
// 条件本身非法时返回error，求值阶段从不panic，缺失字段视为不命中。
func (e *Engine) PreviewConditions(conditions []model.Condition, sampleRow map[string]interface{}) (bool, error) {
	program, err := condition.FromModel(conditions)
	if err != nil {
		return false, err
	}
	return program.Evaluate(sampleRow), nil
}

// DDL 返回建表语句生成器
func (e *Engine) DDL() *generator.DDLGenerator {
	return e.ddlGenerator
}

// DML 返回写入语句生成器
func (e *Engine) DML() *generator.DMLGenerator {
	return e.dmlGenerator
}

// CacheStats 返回请求缓存的统计信息。
// 缓存被禁用时返回零值。
func (e *Engine) CacheStats() cache.Stats {
	if e.requestCache == nil {
		return cache.Stats{}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.requestCache.GetStats()
}

// ClearCache 清空请求缓存
func (e *Engine) ClearCache() {
	if e.requestCache == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.requestCache.Clear()
}
