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

package analyzer

import (
	"fmt"
	"regexp"
	"strings"
)

// Category 问题级别
type Category string

const (
	CategoryError   Category = "ERROR"
	CategoryWarning Category = "WARNING"
	CategoryInfo    Category = "INFO"
)

// Complexity 按token数划分的复杂度档位
type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

const (
	lowComplexityTokens    = 10
	mediumComplexityTokens = 50

	subqueryIssueThreshold = 2
	udfIssueThreshold      = 3
	freeJoinCount          = 3
)

// 各规则扣分值
const (
	penaltyMissingPartition = 50
	penaltySelectStar       = 30
	penaltyCrossJoin        = 40
	penaltyExcessJoin       = 10
	penaltySubquery         = 15
	penaltyUDF              = 20
	penaltyHighComplexity   = 20
	penaltyMediumComplexity = 10
)

// Issue 一条分析结论，包含规则名、级别与对应扣分
type Issue struct {
	Rule       string   `json:"rule"`
	Category   Category `json:"category"`
	Message    string   `json:"message"`
	Penalty    int      `json:"penalty"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// Metrics 打分过程中统计到的指标
type Metrics struct {
	TokenCount         int        `json:"token_count"`
	Complexity         Complexity `json:"complexity"`
	JoinCount          int        `json:"join_count"`
	CrossJoinCount     int        `json:"cross_join_count"`
	SubqueryCount      int        `json:"subquery_count"`
	UDFCount           int        `json:"udf_count"`
	HasPartitionFilter bool       `json:"has_partition_filter"`
}

// Result 分析结果，score区间[0,100]
type Result struct {
	Score   int     `json:"score"`
	Issues  []Issue `json:"issues"`
	Metrics Metrics `json:"metrics"`
}

// partitionFilterPattern 识别 ds = '${ds}' 及其空格/引号变体
var partitionFilterPattern = regexp.MustCompile(`(?i)\bds\s*=\s*'?\$\{ds\}'?`)

// functionCallPattern 提取形如 NAME( 的调用，用于UDF识别
var functionCallPattern = regexp.MustCompile(`\b([A-Z_][A-Z0-9_]*)\s*\(`)

// builtinFunctions Hive内置函数与会被误捕的保留字，调用统计时剔除
var builtinFunctions = map[string]struct{}{
	"COUNT": {}, "SUM": {}, "AVG": {}, "MIN": {}, "MAX": {},
	"DISTINCT": {}, "CAST": {}, "COALESCE": {}, "NULLIF": {}, "NVL": {},
	"IF": {}, "CASE": {}, "GET_JSON_OBJECT": {}, "JSON_TUPLE": {},
	"CONCAT": {}, "SUBSTR": {}, "SUBSTRING": {}, "LENGTH": {},
	"UPPER": {}, "LOWER": {}, "TRIM": {}, "LTRIM": {}, "RTRIM": {},
	"AND": {}, "OR": {}, "NOT": {}, "IN": {}, "ON": {}, "AS": {},
	"WHERE": {}, "FROM": {}, "SELECT": {}, "JOIN": {}, "EXISTS": {},
	"VALUES": {}, "PARTITION": {}, "OVER": {}, "BY": {},
}

// PerformanceAnalyzer 基于规则的HQL打分器。
// 满分100，按命中的规则逐条扣分，最终截断到[0,100]。
// 不可打分的输入不报错，返回满分空结论。
type PerformanceAnalyzer struct{}

// NewPerformanceAnalyzer 创建分析器
func NewPerformanceAnalyzer() *PerformanceAnalyzer {
	return &PerformanceAnalyzer{}
}

// Analyze 对一条HQL打分。从不返回error。
func (a *PerformanceAnalyzer) Analyze(hql string) *Result {
	result := &Result{Score: 100, Issues: []Issue{}}
	if strings.TrimSpace(hql) == "" {
		result.Metrics.Complexity = ComplexityLow
		return result
	}

	upper := strings.ToUpper(hql)
	a.collectMetrics(hql, upper, &result.Metrics)

	a.checkPartitionFilter(result)
	a.checkSelectStar(upper, result)
	a.checkCrossJoins(result)
	a.checkExcessJoins(result)
	a.checkSubqueries(result)
	a.checkUDFs(result)
	a.checkComplexity(result)

	if result.Score < 0 {
		result.Score = 0
	}
	if result.Score > 100 {
		result.Score = 100
	}
	return result
}

func (a *PerformanceAnalyzer) collectMetrics(hql, upper string, m *Metrics) {
	m.TokenCount = len(strings.Fields(hql))
	switch {
	case m.TokenCount <= lowComplexityTokens:
		m.Complexity = ComplexityLow
	case m.TokenCount <= mediumComplexityTokens:
		m.Complexity = ComplexityMedium
	default:
		m.Complexity = ComplexityHigh
	}

	m.CrossJoinCount = strings.Count(upper, "CROSS JOIN")
	m.JoinCount = strings.Count(upper, "JOIN")
	m.SubqueryCount = strings.Count(strings.ReplaceAll(upper, "( SELECT", "(SELECT"), "(SELECT")
	m.HasPartitionFilter = partitionFilterPattern.MatchString(hql)
	m.UDFCount = a.countUDFs(upper)
}

// countUDFs 统计UDF调用次数。同一函数被调用多次按多次计。
func (a *PerformanceAnalyzer) countUDFs(upper string) int {
	count := 0
	for _, match := range functionCallPattern.FindAllStringSubmatch(upper, -1) {
		name := match[1]
		if _, builtin := builtinFunctions[name]; builtin {
			continue
		}
		count++
	}
	return count
}

func (a *PerformanceAnalyzer) checkPartitionFilter(result *Result) {
	if result.Metrics.HasPartitionFilter {
		return
	}
	a.addIssue(result, Issue{
		Rule:       "missing_partition_filter",
		Category:   CategoryError,
		Message:    "no partition filter on ds, query will scan every partition",
		Penalty:    penaltyMissingPartition,
		Suggestion: "add ds = '${ds}' to the WHERE clause",
	})
}

func (a *PerformanceAnalyzer) checkSelectStar(upper string, result *Result) {
	if !strings.Contains(upper, "SELECT *") {
		return
	}
	a.addIssue(result, Issue{
		Rule:       "select_star",
		Category:   CategoryWarning,
		Message:    "SELECT * reads every column",
		Penalty:    penaltySelectStar,
		Suggestion: "enumerate the columns the consumer actually needs",
	})
}

func (a *PerformanceAnalyzer) checkCrossJoins(result *Result) {
	for i := 0; i < result.Metrics.CrossJoinCount; i++ {
		a.addIssue(result, Issue{
			Rule:       "cross_join",
			Category:   CategoryError,
			Message:    "CROSS JOIN produces a cartesian product",
			Penalty:    penaltyCrossJoin,
			Suggestion: "replace with an INNER JOIN carrying an ON predicate",
		})
	}
}

func (a *PerformanceAnalyzer) checkExcessJoins(result *Result) {
	excess := result.Metrics.JoinCount - freeJoinCount
	for i := 0; i < excess; i++ {
		a.addIssue(result, Issue{
			Rule:       "excess_joins",
			Category:   CategoryWarning,
			Message:    fmt.Sprintf("query joins %d tables", result.Metrics.JoinCount+1),
			Penalty:    penaltyExcessJoin,
			Suggestion: "stage intermediate tables to keep joins under control",
		})
	}
}

func (a *PerformanceAnalyzer) checkSubqueries(result *Result) {
	if result.Metrics.SubqueryCount <= subqueryIssueThreshold {
		return
	}
	for i := 0; i < result.Metrics.SubqueryCount; i++ {
		a.addIssue(result, Issue{
			Rule:       "subquery",
			Category:   CategoryWarning,
			Message:    fmt.Sprintf("query nests %d subqueries", result.Metrics.SubqueryCount),
			Penalty:    penaltySubquery,
			Suggestion: "flatten subqueries or materialise them as views",
		})
	}
}

func (a *PerformanceAnalyzer) checkUDFs(result *Result) {
	if result.Metrics.UDFCount <= udfIssueThreshold {
		return
	}
	for i := 0; i < result.Metrics.UDFCount; i++ {
		a.addIssue(result, Issue{
			Rule:       "udf_usage",
			Category:   CategoryInfo,
			Message:    fmt.Sprintf("query calls %d non-builtin functions", result.Metrics.UDFCount),
			Penalty:    penaltyUDF,
			Suggestion: "heavy UDF use defeats vectorised execution",
		})
	}
}

func (a *PerformanceAnalyzer) checkComplexity(result *Result) {
	switch result.Metrics.Complexity {
	case ComplexityHigh:
		a.addIssue(result, Issue{
			Rule:       "high_complexity",
			Category:   CategoryInfo,
			Message:    fmt.Sprintf("statement carries %d tokens", result.Metrics.TokenCount),
			Penalty:    penaltyHighComplexity,
			Suggestion: "consider splitting the statement into staged queries",
		})
	case ComplexityMedium:
		// 中等复杂度只扣分不出结论
		result.Score -= penaltyMediumComplexity
	}
}

func (a *PerformanceAnalyzer) addIssue(result *Result, issue Issue) {
	result.Score -= issue.Penalty
	result.Issues = append(result.Issues, issue)
}
