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
	"regexp"
	"strings"
	"time"

	"github.com/ieudata/hqlgen/builder"
	"github.com/ieudata/hqlgen/model"
)

// hiveVariablePattern 分区值允许的Hive变量形式
var hiveVariablePattern = regexp.MustCompile(`^\$\{[A-Za-z_][A-Za-z0-9_]*\}$`)

// destructiveTokens 目标表与源查询中禁止的破坏性关键字
var destructiveTokens = []string{
	"DROP", "DELETE", "TRUNCATE", "ALTER", "CREATE", "UPDATE",
	"EXEC", "EXECUTE", ";",
}

// InsertOptions INSERT OVERWRITE的输出选项
type InsertOptions struct {
	// IncludeComments 是否输出头部注释（时间戳、目标表、分区、描述）
	IncludeComments bool
	// Description 注释中的人类可读描述
	Description string
}

// DMLGenerator 生成INSERT OVERWRITE语句
type DMLGenerator struct {
	// now 可注入的时钟，测试用
	now func() time.Time
}

// NewDMLGenerator 创建DML生成器
func NewDMLGenerator() *DMLGenerator {
	return &DMLGenerator{now: time.Now}
}

// GenerateInsertOverwrite 生成INSERT OVERWRITE TABLE语句，结尾带分号
func (g *DMLGenerator) GenerateInsertOverwrite(targetTable, partitionValue, selectQuery string, opts InsertOptions) (string, error) {
	if err := g.validateTarget(targetTable); err != nil {
		return "", err
	}
	if err := g.validatePartitionValue(partitionValue); err != nil {
		return "", err
	}
	if err := g.validateSource(selectQuery); err != nil {
		return "", err
	}

	var sb strings.Builder
	if opts.IncludeComments {
		g.writeHeader(&sb, targetTable, partitionValue, opts.Description)
	}
	sb.WriteString(fmt.Sprintf("INSERT OVERWRITE TABLE %s PARTITION (ds='%s')\n", targetTable, partitionValue))
	sb.WriteString(strings.TrimRight(selectQuery, " \n\t"))
	sb.WriteString("\n;")
	return sb.String(), nil
}

// GenerateInsertOverwriteDirectory 生成写目录变体
func (g *DMLGenerator) GenerateInsertOverwriteDirectory(directory, selectQuery string, opts InsertOptions) (string, error) {
	if directory == "" {
		return "", model.NewBuildError(model.ErrorTypeEmptyTarget, "target directory must not be empty")
	}
	if err := builder.CheckExpressionSafety(directory); err != nil {
		return "", err
	}
	if err := g.validateSource(selectQuery); err != nil {
		return "", err
	}

	var sb strings.Builder
	if opts.IncludeComments {
		g.writeHeader(&sb, directory, "", opts.Description)
	}
	sb.WriteString(fmt.Sprintf("INSERT OVERWRITE DIRECTORY '%s'\n", builder.EscapeString(directory)))
	sb.WriteString(strings.TrimRight(selectQuery, " \n\t"))
	sb.WriteString("\n;")
	return sb.String(), nil
}

// writeHeader 输出头部注释
func (g *DMLGenerator) writeHeader(sb *strings.Builder, target, partitionValue, description string) {
	sb.WriteString(fmt.Sprintf("-- Generated: %s\n", g.now().Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("-- Target: %s\n", target))
	if partitionValue != "" {
		sb.WriteString(fmt.Sprintf("-- Partition: ds='%s'\n", partitionValue))
	}
	if description != "" {
		sb.WriteString(fmt.Sprintf("-- Description: %s\n", description))
	}
}

// validateTarget 目标表必须含库名前缀且不含破坏性内容
func (g *DMLGenerator) validateTarget(targetTable string) error {
	if targetTable == "" {
		return model.NewBuildError(model.ErrorTypeEmptyTarget, "target table must not be empty")
	}
	if !strings.Contains(targetTable, ".") {
		return model.NewBuildErrorf(model.ErrorTypeInvalidTargetFormat, "target table '%s' must be qualified as db.table", targetTable)
	}
	if err := g.scanDestructive(targetTable); err != nil {
		return err
	}
	if !tableNamePattern.MatchString(targetTable) {
		return model.NewBuildErrorf(model.ErrorTypeInvalidTableName, "invalid target table '%s'", targetTable)
	}
	return nil
}

// validatePartitionValue 分区值必须是Hive变量或YYYYMMDD日期
func (g *DMLGenerator) validatePartitionValue(value string) error {
	if hiveVariablePattern.MatchString(value) {
		return nil
	}
	if _, err := time.Parse("20060102", value); err != nil {
		return model.NewBuildErrorf(model.ErrorTypeInvalidPartitionDate, "partition value '%s' is neither a Hive variable nor a YYYYMMDD date", value)
	}
	return nil
}

// validateSource 源查询去掉注释和空白后必须以SELECT开头，且不含破坏性关键字
func (g *DMLGenerator) validateSource(selectQuery string) error {
	stripped := stripLeadingComments(selectQuery)
	if !strings.HasPrefix(strings.ToUpper(stripped), "SELECT") {
		return model.NewBuildError(model.ErrorTypeNonSelectSource, "source query must start with SELECT")
	}
	// 扫描前剥掉注释行，生成器自带的头部注释不算破坏性内容
	var body []string
	for _, line := range strings.Split(selectQuery, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		body = append(body, line)
	}
	return g.scanDestructive(strings.Join(body, "\n"))
}

func (g *DMLGenerator) scanDestructive(s string) error {
	upper := strings.ToUpper(s)
	for _, token := range destructiveTokens {
		if strings.Contains(upper, token) {
			return model.NewBuildError(model.ErrorTypeDangerousToken, "destructive token found").
				WithFragment(token)
		}
	}
	return nil
}

// stripLeadingComments 去掉前导注释行与空白
func stripLeadingComments(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		return strings.TrimSpace(strings.Join(lines[i:], "\n"))
	}
	return ""
}
