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

	"github.com/ieudata/hqlgen/builder"
	"github.com/ieudata/hqlgen/model"
)

// tableNamePattern 合法的Hive表名：点分的标识符序列
var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// nameTypeRules 按字段名推断Hive类型的子串规则，按序匹配
var nameTypeRules = []struct {
	substr   string
	hiveType string
}{
	{"id", "BIGINT"},
	{"count", "BIGINT"},
	{"amount", "DECIMAL(10,2)"},
	{"price", "DECIMAL(10,2)"},
	{"level", "INT"},
	{"score", "INT"},
	{"time", "TIMESTAMP"},
	{"date", "DATE"},
	{"flag", "BOOLEAN"},
}

// CreateTableOptions CREATE TABLE的输出选项
type CreateTableOptions struct {
	External bool
	Location string
	Comment  string
	// StoredAs 存储格式，默认ORC
	StoredAs string
}

// DDLGenerator 生成CREATE TABLE与ALTER TABLE语句
type DDLGenerator struct{}

// NewDDLGenerator 创建DDL生成器
func NewDDLGenerator() *DDLGenerator {
	return &DDLGenerator{}
}

// GenerateCreateTable 生成CREATE TABLE语句，按ds STRING分区，结尾带分号
func (g *DDLGenerator) GenerateCreateTable(tableName string, fields []model.Field, opts CreateTableOptions) (string, error) {
	if err := g.validateInputs(tableName, fields); err != nil {
		return "", err
	}
	columns, err := g.columnDefs(fields)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("CREATE ")
	if opts.External {
		sb.WriteString("EXTERNAL ")
	}
	sb.WriteString("TABLE " + tableName + " (\n")
	sb.WriteString(strings.Join(columns, ",\n"))
	sb.WriteString("\n)")
	if opts.Comment != "" {
		sb.WriteString(fmt.Sprintf("\nCOMMENT '%s'", builder.EscapeString(opts.Comment)))
	}
	sb.WriteString("\nPARTITIONED BY (ds STRING)")
	storedAs := opts.StoredAs
	if storedAs == "" {
		storedAs = "ORC"
	}
	sb.WriteString("\nSTORED AS " + storedAs)
	if opts.Location != "" {
		sb.WriteString(fmt.Sprintf("\nLOCATION '%s'", builder.EscapeString(opts.Location)))
	}
	sb.WriteString(";")
	return sb.String(), nil
}

// GenerateAlterTableAdd 生成ALTER TABLE ADD COLUMNS语句
func (g *DDLGenerator) GenerateAlterTableAdd(tableName string, fields []model.Field) (string, error) {
	return g.alterColumns(tableName, fields, "ADD")
}

// GenerateAlterTableReplace 生成ALTER TABLE REPLACE COLUMNS语句
func (g *DDLGenerator) GenerateAlterTableReplace(tableName string, fields []model.Field) (string, error) {
	return g.alterColumns(tableName, fields, "REPLACE")
}

func (g *DDLGenerator) alterColumns(tableName string, fields []model.Field, verb string) (string, error) {
	if err := g.validateInputs(tableName, fields); err != nil {
		return "", err
	}
	columns, err := g.columnDefs(fields)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ALTER TABLE %s %s COLUMNS (\n%s\n);", tableName, verb, strings.Join(columns, ",\n")), nil
}

// InferHiveType 按字段名推断Hive类型。显式HiveType覆盖推断结果，
// array/map复杂类型固定渲染为STRING元素类型。
func (g *DDLGenerator) InferHiveType(field model.Field) string {
	if field.HiveType != "" {
		switch strings.ToLower(field.HiveType) {
		case "array":
			return "ARRAY<STRING>"
		case "map":
			return "MAP<STRING,STRING>"
		default:
			return strings.ToUpper(field.HiveType)
		}
	}
	name := strings.ToLower(field.Name)
	if strings.HasPrefix(name, "is_") || strings.HasPrefix(name, "has_") {
		return "BOOLEAN"
	}
	for _, rule := range nameTypeRules {
		if strings.Contains(name, rule.substr) {
			return rule.hiveType
		}
	}
	return "STRING"
}

// columnDefs 渲染列定义列表
func (g *DDLGenerator) columnDefs(fields []model.Field) ([]string, error) {
	columns := make([]string, 0, len(fields))
	for _, field := range fields {
		column, err := builder.EscapeIdentifier(field.Name)
		if err != nil {
			return nil, err
		}
		columns = append(columns, fmt.Sprintf("  %s %s COMMENT '%s'",
			column, g.InferHiveType(field), builder.EscapeString(field.Name)))
	}
	return columns, nil
}

func (g *DDLGenerator) validateInputs(tableName string, fields []model.Field) error {
	if len(fields) == 0 {
		return model.NewBuildError(model.ErrorTypeEmptyFields, "at least one field is required for DDL")
	}
	if !tableNamePattern.MatchString(tableName) {
		return model.NewBuildErrorf(model.ErrorTypeInvalidTableName, "invalid table name '%s'", tableName).
			WithSuggestions("table names are dot-separated identifiers, e.g. ieu_ods.ods_10000147_all_view")
	}
	return nil
}
