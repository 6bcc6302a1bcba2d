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

// FieldBuilder 把单个字段转换为一个SELECT列表表达式。
// 不感知语句的其余部分。
type FieldBuilder struct{}

// NewFieldBuilder 创建字段构建器
func NewFieldBuilder() *FieldBuilder {
	return &FieldBuilder{}
}

// Build 构建一个字段的SELECT表达式
func (b *FieldBuilder) Build(field model.Field) (string, error) {
	if err := field.Validate(); err != nil {
		return "", err
	}
	switch field.Type {
	case model.FieldTypeBase:
		return b.buildBase(field)
	case model.FieldTypeParam:
		return b.buildParam(field)
	case model.FieldTypeCustom:
		return b.buildCustom(field)
	case model.FieldTypeFixed:
		return b.buildFixed(field)
	default:
		return "", model.NewBuildErrorf(model.ErrorTypeUnsupportedFieldType, "unsupported field type '%s'", field.Type)
	}
}

// BuildAll 构建全部字段表达式，保持输入顺序
func (b *FieldBuilder) BuildAll(fields []model.Field) ([]string, error) {
	exprs := make([]string, 0, len(fields))
	for _, f := range fields {
		expr, err := b.Build(f)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

// buildBase 普通列：反引号列名，可选聚合包裹与别名
func (b *FieldBuilder) buildBase(field model.Field) (string, error) {
	column, err := EscapeIdentifier(field.Name)
	if err != nil {
		return "", err
	}
	expr := column
	if field.AggregateFunc != "" {
		expr = fmt.Sprintf("%s(%s)", field.AggregateFunc, column)
	}
	if field.Alias != "" {
		alias, err := EscapeIdentifier(field.Alias)
		if err != nil {
			return "", err
		}
		expr += " AS " + alias
	}
	return expr, nil
}

// buildParam 参数列：get_json_object提取，路径补全$.前缀，别名必填
func (b *FieldBuilder) buildParam(field model.Field) (string, error) {
	path := field.JsonPath
	if !strings.HasPrefix(path, "$") {
		path = "$." + path
	}
	expr := fmt.Sprintf("get_json_object(params, '%s')", EscapeString(path))
	if field.AggregateFunc != "" {
		// 聚合前先把提取结果CAST成STRING，保持Hive下行为一致
		expr = fmt.Sprintf("%s(CAST(%s AS STRING))", field.AggregateFunc, expr)
	}
	alias, err := EscapeIdentifier(field.AliasOrName())
	if err != nil {
		return "", err
	}
	return expr + " AS " + alias, nil
}

// buildCustom 自定义表达式：通过安全检查后原样输出
func (b *FieldBuilder) buildCustom(field model.Field) (string, error) {
	if err := CheckExpressionSafety(field.CustomExpression); err != nil {
		return "", err
	}
	expr := field.CustomExpression
	if field.Alias != "" {
		alias, err := EscapeIdentifier(field.Alias)
		if err != nil {
			return "", err
		}
		expr += " AS " + alias
	}
	return expr, nil
}

// buildFixed 固定值列：按值类型输出字面量，别名必填
func (b *FieldBuilder) buildFixed(field model.Field) (string, error) {
	alias, err := EscapeIdentifier(field.AliasOrName())
	if err != nil {
		return "", err
	}
	return FormatValue(field.FixedValue) + " AS " + alias, nil
}
