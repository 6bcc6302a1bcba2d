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

// FieldType 字段种类标签。以标签+按种类附加属性的方式表达变体，
// 而不是类型层级，保证字段可序列化、构建器分支扁平。
type FieldType string

const (
	// FieldTypeBase 普通列字段
	FieldTypeBase FieldType = "base"
	// FieldTypeParam 从params JSON中提取的参数字段
	FieldTypeParam FieldType = "param"
	// FieldTypeCustom 自定义表达式字段
	FieldTypeCustom FieldType = "custom"
	// FieldTypeFixed 固定值字段
	FieldTypeFixed FieldType = "fixed"
)

// AggregateFunc 聚合函数
type AggregateFunc string

const (
	AggregateCount AggregateFunc = "COUNT"
	AggregateSum   AggregateFunc = "SUM"
	AggregateAvg   AggregateFunc = "AVG"
	AggregateMin   AggregateFunc = "MIN"
	AggregateMax   AggregateFunc = "MAX"
)

// Field 表示一个SELECT列表表达式。构造后不可变。
type Field struct {
	// Name 字段名称
	Name string
	// Type 字段种类标签
	Type FieldType
	// Alias 可选别名；param和fixed种类输出时别名必填，缺省取Name
	Alias string
	// AggregateFunc 可选聚合函数
	AggregateFunc AggregateFunc
	// JsonPath param种类必填，params JSON中的提取路径
	JsonPath string
	// CustomExpression custom种类必填，原样输出的表达式
	CustomExpression string
	// FixedValue fixed种类必填，输出为SQL字面量
	FixedValue interface{}
	// HiveType 可选的显式Hive类型，DDL生成时覆盖按名称推断的类型
	HiveType string
}

// NewField 创建并校验一个字段
func NewField(name string, fieldType FieldType) (Field, error) {
	f := Field{Name: name, Type: fieldType}
	if err := f.Validate(); err != nil {
		return Field{}, err
	}
	return f, nil
}

// Validate 校验字段种类对应的必填属性
func (f Field) Validate() error {
	if f.Name == "" {
		return NewBuildError(ErrorTypeInvalidIdentifier, "field name must not be empty")
	}
	switch f.Type {
	case FieldTypeBase:
		// 无附加必填属性
	case FieldTypeParam:
		if f.JsonPath == "" {
			return NewBuildErrorf(ErrorTypeMissingJsonPath, "param field '%s' requires a json path", f.Name)
		}
	case FieldTypeCustom:
		if f.CustomExpression == "" {
			return NewBuildErrorf(ErrorTypeMissingCustomExpression, "custom field '%s' requires an expression", f.Name)
		}
	case FieldTypeFixed:
		if f.FixedValue == nil {
			return NewBuildErrorf(ErrorTypeMissingFixedValue, "fixed field '%s' requires a value", f.Name)
		}
	default:
		return NewBuildErrorf(ErrorTypeUnsupportedFieldType, "unsupported field type '%s'", f.Type).
			WithSuggestions("use one of: base, param, custom, fixed")
	}
	if f.AggregateFunc != "" {
		switch f.AggregateFunc {
		case AggregateCount, AggregateSum, AggregateAvg, AggregateMin, AggregateMax:
		default:
			return NewBuildErrorf(ErrorTypeUnsupportedFieldType, "unsupported aggregate function '%s'", f.AggregateFunc).
				WithSuggestions("use one of: COUNT, SUM, AVG, MIN, MAX")
		}
	}
	return nil
}

// AliasOrName 返回输出别名，缺省取字段名
func (f Field) AliasOrName() string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Name
}
