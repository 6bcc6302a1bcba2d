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

import "reflect"

// Operator WHERE条件运算符
type Operator string

const (
	OpEQ        Operator = "="
	OpNE        Operator = "!="
	OpGT        Operator = ">"
	OpLT        Operator = "<"
	OpGE        Operator = ">="
	OpLE        Operator = "<="
	OpLike      Operator = "LIKE"
	OpIn        Operator = "IN"
	OpNotIn     Operator = "NOT IN"
	OpIsNull    Operator = "IS NULL"
	OpIsNotNull Operator = "IS NOT NULL"
)

// LogicalOp 条件之间的逻辑连接符
type LogicalOp string

const (
	LogicalAnd LogicalOp = "AND"
	LogicalOr  LogicalOp = "OR"
)

// Condition 表示WHERE子句中的一个条件。构造后不可变。
type Condition struct {
	// Field 条件字段，可以是限定名或表达式
	Field string
	// Operator 运算符
	Operator Operator
	// Value 条件值；IS [NOT] NULL不携带值，IN/NOT IN要求非空列表
	Value interface{}
	// LogicalOp 与前一条件的逻辑连接，默认AND
	LogicalOp LogicalOp
}

// NewCondition 创建并校验一个条件
func NewCondition(field string, operator Operator, value interface{}) (Condition, error) {
	c := Condition{Field: field, Operator: operator, Value: value, LogicalOp: LogicalAnd}
	if err := c.Validate(); err != nil {
		return Condition{}, err
	}
	return c, nil
}

// Validate 校验条件的不变式
func (c Condition) Validate() error {
	if c.Field == "" {
		return NewBuildError(ErrorTypeInvalidIdentifier, "condition field must not be empty")
	}
	switch c.Operator {
	case OpEQ, OpNE, OpGT, OpLT, OpGE, OpLE, OpLike:
	case OpIsNull, OpIsNotNull:
		if c.Value != nil {
			return NewBuildErrorf(ErrorTypeInvalidOperator, "operator '%s' must not carry a value", c.Operator)
		}
	case OpIn, OpNotIn:
		values, ok := ValueList(c.Value)
		if !ok {
			return NewBuildErrorf(ErrorTypeInOperatorNeedsList, "operator '%s' requires a list value", c.Operator)
		}
		if len(values) == 0 {
			return NewBuildErrorf(ErrorTypeEmptyInList, "operator '%s' requires a non-empty list", c.Operator)
		}
	default:
		return NewBuildErrorf(ErrorTypeInvalidOperator, "invalid operator '%s'", c.Operator)
	}
	if c.LogicalOp != "" && c.LogicalOp != LogicalAnd && c.LogicalOp != LogicalOr {
		return NewBuildErrorf(ErrorTypeInvalidOperator, "invalid logical operator '%s'", c.LogicalOp)
	}
	return nil
}

// LogicalOpOrDefault 返回逻辑连接符，未设置时返回AND
func (c Condition) LogicalOpOrDefault() LogicalOp {
	if c.LogicalOp == "" {
		return LogicalAnd
	}
	return c.LogicalOp
}

// ValueList 尝试把任意切片值展开为[]interface{}。
// 非切片类型返回ok=false。字符串不视为切片。
func ValueList(value interface{}) ([]interface{}, bool) {
	if value == nil {
		return nil, false
	}
	if vs, ok := value.([]interface{}); ok {
		return vs, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]interface{}, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
