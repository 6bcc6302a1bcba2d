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

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType 定义错误类型
type ErrorType int

const (
	ErrorTypeInvalidIdentifier ErrorType = iota
	ErrorTypeUnsafeExpression
	ErrorTypeMissingJsonPath
	ErrorTypeMissingCustomExpression
	ErrorTypeMissingFixedValue
	ErrorTypeUnsupportedFieldType
	ErrorTypeInvalidOperator
	ErrorTypeInvalidJoinType
	ErrorTypeUnsupportedMode
	ErrorTypeWrongEventCount
	ErrorTypeMissingJoinConfig
	ErrorTypeInOperatorNeedsList
	ErrorTypeEmptyInList
	ErrorTypeTooFewEventsForJoin
	ErrorTypeMissingJoinConditions
	ErrorTypeEmptyFields
	ErrorTypeEmptyEvents
	ErrorTypeInvalidTableName
	ErrorTypeEmptyTarget
	ErrorTypeInvalidTargetFormat
	ErrorTypeDangerousToken
	ErrorTypeNonSelectSource
	ErrorTypeInvalidPartitionDate
	ErrorTypeMissingRecordKey
	ErrorTypeUnknownEvent
)

// BuildError 构建过程中产生的错误。
// 包含错误类型、出错的片段以及修复建议。
type BuildError struct {
	Type        ErrorType
	Message     string
	Fragment    string
	Suggestions []string
}

// Error 实现 error 接口
func (e *BuildError) Error() string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("[%s] %s", e.getErrorTypeName(), e.Message))

	if e.Fragment != "" {
		builder.WriteString(fmt.Sprintf(" (found '%s')", e.Fragment))
	}

	if len(e.Suggestions) > 0 {
		builder.WriteString(fmt.Sprintf("\nSuggestions: %s", strings.Join(e.Suggestions, "; ")))
	}

	return builder.String()
}

// getErrorTypeName 获取错误类型名称
func (e *BuildError) getErrorTypeName() string {
	switch e.Type {
	case ErrorTypeInvalidIdentifier:
		return "INVALID_IDENTIFIER"
	case ErrorTypeUnsafeExpression:
		return "UNSAFE_EXPRESSION"
	case ErrorTypeMissingJsonPath:
		return "MISSING_JSON_PATH"
	case ErrorTypeMissingCustomExpression:
		return "MISSING_CUSTOM_EXPRESSION"
	case ErrorTypeMissingFixedValue:
		return "MISSING_FIXED_VALUE"
	case ErrorTypeUnsupportedFieldType:
		return "UNSUPPORTED_FIELD_TYPE"
	case ErrorTypeInvalidOperator:
		return "INVALID_OPERATOR"
	case ErrorTypeInvalidJoinType:
		return "INVALID_JOIN_TYPE"
	case ErrorTypeUnsupportedMode:
		return "UNSUPPORTED_MODE"
	case ErrorTypeWrongEventCount:
		return "WRONG_EVENT_COUNT"
	case ErrorTypeMissingJoinConfig:
		return "MISSING_JOIN_CONFIG"
	case ErrorTypeInOperatorNeedsList:
		return "IN_OPERATOR_NEEDS_LIST"
	case ErrorTypeEmptyInList:
		return "EMPTY_IN_LIST"
	case ErrorTypeTooFewEventsForJoin:
		return "TOO_FEW_EVENTS_FOR_JOIN"
	case ErrorTypeMissingJoinConditions:
		return "MISSING_JOIN_CONDITIONS"
	case ErrorTypeEmptyFields:
		return "EMPTY_FIELDS"
	case ErrorTypeEmptyEvents:
		return "EMPTY_EVENTS"
	case ErrorTypeInvalidTableName:
		return "INVALID_TABLE_NAME"
	case ErrorTypeEmptyTarget:
		return "EMPTY_TARGET"
	case ErrorTypeInvalidTargetFormat:
		return "INVALID_TARGET_FORMAT"
	case ErrorTypeDangerousToken:
		return "DANGEROUS_TOKEN"
	case ErrorTypeNonSelectSource:
		return "NON_SELECT_SOURCE"
	case ErrorTypeInvalidPartitionDate:
		return "INVALID_PARTITION_DATE"
	case ErrorTypeMissingRecordKey:
		return "MISSING_RECORD_KEY"
	case ErrorTypeUnknownEvent:
		return "UNKNOWN_EVENT"
	default:
		return "UNKNOWN_ERROR"
	}
}

// NewBuildError 创建构建错误
func NewBuildError(errType ErrorType, message string) *BuildError {
	return &BuildError{
		Type:    errType,
		Message: message,
	}
}

// NewBuildErrorf 创建带格式化消息的构建错误
func NewBuildErrorf(errType ErrorType, format string, args ...interface{}) *BuildError {
	return &BuildError{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithFragment 附加出错的片段
func (e *BuildError) WithFragment(fragment string) *BuildError {
	e.Fragment = fragment
	return e
}

// WithSuggestions 附加修复建议
func (e *BuildError) WithSuggestions(suggestions ...string) *BuildError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// IsErrorType 检查err是否为指定类型的构建错误
func IsErrorType(err error, errType ErrorType) bool {
	var be *BuildError
	if errors.As(err, &be) {
		return be.Type == errType
	}
	return false
}
