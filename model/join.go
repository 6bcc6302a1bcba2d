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

// JoinType 连接类型
type JoinType string

const (
	JoinInner JoinType = "INNER"
	JoinLeft  JoinType = "LEFT"
	JoinRight JoinType = "RIGHT"
	JoinFull  JoinType = "FULL"
	JoinCross JoinType = "CROSS"
)

// JoinKey 一个连接条件，描述左右事件字段的配对
type JoinKey struct {
	LeftEvent  string
	LeftField  string
	RightEvent string
	RightField string
	// Operator 连接运算符，默认 "="
	Operator string
}

// OperatorOrDefault 返回连接运算符，未设置时返回等号
func (k JoinKey) OperatorOrDefault() string {
	if k.Operator == "" {
		return "="
	}
	return k.Operator
}

// JoinConfig 多事件连接配置。构造后不可变。
type JoinConfig struct {
	JoinType JoinType
	// JoinKeys 连接条件列表，CROSS连接之外必须非空
	JoinKeys []JoinKey
	// Left/Right 可选的左右事件引用
	Left  *Event
	Right *Event
}

// NewJoinConfig 创建并校验连接配置
func NewJoinConfig(joinType JoinType, keys []JoinKey) (JoinConfig, error) {
	cfg := JoinConfig{JoinType: joinType, JoinKeys: keys}
	if err := cfg.Validate(); err != nil {
		return JoinConfig{}, err
	}
	return cfg, nil
}

// Validate 校验连接配置的不变式
func (cfg JoinConfig) Validate() error {
	switch cfg.JoinType {
	case JoinInner, JoinLeft, JoinRight, JoinFull, JoinCross:
	default:
		return NewBuildErrorf(ErrorTypeInvalidJoinType, "invalid join type '%s'", cfg.JoinType).
			WithSuggestions("use one of: INNER, LEFT, RIGHT, FULL, CROSS")
	}
	if cfg.JoinType != JoinCross && len(cfg.JoinKeys) == 0 {
		return NewBuildError(ErrorTypeMissingJoinConditions, "join config requires at least one join key")
	}
	return nil
}
