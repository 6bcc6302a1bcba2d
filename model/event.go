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

// DefaultPartitionField 默认的分区字段名
const DefaultPartitionField = "ds"

// Event 表示绑定到物理表的逻辑日志事件。
// 构造后不可变，作为值对象在各构建器之间传递。
type Event struct {
	// Name 事件名称，如 "login"
	Name string
	// TableName 完整限定的物理表名，如 "ieu_ods.ods_10000147_all_view"
	TableName string
	// Alias 可选别名，在JOIN/UNION输出时使用
	Alias string
	// PartitionField 分区字段，默认为 "ds"
	PartitionField string
}

// NewEvent 创建并校验一个事件
func NewEvent(name, tableName string) (Event, error) {
	e := Event{Name: name, TableName: tableName}
	if err := e.Validate(); err != nil {
		return Event{}, err
	}
	return e, nil
}

// Validate 校验事件的必填属性
func (e Event) Validate() error {
	if e.Name == "" {
		return NewBuildError(ErrorTypeInvalidIdentifier, "event name must not be empty")
	}
	if e.TableName == "" {
		return NewBuildError(ErrorTypeInvalidTableName, "event table name must not be empty").
			WithSuggestions("use the <ods_db>.ods_<game_gid>_all_view convention")
	}
	return nil
}

// PartitionFieldOrDefault 返回分区字段，未设置时返回默认值ds
func (e Event) PartitionFieldOrDefault() string {
	if e.PartitionField == "" {
		return DefaultPartitionField
	}
	return e.PartitionField
}

// DisplayName 返回输出时使用的名称，优先使用别名
func (e Event) DisplayName() string {
	if e.Alias != "" {
		return e.Alias
	}
	return e.Name
}
