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

/*
Package hqlgen 是面向游戏数仓的Hive SQL生成核心。

从抽象的事件/字段/条件模型出发生成规范的HQL文本，覆盖单事件、
多事件连接与并联三种模式，并提供建表/写入语句生成、语法校验、
性能打分、增量生成与按请求指纹的LRU缓存。

# 核心特性

• 模型驱动 - 事件、字段、条件、连接配置皆为纯值，入口处校验
• 三种生成模式 - single、join、union，统一的SELECT/FROM/WHERE骨架
• 系统过滤自动附加 - 分区过滤与事件名过滤始终先于用户条件
• DDL/DML伴随生成 - CREATE TABLE按字段名推断Hive类型，INSERT OVERWRITE带安全闸
• 语法校验与性能打分 - 诊断不抛错，全部进结果
• 增量生成 - 指纹比对后复用上一次输出的稳定片段
• 请求缓存 - 结构化SHA-256指纹作键的LRU
• 条件试算 - 保存前在样本行上干跑过滤条件

# 入门示例

生成一条单事件查询：

	package main

	import (
		"fmt"

		"github.com/ieudata/hqlgen"
		"github.com/ieudata/hqlgen/generator"
		"github.com/ieudata/hqlgen/model"
	)

	func main() {
		engine := hqlgen.New()

		events := []model.Event{
			{Name: "role_login", TableName: "ieu_ods.ods_10000147_all_view"},
		}
		fields := []model.Field{
			{Name: "role_id", Type: model.FieldTypeBase},
			{Name: "zone", Type: model.FieldTypeParam, JsonPath: "$.zone", Alias: "zone_id"},
		}
		conditions := []model.Condition{
			{Field: "level", Operator: model.OpIn, Value: []interface{}{1, 2, 3}},
		}

		hql, err := engine.Generate(events, fields, conditions, generator.DefaultOptions())
		if err != nil {
			panic(err)
		}
		fmt.Println(hql)
	}

输出形如：

	-- Event Node: role_login
	-- 中文: role_login
	SELECT
	  `role_id`,
	  get_json_object(params, '$.zone') AS `zone_id`
	FROM ieu_ods.ods_10000147_all_view
	WHERE
	  ds = '${ds}' AND
	  event_name = 'role_login' AND
	  level IN (1, 2, 3)

# 校验与打分

生成之外的两条只读通道：

	result := engine.Validate(hql)   // 结构错误与最佳实践告警
	report := engine.Analyze(hql)    // 0-100打分与命中的规则

两者对任何输入都不抛错，诊断全部体现在返回值中。

# 增量生成

同一请求序列中只有字段或条件被修改时，复用上一次输出：

	res, err := engine.GenerateIncremental(events, fields2, conditions, previousHQL, opts)
	if res.Incremental {
		// res.HQL 由上一次输出的稳定片段拼出
	}

# 并发模型

核心是纯函数加实例内状态（缓存与增量快照）。Engine对这两处状态
内部加锁，单个实例可被多个请求协程共享；各生成器本身无共享可变
状态，可自由复用。
*/
package hqlgen
