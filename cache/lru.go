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

// Package cache implements the in-process request cache: an
// insertion-ordered LRU keyed by a canonical SHA-256 fingerprint of the
// whole generation request. Entries have no TTL, only eviction.
//
// The cache is single-writer by design. Hosts sharing one instance
// across goroutines must serialise Get/Set externally.
package cache

import (
	"container/list"
	"sort"

	"github.com/ieudata/hqlgen/model"
	"github.com/ieudata/hqlgen/utils/fingerprint"
)

// DefaultMaxSize 默认缓存容量
const DefaultMaxSize = 256

// Stats 缓存统计
type Stats struct {
	Size    int     `json:"size"`
	MaxSize int     `json:"maxsize"`
	Hits    uint64  `json:"hits"`
	Misses  uint64  `json:"misses"`
	HitRate float64 `json:"hit_rate"`
}

type entry struct {
	key string
	hql string
}

// HQLCacheManager 插入序LRU，值为生成的HQL文本
type HQLCacheManager struct {
	maxSize int
	order   *list.List
	items   map[string]*list.Element
	hits    uint64
	misses  uint64
}

// NewHQLCacheManager 创建缓存管理器，maxSize非正时取默认容量
func NewHQLCacheManager(maxSize int) *HQLCacheManager {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &HQLCacheManager{
		maxSize: maxSize,
		order:   list.New(),
		items:   make(map[string]*list.Element),
	}
}

// Key 计算请求的canonical指纹。
// 事件、字段、条件列表先按稳定键排序再序列化，
// 与输入列表顺序和map键序无关。
func Key(events []model.Event, fields []model.Field, conditions []model.Condition, options interface{}) (string, error) {
	sortedEvents := make([]model.Event, len(events))
	copy(sortedEvents, events)
	sort.SliceStable(sortedEvents, func(i, j int) bool {
		if sortedEvents[i].TableName != sortedEvents[j].TableName {
			return sortedEvents[i].TableName < sortedEvents[j].TableName
		}
		return sortedEvents[i].Name < sortedEvents[j].Name
	})

	sortedFields := make([]model.Field, len(fields))
	copy(sortedFields, fields)
	sort.SliceStable(sortedFields, func(i, j int) bool {
		return sortedFields[i].Name < sortedFields[j].Name
	})

	sortedConditions := make([]model.Condition, len(conditions))
	copy(sortedConditions, conditions)
	sort.SliceStable(sortedConditions, func(i, j int) bool {
		return sortedConditions[i].Field < sortedConditions[j].Field
	})

	return fingerprint.SumJSON(map[string]interface{}{
		"events":     sortedEvents,
		"fields":     sortedFields,
		"conditions": sortedConditions,
		"options":    options,
	})
}

// Get 查询缓存，未命中返回ok=false，从不报错
func (c *HQLCacheManager) Get(key string) (string, bool) {
	elem, ok := c.items[key]
	if !ok {
		c.misses++
		return "", false
	}
	c.hits++
	c.order.MoveToFront(elem)
	return elem.Value.(*entry).hql, true
}

// Set 写入缓存，容量满时淘汰最久未使用的条目
func (c *HQLCacheManager) Set(key, hql string) {
	if elem, ok := c.items[key]; ok {
		elem.Value.(*entry).hql = hql
		c.order.MoveToFront(elem)
		return
	}
	if c.order.Len() >= c.maxSize {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*entry).key)
		}
	}
	c.items[key] = c.order.PushFront(&entry{key: key, hql: hql})
}

// Clear 清空缓存并重置统计
func (c *HQLCacheManager) Clear() {
	c.order.Init()
	c.items = make(map[string]*list.Element)
	c.hits = 0
	c.misses = 0
}

// GetStats 返回缓存统计
func (c *HQLCacheManager) GetStats() Stats {
	total := c.hits + c.misses
	rate := 0.0
	if total > 0 {
		rate = float64(c.hits) / float64(total)
	}
	return Stats{
		Size:    c.order.Len(),
		MaxSize: c.maxSize,
		Hits:    c.hits,
		Misses:  c.misses,
		HitRate: rate,
	}
}
