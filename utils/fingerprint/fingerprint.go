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

// Package fingerprint implements the project-wide secure hasher:
// hex-encoded SHA-256 over a canonical serialisation. Fingerprints key
// the request cache and drive incremental diff detection. MD5 is
// deliberately not offered.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// Sum 计算字节串的十六进制SHA-256摘要
func Sum(data []byte) string {
	digest := sha256.Sum256(data)
	return hex.EncodeToString(digest[:])
}

// SumString 计算字符串的十六进制SHA-256摘要
func SumString(s string) string {
	return Sum([]byte(s))
}

// SumStrings 把多个片段以不可混淆的分隔符拼接后取摘要
func SumStrings(parts ...string) string {
	return SumString(strings.Join(parts, "\x1f"))
}

// SumJSON 对值的canonical JSON序列化取摘要。
// map键由encoding/json固定排序，保证与键序无关。
func SumJSON(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return Sum(data), nil
}
