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
Package model defines the value objects consumed by the HQL generation
pipeline: events, fields, conditions, join configuration and the request
context, together with their enumerations and the shared error type.

All records are immutable after construction and self-validating: the
New* constructors (and the Validate methods for literal construction)
enforce the per-kind invariants, so downstream builders can assume
well-formed inputs.

# Core Types

• Event - a logical log event bound to a physical Hive table
• Field - one SELECT-list expression, tagged by FieldType
• Condition - one WHERE-clause conjunct
• JoinConfig - multi-event join configuration
• HQLContext - the request envelope for one generation call
• BuildError - typed error with fragment and suggestions

# Field Variants

Field carries a FieldType tag with per-kind extras instead of a type
hierarchy. This keeps fields serialisable and lets the builders dispatch
on a flat switch:

	base    bare column, optional aggregate and alias
	param   get_json_object extraction, json path required
	custom  raw expression, guarded against destructive tokens
	fixed   SQL literal of the value's type
*/
package model
