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
Package generator assembles complete HQL statements from model values.

HQLGenerator orchestrates the fragment builders for one of three modes:

	single  exactly one event, SELECT/FROM/WHERE skeleton
	join    two or more events, chained JOINs from a JoinConfig
	union   two or more events, parallel SELECTs joined by UNION ALL

DebuggableHQLGenerator produces the same output while recording every
intermediate fragment. DDLGenerator and DMLGenerator are independent
emitters for CREATE/ALTER TABLE and INSERT OVERWRITE; unlike query
generation their output ends in a semicolon.

Generation is synchronous and allocation-only. Generators hold no
mutable state across calls and can be shared freely.
*/
package generator
