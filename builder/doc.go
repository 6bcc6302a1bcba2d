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
Package builder contains the SQL fragment builders of the generation
pipeline. Each builder turns model values into exactly one kind of
fragment and knows nothing about the rest of the statement:

• FieldBuilder - one Field into one SELECT-list expression
• WhereBuilder - conditions into the WHERE body, system filters included
• JoinBuilder  - events plus join keys into FROM ... JOIN ... ON ...
• UnionBuilder - parallel SELECTs joined by UNION ALL

The package also owns the value frontier: identifier escaping, string
literal escaping, value formatting and the destructive-token guard for
custom expressions. Every user-supplied text path must pass through
these gates before it reaches statement assembly.

Formatting is part of the contract. WHERE conjuncts are joined by
ConjunctSeparator and union branches by UnionSeparator; callers split
on these to post-process output.
*/
package builder
