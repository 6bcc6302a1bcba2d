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
Package condition evaluates user conditions against sample rows before
the generated HQL ever reaches the warehouse.

Model conditions are translated into expr-lang expressions and compiled
once; the resulting predicate runs locally with no warehouse round trip.
SQL comparison semantics carry over: = becomes ==, AND/OR become &&/||,
LIKE is served by a custom like_match function supporting the % and _
wildcards, IS NULL becomes a nil comparison and IN becomes list
membership.

Preview a condition set:

	cond, err := condition.FromModel([]model.Condition{
		{Field: "zone", Operator: model.OpEQ, Value: 1},
		{Field: "name", Operator: model.OpLike, Value: "John%"},
	})
	if err != nil {
		log.Fatal(err)
	}

	hit := cond.Evaluate(map[string]interface{}{
		"zone": 1,
		"name": "John Smith",
	}) // true

Raw expressions compile directly when the caller already speaks the
expression language:

	cond, err := condition.NewExprCondition("like_match(email, '%@company.com')")

Pattern matching rules:

	% - matches any sequence of characters (including empty)
	_ - matches exactly one character

Evaluation never panics: runtime errors, including type mismatches
inside the expression, yield false.
*/
package condition
