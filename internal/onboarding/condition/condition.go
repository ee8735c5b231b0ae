/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package condition evaluates step skip and branching predicates against the
// form data a session has accumulated so far.
package condition

import "fmt"

// Evaluate evaluates a predicate node against the accumulated form data.
// A node is either a composite ("all", "any", "not") or a leaf comparing one
// field ("field", "op", "value"). A nil or empty node evaluates to false, so
// steps without conditions are never skipped.
func Evaluate(node map[string]interface{}, data map[string]interface{}) bool {
	if len(node) == 0 {
		return false
	}

	if children, ok := node["all"]; ok {
		return evaluateAll(children, data)
	}
	if children, ok := node["any"]; ok {
		return evaluateAny(children, data)
	}
	if child, ok := node["not"]; ok {
		childNode, ok := child.(map[string]interface{})
		if !ok {
			return false
		}
		return !Evaluate(childNode, data)
	}

	return evaluateLeaf(node, data)
}

func evaluateAll(children interface{}, data map[string]interface{}) bool {
	nodes, ok := asNodeList(children)
	if !ok || len(nodes) == 0 {
		return false
	}
	for _, child := range nodes {
		if !Evaluate(child, data) {
			return false
		}
	}
	return true
}

func evaluateAny(children interface{}, data map[string]interface{}) bool {
	nodes, ok := asNodeList(children)
	if !ok {
		return false
	}
	for _, child := range nodes {
		if Evaluate(child, data) {
			return true
		}
	}
	return false
}

func evaluateLeaf(node map[string]interface{}, data map[string]interface{}) bool {
	field, _ := node["field"].(string)
	if field == "" {
		return false
	}

	op, _ := node["op"].(string)
	if op == "" {
		op = "eq"
	}

	value, present := data[field]

	switch op {
	case "eq":
		return present && valuesEqual(value, node["value"])
	case "ne":
		return present && !valuesEqual(value, node["value"])
	case "exists":
		return present && value != nil
	case "not_exists":
		return !present || value == nil
	case "in":
		if !present {
			return false
		}
		options, ok := node["value"].([]interface{})
		if !ok {
			return false
		}
		for _, option := range options {
			if valuesEqual(value, option) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// valuesEqual compares a form value against a condition value. Both sides pass
// through JSON decoding, so numbers compare by their canonical string form to
// bridge float64 against int.
func valuesEqual(left, right interface{}) bool {
	if left == right {
		return true
	}
	return fmt.Sprintf("%v", left) == fmt.Sprintf("%v", right)
}

func asNodeList(value interface{}) ([]map[string]interface{}, bool) {
	raw, ok := value.([]interface{})
	if !ok {
		return nil, false
	}
	nodes := make([]map[string]interface{}, 0, len(raw))
	for _, entry := range raw {
		node, ok := entry.(map[string]interface{})
		if !ok {
			return nil, false
		}
		nodes = append(nodes, node)
	}
	return nodes, true
}
