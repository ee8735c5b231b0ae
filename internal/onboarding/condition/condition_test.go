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

package condition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	data := map[string]interface{}{
		"express_checkout": true,
		"service_type":     "web_app",
		"budget":           float64(5000),
		"notes":            nil,
	}

	testCases := []struct {
		name     string
		node     map[string]interface{}
		expected bool
	}{
		{
			name:     "NilNode",
			node:     nil,
			expected: false,
		},
		{
			name:     "EmptyNode",
			node:     map[string]interface{}{},
			expected: false,
		},
		{
			name:     "EqMatch",
			node:     map[string]interface{}{"field": "express_checkout", "op": "eq", "value": true},
			expected: true,
		},
		{
			name:     "EqMismatch",
			node:     map[string]interface{}{"field": "service_type", "op": "eq", "value": "mobile_app"},
			expected: false,
		},
		{
			name:     "EqDefaultsWhenOpOmitted",
			node:     map[string]interface{}{"field": "service_type", "value": "web_app"},
			expected: true,
		},
		{
			name:     "EqBridgesNumericTypes",
			node:     map[string]interface{}{"field": "budget", "op": "eq", "value": 5000},
			expected: true,
		},
		{
			name:     "EqAbsentField",
			node:     map[string]interface{}{"field": "missing", "op": "eq", "value": "x"},
			expected: false,
		},
		{
			name:     "Ne",
			node:     map[string]interface{}{"field": "service_type", "op": "ne", "value": "mobile_app"},
			expected: true,
		},
		{
			name:     "NeAbsentField",
			node:     map[string]interface{}{"field": "missing", "op": "ne", "value": "x"},
			expected: false,
		},
		{
			name:     "Exists",
			node:     map[string]interface{}{"field": "service_type", "op": "exists"},
			expected: true,
		},
		{
			name:     "ExistsNilValue",
			node:     map[string]interface{}{"field": "notes", "op": "exists"},
			expected: false,
		},
		{
			name:     "NotExists",
			node:     map[string]interface{}{"field": "missing", "op": "not_exists"},
			expected: true,
		},
		{
			name: "InMatch",
			node: map[string]interface{}{
				"field": "service_type", "op": "in",
				"value": []interface{}{"web_app", "mobile_app"},
			},
			expected: true,
		},
		{
			name: "InMiss",
			node: map[string]interface{}{
				"field": "service_type", "op": "in",
				"value": []interface{}{"landing_page"},
			},
			expected: false,
		},
		{
			name:     "UnknownOp",
			node:     map[string]interface{}{"field": "service_type", "op": "gt", "value": "a"},
			expected: false,
		},
		{
			name: "AllTrue",
			node: map[string]interface{}{
				"all": []interface{}{
					map[string]interface{}{"field": "express_checkout", "op": "eq", "value": true},
					map[string]interface{}{"field": "service_type", "op": "eq", "value": "web_app"},
				},
			},
			expected: true,
		},
		{
			name: "AllOneFalse",
			node: map[string]interface{}{
				"all": []interface{}{
					map[string]interface{}{"field": "express_checkout", "op": "eq", "value": true},
					map[string]interface{}{"field": "service_type", "op": "eq", "value": "mobile_app"},
				},
			},
			expected: false,
		},
		{
			name:     "AllEmptyList",
			node:     map[string]interface{}{"all": []interface{}{}},
			expected: false,
		},
		{
			name: "AnyOneTrue",
			node: map[string]interface{}{
				"any": []interface{}{
					map[string]interface{}{"field": "service_type", "op": "eq", "value": "mobile_app"},
					map[string]interface{}{"field": "express_checkout", "op": "eq", "value": true},
				},
			},
			expected: true,
		},
		{
			name: "AnyAllFalse",
			node: map[string]interface{}{
				"any": []interface{}{
					map[string]interface{}{"field": "service_type", "op": "eq", "value": "mobile_app"},
				},
			},
			expected: false,
		},
		{
			name: "Not",
			node: map[string]interface{}{
				"not": map[string]interface{}{"field": "service_type", "op": "eq", "value": "mobile_app"},
			},
			expected: true,
		},
		{
			name: "NestedComposite",
			node: map[string]interface{}{
				"all": []interface{}{
					map[string]interface{}{
						"any": []interface{}{
							map[string]interface{}{"field": "service_type", "op": "eq", "value": "web_app"},
							map[string]interface{}{"field": "service_type", "op": "eq", "value": "mobile_app"},
						},
					},
					map[string]interface{}{
						"not": map[string]interface{}{"field": "missing", "op": "exists"},
					},
				},
			},
			expected: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Evaluate(tc.node, data))
		})
	}
}
