/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
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

package utils

import "encoding/json"

// SerializeJSON marshals the given value into a JSON string. Nil maps and
// slices serialize to the empty string so the column stays NULL-equivalent.
func SerializeJSON(value interface{}) (string, error) {
	if value == nil {
		return "", nil
	}
	bytes, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// ParseJSONMap unmarshals a JSON object column into a map. Empty input
// yields an empty map.
func ParseJSONMap(raw string) (map[string]interface{}, error) {
	if raw == "" {
		return map[string]interface{}{}, nil
	}
	var result map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = map[string]interface{}{}
	}
	return result, nil
}

// ParseJSONStringArray unmarshals a JSON array column into a string slice.
// Empty input yields an empty slice.
func ParseJSONStringArray(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var result []string
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = []string{}
	}
	return result, nil
}

// ParseJSONArray unmarshals a JSON array column into a slice of maps.
// Empty input yields an empty slice.
func ParseJSONArray(raw string) ([]map[string]interface{}, error) {
	if raw == "" {
		return []map[string]interface{}{}, nil
	}
	var result []map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = []map[string]interface{}{}
	}
	return result, nil
}

// DeepCopyMap creates a deep copy of a generic structured value map through
// a marshal/unmarshal round trip.
func DeepCopyMap(src map[string]interface{}) (map[string]interface{}, error) {
	if src == nil {
		return nil, nil
	}
	bytes, err := json.Marshal(src)
	if err != nil {
		return nil, err
	}
	var dst map[string]interface{}
	if err := json.Unmarshal(bytes, &dst); err != nil {
		return nil, err
	}
	return dst, nil
}
