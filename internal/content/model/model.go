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

// Package model defines the data structures for managed site content.
package model

// Record is a single content record keyed by lowercase column name.
type Record map[string]interface{}

// RecordList is a paginated listing of content records.
type RecordList struct {
	TotalResults int      `json:"total_results"`
	Count        int      `json:"count"`
	Records      []Record `json:"records"`
}

// EntityDescriptor describes one managed content entity: its table, identity
// column, the columns writable through the API and the columns listings may
// filter on.
type EntityDescriptor struct {
	Name            string
	Table           string
	IDColumn        string
	WritableColumns []string
	FilterColumns   []string
	OrderBy         string
}

// IsWritableColumn reports whether the API may set the given column.
func (d *EntityDescriptor) IsWritableColumn(column string) bool {
	for _, c := range d.WritableColumns {
		if c == column {
			return true
		}
	}
	return false
}

// IsFilterColumn reports whether listings may filter on the given column.
func (d *EntityDescriptor) IsFilterColumn(column string) bool {
	for _, c := range d.FilterColumns {
		if c == column {
			return true
		}
	}
	return false
}
