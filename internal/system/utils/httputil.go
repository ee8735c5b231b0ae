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

// Package utils provides utility functions for HTTP and server wide operations.
package utils

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pixelforge/beacon/internal/system/constants"
	"github.com/pixelforge/beacon/internal/system/error/apierror"
	"github.com/pixelforge/beacon/internal/system/log"
)

// DecodeJSONBody decodes the JSON request body into a value of the given type.
func DecodeJSONBody[T any](r *http.Request) (*T, error) {
	var target T
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&target); err != nil {
		return nil, err
	}
	return &target, nil
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set(constants.ContentTypeHeaderName, constants.ContentTypeJSON)
	w.WriteHeader(statusCode)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.GetLogger().Error("Failed to write JSON response", log.Error(err))
	}
}

// WriteJSONError writes a JSON error response with the given details.
func WriteJSONError(w http.ResponseWriter, statusCode int, errResp apierror.ErrorResponse) {
	logger := log.GetLogger()
	logger.Error("Error in HTTP response", log.String("code", errResp.Code),
		log.String("description", errResp.Description))

	w.Header().Set(constants.ContentTypeHeaderName, constants.ContentTypeJSON)
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(errResp); err != nil {
		logger.Error("Failed to write JSON error response", log.Error(err))
	}
}

// SanitizeString removes control characters that could forge log lines.
func SanitizeString(s string) string {
	s = strings.ReplaceAll(s, "\n", "")
	s = strings.ReplaceAll(s, "\r", "")
	return strings.TrimSpace(s)
}

// SanitizeStringMap sanitizes all values of a string map.
func SanitizeStringMap(input map[string]string) map[string]string {
	if input == nil {
		return nil
	}
	output := make(map[string]string, len(input))
	for k, v := range input {
		output[SanitizeString(k)] = SanitizeString(v)
	}
	return output
}
