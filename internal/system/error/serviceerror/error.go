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

// Package serviceerror defines the structures and types for service errors.
package serviceerror

// ServiceErrorType defines the type of service error.
type ServiceErrorType string

const (
	// ClientErrorType represents a client error.
	ClientErrorType ServiceErrorType = "client_error"
	// ServerErrorType represents a server error.
	ServerErrorType ServiceErrorType = "server_error"
)

// ServiceError represents a service error with its details.
type ServiceError struct {
	Code             string
	Type             ServiceErrorType
	Error            string
	ErrorDescription string
}

// CustomServiceError returns a copy of the given error with a custom description.
func CustomServiceError(err ServiceError, description string) *ServiceError {
	return &ServiceError{
		Code:             err.Code,
		Type:             err.Type,
		Error:            err.Error,
		ErrorDescription: description,
	}
}
