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

package constants

import "github.com/pixelforge/beacon/internal/system/error/serviceerror"

// Client errors for onboarding operations.
var (
	// ErrorInvalidServiceType is returned when the requested service type is unknown.
	ErrorInvalidServiceType = serviceerror.ServiceError{
		Code:             "ONB-1001",
		Type:             serviceerror.ClientErrorType,
		Error:            "Invalid service type",
		ErrorDescription: "The provided service type is not supported",
	}
	// ErrorNoApplicableSteps is returned when no active steps exist for a service type.
	ErrorNoApplicableSteps = serviceerror.ServiceError{
		Code:             "ONB-1002",
		Type:             serviceerror.ClientErrorType,
		Error:            "No applicable steps",
		ErrorDescription: "No onboarding steps are configured for the requested service type",
	}
	// ErrorSessionNotFound is returned when no session exists for the given identifier.
	ErrorSessionNotFound = serviceerror.ServiceError{
		Code:             "ONB-1003",
		Type:             serviceerror.ClientErrorType,
		Error:            "Session not found",
		ErrorDescription: "No onboarding session exists for the provided session id",
	}
	// ErrorStepProgressNotFound is returned when no progress record exists for a session and step.
	ErrorStepProgressNotFound = serviceerror.ServiceError{
		Code:             "ONB-1004",
		Type:             serviceerror.ClientErrorType,
		Error:            "Step progress not found",
		ErrorDescription: "No progress record exists for the provided session and step",
	}
	// ErrorStepNotFound is returned when the step configuration cannot be found.
	ErrorStepNotFound = serviceerror.ServiceError{
		Code:             "ONB-1005",
		Type:             serviceerror.ClientErrorType,
		Error:            "Step not found",
		ErrorDescription: "No step configuration exists for the provided step id",
	}
	// ErrorInvalidRequestFormat is returned when the request body cannot be decoded.
	ErrorInvalidRequestFormat = serviceerror.ServiceError{
		Code:             "ONB-1006",
		Type:             serviceerror.ClientErrorType,
		Error:            "Invalid request format",
		ErrorDescription: "The request body is malformed",
	}
	// ErrorBackNavigationNotAllowed is returned when the previous step forbids back navigation.
	ErrorBackNavigationNotAllowed = serviceerror.ServiceError{
		Code:             "ONB-1007",
		Type:             serviceerror.ClientErrorType,
		Error:            "Back navigation not allowed",
		ErrorDescription: "The previous step does not allow navigating back",
	}
	// ErrorSkipConditionsNotMet is returned when a step's skip conditions evaluate false.
	ErrorSkipConditionsNotMet = serviceerror.ServiceError{
		Code:             "ONB-1008",
		Type:             serviceerror.ClientErrorType,
		Error:            "Skip conditions not met",
		ErrorDescription: "The step cannot be skipped for this session",
	}
	// ErrorInvalidSummaryWindow is returned when the analytics window is out of range.
	ErrorInvalidSummaryWindow = serviceerror.ServiceError{
		Code:             "ONB-1009",
		Type:             serviceerror.ClientErrorType,
		Error:            "Invalid summary window",
		ErrorDescription: "The summary window must be between 1 and 365 days",
	}
	// ErrorConcurrentUpdate is returned when another submission modified the session first.
	ErrorConcurrentUpdate = serviceerror.ServiceError{
		Code:             "ONB-1010",
		Type:             serviceerror.ClientErrorType,
		Error:            "Concurrent update",
		ErrorDescription: "The session was modified by another request, retry the operation",
	}
	// ErrorIllegalStepTransition is returned when a step cannot move to the requested status.
	ErrorIllegalStepTransition = serviceerror.ServiceError{
		Code:             "ONB-1011",
		Type:             serviceerror.ClientErrorType,
		Error:            "Illegal step transition",
		ErrorDescription: "The step is in a state that does not allow the requested operation",
	}
)

// Server errors for onboarding operations.
var (
	// ErrorInternalServerError is a generic server side failure.
	ErrorInternalServerError = serviceerror.ServiceError{
		Code:             "ONB-5001",
		Type:             serviceerror.ServerErrorType,
		Error:            "Internal server error",
		ErrorDescription: "An unexpected error occurred while processing the request",
	}
)
