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

// Package constants defines constants and enumerations for the onboarding flow engine.
package constants

// ServiceType is the category of offering a user is onboarding for.
type ServiceType string

const (
	// ServiceTypeLandingPage represents a landing page offering.
	ServiceTypeLandingPage ServiceType = "landing_page"
	// ServiceTypeWebApp represents a web application offering.
	ServiceTypeWebApp ServiceType = "web_app"
	// ServiceTypeMobileApp represents a mobile application offering.
	ServiceTypeMobileApp ServiceType = "mobile_app"
)

// IsValidServiceType reports whether the given value is a known service type.
func IsValidServiceType(value string) bool {
	switch ServiceType(value) {
	case ServiceTypeLandingPage, ServiceTypeWebApp, ServiceTypeMobileApp:
		return true
	default:
		return false
	}
}

// StepName identifies a configured step of the onboarding flow.
type StepName string

const (
	// StepNameServiceSelection is the service selection step.
	StepNameServiceSelection StepName = "service_selection"
	// StepNameBasicInfo is the basic information step.
	StepNameBasicInfo StepName = "basic_info"
	// StepNameServiceRequirements is the service requirements step.
	StepNameServiceRequirements StepName = "service_requirements"
	// StepNameReview is the review step.
	StepNameReview StepName = "review"
	// StepNameConfirmation is the confirmation step.
	StepNameConfirmation StepName = "confirmation"
)

// StepStatus is the lifecycle state of a step within a session.
type StepStatus string

const (
	// StepStatusPending indicates the step has not been reached yet.
	StepStatusPending StepStatus = "pending"
	// StepStatusInProgress indicates the step is the active step of the session.
	StepStatusInProgress StepStatus = "in_progress"
	// StepStatusCompleted indicates the step was submitted successfully.
	StepStatusCompleted StepStatus = "completed"
	// StepStatusSkipped indicates the step was skipped.
	StepStatusSkipped StepStatus = "skipped"
	// StepStatusError indicates the last submission of the step failed.
	// The step stays addressable for retry.
	StepStatusError StepStatus = "error"
)

// ConversionStatus is the session level outcome derived from step progress.
type ConversionStatus string

const (
	// ConversionStatusInProgress indicates the session is still active.
	ConversionStatusInProgress ConversionStatus = "in_progress"
	// ConversionStatusCompleted indicates all steps completed.
	ConversionStatusCompleted ConversionStatus = "completed"
	// ConversionStatusAbandoned indicates the session stalled on an error.
	ConversionStatusAbandoned ConversionStatus = "abandoned"
)

// DeviceType is the client device category captured at flow start.
type DeviceType string

const (
	// DeviceTypeDesktop represents a desktop client.
	DeviceTypeDesktop DeviceType = "desktop"
	// DeviceTypeTablet represents a tablet client.
	DeviceTypeTablet DeviceType = "tablet"
	// DeviceTypeMobile represents a mobile client.
	DeviceTypeMobile DeviceType = "mobile"
)

// NavigationAction identifies an entry in a step's navigation history.
type NavigationAction string

const (
	// NavigationActionBack records a backwards navigation into the step.
	NavigationActionBack NavigationAction = "back"
	// NavigationActionSkip records the step being skipped.
	NavigationActionSkip NavigationAction = "skip"
)

// StepCatalogCacheName is the cache name for applicable step lists.
const StepCatalogCacheName = "onboardingStepCatalog"

// DefaultSummaryWindowDays is the analytics summary window when not configured.
const DefaultSummaryWindowDays = 30

// MaxSummaryWindowDays is the maximum accepted analytics summary window.
const MaxSummaryWindowDays = 365
