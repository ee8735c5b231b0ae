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

// Package model defines the data structures for the onboarding flow engine.
package model

import (
	"time"

	"github.com/pixelforge/beacon/internal/onboarding/constants"
)

// Step is a configured unit of work in the onboarding flow. Step configuration
// is authored externally and read-only to the engine.
type Step struct {
	ID                 string                 `json:"id"`
	StepNumber         int                    `json:"step_number"`
	StepName           constants.StepName     `json:"step_name"`
	Title              string                 `json:"title,omitempty"`
	Description        string                 `json:"description,omitempty"`
	RequiredFields     []string               `json:"required_fields,omitempty"`
	OptionalFields     []string               `json:"optional_fields,omitempty"`
	ValidationSchema   map[string]interface{} `json:"validation_schema,omitempty"`
	ServiceTypes       []string               `json:"service_types,omitempty"`
	SkipConditions     map[string]interface{} `json:"skip_conditions,omitempty"`
	NextStepConditions map[string]interface{} `json:"next_step_conditions,omitempty"`
	IsConditional      bool                   `json:"is_conditional"`
	BackAllowed        bool                   `json:"back_allowed"`
	DisplayOrder       int                    `json:"display_order"`
	ProgressWeight     int                    `json:"progress_weight"`
	EstimatedTime      int                    `json:"estimated_time"`
	IsActive           bool                   `json:"is_active"`
	IsRequired         bool                   `json:"is_required"`
}

// AppliesTo reports whether the step applies to the given service type.
// An empty service type list means the step applies to all service types.
func (s *Step) AppliesTo(serviceType constants.ServiceType) bool {
	if len(s.ServiceTypes) == 0 {
		return true
	}
	for _, st := range s.ServiceTypes {
		if st == string(serviceType) {
			return true
		}
	}
	return false
}

// ValidationError describes a single field level validation problem.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NavigationEvent is an append-only record of a navigation action on a step.
type NavigationEvent struct {
	Action     constants.NavigationAction `json:"action"`
	FromStepID string                     `json:"from_step_id,omitempty"`
	ToStepID   string                     `json:"to_step_id,omitempty"`
	OccurredAt time.Time                  `json:"occurred_at"`
}

// StepProgress tracks one step's lifecycle within one session. Exactly one
// record exists per (session, step) pair, created at flow start and never deleted.
type StepProgress struct {
	ID                string                 `json:"id"`
	SessionID         string                 `json:"session_id"`
	StepID            string                 `json:"step_id"`
	StepNumber        int                    `json:"step_number"`
	StepName          constants.StepName     `json:"step_name"`
	Status            constants.StepStatus   `json:"status"`
	StepData          map[string]interface{} `json:"step_data,omitempty"`
	ValidationErrors  []ValidationError      `json:"validation_errors,omitempty"`
	UserInput         map[string]interface{} `json:"user_input,omitempty"`
	StartedAt         *time.Time             `json:"started_at,omitempty"`
	CompletedAt       *time.Time             `json:"completed_at,omitempty"`
	ExitedAt          *time.Time             `json:"exited_at,omitempty"`
	TimeSpent         *int64                 `json:"time_spent,omitempty"`
	AttemptCount      int                    `json:"attempt_count"`
	PreviousStepID    string                 `json:"previous_step_id,omitempty"`
	NextStepID        string                 `json:"next_step_id,omitempty"`
	NavigationHistory []NavigationEvent      `json:"navigation_history,omitempty"`
	UserAgent         string                 `json:"user_agent,omitempty"`
	DeviceType        string                 `json:"device_type,omitempty"`
	Version           int64                  `json:"-"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
}

// Analytics is the continuously recomputed session level rollup over a
// session's progress records. One record exists per session.
type Analytics struct {
	ID                  string                     `json:"id"`
	SessionID           string                     `json:"session_id"`
	ServiceType         constants.ServiceType      `json:"service_type"`
	TotalSteps          int                        `json:"total_steps"`
	CompletedSteps      int                        `json:"completed_steps"`
	SkippedSteps        int                        `json:"skipped_steps"`
	ErrorSteps          int                        `json:"error_steps"`
	TotalTimeSpent      int64                      `json:"total_time_spent"`
	AverageStepTime     int64                      `json:"average_step_time"`
	FastestStep         *string                    `json:"fastest_step,omitempty"`
	SlowestStep         *string                    `json:"slowest_step,omitempty"`
	CompletionRate      int                        `json:"completion_rate"`
	ConversionStatus    constants.ConversionStatus `json:"conversion_status"`
	AbandonedAt         *string                    `json:"abandoned_at,omitempty"`
	BackNavigationCount int                        `json:"back_navigation_count"`
	ErrorCount          int                        `json:"error_count"`
	RetryCount          int                        `json:"retry_count"`
	PerformanceScore    *int                       `json:"performance_score,omitempty"`
	UserExperienceScore *int                       `json:"user_experience_score,omitempty"`
	TechnicalIssues     []string                   `json:"technical_issues,omitempty"`
	CurrentStepID       string                     `json:"current_step_id,omitempty"`
	DeviceType          string                     `json:"device_type,omitempty"`
	UserAgent           string                     `json:"user_agent,omitempty"`
	ReferrerURL         string                     `json:"referrer_url,omitempty"`
	Version             int64                      `json:"-"`
	CreatedAt           time.Time                  `json:"created_at"`
	UpdatedAt           time.Time                  `json:"updated_at"`
}

// ClientContext carries the client metadata captured when a flow starts.
type ClientContext struct {
	DeviceType  string `json:"device_type,omitempty"`
	UserAgent   string `json:"user_agent,omitempty"`
	ReferrerURL string `json:"referrer_url,omitempty"`
}

// FlowConfig summarizes the shape of a newly started flow.
type FlowConfig struct {
	TotalSteps         int  `json:"total_steps"`
	CurrentStep        int  `json:"current_step"`
	ProgressPercentage int  `json:"progress_percentage"`
	CanGoBack          bool `json:"can_go_back"`
	CanSkip            bool `json:"can_skip"`
}

// StartFlowResult is the outcome of starting a new onboarding flow.
type StartFlowResult struct {
	SessionID   string     `json:"session_id"`
	FlowConfig  FlowConfig `json:"flow_config"`
	FirstStep   *Step      `json:"first_step"`
	AnalyticsID string     `json:"analytics_id"`
}

// ValidationResult is the outcome of validating a step payload.
type ValidationResult struct {
	IsValid bool              `json:"is_valid"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

// SubmitResult is the outcome of a step submission.
type SubmitResult struct {
	ValidationResult   ValidationResult `json:"validation_result"`
	NextStep           *Step            `json:"next_step,omitempty"`
	ProgressPercentage int              `json:"progress_percentage"`
	CanProceed         bool             `json:"can_proceed"`
}

// FlowState is the read model of a session's current position and history.
type FlowState struct {
	SessionID          string                     `json:"session_id"`
	CurrentStep        *StepProgress              `json:"current_step,omitempty"`
	StepHistory        []string                   `json:"step_history"`
	FormData           map[string]interface{}     `json:"form_data"`
	ProgressPercentage int                        `json:"progress_percentage"`
	ConversionStatus   constants.ConversionStatus `json:"conversion_status"`
	IsComplete         bool                       `json:"is_complete"`
}

// SummaryAnalytics is a cross-session rollup over a trailing time window.
type SummaryAnalytics struct {
	WindowDays        int     `json:"window_days"`
	TotalSessions     int     `json:"total_sessions"`
	CompletedSessions int     `json:"completed_sessions"`
	AbandonedSessions int     `json:"abandoned_sessions"`
	AvgCompletionRate float64 `json:"avg_completion_rate"`
	AvgTotalTime      float64 `json:"avg_total_time"`
	ConversionRate    float64 `json:"conversion_rate"`
}
