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

package progress

import (
	"fmt"
	"time"

	"github.com/pixelforge/beacon/internal/onboarding/constants"
	"github.com/pixelforge/beacon/internal/onboarding/model"
	dbmodel "github.com/pixelforge/beacon/internal/system/database/model"
)

// StatusUpdate carries the optional fields applied together with a status transition.
type StatusUpdate struct {
	StepData         map[string]interface{}
	UserInput        map[string]interface{}
	ValidationErrors []model.ValidationError
	TimeSpent        *int64
	PreviousStepID   *string
	NextStepID       *string
	NavigationEvent  *model.NavigationEvent
	IncrementAttempt bool
}

// ServiceInterface defines the progress tracker contract.
type ServiceInterface interface {
	GetSessionProgress(sessionID string) ([]model.StepProgress, error)
	GetStepProgress(sessionID, stepID string) (*model.StepProgress, error)
	CreateStepProgress(tx dbmodel.TxInterface, record *model.StepProgress) error
	UpdateStepStatus(tx dbmodel.TxInterface, record *model.StepProgress,
		newStatus constants.StepStatus, update StatusUpdate) error
	CalculateTimeSpent(record *model.StepProgress) int64
	BeginTx() (dbmodel.TxInterface, error)
}

// Service is the default implementation of ServiceInterface.
type Service struct {
	store StoreInterface
}

// NewService creates a new progress tracker backed by the given store.
func NewService(store StoreInterface) ServiceInterface {
	return &Service{
		store: store,
	}
}

// legalTransitions is the central transition table of the step state machine.
// A status maps to the set of statuses it may move to. Re-entering the same
// status is legal only where listed, e.g. a failed validation keeps a step
// in_progress while bumping its attempt count.
var legalTransitions = map[constants.StepStatus][]constants.StepStatus{
	constants.StepStatusPending: {
		constants.StepStatusInProgress,
		constants.StepStatusSkipped,
	},
	constants.StepStatusInProgress: {
		constants.StepStatusInProgress,
		constants.StepStatusCompleted,
		constants.StepStatusSkipped,
		constants.StepStatusError,
	},
	// error is non-terminal: the row stays addressable for retry.
	constants.StepStatusError: {
		constants.StepStatusInProgress,
		constants.StepStatusCompleted,
		constants.StepStatusError,
	},
	// completed reopens only through back navigation.
	constants.StepStatusCompleted: {
		constants.StepStatusInProgress,
	},
	constants.StepStatusSkipped: {},
}

// IsLegalTransition reports whether the state machine permits moving from one
// status to another.
func IsLegalTransition(from, to constants.StepStatus) bool {
	for _, allowed := range legalTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// GetSessionProgress retrieves all progress records of a session ordered by
// step number. An unknown session yields an empty slice.
func (s *Service) GetSessionProgress(sessionID string) ([]model.StepProgress, error) {
	return s.store.GetSessionProgress(sessionID)
}

// GetStepProgress retrieves the progress record of one step within a session.
func (s *Service) GetStepProgress(sessionID, stepID string) (*model.StepProgress, error) {
	return s.store.GetStepProgress(sessionID, stepID)
}

// CreateStepProgress inserts a progress record within the given transaction.
func (s *Service) CreateStepProgress(tx dbmodel.TxInterface, record *model.StepProgress) error {
	return s.store.CreateStepProgress(tx, record)
}

// BeginTx starts a transaction against the runtime database.
func (s *Service) BeginTx() (dbmodel.TxInterface, error) {
	return s.store.BeginTx()
}

// UpdateStepStatus applies a status transition plus the given update fields to
// the record and persists it within the transaction. Phase timestamps are set
// exactly once, on the first entry into the corresponding phase; duplicate
// transitions never overwrite them.
func (s *Service) UpdateStepStatus(tx dbmodel.TxInterface, record *model.StepProgress,
	newStatus constants.StepStatus, update StatusUpdate) error {
	if !IsLegalTransition(record.Status, newStatus) {
		return fmt.Errorf("%w: from %s to %s for step %s",
			model.ErrIllegalTransition, record.Status, newStatus, record.StepID)
	}

	now := time.Now().UTC()

	switch newStatus {
	case constants.StepStatusInProgress:
		if record.StartedAt == nil {
			record.StartedAt = &now
		}
	case constants.StepStatusCompleted:
		if record.CompletedAt == nil {
			record.CompletedAt = &now
		}
	case constants.StepStatusSkipped, constants.StepStatusError:
		if record.ExitedAt == nil {
			record.ExitedAt = &now
		}
	}

	record.Status = newStatus

	if update.StepData != nil {
		record.StepData = update.StepData
	}
	if update.UserInput != nil {
		record.UserInput = update.UserInput
	}
	// Validation errors are replaced, not appended: they describe the latest attempt.
	record.ValidationErrors = update.ValidationErrors
	if update.TimeSpent != nil {
		record.TimeSpent = update.TimeSpent
	}
	if update.PreviousStepID != nil {
		record.PreviousStepID = *update.PreviousStepID
	}
	if update.NextStepID != nil {
		record.NextStepID = *update.NextStepID
	}
	if update.NavigationEvent != nil {
		record.NavigationHistory = append(record.NavigationHistory, *update.NavigationEvent)
	}
	if update.IncrementAttempt {
		record.AttemptCount++
	}

	return s.store.UpdateStepProgress(tx, record)
}

// CalculateTimeSpent returns the whole seconds a step has been worked on:
// 0 without a start timestamp, otherwise the span from started_at to
// completed_at, exited_at or now, in that order of preference.
func (s *Service) CalculateTimeSpent(record *model.StepProgress) int64 {
	if record.StartedAt == nil {
		return 0
	}

	end := time.Now().UTC()
	if record.CompletedAt != nil {
		end = *record.CompletedAt
	} else if record.ExitedAt != nil {
		end = *record.ExitedAt
	}

	seconds := int64(end.Sub(*record.StartedAt) / time.Second)
	if seconds < 0 {
		return 0
	}
	return seconds
}
