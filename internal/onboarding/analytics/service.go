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

package analytics

import (
	"errors"
	"time"

	"github.com/pixelforge/beacon/internal/onboarding/constants"
	"github.com/pixelforge/beacon/internal/onboarding/model"
	dbmodel "github.com/pixelforge/beacon/internal/system/database/model"
)

// ErrInvalidSummaryWindow signals a summary window outside the accepted range.
var ErrInvalidSummaryWindow = errors.New("summary window must be between 1 and 365 days")

// ServiceInterface defines the session analytics contract.
type ServiceInterface interface {
	GetBySessionID(sessionID string) (*model.Analytics, error)
	CreateAnalytics(tx dbmodel.TxInterface, record *model.Analytics) error
	RecomputeFromProgress(tx dbmodel.TxInterface, record *model.Analytics,
		progressRecords []model.StepProgress, currentStepID string) error
	GetSummary(windowDays int) (*model.SummaryAnalytics, error)
}

// Service is the default implementation of ServiceInterface.
type Service struct {
	store StoreInterface
}

// NewService creates a new analytics service backed by the given store.
func NewService(store StoreInterface) ServiceInterface {
	return &Service{
		store: store,
	}
}

// GetBySessionID retrieves the analytics record of a session. Returns nil when absent.
func (s *Service) GetBySessionID(sessionID string) (*model.Analytics, error) {
	return s.store.GetBySessionID(sessionID)
}

// CreateAnalytics inserts the analytics record within the given transaction.
func (s *Service) CreateAnalytics(tx dbmodel.TxInterface, record *model.Analytics) error {
	return s.store.CreateAnalytics(tx, record)
}

// RecomputeFromProgress rederives every rollup field of the analytics record
// from the full set of progress records and persists the result within the
// given transaction. The rollup is recomputed from scratch so repeated calls
// over the same records are idempotent.
func (s *Service) RecomputeFromProgress(tx dbmodel.TxInterface, record *model.Analytics,
	progressRecords []model.StepProgress, currentStepID string) error {
	record.CompletedSteps = 0
	record.SkippedSteps = 0
	record.ErrorSteps = 0
	record.TotalTimeSpent = 0
	record.BackNavigationCount = 0
	record.ErrorCount = 0
	record.RetryCount = 0
	record.FastestStep = nil
	record.SlowestStep = nil
	record.AbandonedAt = nil

	var fastest, slowest *model.StepProgress
	for i := range progressRecords {
		p := &progressRecords[i]

		switch p.Status {
		case constants.StepStatusCompleted:
			record.CompletedSteps++
		case constants.StepStatusSkipped:
			record.SkippedSteps++
		case constants.StepStatusError:
			record.ErrorSteps++
			if record.AbandonedAt == nil {
				name := string(p.StepName)
				record.AbandonedAt = &name
			}
		}

		if p.TimeSpent != nil {
			record.TotalTimeSpent += *p.TimeSpent
			if p.Status == constants.StepStatusCompleted {
				if fastest == nil || *p.TimeSpent < *fastest.TimeSpent {
					fastest = p
				}
				if slowest == nil || *p.TimeSpent > *slowest.TimeSpent {
					slowest = p
				}
			}
		}

		record.BackNavigationCount += len(p.NavigationHistory)
		if p.AttemptCount > 1 {
			record.ErrorCount += p.AttemptCount - 1
			record.RetryCount++
		}
	}

	if fastest != nil {
		name := string(fastest.StepName)
		record.FastestStep = &name
	}
	if slowest != nil {
		name := string(slowest.StepName)
		record.SlowestStep = &name
	}

	divisor := record.CompletedSteps
	if divisor < 1 {
		divisor = 1
	}
	record.AverageStepTime = record.TotalTimeSpent / int64(divisor)

	if record.TotalSteps > 0 {
		record.CompletionRate = record.CompletedSteps * 100 / record.TotalSteps
	} else {
		record.CompletionRate = 0
	}

	switch {
	case record.CompletionRate >= 100:
		record.ConversionStatus = constants.ConversionStatusCompleted
		record.AbandonedAt = nil
	case record.ErrorSteps > 0:
		record.ConversionStatus = constants.ConversionStatusAbandoned
	default:
		record.ConversionStatus = constants.ConversionStatusInProgress
		record.AbandonedAt = nil
	}

	record.CurrentStepID = currentStepID

	return s.store.UpdateAnalytics(tx, record)
}

// GetSummary aggregates session outcomes over the trailing window of the
// given number of days.
func (s *Service) GetSummary(windowDays int) (*model.SummaryAnalytics, error) {
	if windowDays < 1 || windowDays > constants.MaxSummaryWindowDays {
		return nil, ErrInvalidSummaryWindow
	}

	since := time.Now().UTC().AddDate(0, 0, -windowDays)
	row, err := s.store.GetSummary(since)
	if err != nil {
		return nil, err
	}

	total := row.TotalSessions
	if total < 1 {
		total = 1
	}

	return &model.SummaryAnalytics{
		WindowDays:        windowDays,
		TotalSessions:     row.TotalSessions,
		CompletedSessions: row.CompletedSessions,
		AbandonedSessions: row.AbandonedSessions,
		AvgCompletionRate: row.AvgCompletionRate,
		AvgTotalTime:      row.AvgTotalTime,
		ConversionRate:    float64(row.CompletedSessions) / float64(total) * 100,
	}, nil
}
