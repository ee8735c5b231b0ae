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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/pixelforge/beacon/internal/onboarding/constants"
	"github.com/pixelforge/beacon/internal/onboarding/model"
	dbmodel "github.com/pixelforge/beacon/internal/system/database/model"
)

// recordingStore captures writes without touching a database.
type recordingStore struct {
	updated      []*model.Analytics
	updateErr    error
	summaryRow   *SummaryRow
	summarySince time.Time
}

func (s *recordingStore) GetBySessionID(string) (*model.Analytics, error) {
	return nil, nil
}

func (s *recordingStore) CreateAnalytics(_ dbmodel.TxInterface, record *model.Analytics) error {
	return nil
}

func (s *recordingStore) UpdateAnalytics(_ dbmodel.TxInterface, record *model.Analytics) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updated = append(s.updated, record)
	return nil
}

func (s *recordingStore) GetSummary(since time.Time) (*SummaryRow, error) {
	s.summarySince = since
	if s.summaryRow != nil {
		return s.summaryRow, nil
	}
	return &SummaryRow{}, nil
}

type AnalyticsServiceTestSuite struct {
	suite.Suite
	store   *recordingStore
	service ServiceInterface
}

func TestAnalyticsServiceSuite(t *testing.T) {
	suite.Run(t, new(AnalyticsServiceTestSuite))
}

func (suite *AnalyticsServiceTestSuite) SetupTest() {
	suite.store = &recordingStore{}
	suite.service = NewService(suite.store)
}

func spent(seconds int64) *int64 {
	return &seconds
}

func progressRecord(name constants.StepName, status constants.StepStatus,
	timeSpent *int64, attempts int) model.StepProgress {
	return model.StepProgress{
		StepName:     name,
		Status:       status,
		TimeSpent:    timeSpent,
		AttemptCount: attempts,
	}
}

func (suite *AnalyticsServiceTestSuite) TestRecomputeCounts() {
	record := &model.Analytics{TotalSteps: 5}
	records := []model.StepProgress{
		progressRecord(constants.StepNameServiceSelection, constants.StepStatusCompleted, spent(30), 1),
		progressRecord(constants.StepNameBasicInfo, constants.StepStatusCompleted, spent(90), 1),
		progressRecord(constants.StepNameServiceRequirements, constants.StepStatusSkipped, nil, 1),
		progressRecord(constants.StepNameReview, constants.StepStatusInProgress, nil, 1),
		progressRecord(constants.StepNameConfirmation, constants.StepStatusPending, nil, 1),
	}

	err := suite.service.RecomputeFromProgress(nil, record, records, "step-4")
	assert.NoError(suite.T(), err)

	assert.Equal(suite.T(), 2, record.CompletedSteps)
	assert.Equal(suite.T(), 1, record.SkippedSteps)
	assert.Equal(suite.T(), 0, record.ErrorSteps)
	assert.Equal(suite.T(), int64(120), record.TotalTimeSpent)
	assert.Equal(suite.T(), int64(60), record.AverageStepTime)
	assert.Equal(suite.T(), 40, record.CompletionRate)
	assert.Equal(suite.T(), constants.ConversionStatusInProgress, record.ConversionStatus)
	assert.Equal(suite.T(), "step-4", record.CurrentStepID)
	assert.Len(suite.T(), suite.store.updated, 1)
}

func (suite *AnalyticsServiceTestSuite) TestRecomputeFastestAndSlowest() {
	record := &model.Analytics{TotalSteps: 5}
	records := []model.StepProgress{
		progressRecord(constants.StepNameServiceSelection, constants.StepStatusCompleted, spent(15), 1),
		progressRecord(constants.StepNameBasicInfo, constants.StepStatusCompleted, spent(240), 1),
		progressRecord(constants.StepNameServiceRequirements, constants.StepStatusCompleted, spent(60), 1),
		// Time spent on a non-completed step never wins fastest or slowest.
		progressRecord(constants.StepNameReview, constants.StepStatusError, spent(1), 2),
	}

	err := suite.service.RecomputeFromProgress(nil, record, records, "step-4")
	assert.NoError(suite.T(), err)

	assert.Equal(suite.T(), string(constants.StepNameServiceSelection), *record.FastestStep)
	assert.Equal(suite.T(), string(constants.StepNameBasicInfo), *record.SlowestStep)
	assert.Equal(suite.T(), int64(316), record.TotalTimeSpent)
}

func (suite *AnalyticsServiceTestSuite) TestRecomputeCompletedSession() {
	record := &model.Analytics{TotalSteps: 2}
	records := []model.StepProgress{
		progressRecord(constants.StepNameServiceSelection, constants.StepStatusCompleted, spent(20), 1),
		progressRecord(constants.StepNameConfirmation, constants.StepStatusCompleted, spent(10), 1),
	}

	err := suite.service.RecomputeFromProgress(nil, record, records, "")
	assert.NoError(suite.T(), err)

	assert.Equal(suite.T(), 100, record.CompletionRate)
	assert.Equal(suite.T(), constants.ConversionStatusCompleted, record.ConversionStatus)
	assert.Nil(suite.T(), record.AbandonedAt)
}

func (suite *AnalyticsServiceTestSuite) TestRecomputeAbandonedOnError() {
	record := &model.Analytics{TotalSteps: 3}
	records := []model.StepProgress{
		progressRecord(constants.StepNameServiceSelection, constants.StepStatusCompleted, spent(20), 1),
		progressRecord(constants.StepNameBasicInfo, constants.StepStatusError, nil, 3),
		progressRecord(constants.StepNameServiceRequirements, constants.StepStatusPending, nil, 1),
	}

	err := suite.service.RecomputeFromProgress(nil, record, records, "step-2")
	assert.NoError(suite.T(), err)

	assert.Equal(suite.T(), constants.ConversionStatusAbandoned, record.ConversionStatus)
	assert.Equal(suite.T(), string(constants.StepNameBasicInfo), *record.AbandonedAt)
	assert.Equal(suite.T(), 2, record.ErrorCount)
	assert.Equal(suite.T(), 1, record.RetryCount)
}

func (suite *AnalyticsServiceTestSuite) TestRecomputeBackNavigationCount() {
	record := &model.Analytics{TotalSteps: 2}
	event := model.NavigationEvent{Action: constants.NavigationActionBack}
	records := []model.StepProgress{
		{
			StepName:          constants.StepNameServiceSelection,
			Status:            constants.StepStatusInProgress,
			AttemptCount:      1,
			NavigationHistory: []model.NavigationEvent{event, event},
		},
		{
			StepName:          constants.StepNameBasicInfo,
			Status:            constants.StepStatusPending,
			AttemptCount:      1,
			NavigationHistory: []model.NavigationEvent{event},
		},
	}

	err := suite.service.RecomputeFromProgress(nil, record, records, "step-1")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 3, record.BackNavigationCount)
}

func (suite *AnalyticsServiceTestSuite) TestRecomputeIsIdempotent() {
	record := &model.Analytics{TotalSteps: 2}
	records := []model.StepProgress{
		progressRecord(constants.StepNameServiceSelection, constants.StepStatusCompleted, spent(20), 2),
		progressRecord(constants.StepNameBasicInfo, constants.StepStatusPending, nil, 1),
	}

	for i := 0; i < 3; i++ {
		err := suite.service.RecomputeFromProgress(nil, record, records, "step-2")
		assert.NoError(suite.T(), err)
	}

	assert.Equal(suite.T(), 1, record.CompletedSteps)
	assert.Equal(suite.T(), int64(20), record.TotalTimeSpent)
	assert.Equal(suite.T(), 1, record.ErrorCount)
	assert.Equal(suite.T(), 50, record.CompletionRate)
}

func (suite *AnalyticsServiceTestSuite) TestRecomputeEmptyProgress() {
	record := &model.Analytics{TotalSteps: 0}

	err := suite.service.RecomputeFromProgress(nil, record, nil, "")
	assert.NoError(suite.T(), err)

	assert.Equal(suite.T(), 0, record.CompletionRate)
	assert.Equal(suite.T(), int64(0), record.AverageStepTime)
	assert.Equal(suite.T(), constants.ConversionStatusInProgress, record.ConversionStatus)
}

func (suite *AnalyticsServiceTestSuite) TestRecomputePropagatesConcurrentUpdate() {
	suite.store.updateErr = model.ErrConcurrentUpdate
	record := &model.Analytics{TotalSteps: 1}

	err := suite.service.RecomputeFromProgress(nil, record, nil, "")
	assert.ErrorIs(suite.T(), err, model.ErrConcurrentUpdate)
}

func (suite *AnalyticsServiceTestSuite) TestGetSummary() {
	suite.store.summaryRow = &SummaryRow{
		TotalSessions:     10,
		CompletedSessions: 4,
		AbandonedSessions: 2,
		AvgCompletionRate: 62.5,
		AvgTotalTime:      184.2,
	}

	summary, err := suite.service.GetSummary(7)
	assert.NoError(suite.T(), err)

	assert.Equal(suite.T(), 7, summary.WindowDays)
	assert.Equal(suite.T(), 10, summary.TotalSessions)
	assert.Equal(suite.T(), 4, summary.CompletedSessions)
	assert.Equal(suite.T(), 2, summary.AbandonedSessions)
	assert.InDelta(suite.T(), 40.0, summary.ConversionRate, 0.001)

	expectedSince := time.Now().UTC().AddDate(0, 0, -7)
	assert.WithinDuration(suite.T(), expectedSince, suite.store.summarySince, time.Minute)
}

func (suite *AnalyticsServiceTestSuite) TestGetSummaryNoSessions() {
	summary, err := suite.service.GetSummary(30)
	assert.NoError(suite.T(), err)

	assert.Equal(suite.T(), 0, summary.TotalSessions)
	assert.Equal(suite.T(), float64(0), summary.ConversionRate)
}

func (suite *AnalyticsServiceTestSuite) TestGetSummaryInvalidWindow() {
	for _, days := range []int{0, -5, 366} {
		summary, err := suite.service.GetSummary(days)
		assert.Nil(suite.T(), summary)
		assert.ErrorIs(suite.T(), err, ErrInvalidSummaryWindow)
	}
}
