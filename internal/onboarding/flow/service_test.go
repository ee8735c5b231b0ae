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

package flow

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/pixelforge/beacon/internal/onboarding/analytics"
	"github.com/pixelforge/beacon/internal/onboarding/constants"
	"github.com/pixelforge/beacon/internal/onboarding/model"
	"github.com/pixelforge/beacon/internal/onboarding/progress"
	dbmodel "github.com/pixelforge/beacon/internal/system/database/model"
)

type fakeTx struct {
	commits   int
	rollbacks int
}

func (t *fakeTx) Commit() error   { t.commits++; return nil }
func (t *fakeTx) Rollback() error { t.rollbacks++; return nil }
func (t *fakeTx) Exec(dbmodel.DBQuery, ...interface{}) (int64, error) {
	return 1, nil
}
func (t *fakeTx) Query(dbmodel.DBQuery, ...interface{}) ([]map[string]interface{}, error) {
	return nil, nil
}

// fakeCatalog serves step configuration from a fixed slice.
type fakeCatalog struct {
	steps []model.Step
}

func (c *fakeCatalog) GetApplicableSteps(serviceType constants.ServiceType) ([]model.Step, error) {
	applicable := make([]model.Step, 0, len(c.steps))
	for _, step := range c.steps {
		if step.AppliesTo(serviceType) {
			applicable = append(applicable, step)
		}
	}
	return applicable, nil
}

func (c *fakeCatalog) GetStepByID(stepID string) (*model.Step, error) {
	for i := range c.steps {
		if c.steps[i].ID == stepID {
			step := c.steps[i]
			return &step, nil
		}
	}
	return nil, nil
}

func (c *fakeCatalog) GetNextStep(currentStepID string,
	serviceType constants.ServiceType) (*model.Step, error) {
	current, _ := c.GetStepByID(currentStepID)
	if current == nil {
		return nil, nil
	}
	applicable, _ := c.GetApplicableSteps(serviceType)
	for i := range applicable {
		if applicable[i].StepNumber > current.StepNumber {
			return &applicable[i], nil
		}
	}
	return nil, nil
}

func (c *fakeCatalog) GetPreviousStep(currentStepID string,
	serviceType constants.ServiceType) (*model.Step, error) {
	current, _ := c.GetStepByID(currentStepID)
	if current == nil {
		return nil, nil
	}
	applicable, _ := c.GetApplicableSteps(serviceType)
	for i := len(applicable) - 1; i >= 0; i-- {
		if applicable[i].StepNumber < current.StepNumber {
			return &applicable[i], nil
		}
	}
	return nil, nil
}

// memProgressStore keeps progress records in memory with a working version guard.
type memProgressStore struct {
	records   map[string]model.StepProgress
	tx        *fakeTx
	updateErr error
}

func newMemProgressStore(tx *fakeTx) *memProgressStore {
	return &memProgressStore{records: make(map[string]model.StepProgress), tx: tx}
}

func (s *memProgressStore) GetSessionProgress(sessionID string) ([]model.StepProgress, error) {
	out := make([]model.StepProgress, 0)
	for _, r := range s.records {
		if r.SessionID == sessionID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StepNumber < out[j].StepNumber })
	return out, nil
}

func (s *memProgressStore) GetStepProgress(sessionID, stepID string) (*model.StepProgress, error) {
	for _, r := range s.records {
		if r.SessionID == sessionID && r.StepID == stepID {
			record := r
			return &record, nil
		}
	}
	return nil, nil
}

func (s *memProgressStore) CreateStepProgress(_ dbmodel.TxInterface, record *model.StepProgress) error {
	record.CreatedAt = time.Now().UTC()
	record.UpdatedAt = record.CreatedAt
	if record.Version == 0 {
		record.Version = 1
	}
	s.records[record.ID] = *record
	return nil
}

func (s *memProgressStore) UpdateStepProgress(_ dbmodel.TxInterface, record *model.StepProgress) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	stored, ok := s.records[record.ID]
	if !ok || stored.Version != record.Version {
		return model.ErrConcurrentUpdate
	}
	record.Version++
	record.UpdatedAt = time.Now().UTC()
	s.records[record.ID] = *record
	return nil
}

func (s *memProgressStore) BeginTx() (dbmodel.TxInterface, error) {
	return s.tx, nil
}

// memAnalyticsStore keeps analytics records in memory.
type memAnalyticsStore struct {
	records map[string]model.Analytics
}

func newMemAnalyticsStore() *memAnalyticsStore {
	return &memAnalyticsStore{records: make(map[string]model.Analytics)}
}

func (s *memAnalyticsStore) GetBySessionID(sessionID string) (*model.Analytics, error) {
	for _, r := range s.records {
		if r.SessionID == sessionID {
			record := r
			return &record, nil
		}
	}
	return nil, nil
}

func (s *memAnalyticsStore) CreateAnalytics(_ dbmodel.TxInterface, record *model.Analytics) error {
	record.CreatedAt = time.Now().UTC()
	record.UpdatedAt = record.CreatedAt
	if record.Version == 0 {
		record.Version = 1
	}
	s.records[record.ID] = *record
	return nil
}

func (s *memAnalyticsStore) UpdateAnalytics(_ dbmodel.TxInterface, record *model.Analytics) error {
	stored, ok := s.records[record.ID]
	if !ok || stored.Version != record.Version {
		return model.ErrConcurrentUpdate
	}
	record.Version++
	record.UpdatedAt = time.Now().UTC()
	s.records[record.ID] = *record
	return nil
}

func (s *memAnalyticsStore) GetSummary(time.Time) (*analytics.SummaryRow, error) {
	return &analytics.SummaryRow{}, nil
}

type FlowServiceTestSuite struct {
	suite.Suite
	tx             *fakeTx
	progressStore  *memProgressStore
	analyticsStore *memAnalyticsStore
	catalog        *fakeCatalog
	service        ServiceInterface
}

func TestFlowServiceSuite(t *testing.T) {
	suite.Run(t, new(FlowServiceTestSuite))
}

func (suite *FlowServiceTestSuite) SetupTest() {
	suite.tx = &fakeTx{}
	suite.progressStore = newMemProgressStore(suite.tx)
	suite.analyticsStore = newMemAnalyticsStore()
	suite.catalog = &fakeCatalog{steps: []model.Step{
		{
			ID:             "step-1",
			StepNumber:     1,
			StepName:       constants.StepNameServiceSelection,
			RequiredFields: []string{"service_type"},
			BackAllowed:    false,
			IsActive:       true,
			IsRequired:     true,
		},
		{
			ID:             "step-2",
			StepNumber:     2,
			StepName:       constants.StepNameBasicInfo,
			RequiredFields: []string{"name", "email"},
			ValidationSchema: map[string]interface{}{
				"name":  "required,min=2,max=200",
				"email": "required,email",
			},
			BackAllowed: true,
			IsActive:    true,
			IsRequired:  true,
		},
		{
			ID:         "step-3",
			StepNumber: 3,
			StepName:   constants.StepNameReview,
			SkipConditions: map[string]interface{}{
				"field": "express_checkout", "op": "eq", "value": true,
			},
			IsConditional: true,
			BackAllowed:   true,
			IsActive:      true,
			IsRequired:    false,
		},
		{
			ID:          "step-4",
			StepNumber:  4,
			StepName:    constants.StepNameConfirmation,
			BackAllowed: false,
			IsActive:    true,
			IsRequired:  true,
		},
	}}

	suite.service = NewService(
		suite.catalog,
		progress.NewService(suite.progressStore),
		analytics.NewService(suite.analyticsStore),
	)
}

func (suite *FlowServiceTestSuite) startFlow() *model.StartFlowResult {
	result, svcErr := suite.service.StartFlow(string(constants.ServiceTypeWebApp), model.ClientContext{
		DeviceType: string(constants.DeviceTypeDesktop),
		UserAgent:  "test-agent",
	})
	suite.Require().Nil(svcErr)
	suite.Require().NotNil(result)
	return result
}

func (suite *FlowServiceTestSuite) TestStartFlow() {
	result := suite.startFlow()

	assert.NotEmpty(suite.T(), result.SessionID)
	assert.Equal(suite.T(), 4, result.FlowConfig.TotalSteps)
	assert.Equal(suite.T(), 1, result.FlowConfig.CurrentStep)
	assert.Equal(suite.T(), 0, result.FlowConfig.ProgressPercentage)
	assert.False(suite.T(), result.FlowConfig.CanGoBack)
	assert.Equal(suite.T(), "step-1", result.FirstStep.ID)

	records, err := suite.progressStore.GetSessionProgress(result.SessionID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), records, 4)
	assert.Equal(suite.T(), constants.StepStatusInProgress, records[0].Status)
	assert.NotNil(suite.T(), records[0].StartedAt)
	for _, record := range records[1:] {
		assert.Equal(suite.T(), constants.StepStatusPending, record.Status)
		assert.Nil(suite.T(), record.StartedAt)
	}

	analyticsRecord, err := suite.analyticsStore.GetBySessionID(result.SessionID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 4, analyticsRecord.TotalSteps)
	assert.Equal(suite.T(), "step-1", analyticsRecord.CurrentStepID)
	assert.Equal(suite.T(), constants.ConversionStatusInProgress, analyticsRecord.ConversionStatus)
}

func (suite *FlowServiceTestSuite) TestStartFlowInvalidServiceType() {
	result, svcErr := suite.service.StartFlow("spaceship", model.ClientContext{})

	assert.Nil(suite.T(), result)
	suite.Require().NotNil(svcErr)
	assert.Equal(suite.T(), constants.ErrorInvalidServiceType.Code, svcErr.Code)
}

func (suite *FlowServiceTestSuite) TestStartFlowNoApplicableSteps() {
	suite.catalog.steps = nil

	result, svcErr := suite.service.StartFlow(string(constants.ServiceTypeWebApp), model.ClientContext{})

	assert.Nil(suite.T(), result)
	suite.Require().NotNil(svcErr)
	assert.Equal(suite.T(), constants.ErrorNoApplicableSteps.Code, svcErr.Code)
}

func (suite *FlowServiceTestSuite) TestFullCompletion() {
	start := suite.startFlow()
	sessionID := start.SessionID

	submissions := []struct {
		stepID  string
		payload map[string]interface{}
	}{
		{"step-1", map[string]interface{}{"service_type": "web_app"}},
		{"step-2", map[string]interface{}{"name": "Ada Lovelace", "email": "ada@example.com"}},
		{"step-3", map[string]interface{}{"confirmed": true}},
		{"step-4", map[string]interface{}{}},
	}

	lastRate := -1
	for i, submission := range submissions {
		result, svcErr := suite.service.SubmitStepData(sessionID, submission.stepID,
			submission.payload, nil)
		suite.Require().Nil(svcErr, "submission %d", i)
		assert.True(suite.T(), result.ValidationResult.IsValid)
		assert.GreaterOrEqual(suite.T(), result.ProgressPercentage, lastRate)
		lastRate = result.ProgressPercentage

		if i < len(submissions)-1 {
			suite.Require().NotNil(result.NextStep)
			assert.Equal(suite.T(), submissions[i+1].stepID, result.NextStep.ID)
			assert.True(suite.T(), result.CanProceed)
		} else {
			assert.Nil(suite.T(), result.NextStep)
			assert.False(suite.T(), result.CanProceed)
		}
	}

	state, svcErr := suite.service.GetFlowState(sessionID)
	suite.Require().Nil(svcErr)
	assert.True(suite.T(), state.IsComplete)
	assert.Equal(suite.T(), 100, state.ProgressPercentage)
	assert.Equal(suite.T(), constants.ConversionStatusCompleted, state.ConversionStatus)
	assert.Equal(suite.T(), []string{"step-1", "step-2", "step-3", "step-4"}, state.StepHistory)
	assert.Equal(suite.T(), "web_app", state.FormData["service_type"])
	assert.Equal(suite.T(), "ada@example.com", state.FormData["email"])
}

func (suite *FlowServiceTestSuite) TestValidationFailureThenRetry() {
	start := suite.startFlow()
	sessionID := start.SessionID

	_, svcErr := suite.service.SubmitStepData(sessionID, "step-1",
		map[string]interface{}{"service_type": "web_app"}, nil)
	suite.Require().Nil(svcErr)

	result, svcErr := suite.service.SubmitStepData(sessionID, "step-2",
		map[string]interface{}{"name": "Ada Lovelace", "email": "not-an-email"}, nil)
	suite.Require().Nil(svcErr)

	assert.False(suite.T(), result.ValidationResult.IsValid)
	assert.False(suite.T(), result.CanProceed)
	assert.Nil(suite.T(), result.NextStep)

	record, err := suite.progressStore.GetStepProgress(sessionID, "step-2")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), constants.StepStatusInProgress, record.Status)
	assert.Equal(suite.T(), 2, record.AttemptCount)
	assert.NotEmpty(suite.T(), record.ValidationErrors)

	analyticsRecord, err := suite.analyticsStore.GetBySessionID(sessionID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, analyticsRecord.ErrorCount)

	retry, svcErr := suite.service.SubmitStepData(sessionID, "step-2",
		map[string]interface{}{"name": "Ada Lovelace", "email": "ada@example.com"}, nil)
	suite.Require().Nil(svcErr)
	assert.True(suite.T(), retry.ValidationResult.IsValid)
	assert.Equal(suite.T(), "step-3", retry.NextStep.ID)

	record, _ = suite.progressStore.GetStepProgress(sessionID, "step-2")
	assert.Equal(suite.T(), constants.StepStatusCompleted, record.Status)
	assert.Empty(suite.T(), record.ValidationErrors)
}

func (suite *FlowServiceTestSuite) TestSubmitUnknownSession() {
	result, svcErr := suite.service.SubmitStepData("no-such-session", "step-1",
		map[string]interface{}{}, nil)

	assert.Nil(suite.T(), result)
	suite.Require().NotNil(svcErr)
	assert.Equal(suite.T(), constants.ErrorSessionNotFound.Code, svcErr.Code)
}

func (suite *FlowServiceTestSuite) TestSubmitUnknownStep() {
	start := suite.startFlow()

	result, svcErr := suite.service.SubmitStepData(start.SessionID, "no-such-step",
		map[string]interface{}{}, nil)

	assert.Nil(suite.T(), result)
	suite.Require().NotNil(svcErr)
	assert.Equal(suite.T(), constants.ErrorStepProgressNotFound.Code, svcErr.Code)
}

func (suite *FlowServiceTestSuite) TestSubmitWithExplicitTimeSpent() {
	start := suite.startFlow()
	spent := int64(77)

	_, svcErr := suite.service.SubmitStepData(start.SessionID, "step-1",
		map[string]interface{}{"service_type": "web_app"}, &spent)
	suite.Require().Nil(svcErr)

	record, _ := suite.progressStore.GetStepProgress(start.SessionID, "step-1")
	assert.Equal(suite.T(), int64(77), *record.TimeSpent)

	analyticsRecord, _ := suite.analyticsStore.GetBySessionID(start.SessionID)
	assert.Equal(suite.T(), int64(77), analyticsRecord.TotalTimeSpent)
}

func (suite *FlowServiceTestSuite) TestGoBack() {
	start := suite.startFlow()
	sessionID := start.SessionID

	_, svcErr := suite.service.SubmitStepData(sessionID, "step-1",
		map[string]interface{}{"service_type": "web_app"}, nil)
	suite.Require().Nil(svcErr)
	_, svcErr = suite.service.SubmitStepData(sessionID, "step-2",
		map[string]interface{}{"name": "Ada Lovelace", "email": "ada@example.com"}, nil)
	suite.Require().Nil(svcErr)

	state, svcErr := suite.service.GoBack(sessionID)
	suite.Require().Nil(svcErr)

	assert.Equal(suite.T(), "step-2", state.CurrentStep.StepID)
	assert.Equal(suite.T(), constants.StepStatusInProgress, state.CurrentStep.Status)
	assert.Len(suite.T(), state.CurrentStep.NavigationHistory, 1)
	assert.Equal(suite.T(), constants.NavigationActionBack,
		state.CurrentStep.NavigationHistory[0].Action)

	analyticsRecord, _ := suite.analyticsStore.GetBySessionID(sessionID)
	assert.Equal(suite.T(), "step-2", analyticsRecord.CurrentStepID)
	assert.Equal(suite.T(), 1, analyticsRecord.BackNavigationCount)
}

func (suite *FlowServiceTestSuite) TestGoBackNotAllowed() {
	start := suite.startFlow()
	sessionID := start.SessionID

	// The previous step of step-2 forbids back navigation.
	_, svcErr := suite.service.SubmitStepData(sessionID, "step-1",
		map[string]interface{}{"service_type": "web_app"}, nil)
	suite.Require().Nil(svcErr)

	state, svcErr := suite.service.GoBack(sessionID)
	assert.Nil(suite.T(), state)
	suite.Require().NotNil(svcErr)
	assert.Equal(suite.T(), constants.ErrorBackNavigationNotAllowed.Code, svcErr.Code)
}

func (suite *FlowServiceTestSuite) TestGoBackAtFirstStep() {
	start := suite.startFlow()

	state, svcErr := suite.service.GoBack(start.SessionID)
	assert.Nil(suite.T(), state)
	suite.Require().NotNil(svcErr)
	assert.Equal(suite.T(), constants.ErrorBackNavigationNotAllowed.Code, svcErr.Code)
}

func (suite *FlowServiceTestSuite) TestSkipStep() {
	start := suite.startFlow()
	sessionID := start.SessionID

	_, svcErr := suite.service.SubmitStepData(sessionID, "step-1",
		map[string]interface{}{"service_type": "web_app", "express_checkout": true}, nil)
	suite.Require().Nil(svcErr)
	_, svcErr = suite.service.SubmitStepData(sessionID, "step-2",
		map[string]interface{}{"name": "Ada Lovelace", "email": "ada@example.com"}, nil)
	suite.Require().Nil(svcErr)

	result, svcErr := suite.service.SkipStep(sessionID, "step-3")
	suite.Require().Nil(svcErr)

	assert.True(suite.T(), result.CanProceed)
	suite.Require().NotNil(result.NextStep)
	assert.Equal(suite.T(), "step-4", result.NextStep.ID)

	record, _ := suite.progressStore.GetStepProgress(sessionID, "step-3")
	assert.Equal(suite.T(), constants.StepStatusSkipped, record.Status)
	assert.NotNil(suite.T(), record.ExitedAt)

	next, _ := suite.progressStore.GetStepProgress(sessionID, "step-4")
	assert.Equal(suite.T(), constants.StepStatusInProgress, next.Status)

	analyticsRecord, _ := suite.analyticsStore.GetBySessionID(sessionID)
	assert.Equal(suite.T(), 1, analyticsRecord.SkippedSteps)
	assert.Equal(suite.T(), "step-4", analyticsRecord.CurrentStepID)
}

func (suite *FlowServiceTestSuite) TestSkipConditionsNotMet() {
	start := suite.startFlow()
	sessionID := start.SessionID

	_, svcErr := suite.service.SubmitStepData(sessionID, "step-1",
		map[string]interface{}{"service_type": "web_app"}, nil)
	suite.Require().Nil(svcErr)

	result, svcErr := suite.service.SkipStep(sessionID, "step-3")
	assert.Nil(suite.T(), result)
	suite.Require().NotNil(svcErr)
	assert.Equal(suite.T(), constants.ErrorSkipConditionsNotMet.Code, svcErr.Code)
}

func (suite *FlowServiceTestSuite) TestSkipStepWithoutConditions() {
	start := suite.startFlow()

	result, svcErr := suite.service.SkipStep(start.SessionID, "step-4")
	assert.Nil(suite.T(), result)
	suite.Require().NotNil(svcErr)
	assert.Equal(suite.T(), constants.ErrorSkipConditionsNotMet.Code, svcErr.Code)
}

func (suite *FlowServiceTestSuite) TestGetFlowStateUnknownSession() {
	state, svcErr := suite.service.GetFlowState("no-such-session")

	assert.Nil(suite.T(), state)
	suite.Require().NotNil(svcErr)
	assert.Equal(suite.T(), constants.ErrorSessionNotFound.Code, svcErr.Code)
}

func (suite *FlowServiceTestSuite) TestGetFlowStateIsIdempotent() {
	start := suite.startFlow()

	first, svcErr := suite.service.GetFlowState(start.SessionID)
	suite.Require().Nil(svcErr)
	second, svcErr := suite.service.GetFlowState(start.SessionID)
	suite.Require().Nil(svcErr)

	assert.Equal(suite.T(), first.ProgressPercentage, second.ProgressPercentage)
	assert.Equal(suite.T(), first.StepHistory, second.StepHistory)
	assert.Equal(suite.T(), first.CurrentStep.StepID, second.CurrentStep.StepID)
}

func (suite *FlowServiceTestSuite) TestConcurrentUpdateMapsToServiceError() {
	start := suite.startFlow()
	suite.progressStore.updateErr = model.ErrConcurrentUpdate

	result, svcErr := suite.service.SubmitStepData(start.SessionID, "step-1",
		map[string]interface{}{"service_type": "web_app"}, nil)

	assert.Nil(suite.T(), result)
	suite.Require().NotNil(svcErr)
	assert.Equal(suite.T(), constants.ErrorConcurrentUpdate.Code, svcErr.Code)
	assert.Greater(suite.T(), suite.tx.rollbacks, 0)
}

func (suite *FlowServiceTestSuite) TestResubmittingCompletedStepIsIllegal() {
	start := suite.startFlow()
	sessionID := start.SessionID

	_, svcErr := suite.service.SubmitStepData(sessionID, "step-1",
		map[string]interface{}{"service_type": "web_app"}, nil)
	suite.Require().Nil(svcErr)

	// A completed step only reopens through back navigation.
	result, svcErr := suite.service.SubmitStepData(sessionID, "step-1",
		map[string]interface{}{"service_type": "mobile_app"}, nil)
	assert.Nil(suite.T(), result)
	suite.Require().NotNil(svcErr)
	assert.Equal(suite.T(), constants.ErrorIllegalStepTransition.Code, svcErr.Code)
}

func (suite *FlowServiceTestSuite) TestInvalidSubmissionToCompletedStepIsIllegal() {
	start := suite.startFlow()
	sessionID := start.SessionID

	first, svcErr := suite.service.SubmitStepData(sessionID, "step-1",
		map[string]interface{}{"service_type": "web_app"}, nil)
	suite.Require().Nil(svcErr)
	rateAfterCompletion := first.ProgressPercentage

	// An invalid payload must not reopen the completed step either.
	result, svcErr := suite.service.SubmitStepData(sessionID, "step-1",
		map[string]interface{}{}, nil)
	assert.Nil(suite.T(), result)
	suite.Require().NotNil(svcErr)
	assert.Equal(suite.T(), constants.ErrorIllegalStepTransition.Code, svcErr.Code)

	record, _ := suite.progressStore.GetStepProgress(sessionID, "step-1")
	assert.Equal(suite.T(), constants.StepStatusCompleted, record.Status)
	assert.Equal(suite.T(), 1, record.AttemptCount)

	analyticsRecord, _ := suite.analyticsStore.GetBySessionID(sessionID)
	assert.Equal(suite.T(), 1, analyticsRecord.CompletedSteps)
	assert.Equal(suite.T(), rateAfterCompletion, analyticsRecord.CompletionRate)
}

func (suite *FlowServiceTestSuite) TestFormDataFoldsCompletedStepsInCompletionOrder() {
	start := suite.startFlow()
	sessionID := start.SessionID

	_, svcErr := suite.service.SubmitStepData(sessionID, "step-1",
		map[string]interface{}{"service_type": "web_app", "budget": "low"}, nil)
	suite.Require().Nil(svcErr)
	_, svcErr = suite.service.SubmitStepData(sessionID, "step-2",
		map[string]interface{}{"name": "Ada Lovelace", "email": "ada@example.com",
			"budget": "high"}, nil)
	suite.Require().Nil(svcErr)

	state, svcErr := suite.service.GetFlowState(sessionID)
	suite.Require().Nil(svcErr)
	assert.Equal(suite.T(), "high", state.FormData["budget"])

	// Reopening step-2 takes its data out of the fold until it completes again.
	state, svcErr = suite.service.GoBack(sessionID)
	suite.Require().Nil(svcErr)
	assert.Equal(suite.T(), "low", state.FormData["budget"])
	assert.Equal(suite.T(), []string{"step-1"}, state.StepHistory)
}

func (suite *FlowServiceTestSuite) TestProgressRowCountInvariant() {
	start := suite.startFlow()
	sessionID := start.SessionID

	_, svcErr := suite.service.SubmitStepData(sessionID, "step-1",
		map[string]interface{}{"service_type": "web_app", "express_checkout": true}, nil)
	suite.Require().Nil(svcErr)
	_, svcErr = suite.service.SubmitStepData(sessionID, "step-2",
		map[string]interface{}{"name": "Ada Lovelace", "email": "ada@example.com"}, nil)
	suite.Require().Nil(svcErr)
	_, svcErr = suite.service.SkipStep(sessionID, "step-3")
	suite.Require().Nil(svcErr)

	records, err := suite.progressStore.GetSessionProgress(sessionID)
	assert.NoError(suite.T(), err)
	analyticsRecord, _ := suite.analyticsStore.GetBySessionID(sessionID)
	assert.Len(suite.T(), records, analyticsRecord.TotalSteps)
	assert.GreaterOrEqual(suite.T(), analyticsRecord.CompletionRate, 0)
	assert.LessOrEqual(suite.T(), analyticsRecord.CompletionRate, 100)
}
