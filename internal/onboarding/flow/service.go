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

// Package flow orchestrates onboarding sessions: starting a flow, submitting
// step data, navigating backwards, skipping steps and reading session state.
// Every mutation runs in a single transaction together with its analytics
// recompute.
package flow

import (
	"errors"
	"sort"
	"time"

	"github.com/pixelforge/beacon/internal/onboarding/analytics"
	"github.com/pixelforge/beacon/internal/onboarding/catalog"
	"github.com/pixelforge/beacon/internal/onboarding/condition"
	"github.com/pixelforge/beacon/internal/onboarding/constants"
	"github.com/pixelforge/beacon/internal/onboarding/model"
	"github.com/pixelforge/beacon/internal/onboarding/progress"
	"github.com/pixelforge/beacon/internal/onboarding/validator"
	dbmodel "github.com/pixelforge/beacon/internal/system/database/model"
	"github.com/pixelforge/beacon/internal/system/error/serviceerror"
	"github.com/pixelforge/beacon/internal/system/log"
	"github.com/pixelforge/beacon/internal/system/utils"
)

const loggerComponentName = "FlowService"

// ServiceInterface defines the onboarding flow contract.
type ServiceInterface interface {
	StartFlow(serviceType string, clientContext model.ClientContext) (
		*model.StartFlowResult, *serviceerror.ServiceError)
	SubmitStepData(sessionID, stepID string, payload map[string]interface{}, timeSpent *int64) (
		*model.SubmitResult, *serviceerror.ServiceError)
	GetFlowState(sessionID string) (*model.FlowState, *serviceerror.ServiceError)
	GoBack(sessionID string) (*model.FlowState, *serviceerror.ServiceError)
	SkipStep(sessionID, stepID string) (*model.SubmitResult, *serviceerror.ServiceError)
}

// Service is the default implementation of ServiceInterface.
type Service struct {
	catalogService   catalog.ServiceInterface
	progressService  progress.ServiceInterface
	analyticsService analytics.ServiceInterface
}

// NewService creates a new flow orchestrator over the given services.
func NewService(catalogService catalog.ServiceInterface, progressService progress.ServiceInterface,
	analyticsService analytics.ServiceInterface) ServiceInterface {
	return &Service{
		catalogService:   catalogService,
		progressService:  progressService,
		analyticsService: analyticsService,
	}
}

// StartFlow creates a new onboarding session for the given service type. One
// progress record is created per applicable step, the first one already
// in_progress, together with the session analytics record.
func (s *Service) StartFlow(serviceType string, clientContext model.ClientContext) (
	*model.StartFlowResult, *serviceerror.ServiceError) {
	if !constants.IsValidServiceType(serviceType) {
		return nil, &constants.ErrorInvalidServiceType
	}

	steps, err := s.catalogService.GetApplicableSteps(constants.ServiceType(serviceType))
	if err != nil {
		return nil, s.serverError("Failed to load applicable steps", err)
	}
	if len(steps) == 0 {
		return nil, &constants.ErrorNoApplicableSteps
	}

	sessionID := utils.GenerateUUID()
	now := time.Now().UTC()

	analyticsRecord := &model.Analytics{
		ID:               utils.GenerateUUID(),
		SessionID:        sessionID,
		ServiceType:      constants.ServiceType(serviceType),
		TotalSteps:       len(steps),
		ConversionStatus: constants.ConversionStatusInProgress,
		CurrentStepID:    steps[0].ID,
		DeviceType:       clientContext.DeviceType,
		UserAgent:        clientContext.UserAgent,
		ReferrerURL:      clientContext.ReferrerURL,
	}

	tx, err := s.progressService.BeginTx()
	if err != nil {
		return nil, s.serverError("Failed to begin transaction", err)
	}

	if err := s.analyticsService.CreateAnalytics(tx, analyticsRecord); err != nil {
		s.rollback(tx)
		return nil, s.serverError("Failed to create session analytics", err)
	}

	for i := range steps {
		record := &model.StepProgress{
			ID:           utils.GenerateUUID(),
			SessionID:    sessionID,
			StepID:       steps[i].ID,
			StepNumber:   steps[i].StepNumber,
			StepName:     steps[i].StepName,
			Status:       constants.StepStatusPending,
			AttemptCount: 1,
			UserAgent:    clientContext.UserAgent,
			DeviceType:   clientContext.DeviceType,
		}
		if i > 0 {
			record.PreviousStepID = steps[i-1].ID
		}
		if i < len(steps)-1 {
			record.NextStepID = steps[i+1].ID
		}
		if i == 0 {
			record.Status = constants.StepStatusInProgress
			record.StartedAt = &now
		}

		if err := s.progressService.CreateStepProgress(tx, record); err != nil {
			s.rollback(tx)
			return nil, s.serverError("Failed to create step progress", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, s.serverError("Failed to commit flow start", err)
	}

	return &model.StartFlowResult{
		SessionID: sessionID,
		FlowConfig: model.FlowConfig{
			TotalSteps:         len(steps),
			CurrentStep:        steps[0].StepNumber,
			ProgressPercentage: 0,
			CanGoBack:          false,
			CanSkip:            len(steps[0].SkipConditions) > 0,
		},
		FirstStep:   &steps[0],
		AnalyticsID: analyticsRecord.ID,
	}, nil
}

// SubmitStepData validates and applies a step submission. A failed validation
// keeps the step in_progress, records the errors and bumps the attempt count;
// a successful one completes the step and activates the next applicable step.
// Either way the session analytics are recomputed in the same transaction.
func (s *Service) SubmitStepData(sessionID, stepID string, payload map[string]interface{},
	timeSpent *int64) (*model.SubmitResult, *serviceerror.ServiceError) {
	analyticsRecord, records, svcErr := s.loadSession(sessionID)
	if svcErr != nil {
		return nil, svcErr
	}

	idx := indexOfStep(records, stepID)
	if idx < 0 {
		return nil, &constants.ErrorStepProgressNotFound
	}
	record := &records[idx]

	step, err := s.catalogService.GetStepByID(stepID)
	if err != nil {
		return nil, s.serverError("Failed to load step configuration", err)
	}
	if step == nil {
		return nil, &constants.ErrorStepNotFound
	}

	result := validator.ValidateStepData(step, payload)

	tx, err := s.progressService.BeginTx()
	if err != nil {
		return nil, s.serverError("Failed to begin transaction", err)
	}

	if !result.IsValid {
		// A validation failure is only recordable on the step being worked.
		// The in_progress transition below would otherwise reopen a
		// completed step, which is reserved for back navigation.
		if record.Status != constants.StepStatusInProgress &&
			record.Status != constants.StepStatusError {
			s.rollback(tx)
			return nil, &constants.ErrorIllegalStepTransition
		}
		update := progress.StatusUpdate{
			UserInput:        payload,
			ValidationErrors: result.Errors,
			IncrementAttempt: true,
		}
		if err := s.progressService.UpdateStepStatus(tx, record,
			constants.StepStatusInProgress, update); err != nil {
			s.rollback(tx)
			return nil, s.mapUpdateError("Failed to record validation failure", err)
		}
		if err := s.analyticsService.RecomputeFromProgress(tx, analyticsRecord,
			records, record.StepID); err != nil {
			s.rollback(tx)
			return nil, s.mapUpdateError("Failed to recompute session analytics", err)
		}
		if err := tx.Commit(); err != nil {
			return nil, s.serverError("Failed to commit step submission", err)
		}
		return &model.SubmitResult{
			ValidationResult:   result,
			ProgressPercentage: analyticsRecord.CompletionRate,
			CanProceed:         false,
		}, nil
	}

	nextStep, err := s.catalogService.GetNextStep(stepID, analyticsRecord.ServiceType)
	if err != nil {
		s.rollback(tx)
		return nil, s.serverError("Failed to resolve next step", err)
	}

	spent := timeSpent
	if spent == nil {
		derived := s.progressService.CalculateTimeSpent(record)
		spent = &derived
	}

	update := progress.StatusUpdate{
		StepData:  payload,
		UserInput: payload,
		TimeSpent: spent,
	}
	if nextStep != nil {
		nextID := nextStep.ID
		update.NextStepID = &nextID
	}
	if err := s.progressService.UpdateStepStatus(tx, record,
		constants.StepStatusCompleted, update); err != nil {
		s.rollback(tx)
		return nil, s.mapUpdateError("Failed to complete step", err)
	}

	currentStepID := stepID
	if nextStep != nil {
		currentStepID = nextStep.ID
		if nextIdx := indexOfStep(records, nextStep.ID); nextIdx >= 0 &&
			records[nextIdx].Status == constants.StepStatusPending {
			previousID := stepID
			activation := progress.StatusUpdate{PreviousStepID: &previousID}
			if err := s.progressService.UpdateStepStatus(tx, &records[nextIdx],
				constants.StepStatusInProgress, activation); err != nil {
				s.rollback(tx)
				return nil, s.mapUpdateError("Failed to activate next step", err)
			}
		}
	}

	if err := s.analyticsService.RecomputeFromProgress(tx, analyticsRecord,
		records, currentStepID); err != nil {
		s.rollback(tx)
		return nil, s.mapUpdateError("Failed to recompute session analytics", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, s.serverError("Failed to commit step submission", err)
	}

	return &model.SubmitResult{
		ValidationResult:   result,
		NextStep:           nextStep,
		ProgressPercentage: analyticsRecord.CompletionRate,
		CanProceed:         nextStep != nil,
	}, nil
}

// GetFlowState returns the read model of a session: its current step,
// completion history, accumulated form data and conversion status.
func (s *Service) GetFlowState(sessionID string) (*model.FlowState, *serviceerror.ServiceError) {
	analyticsRecord, records, svcErr := s.loadSession(sessionID)
	if svcErr != nil {
		return nil, svcErr
	}
	return buildFlowState(sessionID, analyticsRecord, records), nil
}

// GoBack reopens the previous step of the session. The previous step must
// allow back navigation and must have been completed before.
func (s *Service) GoBack(sessionID string) (*model.FlowState, *serviceerror.ServiceError) {
	analyticsRecord, records, svcErr := s.loadSession(sessionID)
	if svcErr != nil {
		return nil, svcErr
	}

	current := resolveCurrentRecord(analyticsRecord, records)
	if current == nil {
		return nil, &constants.ErrorSessionNotFound
	}

	previousStep, err := s.catalogService.GetPreviousStep(current.StepID, analyticsRecord.ServiceType)
	if err != nil {
		return nil, s.serverError("Failed to resolve previous step", err)
	}
	if previousStep == nil || !previousStep.BackAllowed {
		return nil, &constants.ErrorBackNavigationNotAllowed
	}

	prevIdx := indexOfStep(records, previousStep.ID)
	if prevIdx < 0 {
		return nil, &constants.ErrorStepProgressNotFound
	}
	prevRecord := &records[prevIdx]
	if prevRecord.Status != constants.StepStatusCompleted {
		return nil, &constants.ErrorBackNavigationNotAllowed
	}

	tx, err := s.progressService.BeginTx()
	if err != nil {
		return nil, s.serverError("Failed to begin transaction", err)
	}

	event := &model.NavigationEvent{
		Action:     constants.NavigationActionBack,
		FromStepID: current.StepID,
		ToStepID:   previousStep.ID,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.progressService.UpdateStepStatus(tx, prevRecord,
		constants.StepStatusInProgress, progress.StatusUpdate{NavigationEvent: event}); err != nil {
		s.rollback(tx)
		return nil, s.mapUpdateError("Failed to reopen previous step", err)
	}

	if err := s.analyticsService.RecomputeFromProgress(tx, analyticsRecord,
		records, previousStep.ID); err != nil {
		s.rollback(tx)
		return nil, s.mapUpdateError("Failed to recompute session analytics", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, s.serverError("Failed to commit back navigation", err)
	}

	return buildFlowState(sessionID, analyticsRecord, records), nil
}

// SkipStep marks a step skipped when its skip conditions hold against the
// form data accumulated so far, then activates the next applicable step.
func (s *Service) SkipStep(sessionID, stepID string) (*model.SubmitResult, *serviceerror.ServiceError) {
	analyticsRecord, records, svcErr := s.loadSession(sessionID)
	if svcErr != nil {
		return nil, svcErr
	}

	idx := indexOfStep(records, stepID)
	if idx < 0 {
		return nil, &constants.ErrorStepProgressNotFound
	}
	record := &records[idx]

	step, err := s.catalogService.GetStepByID(stepID)
	if err != nil {
		return nil, s.serverError("Failed to load step configuration", err)
	}
	if step == nil {
		return nil, &constants.ErrorStepNotFound
	}

	formData := accumulateFormData(records)
	if len(step.SkipConditions) == 0 || !condition.Evaluate(step.SkipConditions, formData) {
		return nil, &constants.ErrorSkipConditionsNotMet
	}

	nextStep, err := s.catalogService.GetNextStep(stepID, analyticsRecord.ServiceType)
	if err != nil {
		return nil, s.serverError("Failed to resolve next step", err)
	}

	tx, err := s.progressService.BeginTx()
	if err != nil {
		return nil, s.serverError("Failed to begin transaction", err)
	}

	event := &model.NavigationEvent{
		Action:     constants.NavigationActionSkip,
		FromStepID: stepID,
		OccurredAt: time.Now().UTC(),
	}
	update := progress.StatusUpdate{NavigationEvent: event}
	if nextStep != nil {
		nextID := nextStep.ID
		update.NextStepID = &nextID
		event.ToStepID = nextStep.ID
	}
	if err := s.progressService.UpdateStepStatus(tx, record,
		constants.StepStatusSkipped, update); err != nil {
		s.rollback(tx)
		return nil, s.mapUpdateError("Failed to skip step", err)
	}

	currentStepID := stepID
	if nextStep != nil {
		currentStepID = nextStep.ID
		if nextIdx := indexOfStep(records, nextStep.ID); nextIdx >= 0 &&
			records[nextIdx].Status == constants.StepStatusPending {
			previousID := stepID
			activation := progress.StatusUpdate{PreviousStepID: &previousID}
			if err := s.progressService.UpdateStepStatus(tx, &records[nextIdx],
				constants.StepStatusInProgress, activation); err != nil {
				s.rollback(tx)
				return nil, s.mapUpdateError("Failed to activate next step", err)
			}
		}
	}

	if err := s.analyticsService.RecomputeFromProgress(tx, analyticsRecord,
		records, currentStepID); err != nil {
		s.rollback(tx)
		return nil, s.mapUpdateError("Failed to recompute session analytics", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, s.serverError("Failed to commit step skip", err)
	}

	return &model.SubmitResult{
		ValidationResult:   model.ValidationResult{IsValid: true},
		NextStep:           nextStep,
		ProgressPercentage: analyticsRecord.CompletionRate,
		CanProceed:         nextStep != nil,
	}, nil
}

// loadSession loads the analytics record and progress records of a session.
func (s *Service) loadSession(sessionID string) (
	*model.Analytics, []model.StepProgress, *serviceerror.ServiceError) {
	analyticsRecord, err := s.analyticsService.GetBySessionID(sessionID)
	if err != nil {
		return nil, nil, s.serverError("Failed to load session analytics", err)
	}
	if analyticsRecord == nil {
		return nil, nil, &constants.ErrorSessionNotFound
	}

	records, err := s.progressService.GetSessionProgress(sessionID)
	if err != nil {
		return nil, nil, s.serverError("Failed to load session progress", err)
	}
	return analyticsRecord, records, nil
}

func (s *Service) rollback(tx dbmodel.TxInterface) {
	if err := tx.Rollback(); err != nil {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
			Error("Failed to rollback transaction", log.Error(err))
	}
}

func (s *Service) serverError(message string, err error) *serviceerror.ServiceError {
	log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
		Error(message, log.Error(err))
	return &constants.ErrorInternalServerError
}

// mapUpdateError maps store level failures to their client errors and logs
// everything else as a server error.
func (s *Service) mapUpdateError(message string, err error) *serviceerror.ServiceError {
	switch {
	case errors.Is(err, model.ErrConcurrentUpdate):
		return &constants.ErrorConcurrentUpdate
	case errors.Is(err, model.ErrIllegalTransition):
		return &constants.ErrorIllegalStepTransition
	default:
		return s.serverError(message, err)
	}
}

// indexOfStep returns the index of the record for the given step, or -1.
func indexOfStep(records []model.StepProgress, stepID string) int {
	for i := range records {
		if records[i].StepID == stepID {
			return i
		}
	}
	return -1
}

// resolveCurrentRecord picks the session's current step record: the analytics
// pointer when it resolves, otherwise the first in_progress record, otherwise
// the most recently updated one.
func resolveCurrentRecord(analyticsRecord *model.Analytics,
	records []model.StepProgress) *model.StepProgress {
	if analyticsRecord.CurrentStepID != "" {
		if idx := indexOfStep(records, analyticsRecord.CurrentStepID); idx >= 0 {
			return &records[idx]
		}
	}
	for i := range records {
		if records[i].Status == constants.StepStatusInProgress {
			return &records[i]
		}
	}

	var latest *model.StepProgress
	for i := range records {
		if latest == nil || records[i].UpdatedAt.After(latest.UpdatedAt) {
			latest = &records[i]
		}
	}
	return latest
}

// completedInOrder returns the session's completed records ordered by their
// completion time.
func completedInOrder(records []model.StepProgress) []model.StepProgress {
	var completed []model.StepProgress
	for i := range records {
		if records[i].Status == constants.StepStatusCompleted {
			completed = append(completed, records[i])
		}
	}
	sort.SliceStable(completed, func(i, j int) bool {
		left, right := completed[i].CompletedAt, completed[j].CompletedAt
		if left == nil || right == nil {
			return right == nil && left != nil
		}
		return left.Before(*right)
	})
	return completed
}

// accumulateFormData folds the step data of the completed records in
// completion order, later completions overriding earlier values for the
// same key.
func accumulateFormData(records []model.StepProgress) map[string]interface{} {
	formData := make(map[string]interface{})
	for _, record := range completedInOrder(records) {
		for key, value := range record.StepData {
			formData[key] = value
		}
	}
	return formData
}

// buildFlowState assembles the session read model from its records.
func buildFlowState(sessionID string, analyticsRecord *model.Analytics,
	records []model.StepProgress) *model.FlowState {
	current := resolveCurrentRecord(analyticsRecord, records)

	completed := completedInOrder(records)

	history := make([]string, 0, len(completed))
	for i := range completed {
		history = append(history, completed[i].StepID)
	}

	return &model.FlowState{
		SessionID:          sessionID,
		CurrentStep:        current,
		StepHistory:        history,
		FormData:           accumulateFormData(records),
		ProgressPercentage: analyticsRecord.CompletionRate,
		ConversionStatus:   analyticsRecord.ConversionStatus,
		IsComplete:         analyticsRecord.ConversionStatus == constants.ConversionStatusCompleted,
	}
}
