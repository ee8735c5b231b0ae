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

// Package handler exposes the onboarding flow engine over HTTP.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/pixelforge/beacon/internal/onboarding/analytics"
	"github.com/pixelforge/beacon/internal/onboarding/catalog"
	"github.com/pixelforge/beacon/internal/onboarding/constants"
	"github.com/pixelforge/beacon/internal/onboarding/flow"
	"github.com/pixelforge/beacon/internal/onboarding/model"
	"github.com/pixelforge/beacon/internal/onboarding/progress"
	"github.com/pixelforge/beacon/internal/system/config"
	"github.com/pixelforge/beacon/internal/system/error/apierror"
	"github.com/pixelforge/beacon/internal/system/error/serviceerror"
	"github.com/pixelforge/beacon/internal/system/log"
	"github.com/pixelforge/beacon/internal/system/utils"
)

const loggerComponentName = "OnboardingHandler"

// startFlowRequest is the request body for starting a flow.
type startFlowRequest struct {
	ServiceType string `json:"service_type"`
	DeviceType  string `json:"device_type,omitempty"`
	UserAgent   string `json:"user_agent,omitempty"`
	ReferrerURL string `json:"referrer_url,omitempty"`
}

// submitStepRequest is the request body for submitting step data.
type submitStepRequest struct {
	SessionID string                 `json:"session_id"`
	StepID    string                 `json:"step_id"`
	Data      map[string]interface{} `json:"data"`
	TimeSpent *int64                 `json:"time_spent,omitempty"`
}

// OnboardingHandler handles the onboarding flow API requests.
type OnboardingHandler struct {
	flowService      flow.ServiceInterface
	progressService  progress.ServiceInterface
	analyticsService analytics.ServiceInterface
	catalogService   catalog.ServiceInterface
}

// NewOnboardingHandler creates a new onboarding handler over the given services.
func NewOnboardingHandler(flowService flow.ServiceInterface, progressService progress.ServiceInterface,
	analyticsService analytics.ServiceInterface, catalogService catalog.ServiceInterface) *OnboardingHandler {
	return &OnboardingHandler{
		flowService:      flowService,
		progressService:  progressService,
		analyticsService: analyticsService,
		catalogService:   catalogService,
	}
}

// HandleFlowStartRequest starts a new onboarding flow.
func (h *OnboardingHandler) HandleFlowStartRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	request, err := utils.DecodeJSONBody[startFlowRequest](r)
	if err != nil {
		writeServiceError(w, &constants.ErrorInvalidRequestFormat)
		return
	}

	clientContext := model.ClientContext{
		DeviceType:  utils.SanitizeString(request.DeviceType),
		UserAgent:   utils.SanitizeString(request.UserAgent),
		ReferrerURL: utils.SanitizeString(request.ReferrerURL),
	}
	if clientContext.UserAgent == "" {
		clientContext.UserAgent = r.UserAgent()
	}

	result, svcErr := h.flowService.StartFlow(request.ServiceType, clientContext)
	if svcErr != nil {
		writeServiceError(w, svcErr)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, result)
	logger.Debug("Onboarding flow started", log.String("sessionID", result.SessionID))
}

// HandleFlowSubmitRequest submits step data for an active session.
func (h *OnboardingHandler) HandleFlowSubmitRequest(w http.ResponseWriter, r *http.Request) {
	request, err := utils.DecodeJSONBody[submitStepRequest](r)
	if err != nil {
		writeServiceError(w, &constants.ErrorInvalidRequestFormat)
		return
	}
	if request.SessionID == "" || request.StepID == "" {
		writeServiceError(w, &constants.ErrorInvalidRequestFormat)
		return
	}

	result, svcErr := h.flowService.SubmitStepData(request.SessionID, request.StepID,
		request.Data, request.TimeSpent)
	if svcErr != nil {
		writeServiceError(w, svcErr)
		return
	}

	utils.WriteJSON(w, http.StatusOK, result)
}

// HandleFlowStateRequest returns the current state of a session.
func (h *OnboardingHandler) HandleFlowStateRequest(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")

	state, svcErr := h.flowService.GetFlowState(sessionID)
	if svcErr != nil {
		writeServiceError(w, svcErr)
		return
	}

	utils.WriteJSON(w, http.StatusOK, state)
}

// HandleFlowBackRequest navigates a session back to its previous step.
func (h *OnboardingHandler) HandleFlowBackRequest(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")

	state, svcErr := h.flowService.GoBack(sessionID)
	if svcErr != nil {
		writeServiceError(w, svcErr)
		return
	}

	utils.WriteJSON(w, http.StatusOK, state)
}

// HandleFlowSkipRequest skips a conditional step of a session.
func (h *OnboardingHandler) HandleFlowSkipRequest(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")
	stepID := r.URL.Query().Get("step_id")
	if stepID == "" {
		writeServiceError(w, &constants.ErrorInvalidRequestFormat)
		return
	}

	result, svcErr := h.flowService.SkipStep(sessionID, stepID)
	if svcErr != nil {
		writeServiceError(w, svcErr)
		return
	}

	utils.WriteJSON(w, http.StatusOK, result)
}

// HandleSessionProgressRequest returns all progress records of a session.
func (h *OnboardingHandler) HandleSessionProgressRequest(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")

	records, err := h.progressService.GetSessionProgress(sessionID)
	if err != nil {
		logServerError("Failed to load session progress", err)
		writeServiceError(w, &constants.ErrorInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, records)
}

// HandleStepProgressRequest returns the progress record of one step within a session.
func (h *OnboardingHandler) HandleStepProgressRequest(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")
	stepID := r.PathValue("stepID")

	record, err := h.progressService.GetStepProgress(sessionID, stepID)
	if err != nil {
		logServerError("Failed to load step progress", err)
		writeServiceError(w, &constants.ErrorInternalServerError)
		return
	}
	if record == nil {
		writeServiceError(w, &constants.ErrorStepProgressNotFound)
		return
	}

	utils.WriteJSON(w, http.StatusOK, record)
}

// HandleSessionAnalyticsRequest returns the analytics record of a session.
func (h *OnboardingHandler) HandleSessionAnalyticsRequest(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")

	record, err := h.analyticsService.GetBySessionID(sessionID)
	if err != nil {
		logServerError("Failed to load session analytics", err)
		writeServiceError(w, &constants.ErrorInternalServerError)
		return
	}
	if record == nil {
		writeServiceError(w, &constants.ErrorSessionNotFound)
		return
	}

	utils.WriteJSON(w, http.StatusOK, record)
}

// HandleAnalyticsSummaryRequest returns cross-session analytics over a trailing
// window. The window defaults to the configured number of days.
func (h *OnboardingHandler) HandleAnalyticsSummaryRequest(w http.ResponseWriter, r *http.Request) {
	windowDays := config.GetBeaconRuntime().Config.Onboarding.SummaryWindowDays
	if windowDays == 0 {
		windowDays = constants.DefaultSummaryWindowDays
	}

	if rawDays := r.URL.Query().Get("days"); rawDays != "" {
		parsed, err := strconv.Atoi(rawDays)
		if err != nil {
			writeServiceError(w, &constants.ErrorInvalidSummaryWindow)
			return
		}
		windowDays = parsed
	}

	summary, err := h.analyticsService.GetSummary(windowDays)
	if err != nil {
		if errors.Is(err, analytics.ErrInvalidSummaryWindow) {
			writeServiceError(w, &constants.ErrorInvalidSummaryWindow)
			return
		}
		logServerError("Failed to load summary analytics", err)
		writeServiceError(w, &constants.ErrorInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, summary)
}

// HandleStepCatalogRequest lists the active step configurations applicable to
// a service type.
func (h *OnboardingHandler) HandleStepCatalogRequest(w http.ResponseWriter, r *http.Request) {
	serviceType := r.URL.Query().Get("service_type")
	if !constants.IsValidServiceType(serviceType) {
		writeServiceError(w, &constants.ErrorInvalidServiceType)
		return
	}

	steps, err := h.catalogService.GetApplicableSteps(constants.ServiceType(serviceType))
	if err != nil {
		logServerError("Failed to load step catalog", err)
		writeServiceError(w, &constants.ErrorInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, steps)
}

func logServerError(message string, err error) {
	log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
		Error(message, log.Error(err))
}

// writeServiceError maps a service error to its HTTP status and writes the
// API error response.
func writeServiceError(w http.ResponseWriter, svcErr *serviceerror.ServiceError) {
	utils.WriteJSONError(w, statusForServiceError(svcErr), apierror.ErrorResponse{
		Code:        svcErr.Code,
		Message:     svcErr.Error,
		Description: svcErr.ErrorDescription,
	})
}

func statusForServiceError(svcErr *serviceerror.ServiceError) int {
	if svcErr.Type == serviceerror.ServerErrorType {
		return http.StatusInternalServerError
	}
	switch svcErr.Code {
	case constants.ErrorSessionNotFound.Code,
		constants.ErrorStepProgressNotFound.Code,
		constants.ErrorStepNotFound.Code:
		return http.StatusNotFound
	case constants.ErrorConcurrentUpdate.Code:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
