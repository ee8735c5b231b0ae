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

package services

import (
	"net/http"

	"github.com/pixelforge/beacon/internal/onboarding/analytics"
	"github.com/pixelforge/beacon/internal/onboarding/catalog"
	"github.com/pixelforge/beacon/internal/onboarding/flow"
	"github.com/pixelforge/beacon/internal/onboarding/handler"
	"github.com/pixelforge/beacon/internal/onboarding/progress"
	"github.com/pixelforge/beacon/internal/system/database/provider"
	"github.com/pixelforge/beacon/internal/system/middleware"
)

// OnboardingService defines the service for handling onboarding flow API requests.
type OnboardingService struct {
	onboardingHandler *handler.OnboardingHandler
}

// NewOnboardingService creates a new instance of OnboardingService.
func NewOnboardingService(mux *http.ServeMux) ServiceInterface {
	dbProvider := provider.GetDBProvider()

	catalogService := catalog.NewService(catalog.NewStore(dbProvider))
	progressService := progress.NewService(progress.NewStore(dbProvider))
	analyticsService := analytics.NewService(analytics.NewStore(dbProvider))
	flowService := flow.NewService(catalogService, progressService, analyticsService)

	instance := &OnboardingService{
		onboardingHandler: handler.NewOnboardingHandler(
			flowService, progressService, analyticsService, catalogService),
	}
	instance.RegisterRoutes(mux)

	return instance
}

// RegisterRoutes registers the routes for the OnboardingService.
func (s *OnboardingService) RegisterRoutes(mux *http.ServeMux) {
	opts1 := middleware.CORSOptions{
		AllowedMethods:   "POST",
		AllowedHeaders:   "Content-Type, Authorization",
		AllowCredentials: true,
	}
	mux.HandleFunc(middleware.WithCORS("OPTIONS /onboarding/flow/start",
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}, opts1))
	mux.HandleFunc(middleware.WithCORS("POST /onboarding/flow/start",
		s.onboardingHandler.HandleFlowStartRequest, opts1))

	mux.HandleFunc(middleware.WithCORS("OPTIONS /onboarding/flow/submit",
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}, opts1))
	mux.HandleFunc(middleware.WithCORS("POST /onboarding/flow/submit",
		s.onboardingHandler.HandleFlowSubmitRequest, opts1))

	opts2 := middleware.CORSOptions{
		AllowedMethods:   "GET, POST",
		AllowedHeaders:   "Content-Type, Authorization",
		AllowCredentials: true,
	}
	mux.HandleFunc(middleware.WithCORS("OPTIONS /onboarding/flow/{sessionID}",
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}, opts2))
	mux.HandleFunc(middleware.WithCORS("GET /onboarding/flow/{sessionID}",
		s.onboardingHandler.HandleFlowStateRequest, opts2))

	mux.HandleFunc(middleware.WithCORS("OPTIONS /onboarding/flow/{sessionID}/back",
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}, opts1))
	mux.HandleFunc(middleware.WithCORS("POST /onboarding/flow/{sessionID}/back",
		s.onboardingHandler.HandleFlowBackRequest, opts1))

	mux.HandleFunc(middleware.WithCORS("OPTIONS /onboarding/flow/{sessionID}/skip",
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}, opts1))
	mux.HandleFunc(middleware.WithCORS("POST /onboarding/flow/{sessionID}/skip",
		s.onboardingHandler.HandleFlowSkipRequest, opts1))

	opts3 := middleware.CORSOptions{
		AllowedMethods:   "GET",
		AllowedHeaders:   "Content-Type, Authorization",
		AllowCredentials: true,
	}
	mux.HandleFunc(middleware.WithCORS("OPTIONS /onboarding/steps",
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}, opts3))
	mux.HandleFunc(middleware.WithCORS("GET /onboarding/steps",
		s.onboardingHandler.HandleStepCatalogRequest, opts3))

	mux.HandleFunc(middleware.WithCORS("OPTIONS /onboarding/progress/{sessionID}",
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}, opts3))
	mux.HandleFunc(middleware.WithCORS("GET /onboarding/progress/{sessionID}",
		s.onboardingHandler.HandleSessionProgressRequest, opts3))

	mux.HandleFunc(middleware.WithCORS("OPTIONS /onboarding/progress/{sessionID}/{stepID}",
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}, opts3))
	mux.HandleFunc(middleware.WithCORS("GET /onboarding/progress/{sessionID}/{stepID}",
		s.onboardingHandler.HandleStepProgressRequest, opts3))

	mux.HandleFunc(middleware.WithCORS("OPTIONS /onboarding/analytics/summary",
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}, opts3))
	mux.HandleFunc(middleware.WithCORS("GET /onboarding/analytics/summary",
		s.onboardingHandler.HandleAnalyticsSummaryRequest, opts3))

	mux.HandleFunc(middleware.WithCORS("OPTIONS /onboarding/analytics/{sessionID}",
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}, opts3))
	mux.HandleFunc(middleware.WithCORS("GET /onboarding/analytics/{sessionID}",
		s.onboardingHandler.HandleSessionAnalyticsRequest, opts3))
}
