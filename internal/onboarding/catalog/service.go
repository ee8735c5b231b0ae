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

package catalog

import (
	"fmt"

	"github.com/pixelforge/beacon/internal/onboarding/constants"
	"github.com/pixelforge/beacon/internal/onboarding/model"
	"github.com/pixelforge/beacon/internal/system/cache"
	"github.com/pixelforge/beacon/internal/system/log"
)

const activeStepsCacheKey = "activeSteps"

// ServiceInterface defines the step catalog contract. The catalog is
// read-only against step configuration and has no side effects.
type ServiceInterface interface {
	GetApplicableSteps(serviceType constants.ServiceType) ([]model.Step, error)
	GetStepByID(stepID string) (*model.Step, error)
	GetNextStep(currentStepID string, serviceType constants.ServiceType) (*model.Step, error)
	GetPreviousStep(currentStepID string, serviceType constants.ServiceType) (*model.Step, error)
}

// Service is the default implementation of ServiceInterface.
type Service struct {
	store      StoreInterface
	stepsCache cache.CacheInterface[[]model.Step]
}

// NewService creates a new step catalog service backed by the given store.
func NewService(store StoreInterface) ServiceInterface {
	return &Service{
		store:      store,
		stepsCache: cache.GetCache[[]model.Step](constants.StepCatalogCacheName),
	}
}

// GetApplicableSteps returns the active steps applicable to the given service
// type in ascending step number order. An empty result is a configuration
// error for callers starting a flow.
func (s *Service) GetApplicableSteps(serviceType constants.ServiceType) ([]model.Step, error) {
	steps, err := s.getActiveSteps()
	if err != nil {
		return nil, err
	}

	applicable := make([]model.Step, 0, len(steps))
	for _, step := range steps {
		if step.AppliesTo(serviceType) {
			applicable = append(applicable, step)
		}
	}
	return applicable, nil
}

// GetStepByID retrieves a single step configuration. Returns nil when absent.
func (s *Service) GetStepByID(stepID string) (*model.Step, error) {
	return s.store.GetStepByID(stepID)
}

// GetNextStep returns the applicable step with the smallest step number
// strictly greater than the current step's. Returns nil when none exists.
func (s *Service) GetNextStep(currentStepID string, serviceType constants.ServiceType) (*model.Step, error) {
	current, applicable, err := s.resolveCurrent(currentStepID, serviceType)
	if err != nil {
		return nil, err
	}

	for i := range applicable {
		if applicable[i].StepNumber > current.StepNumber {
			return &applicable[i], nil
		}
	}
	return nil, nil
}

// GetPreviousStep returns the applicable step with the largest step number
// strictly smaller than the current step's. Returns nil when none exists.
func (s *Service) GetPreviousStep(currentStepID string, serviceType constants.ServiceType) (*model.Step, error) {
	current, applicable, err := s.resolveCurrent(currentStepID, serviceType)
	if err != nil {
		return nil, err
	}

	for i := len(applicable) - 1; i >= 0; i-- {
		if applicable[i].StepNumber < current.StepNumber {
			return &applicable[i], nil
		}
	}
	return nil, nil
}

// resolveCurrent loads the current step and the applicable step sequence.
func (s *Service) resolveCurrent(
	currentStepID string,
	serviceType constants.ServiceType,
) (*model.Step, []model.Step, error) {
	current, err := s.store.GetStepByID(currentStepID)
	if err != nil {
		return nil, nil, err
	}
	if current == nil {
		return nil, nil, fmt.Errorf("step not found: %s", currentStepID)
	}

	applicable, err := s.GetApplicableSteps(serviceType)
	if err != nil {
		return nil, nil, err
	}
	return current, applicable, nil
}

// getActiveSteps returns all active steps, serving from the cache when warm.
// The cache is TTL-bound only: configuration changes do not affect sessions
// already started, so stale reads within the TTL are acceptable.
func (s *Service) getActiveSteps() ([]model.Step, error) {
	cacheKey := cache.CacheKey{Key: activeStepsCacheKey}
	if steps, found := s.stepsCache.Get(cacheKey); found {
		return steps, nil
	}

	steps, err := s.store.GetActiveSteps()
	if err != nil {
		return nil, err
	}

	if err := s.stepsCache.Set(cacheKey, steps); err != nil {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, "StepCatalogService")).
			Warn("Failed to cache active steps", log.Error(err))
	}
	return steps, nil
}
