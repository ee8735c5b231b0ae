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
	"github.com/pixelforge/beacon/internal/system/log"
	"github.com/pixelforge/beacon/internal/system/utils"
)

// defaultSteps is the step configuration seeded on first startup when the
// catalog is empty. Step authoring is otherwise external to this server.
func defaultSteps() []model.Step {
	return []model.Step{
		{
			ID:             utils.GenerateUUID(),
			StepNumber:     1,
			StepName:       constants.StepNameServiceSelection,
			Title:          "Select your service",
			Description:    "Choose the type of service you want to build",
			RequiredFields: []string{"service_type"},
			ValidationSchema: map[string]interface{}{
				"service_type": "required",
			},
			BackAllowed:    false,
			DisplayOrder:   1,
			ProgressWeight: 1,
			EstimatedTime:  30,
			IsActive:       true,
			IsRequired:     true,
		},
		{
			ID:             utils.GenerateUUID(),
			StepNumber:     2,
			StepName:       constants.StepNameBasicInfo,
			Title:          "Tell us about yourself",
			Description:    "Basic contact and company information",
			RequiredFields: []string{"name", "email"},
			OptionalFields: []string{"company", "phone"},
			ValidationSchema: map[string]interface{}{
				"name":  "required,min=2,max=200",
				"email": "required,email",
				"phone": "omitempty,min=7,max=20",
			},
			BackAllowed:    true,
			DisplayOrder:   2,
			ProgressWeight: 1,
			EstimatedTime:  120,
			IsActive:       true,
			IsRequired:     true,
		},
		{
			ID:             utils.GenerateUUID(),
			StepNumber:     3,
			StepName:       constants.StepNameServiceRequirements,
			Title:          "Project requirements",
			Description:    "Describe what you need",
			RequiredFields: []string{"requirements"},
			OptionalFields: []string{"budget", "timeline"},
			ValidationSchema: map[string]interface{}{
				"requirements": "required,min=10",
			},
			BackAllowed:    true,
			DisplayOrder:   3,
			ProgressWeight: 2,
			EstimatedTime:  300,
			IsActive:       true,
			IsRequired:     true,
		},
		{
			ID:            utils.GenerateUUID(),
			StepNumber:    4,
			StepName:      constants.StepNameReview,
			Title:         "Review your selections",
			Description:   "Confirm everything looks right before submitting",
			IsConditional: true,
			SkipConditions: map[string]interface{}{
				"field": "express_checkout",
				"op":    "eq",
				"value": true,
			},
			BackAllowed:    true,
			DisplayOrder:   4,
			ProgressWeight: 1,
			EstimatedTime:  60,
			IsActive:       true,
			IsRequired:     false,
		},
		{
			ID:             utils.GenerateUUID(),
			StepNumber:     5,
			StepName:       constants.StepNameConfirmation,
			Title:          "All set",
			Description:    "Your onboarding is complete",
			BackAllowed:    false,
			DisplayOrder:   5,
			ProgressWeight: 1,
			EstimatedTime:  15,
			IsActive:       true,
			IsRequired:     true,
		},
	}
}

// EnsureDefaultSteps seeds the default step configuration when the catalog is empty.
func EnsureDefaultSteps(store StoreInterface) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "StepCatalogSeeder"))

	count, err := store.CountSteps()
	if err != nil {
		return fmt.Errorf("failed to count configured steps: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, step := range defaultSteps() {
		if err := store.CreateStep(step); err != nil {
			return fmt.Errorf("failed to seed step %s: %w", step.StepName, err)
		}
	}

	logger.Info("Seeded default onboarding step configuration")
	return nil
}
