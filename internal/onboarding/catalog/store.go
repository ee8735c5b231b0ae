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

// Package catalog provides read-only access to onboarding step configuration.
package catalog

import (
	"errors"
	"fmt"
	"time"

	"github.com/pixelforge/beacon/internal/onboarding/constants"
	"github.com/pixelforge/beacon/internal/onboarding/model"
	"github.com/pixelforge/beacon/internal/system/database/provider"
	"github.com/pixelforge/beacon/internal/system/log"
	"github.com/pixelforge/beacon/internal/system/utils"
)

// StoreInterface defines the storage contract for step configuration.
type StoreInterface interface {
	GetActiveSteps() ([]model.Step, error)
	GetStepByID(stepID string) (*model.Step, error)
	CreateStep(step model.Step) error
	CountSteps() (int, error)
}

// Store is the default implementation of StoreInterface.
type Store struct {
	DBProvider provider.DBProviderInterface
}

// NewStore creates a new step configuration store.
func NewStore(dbProvider provider.DBProviderInterface) StoreInterface {
	return &Store{
		DBProvider: dbProvider,
	}
}

// GetActiveSteps retrieves all active steps ordered ascending by step number.
func (s *Store) GetActiveSteps() ([]model.Step, error) {
	dbClient, err := s.DBProvider.GetDBClient(provider.DBNameRuntime)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(QueryGetActiveSteps)
	if err != nil {
		return nil, fmt.Errorf("failed to query active steps: %w", err)
	}

	steps := make([]model.Step, 0, len(results))
	for _, row := range results {
		step, err := buildStepFromResultRow(row)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// GetStepByID retrieves a single step configuration. Returns nil when absent.
func (s *Store) GetStepByID(stepID string) (*model.Step, error) {
	dbClient, err := s.DBProvider.GetDBClient(provider.DBNameRuntime)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(QueryGetStepByID, stepID)
	if err != nil {
		return nil, fmt.Errorf("failed to query step: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	step, err := buildStepFromResultRow(results[0])
	if err != nil {
		return nil, err
	}
	return &step, nil
}

// CreateStep inserts a step configuration row. Only the startup seeder writes
// step configuration; the engine itself never authors steps.
func (s *Store) CreateStep(step model.Step) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "StepCatalogStore"))

	dbClient, err := s.DBProvider.GetDBClient(provider.DBNameRuntime)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	requiredFields, err := utils.SerializeJSON(step.RequiredFields)
	if err != nil {
		return fmt.Errorf("failed to serialize required fields: %w", err)
	}
	optionalFields, err := utils.SerializeJSON(step.OptionalFields)
	if err != nil {
		return fmt.Errorf("failed to serialize optional fields: %w", err)
	}
	validationSchema, err := utils.SerializeJSON(step.ValidationSchema)
	if err != nil {
		return fmt.Errorf("failed to serialize validation schema: %w", err)
	}
	serviceTypes, err := utils.SerializeJSON(step.ServiceTypes)
	if err != nil {
		return fmt.Errorf("failed to serialize service types: %w", err)
	}
	skipConditions, err := utils.SerializeJSON(step.SkipConditions)
	if err != nil {
		return fmt.Errorf("failed to serialize skip conditions: %w", err)
	}
	nextStepConditions, err := utils.SerializeJSON(step.NextStepConditions)
	if err != nil {
		return fmt.Errorf("failed to serialize next step conditions: %w", err)
	}

	now := time.Now().UTC()
	_, err = dbClient.Execute(QueryCreateStep, step.ID, step.StepNumber, string(step.StepName),
		step.Title, step.Description, requiredFields, optionalFields, validationSchema, serviceTypes,
		skipConditions, nextStepConditions, step.IsConditional, step.BackAllowed, step.DisplayOrder,
		step.ProgressWeight, step.EstimatedTime, step.IsActive, step.IsRequired, now, now)
	if err != nil {
		logger.Error("Failed to create step", log.Error(err))
		return fmt.Errorf("failed to create step: %w", err)
	}

	return nil
}

// CountSteps returns the number of configured steps.
func (s *Store) CountSteps() (int, error) {
	dbClient, err := s.DBProvider.GetDBClient(provider.DBNameRuntime)
	if err != nil {
		return 0, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(QueryCountSteps)
	if err != nil {
		return 0, fmt.Errorf("failed to count steps: %w", err)
	}
	if len(results) == 0 {
		return 0, nil
	}

	return parseInt(results[0]["total"]), nil
}

// buildStepFromResultRow builds a Step from a database result row.
func buildStepFromResultRow(row map[string]interface{}) (model.Step, error) {
	stepID, ok := row["step_id"].(string)
	if !ok {
		return model.Step{}, errors.New("failed to parse step_id as string")
	}

	stepName, ok := row["step_name"].(string)
	if !ok {
		return model.Step{}, errors.New("failed to parse step_name as string")
	}

	requiredFields, err := utils.ParseJSONStringArray(parseString(row["required_fields"]))
	if err != nil {
		return model.Step{}, fmt.Errorf("failed to parse required_fields: %w", err)
	}
	optionalFields, err := utils.ParseJSONStringArray(parseString(row["optional_fields"]))
	if err != nil {
		return model.Step{}, fmt.Errorf("failed to parse optional_fields: %w", err)
	}
	validationSchema, err := utils.ParseJSONMap(parseString(row["validation_schema"]))
	if err != nil {
		return model.Step{}, fmt.Errorf("failed to parse validation_schema: %w", err)
	}
	serviceTypes, err := utils.ParseJSONStringArray(parseString(row["service_types"]))
	if err != nil {
		return model.Step{}, fmt.Errorf("failed to parse service_types: %w", err)
	}
	skipConditions, err := utils.ParseJSONMap(parseString(row["skip_conditions"]))
	if err != nil {
		return model.Step{}, fmt.Errorf("failed to parse skip_conditions: %w", err)
	}
	nextStepConditions, err := utils.ParseJSONMap(parseString(row["next_step_conditions"]))
	if err != nil {
		return model.Step{}, fmt.Errorf("failed to parse next_step_conditions: %w", err)
	}

	return model.Step{
		ID:                 stepID,
		StepNumber:         parseInt(row["step_number"]),
		StepName:           constants.StepName(stepName),
		Title:              parseString(row["title"]),
		Description:        parseString(row["description"]),
		RequiredFields:     requiredFields,
		OptionalFields:     optionalFields,
		ValidationSchema:   validationSchema,
		ServiceTypes:       serviceTypes,
		SkipConditions:     skipConditions,
		NextStepConditions: nextStepConditions,
		IsConditional:      parseBoolean(row["is_conditional"]),
		BackAllowed:        parseBoolean(row["back_allowed"]),
		DisplayOrder:       parseInt(row["display_order"]),
		ProgressWeight:     parseInt(row["progress_weight"]),
		EstimatedTime:      parseInt(row["estimated_time"]),
		IsActive:           parseBoolean(row["is_active"]),
		IsRequired:         parseBoolean(row["is_required"]),
	}, nil
}

// parseString safely parses a string field from the database row.
func parseString(value interface{}) string {
	if value == nil {
		return ""
	}
	if str, ok := value.(string); ok {
		return str
	}
	if bytes, ok := value.([]byte); ok {
		return string(bytes)
	}
	return ""
}

// parseInt safely parses an integer field from the database row.
func parseInt(value interface{}) int {
	switch v := value.(type) {
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}

// parseBoolean safely parses a boolean field from the database row with type conversion support.
func parseBoolean(value interface{}) bool {
	if value == nil {
		return false
	}

	if boolVal, ok := value.(bool); ok {
		return boolVal
	}

	if intVal, ok := value.(int64); ok {
		return intVal != 0
	}

	return false
}
