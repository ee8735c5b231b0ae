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

// Package progress provides per-(session, step) state storage and
// timestamp/duration bookkeeping for the onboarding flow.
package progress

import (
	"errors"
	"fmt"
	"time"

	"github.com/pixelforge/beacon/internal/onboarding/constants"
	"github.com/pixelforge/beacon/internal/onboarding/model"
	"github.com/pixelforge/beacon/internal/system/database/client"
	dbmodel "github.com/pixelforge/beacon/internal/system/database/model"
	"github.com/pixelforge/beacon/internal/system/database/provider"
	"github.com/pixelforge/beacon/internal/system/utils"
)

// StoreInterface defines the storage contract for step progress records.
// Write operations run inside a caller supplied transaction so a submission
// is applied atomically with its analytics recompute.
type StoreInterface interface {
	GetSessionProgress(sessionID string) ([]model.StepProgress, error)
	GetStepProgress(sessionID, stepID string) (*model.StepProgress, error)
	CreateStepProgress(tx dbmodel.TxInterface, record *model.StepProgress) error
	UpdateStepProgress(tx dbmodel.TxInterface, record *model.StepProgress) error
	BeginTx() (dbmodel.TxInterface, error)
}

// Store is the default implementation of StoreInterface.
type Store struct {
	DBProvider provider.DBProviderInterface
}

// NewStore creates a new step progress store.
func NewStore(dbProvider provider.DBProviderInterface) StoreInterface {
	return &Store{
		DBProvider: dbProvider,
	}
}

func (s *Store) getClient() (client.DBClientInterface, error) {
	dbClient, err := s.DBProvider.GetDBClient(provider.DBNameRuntime)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}
	return dbClient, nil
}

// BeginTx starts a transaction against the runtime database.
func (s *Store) BeginTx() (dbmodel.TxInterface, error) {
	dbClient, err := s.getClient()
	if err != nil {
		return nil, err
	}
	return dbClient.BeginTx()
}

// GetSessionProgress retrieves all progress records of a session ordered by
// step number. An unknown session yields an empty slice, not an error.
func (s *Store) GetSessionProgress(sessionID string) ([]model.StepProgress, error) {
	dbClient, err := s.getClient()
	if err != nil {
		return nil, err
	}

	results, err := dbClient.Query(QueryGetSessionProgress, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query session progress: %w", err)
	}

	records := make([]model.StepProgress, 0, len(results))
	for _, row := range results {
		record, err := buildStepProgressFromResultRow(row)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, nil
}

// GetStepProgress retrieves the progress record of one step within a session.
// Returns nil when absent.
func (s *Store) GetStepProgress(sessionID, stepID string) (*model.StepProgress, error) {
	dbClient, err := s.getClient()
	if err != nil {
		return nil, err
	}

	results, err := dbClient.Query(QueryGetStepProgress, sessionID, stepID)
	if err != nil {
		return nil, fmt.Errorf("failed to query step progress: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	return buildStepProgressFromResultRow(results[0])
}

// CreateStepProgress inserts a progress record within the given transaction.
func (s *Store) CreateStepProgress(tx dbmodel.TxInterface, record *model.StepProgress) error {
	stepData, validationErrors, userInput, navigationHistory, err := serializeProgressPayloads(record)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now
	if record.Version == 0 {
		record.Version = 1
	}

	_, err = tx.Exec(QueryCreateStepProgress, record.ID, record.SessionID, record.StepID,
		record.StepNumber, string(record.StepName), string(record.Status), stepData, validationErrors,
		userInput, record.StartedAt, record.CompletedAt, record.ExitedAt, record.TimeSpent,
		record.AttemptCount, record.PreviousStepID, record.NextStepID, navigationHistory,
		record.UserAgent, record.DeviceType, record.Version, record.CreatedAt, record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create step progress: %w", err)
	}
	return nil
}

// UpdateStepProgress persists the mutable fields of a progress record within
// the given transaction. Returns model.ErrConcurrentUpdate when the version
// guard misses.
func (s *Store) UpdateStepProgress(tx dbmodel.TxInterface, record *model.StepProgress) error {
	stepData, validationErrors, userInput, navigationHistory, err := serializeProgressPayloads(record)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	affected, err := tx.Exec(QueryUpdateStepProgress, string(record.Status), stepData,
		validationErrors, userInput, record.StartedAt, record.CompletedAt, record.ExitedAt,
		record.TimeSpent, record.AttemptCount, record.PreviousStepID, record.NextStepID,
		navigationHistory, now, record.ID, record.Version)
	if err != nil {
		return fmt.Errorf("failed to update step progress: %w", err)
	}
	if affected == 0 {
		return model.ErrConcurrentUpdate
	}

	record.Version++
	record.UpdatedAt = now
	return nil
}

// serializeProgressPayloads serializes the structured value columns of a record.
func serializeProgressPayloads(record *model.StepProgress) (string, string, string, string, error) {
	stepData, err := utils.SerializeJSON(record.StepData)
	if err != nil {
		return "", "", "", "", fmt.Errorf("failed to serialize step data: %w", err)
	}
	validationErrors, err := utils.SerializeJSON(record.ValidationErrors)
	if err != nil {
		return "", "", "", "", fmt.Errorf("failed to serialize validation errors: %w", err)
	}
	userInput, err := utils.SerializeJSON(record.UserInput)
	if err != nil {
		return "", "", "", "", fmt.Errorf("failed to serialize user input: %w", err)
	}
	navigationHistory, err := utils.SerializeJSON(record.NavigationHistory)
	if err != nil {
		return "", "", "", "", fmt.Errorf("failed to serialize navigation history: %w", err)
	}
	return stepData, validationErrors, userInput, navigationHistory, nil
}

// buildStepProgressFromResultRow builds a StepProgress from a database result row.
func buildStepProgressFromResultRow(row map[string]interface{}) (*model.StepProgress, error) {
	progressID, ok := row["progress_id"].(string)
	if !ok {
		return nil, errors.New("failed to parse progress_id as string")
	}
	sessionID, ok := row["session_id"].(string)
	if !ok {
		return nil, errors.New("failed to parse session_id as string")
	}
	stepID, ok := row["step_id"].(string)
	if !ok {
		return nil, errors.New("failed to parse step_id as string")
	}

	stepData, err := utils.ParseJSONMap(parseString(row["step_data"]))
	if err != nil {
		return nil, fmt.Errorf("failed to parse step_data: %w", err)
	}
	userInput, err := utils.ParseJSONMap(parseString(row["user_input"]))
	if err != nil {
		return nil, fmt.Errorf("failed to parse user_input: %w", err)
	}

	var validationErrors []model.ValidationError
	if raw := parseString(row["validation_errors"]); raw != "" {
		parsed, err := utils.ParseJSONArray(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse validation_errors: %w", err)
		}
		for _, entry := range parsed {
			validationErrors = append(validationErrors, model.ValidationError{
				Field:   parseString(entry["field"]),
				Message: parseString(entry["message"]),
			})
		}
	}

	var navigationHistory []model.NavigationEvent
	if raw := parseString(row["navigation_history"]); raw != "" {
		parsed, err := utils.ParseJSONArray(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse navigation_history: %w", err)
		}
		for _, entry := range parsed {
			event := model.NavigationEvent{
				Action:     constants.NavigationAction(parseString(entry["action"])),
				FromStepID: parseString(entry["from_step_id"]),
				ToStepID:   parseString(entry["to_step_id"]),
			}
			if occurredAt := parseOptionalTimeValue(entry["occurred_at"]); occurredAt != nil {
				event.OccurredAt = *occurredAt
			}
			navigationHistory = append(navigationHistory, event)
		}
	}

	record := &model.StepProgress{
		ID:                progressID,
		SessionID:         sessionID,
		StepID:            stepID,
		StepNumber:        parseInt(row["step_number"]),
		StepName:          constants.StepName(parseString(row["step_name"])),
		Status:            constants.StepStatus(parseString(row["status"])),
		StepData:          stepData,
		ValidationErrors:  validationErrors,
		UserInput:         userInput,
		StartedAt:         parseOptionalTimeValue(row["started_at"]),
		CompletedAt:       parseOptionalTimeValue(row["completed_at"]),
		ExitedAt:          parseOptionalTimeValue(row["exited_at"]),
		TimeSpent:         parseOptionalInt64(row["time_spent"]),
		AttemptCount:      parseInt(row["attempt_count"]),
		PreviousStepID:    parseString(row["previous_step_id"]),
		NextStepID:        parseString(row["next_step_id"]),
		NavigationHistory: navigationHistory,
		UserAgent:         parseString(row["user_agent"]),
		DeviceType:        parseString(row["device_type"]),
		Version:           int64(parseInt(row["version"])),
	}
	if createdAt := parseOptionalTimeValue(row["created_at"]); createdAt != nil {
		record.CreatedAt = *createdAt
	}
	if updatedAt := parseOptionalTimeValue(row["updated_at"]); updatedAt != nil {
		record.UpdatedAt = *updatedAt
	}
	return record, nil
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

// parseOptionalInt64 safely parses a nullable integer field from the database row.
func parseOptionalInt64(value interface{}) *int64 {
	switch v := value.(type) {
	case int64:
		return &v
	case int:
		converted := int64(v)
		return &converted
	case float64:
		converted := int64(v)
		return &converted
	default:
		return nil
	}
}

// timeLayouts are the timestamp encodings produced by the supported drivers.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// parseOptionalTimeValue safely parses a nullable timestamp field from the database row.
func parseOptionalTimeValue(value interface{}) *time.Time {
	switch v := value.(type) {
	case nil:
		return nil
	case time.Time:
		return &v
	case string:
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, v); err == nil {
				return &parsed
			}
		}
		return nil
	default:
		return nil
	}
}
