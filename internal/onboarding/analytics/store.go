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

// Package analytics maintains the per-session rollup that is recomputed after
// every flow mutation, plus the cross-session summary view.
package analytics

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

// SummaryRow carries the raw aggregates of the summary query.
type SummaryRow struct {
	TotalSessions     int
	CompletedSessions int
	AbandonedSessions int
	AvgCompletionRate float64
	AvgTotalTime      float64
}

// StoreInterface defines the storage contract for session analytics records.
type StoreInterface interface {
	GetBySessionID(sessionID string) (*model.Analytics, error)
	CreateAnalytics(tx dbmodel.TxInterface, record *model.Analytics) error
	UpdateAnalytics(tx dbmodel.TxInterface, record *model.Analytics) error
	GetSummary(since time.Time) (*SummaryRow, error)
}

// Store is the default implementation of StoreInterface.
type Store struct {
	DBProvider provider.DBProviderInterface
}

// NewStore creates a new analytics store.
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

// GetBySessionID retrieves the analytics record of a session. Returns nil when absent.
func (s *Store) GetBySessionID(sessionID string) (*model.Analytics, error) {
	dbClient, err := s.getClient()
	if err != nil {
		return nil, err
	}

	results, err := dbClient.Query(QueryGetAnalyticsBySessionID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query session analytics: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	return buildAnalyticsFromResultRow(results[0])
}

// CreateAnalytics inserts the analytics record within the given transaction.
func (s *Store) CreateAnalytics(tx dbmodel.TxInterface, record *model.Analytics) error {
	technicalIssues, err := utils.SerializeJSON(record.TechnicalIssues)
	if err != nil {
		return fmt.Errorf("failed to serialize technical issues: %w", err)
	}

	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now
	if record.Version == 0 {
		record.Version = 1
	}

	_, err = tx.Exec(QueryCreateAnalytics, record.ID, record.SessionID, string(record.ServiceType),
		record.TotalSteps, record.CompletedSteps, record.SkippedSteps, record.ErrorSteps,
		record.TotalTimeSpent, record.AverageStepTime, record.FastestStep, record.SlowestStep,
		record.CompletionRate, string(record.ConversionStatus), record.AbandonedAt,
		record.BackNavigationCount, record.ErrorCount, record.RetryCount, record.PerformanceScore,
		record.UserExperienceScore, technicalIssues, record.CurrentStepID, record.DeviceType,
		record.UserAgent, record.ReferrerURL, record.Version, record.CreatedAt, record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create session analytics: %w", err)
	}
	return nil
}

// UpdateAnalytics persists the derived fields of an analytics record within
// the given transaction. Returns model.ErrConcurrentUpdate when the version
// guard misses.
func (s *Store) UpdateAnalytics(tx dbmodel.TxInterface, record *model.Analytics) error {
	now := time.Now().UTC()
	affected, err := tx.Exec(QueryUpdateAnalytics, record.CompletedSteps, record.SkippedSteps,
		record.ErrorSteps, record.TotalTimeSpent, record.AverageStepTime, record.FastestStep,
		record.SlowestStep, record.CompletionRate, string(record.ConversionStatus), record.AbandonedAt,
		record.BackNavigationCount, record.ErrorCount, record.RetryCount, record.CurrentStepID,
		now, record.ID, record.Version)
	if err != nil {
		return fmt.Errorf("failed to update session analytics: %w", err)
	}
	if affected == 0 {
		return model.ErrConcurrentUpdate
	}

	record.Version++
	record.UpdatedAt = now
	return nil
}

// GetSummary aggregates the analytics records created at or after the given time.
func (s *Store) GetSummary(since time.Time) (*SummaryRow, error) {
	dbClient, err := s.getClient()
	if err != nil {
		return nil, err
	}

	results, err := dbClient.Query(QueryGetSummaryAnalytics, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query summary analytics: %w", err)
	}
	if len(results) == 0 {
		return &SummaryRow{}, nil
	}

	row := results[0]
	return &SummaryRow{
		TotalSessions:     parseInt(row["total_sessions"]),
		CompletedSessions: parseInt(row["completed_sessions"]),
		AbandonedSessions: parseInt(row["abandoned_sessions"]),
		AvgCompletionRate: parseFloat(row["avg_completion_rate"]),
		AvgTotalTime:      parseFloat(row["avg_total_time"]),
	}, nil
}

// buildAnalyticsFromResultRow builds an Analytics from a database result row.
func buildAnalyticsFromResultRow(row map[string]interface{}) (*model.Analytics, error) {
	analyticsID, ok := row["analytics_id"].(string)
	if !ok {
		return nil, errors.New("failed to parse analytics_id as string")
	}
	sessionID, ok := row["session_id"].(string)
	if !ok {
		return nil, errors.New("failed to parse session_id as string")
	}

	technicalIssues, err := utils.ParseJSONStringArray(parseString(row["technical_issues"]))
	if err != nil {
		return nil, fmt.Errorf("failed to parse technical_issues: %w", err)
	}

	record := &model.Analytics{
		ID:                  analyticsID,
		SessionID:           sessionID,
		ServiceType:         constants.ServiceType(parseString(row["service_type"])),
		TotalSteps:          parseInt(row["total_steps"]),
		CompletedSteps:      parseInt(row["completed_steps"]),
		SkippedSteps:        parseInt(row["skipped_steps"]),
		ErrorSteps:          parseInt(row["error_steps"]),
		TotalTimeSpent:      int64(parseInt(row["total_time_spent"])),
		AverageStepTime:     int64(parseInt(row["average_step_time"])),
		FastestStep:         parseOptionalString(row["fastest_step"]),
		SlowestStep:         parseOptionalString(row["slowest_step"]),
		CompletionRate:      parseInt(row["completion_rate"]),
		ConversionStatus:    constants.ConversionStatus(parseString(row["conversion_status"])),
		AbandonedAt:         parseOptionalString(row["abandoned_at"]),
		BackNavigationCount: parseInt(row["back_navigation_count"]),
		ErrorCount:          parseInt(row["error_count"]),
		RetryCount:          parseInt(row["retry_count"]),
		PerformanceScore:    parseOptionalInt(row["performance_score"]),
		UserExperienceScore: parseOptionalInt(row["user_experience_score"]),
		TechnicalIssues:     technicalIssues,
		CurrentStepID:       parseString(row["current_step_id"]),
		DeviceType:          parseString(row["device_type"]),
		UserAgent:           parseString(row["user_agent"]),
		ReferrerURL:         parseString(row["referrer_url"]),
		Version:             int64(parseInt(row["version"])),
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

// parseOptionalString safely parses a nullable string field from the database row.
func parseOptionalString(value interface{}) *string {
	if value == nil {
		return nil
	}
	str := parseString(value)
	if str == "" {
		return nil
	}
	return &str
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

// parseOptionalInt safely parses a nullable integer field from the database row.
func parseOptionalInt(value interface{}) *int {
	switch v := value.(type) {
	case int64:
		converted := int(v)
		return &converted
	case int:
		return &v
	case float64:
		converted := int(v)
		return &converted
	default:
		return nil
	}
}

// parseFloat safely parses a numeric aggregate from the database row.
func parseFloat(value interface{}) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	case []byte:
		return parseFloatString(string(v))
	case string:
		return parseFloatString(v)
	default:
		return 0
	}
}

func parseFloatString(value string) float64 {
	var parsed float64
	if _, err := fmt.Sscanf(value, "%g", &parsed); err != nil {
		return 0
	}
	return parsed
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
