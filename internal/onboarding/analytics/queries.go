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

import "github.com/pixelforge/beacon/internal/system/database/model"

const analyticsColumns = "ANALYTICS_ID, SESSION_ID, SERVICE_TYPE, TOTAL_STEPS, COMPLETED_STEPS, SKIPPED_STEPS, " +
	"ERROR_STEPS, TOTAL_TIME_SPENT, AVERAGE_STEP_TIME, FASTEST_STEP, SLOWEST_STEP, COMPLETION_RATE, " +
	"CONVERSION_STATUS, ABANDONED_AT, BACK_NAVIGATION_COUNT, ERROR_COUNT, RETRY_COUNT, PERFORMANCE_SCORE, " +
	"USER_EXPERIENCE_SCORE, TECHNICAL_ISSUES, CURRENT_STEP_ID, DEVICE_TYPE, USER_AGENT, REFERRER_URL, " +
	"VERSION, CREATED_AT, UPDATED_AT"

var (
	// QueryGetAnalyticsBySessionID retrieves the analytics record of a session.
	QueryGetAnalyticsBySessionID = model.DBQuery{
		ID: "ONQ-ANL-01",
		Query: "SELECT " + analyticsColumns +
			" FROM ONBOARDING_ANALYTICS WHERE SESSION_ID = $1",
		SQLiteQuery: "SELECT " + analyticsColumns +
			" FROM ONBOARDING_ANALYTICS WHERE SESSION_ID = ?",
	}

	// QueryCreateAnalytics inserts the analytics record at flow start.
	QueryCreateAnalytics = model.DBQuery{
		ID: "ONQ-ANL-02",
		Query: "INSERT INTO ONBOARDING_ANALYTICS (" + analyticsColumns + ") VALUES " +
			"($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, " +
			"$21, $22, $23, $24, $25, $26, $27)",
		SQLiteQuery: "INSERT INTO ONBOARDING_ANALYTICS (" + analyticsColumns + ") VALUES " +
			"(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
	}

	// QueryUpdateAnalytics rewrites the derived fields of an analytics record.
	// The version guard makes concurrent recomputes for the same session detectable.
	QueryUpdateAnalytics = model.DBQuery{
		ID: "ONQ-ANL-03",
		Query: "UPDATE ONBOARDING_ANALYTICS SET COMPLETED_STEPS = $1, SKIPPED_STEPS = $2, ERROR_STEPS = $3, " +
			"TOTAL_TIME_SPENT = $4, AVERAGE_STEP_TIME = $5, FASTEST_STEP = $6, SLOWEST_STEP = $7, " +
			"COMPLETION_RATE = $8, CONVERSION_STATUS = $9, ABANDONED_AT = $10, BACK_NAVIGATION_COUNT = $11, " +
			"ERROR_COUNT = $12, RETRY_COUNT = $13, CURRENT_STEP_ID = $14, VERSION = VERSION + 1, " +
			"UPDATED_AT = $15 WHERE ANALYTICS_ID = $16 AND VERSION = $17",
		SQLiteQuery: "UPDATE ONBOARDING_ANALYTICS SET COMPLETED_STEPS = ?, SKIPPED_STEPS = ?, ERROR_STEPS = ?, " +
			"TOTAL_TIME_SPENT = ?, AVERAGE_STEP_TIME = ?, FASTEST_STEP = ?, SLOWEST_STEP = ?, " +
			"COMPLETION_RATE = ?, CONVERSION_STATUS = ?, ABANDONED_AT = ?, BACK_NAVIGATION_COUNT = ?, " +
			"ERROR_COUNT = ?, RETRY_COUNT = ?, CURRENT_STEP_ID = ?, VERSION = VERSION + 1, " +
			"UPDATED_AT = ? WHERE ANALYTICS_ID = ? AND VERSION = ?",
	}

	// QueryGetSummaryAnalytics aggregates session outcomes over a trailing window.
	QueryGetSummaryAnalytics = model.DBQuery{
		ID: "ONQ-ANL-04",
		Query: "SELECT COUNT(*) AS TOTAL_SESSIONS, " +
			"COALESCE(SUM(CASE WHEN CONVERSION_STATUS = 'completed' THEN 1 ELSE 0 END), 0) AS COMPLETED_SESSIONS, " +
			"COALESCE(SUM(CASE WHEN CONVERSION_STATUS = 'abandoned' THEN 1 ELSE 0 END), 0) AS ABANDONED_SESSIONS, " +
			"COALESCE(AVG(COMPLETION_RATE), 0) AS AVG_COMPLETION_RATE, " +
			"COALESCE(AVG(TOTAL_TIME_SPENT), 0) AS AVG_TOTAL_TIME " +
			"FROM ONBOARDING_ANALYTICS WHERE CREATED_AT >= $1",
		SQLiteQuery: "SELECT COUNT(*) AS TOTAL_SESSIONS, " +
			"COALESCE(SUM(CASE WHEN CONVERSION_STATUS = 'completed' THEN 1 ELSE 0 END), 0) AS COMPLETED_SESSIONS, " +
			"COALESCE(SUM(CASE WHEN CONVERSION_STATUS = 'abandoned' THEN 1 ELSE 0 END), 0) AS ABANDONED_SESSIONS, " +
			"COALESCE(AVG(COMPLETION_RATE), 0) AS AVG_COMPLETION_RATE, " +
			"COALESCE(AVG(TOTAL_TIME_SPENT), 0) AS AVG_TOTAL_TIME " +
			"FROM ONBOARDING_ANALYTICS WHERE CREATED_AT >= ?",
	}
)
