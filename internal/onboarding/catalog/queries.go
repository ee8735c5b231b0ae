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

import "github.com/pixelforge/beacon/internal/system/database/model"

var (
	// QueryGetActiveSteps retrieves all active step configurations in flow order.
	QueryGetActiveSteps = model.DBQuery{
		ID: "ONQ-CAT-01",
		Query: "SELECT STEP_ID, STEP_NUMBER, STEP_NAME, TITLE, DESCRIPTION, REQUIRED_FIELDS, OPTIONAL_FIELDS, " +
			"VALIDATION_SCHEMA, SERVICE_TYPES, SKIP_CONDITIONS, NEXT_STEP_CONDITIONS, IS_CONDITIONAL, " +
			"BACK_ALLOWED, DISPLAY_ORDER, PROGRESS_WEIGHT, ESTIMATED_TIME, IS_ACTIVE, IS_REQUIRED " +
			"FROM ONBOARDING_STEP WHERE IS_ACTIVE = TRUE ORDER BY STEP_NUMBER ASC",
		SQLiteQuery: "SELECT STEP_ID, STEP_NUMBER, STEP_NAME, TITLE, DESCRIPTION, REQUIRED_FIELDS, " +
			"OPTIONAL_FIELDS, VALIDATION_SCHEMA, SERVICE_TYPES, SKIP_CONDITIONS, NEXT_STEP_CONDITIONS, " +
			"IS_CONDITIONAL, BACK_ALLOWED, DISPLAY_ORDER, PROGRESS_WEIGHT, ESTIMATED_TIME, IS_ACTIVE, " +
			"IS_REQUIRED FROM ONBOARDING_STEP WHERE IS_ACTIVE = 1 ORDER BY STEP_NUMBER ASC",
	}

	// QueryGetStepByID retrieves a single step configuration by its identifier.
	QueryGetStepByID = model.DBQuery{
		ID: "ONQ-CAT-02",
		Query: "SELECT STEP_ID, STEP_NUMBER, STEP_NAME, TITLE, DESCRIPTION, REQUIRED_FIELDS, OPTIONAL_FIELDS, " +
			"VALIDATION_SCHEMA, SERVICE_TYPES, SKIP_CONDITIONS, NEXT_STEP_CONDITIONS, IS_CONDITIONAL, " +
			"BACK_ALLOWED, DISPLAY_ORDER, PROGRESS_WEIGHT, ESTIMATED_TIME, IS_ACTIVE, IS_REQUIRED " +
			"FROM ONBOARDING_STEP WHERE STEP_ID = $1",
		SQLiteQuery: "SELECT STEP_ID, STEP_NUMBER, STEP_NAME, TITLE, DESCRIPTION, REQUIRED_FIELDS, " +
			"OPTIONAL_FIELDS, VALIDATION_SCHEMA, SERVICE_TYPES, SKIP_CONDITIONS, NEXT_STEP_CONDITIONS, " +
			"IS_CONDITIONAL, BACK_ALLOWED, DISPLAY_ORDER, PROGRESS_WEIGHT, ESTIMATED_TIME, IS_ACTIVE, " +
			"IS_REQUIRED FROM ONBOARDING_STEP WHERE STEP_ID = ?",
	}

	// QueryCreateStep inserts a step configuration row. Used by the startup seeder.
	QueryCreateStep = model.DBQuery{
		ID: "ONQ-CAT-03",
		Query: "INSERT INTO ONBOARDING_STEP (STEP_ID, STEP_NUMBER, STEP_NAME, TITLE, DESCRIPTION, " +
			"REQUIRED_FIELDS, OPTIONAL_FIELDS, VALIDATION_SCHEMA, SERVICE_TYPES, SKIP_CONDITIONS, " +
			"NEXT_STEP_CONDITIONS, IS_CONDITIONAL, BACK_ALLOWED, DISPLAY_ORDER, PROGRESS_WEIGHT, " +
			"ESTIMATED_TIME, IS_ACTIVE, IS_REQUIRED, CREATED_AT, UPDATED_AT) VALUES " +
			"($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)",
		SQLiteQuery: "INSERT INTO ONBOARDING_STEP (STEP_ID, STEP_NUMBER, STEP_NAME, TITLE, DESCRIPTION, " +
			"REQUIRED_FIELDS, OPTIONAL_FIELDS, VALIDATION_SCHEMA, SERVICE_TYPES, SKIP_CONDITIONS, " +
			"NEXT_STEP_CONDITIONS, IS_CONDITIONAL, BACK_ALLOWED, DISPLAY_ORDER, PROGRESS_WEIGHT, " +
			"ESTIMATED_TIME, IS_ACTIVE, IS_REQUIRED, CREATED_AT, UPDATED_AT) VALUES " +
			"(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
	}

	// QueryCountSteps returns the number of configured steps.
	QueryCountSteps = model.DBQuery{
		ID:    "ONQ-CAT-04",
		Query: "SELECT COUNT(*) AS TOTAL FROM ONBOARDING_STEP",
	}
)
