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

package progress

import "github.com/pixelforge/beacon/internal/system/database/model"

const stepProgressColumns = "PROGRESS_ID, SESSION_ID, STEP_ID, STEP_NUMBER, STEP_NAME, STATUS, STEP_DATA, " +
	"VALIDATION_ERRORS, USER_INPUT, STARTED_AT, COMPLETED_AT, EXITED_AT, TIME_SPENT, ATTEMPT_COUNT, " +
	"PREVIOUS_STEP_ID, NEXT_STEP_ID, NAVIGATION_HISTORY, USER_AGENT, DEVICE_TYPE, VERSION, CREATED_AT, UPDATED_AT"

var (
	// QueryGetSessionProgress retrieves all progress records of a session in step order.
	QueryGetSessionProgress = model.DBQuery{
		ID: "ONQ-PRG-01",
		Query: "SELECT " + stepProgressColumns +
			" FROM STEP_PROGRESS WHERE SESSION_ID = $1 ORDER BY STEP_NUMBER ASC",
		SQLiteQuery: "SELECT " + stepProgressColumns +
			" FROM STEP_PROGRESS WHERE SESSION_ID = ? ORDER BY STEP_NUMBER ASC",
	}

	// QueryGetStepProgress retrieves the progress record of one step within a session.
	QueryGetStepProgress = model.DBQuery{
		ID: "ONQ-PRG-02",
		Query: "SELECT " + stepProgressColumns +
			" FROM STEP_PROGRESS WHERE SESSION_ID = $1 AND STEP_ID = $2",
		SQLiteQuery: "SELECT " + stepProgressColumns +
			" FROM STEP_PROGRESS WHERE SESSION_ID = ? AND STEP_ID = ?",
	}

	// QueryCreateStepProgress inserts a progress record at flow start.
	QueryCreateStepProgress = model.DBQuery{
		ID: "ONQ-PRG-03",
		Query: "INSERT INTO STEP_PROGRESS (" + stepProgressColumns + ") VALUES " +
			"($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)",
		SQLiteQuery: "INSERT INTO STEP_PROGRESS (" + stepProgressColumns + ") VALUES " +
			"(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
	}

	// QueryUpdateStepProgress updates the mutable fields of a progress record.
	// The version guard makes concurrent submissions for the same session detectable.
	QueryUpdateStepProgress = model.DBQuery{
		ID: "ONQ-PRG-04",
		Query: "UPDATE STEP_PROGRESS SET STATUS = $1, STEP_DATA = $2, VALIDATION_ERRORS = $3, " +
			"USER_INPUT = $4, STARTED_AT = $5, COMPLETED_AT = $6, EXITED_AT = $7, TIME_SPENT = $8, " +
			"ATTEMPT_COUNT = $9, PREVIOUS_STEP_ID = $10, NEXT_STEP_ID = $11, NAVIGATION_HISTORY = $12, " +
			"VERSION = VERSION + 1, UPDATED_AT = $13 WHERE PROGRESS_ID = $14 AND VERSION = $15",
		SQLiteQuery: "UPDATE STEP_PROGRESS SET STATUS = ?, STEP_DATA = ?, VALIDATION_ERRORS = ?, " +
			"USER_INPUT = ?, STARTED_AT = ?, COMPLETED_AT = ?, EXITED_AT = ?, TIME_SPENT = ?, " +
			"ATTEMPT_COUNT = ?, PREVIOUS_STEP_ID = ?, NEXT_STEP_ID = ?, NAVIGATION_HISTORY = ?, " +
			"VERSION = VERSION + 1, UPDATED_AT = ? WHERE PROGRESS_ID = ? AND VERSION = ?",
	}
)
