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

package client

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/pixelforge/beacon/internal/system/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type DBClientTestSuite struct {
	suite.Suite
	mockDB   *sql.DB
	mock     sqlmock.Sqlmock
	dbClient DBClientInterface
}

func TestDBClientSuite(t *testing.T) {
	suite.Run(t, new(DBClientTestSuite))
}

func (suite *DBClientTestSuite) SetupTest() {
	var err error
	suite.mockDB, suite.mock, err = sqlmock.New()
	if err != nil {
		suite.T().Fatalf("Failed to create mock database: %v", err)
	}

	db := model.NewDB(suite.mockDB)
	suite.dbClient = NewDBClient(db, "mock")
}

func (suite *DBClientTestSuite) TearDownTest() {
	if suite.mock != nil {
		if err := suite.mock.ExpectationsWereMet(); err != nil {
			suite.T().Fatalf("There were unfulfilled expectations: %v", err)
		}
	}
}

func (suite *DBClientTestSuite) TestQuerySuccess() {
	testQuery := model.DBQuery{
		ID:    "test_query_success",
		Query: "SELECT step_id, step_name FROM onboarding_step WHERE step_order = ?",
	}
	args := []interface{}{1}
	mockArgs := []driver.Value{1}

	columns := []string{"STEP_ID", "step_name"}
	rows := sqlmock.NewRows(columns).
		AddRow("step-1", "service_selection").
		AddRow("step-2", "basic_info")
	suite.mock.ExpectQuery("SELECT step_id, step_name FROM onboarding_step WHERE step_order = ?").
		WithArgs(mockArgs...).
		WillReturnRows(rows)

	results, err := suite.dbClient.Query(testQuery, args...)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), results, 2)
	// Column keys are lowercased regardless of how the driver reports them.
	assert.Equal(suite.T(), "step-1", results[0]["step_id"])
	assert.Equal(suite.T(), "service_selection", results[0]["step_name"])
	assert.Equal(suite.T(), "step-2", results[1]["step_id"])
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestQueryEmptyResults() {
	testQuery := model.DBQuery{
		ID:    "test_query_empty",
		Query: "SELECT step_id, step_name FROM onboarding_step WHERE step_order = ?",
	}
	args := []interface{}{999}
	mockArgs := []driver.Value{999}

	columns := []string{"step_id", "step_name"}
	rows := sqlmock.NewRows(columns)
	suite.mock.ExpectQuery("SELECT step_id, step_name FROM onboarding_step WHERE step_order = ?").
		WithArgs(mockArgs...).
		WillReturnRows(rows)

	results, err := suite.dbClient.Query(testQuery, args...)

	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), results)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestQueryDatabaseError() {
	testQuery := model.DBQuery{
		ID:    "test_query_error",
		Query: "SELECT step_id FROM non_existent_table",
	}

	expectedErr := errors.New("table not found")
	suite.mock.ExpectQuery("SELECT step_id FROM non_existent_table").
		WillReturnError(expectedErr)

	results, err := suite.dbClient.Query(testQuery)

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), expectedErr, err)
	assert.Nil(suite.T(), results)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestExecuteSuccess() {
	testQuery := model.DBQuery{
		ID:    "test_execute_success",
		Query: "UPDATE step_progress SET status = ? WHERE progress_id = ?",
	}
	args := []interface{}{"completed", "prog-1"}
	mockArgs := []driver.Value{"completed", "prog-1"}

	suite.mock.ExpectExec("UPDATE step_progress SET status = \\? WHERE progress_id = \\?").
		WithArgs(mockArgs...).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rowsAffected, err := suite.dbClient.Execute(testQuery, args...)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), rowsAffected)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestExecuteZeroRowsAffected() {
	testQuery := model.DBQuery{
		ID:    "test_execute_zero",
		Query: "UPDATE step_progress SET status = ? WHERE progress_id = ?",
	}
	args := []interface{}{"completed", "missing"}
	mockArgs := []driver.Value{"completed", "missing"}

	suite.mock.ExpectExec("UPDATE step_progress SET status = \\? WHERE progress_id = \\?").
		WithArgs(mockArgs...).
		WillReturnResult(sqlmock.NewResult(0, 0))

	rowsAffected, err := suite.dbClient.Execute(testQuery, args...)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(0), rowsAffected)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestExecuteDatabaseError() {
	testQuery := model.DBQuery{
		ID:    "test_execute_db_error",
		Query: "UPDATE non_existent_table SET status = ?",
	}
	args := []interface{}{"completed"}
	mockArgs := []driver.Value{"completed"}

	expectedErr := errors.New("table not found")
	suite.mock.ExpectExec("UPDATE non_existent_table SET status = \\?").
		WithArgs(mockArgs...).
		WillReturnError(expectedErr)

	rowsAffected, err := suite.dbClient.Execute(testQuery, args...)

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), expectedErr, err)
	assert.Equal(suite.T(), int64(0), rowsAffected)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestExecuteRowsAffectedError() {
	testQuery := model.DBQuery{
		ID:    "test_execute_rows_error",
		Query: "INSERT INTO onboarding_step (step_name) VALUES (?)",
	}
	args := []interface{}{"review"}
	mockArgs := []driver.Value{"review"}

	result := sqlmock.NewErrorResult(errors.New("rows affected error"))
	suite.mock.ExpectExec("INSERT INTO onboarding_step \\(step_name\\) VALUES \\(\\?\\)").
		WithArgs(mockArgs...).
		WillReturnResult(result)

	rowsAffected, err := suite.dbClient.Execute(testQuery, args...)

	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "rows affected error")
	assert.Equal(suite.T(), int64(0), rowsAffected)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestBeginTxSuccess() {
	suite.mock.ExpectBegin()

	tx, err := suite.dbClient.BeginTx()

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), tx)
	assert.Implements(suite.T(), (*model.TxInterface)(nil), tx)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestBeginTxError() {
	expectedErr := errors.New("transaction error")
	suite.mock.ExpectBegin().WillReturnError(expectedErr)

	tx, err := suite.dbClient.BeginTx()

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), expectedErr, err)
	assert.Nil(suite.T(), tx)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestTransactionExecAndQuery() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec("UPDATE step_progress SET status = \\? WHERE progress_id = \\?").
		WithArgs("completed", "prog-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	rows := sqlmock.NewRows([]string{"status"}).AddRow("completed")
	suite.mock.ExpectQuery("SELECT status FROM step_progress WHERE progress_id = \\?").
		WithArgs("prog-1").
		WillReturnRows(rows)
	suite.mock.ExpectCommit()

	tx, err := suite.dbClient.BeginTx()
	assert.NoError(suite.T(), err)

	affected, err := tx.Exec(model.DBQuery{
		ID:    "test_tx_exec",
		Query: "UPDATE step_progress SET status = ? WHERE progress_id = ?",
	}, "completed", "prog-1")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), affected)

	results, err := tx.Query(model.DBQuery{
		ID:    "test_tx_query",
		Query: "SELECT status FROM step_progress WHERE progress_id = ?",
	}, "prog-1")
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), results, 1)
	assert.Equal(suite.T(), "completed", results[0]["status"])

	assert.NoError(suite.T(), tx.Commit())
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestTransactionRollback() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec("UPDATE step_progress SET status = \\?").
		WithArgs("completed").
		WillReturnError(errors.New("constraint violation"))
	suite.mock.ExpectRollback()

	tx, err := suite.dbClient.BeginTx()
	assert.NoError(suite.T(), err)

	_, err = tx.Exec(model.DBQuery{
		ID:    "test_tx_rollback",
		Query: "UPDATE step_progress SET status = ?",
	}, "completed")
	assert.Error(suite.T(), err)

	assert.NoError(suite.T(), tx.Rollback())
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestCloseSuccess() {
	suite.mock.ExpectClose()

	err := suite.dbClient.Close()

	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}
