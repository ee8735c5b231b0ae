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

// Package store persists managed content records. Statements are generated
// from the entity descriptors, so one store serves every content table.
package store

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/pixelforge/beacon/internal/content/model"
	"github.com/pixelforge/beacon/internal/system/database/client"
	dbmodel "github.com/pixelforge/beacon/internal/system/database/model"
	"github.com/pixelforge/beacon/internal/system/database/provider"
	dbutils "github.com/pixelforge/beacon/internal/system/database/utils"
)

// StoreInterface defines the storage contract for content records. Column
// values are keyed by uppercase column name; results come back keyed by
// lowercase column name.
type StoreInterface interface {
	List(desc model.EntityDescriptor, filters map[string]interface{},
		limit, offset int) ([]model.Record, error)
	Count(desc model.EntityDescriptor, filters map[string]interface{}) (int, error)
	GetByID(desc model.EntityDescriptor, id string) (model.Record, error)
	Create(desc model.EntityDescriptor, id string, values map[string]interface{}) error
	Update(desc model.EntityDescriptor, id string, values map[string]interface{}) (bool, error)
	Delete(desc model.EntityDescriptor, id string) (bool, error)
}

// Store is the default implementation of StoreInterface.
type Store struct {
	DBProvider provider.DBProviderInterface
}

// NewStore creates a new content store.
func NewStore(dbProvider provider.DBProviderInterface) StoreInterface {
	return &Store{
		DBProvider: dbProvider,
	}
}

func (s *Store) getClient() (client.DBClientInterface, error) {
	dbClient, err := s.DBProvider.GetDBClient(provider.DBNameContent)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}
	return dbClient, nil
}

// List retrieves a page of records matching the filters, in the entity's
// display order.
func (s *Store) List(desc model.EntityDescriptor, filters map[string]interface{},
	limit, offset int) ([]model.Record, error) {
	dbClient, err := s.getClient()
	if err != nil {
		return nil, err
	}

	baseQuery := fmt.Sprintf("SELECT * FROM %s WHERE 1 = 1", desc.Table)
	query, args, err := dbutils.BuildColumnFilterQuery("CNQ-LST-"+desc.Name, baseQuery, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}

	n := len(args)
	query.PostgresQuery += fmt.Sprintf(" ORDER BY %s ASC LIMIT $%d OFFSET $%d", desc.OrderBy, n+1, n+2)
	query.Query = query.PostgresQuery
	query.SQLiteQuery += fmt.Sprintf(" ORDER BY %s ASC LIMIT ? OFFSET ?", desc.OrderBy)
	args = append(args, limit, offset)

	results, err := dbClient.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s records: %w", desc.Name, err)
	}

	records := make([]model.Record, 0, len(results))
	for _, row := range results {
		records = append(records, model.Record(row))
	}
	return records, nil
}

// Count returns the number of records matching the filters.
func (s *Store) Count(desc model.EntityDescriptor, filters map[string]interface{}) (int, error) {
	dbClient, err := s.getClient()
	if err != nil {
		return 0, err
	}

	baseQuery := fmt.Sprintf("SELECT COUNT(*) AS TOTAL FROM %s WHERE 1 = 1", desc.Table)
	query, args, err := dbutils.BuildColumnFilterQuery("CNQ-CNT-"+desc.Name, baseQuery, filters)
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	results, err := dbClient.Query(query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s records: %w", desc.Name, err)
	}
	if len(results) == 0 {
		return 0, nil
	}

	switch total := results[0]["total"].(type) {
	case int64:
		return int(total), nil
	case int:
		return total, nil
	case float64:
		return int(total), nil
	default:
		return 0, fmt.Errorf("unexpected total type in %s count result", desc.Name)
	}
}

// GetByID retrieves one record. Returns nil when absent.
func (s *Store) GetByID(desc model.EntityDescriptor, id string) (model.Record, error) {
	dbClient, err := s.getClient()
	if err != nil {
		return nil, err
	}

	query := dbmodel.DBQuery{
		ID:          "CNQ-GET-" + desc.Name,
		Query:       fmt.Sprintf("SELECT * FROM %s WHERE %s = $1", desc.Table, desc.IDColumn),
		SQLiteQuery: fmt.Sprintf("SELECT * FROM %s WHERE %s = ?", desc.Table, desc.IDColumn),
	}

	results, err := dbClient.Query(query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s record: %w", desc.Name, err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return model.Record(results[0]), nil
}

// Create inserts a record with the given identity and column values.
func (s *Store) Create(desc model.EntityDescriptor, id string, values map[string]interface{}) error {
	dbClient, err := s.getClient()
	if err != nil {
		return err
	}

	columns := sortedColumns(values)
	now := time.Now().UTC()

	allColumns := desc.IDColumn
	args := []interface{}{id}
	for _, column := range columns {
		allColumns += ", " + column
		args = append(args, values[column])
	}
	allColumns += ", CREATED_AT, UPDATED_AT"
	args = append(args, now, now)

	pgPlaceholders := "$1"
	sqlitePlaceholders := "?"
	for i := 1; i < len(args); i++ {
		pgPlaceholders += fmt.Sprintf(", $%d", i+1)
		sqlitePlaceholders += ", ?"
	}

	query := dbmodel.DBQuery{
		ID: "CNQ-CRT-" + desc.Name,
		Query: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			desc.Table, allColumns, pgPlaceholders),
		SQLiteQuery: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			desc.Table, allColumns, sqlitePlaceholders),
	}

	if _, err := dbClient.Execute(query, args...); err != nil {
		return fmt.Errorf("failed to create %s record: %w", desc.Name, err)
	}
	return nil
}

// Update overwrites the given columns of a record. Reports whether a record
// was matched.
func (s *Store) Update(desc model.EntityDescriptor, id string,
	values map[string]interface{}) (bool, error) {
	dbClient, err := s.getClient()
	if err != nil {
		return false, err
	}

	columns := sortedColumns(values)
	if len(columns) == 0 {
		return false, errors.New("no columns to update")
	}
	now := time.Now().UTC()

	pgSet := ""
	sqliteSet := ""
	args := make([]interface{}, 0, len(columns)+2)
	for i, column := range columns {
		if i > 0 {
			pgSet += ", "
			sqliteSet += ", "
		}
		pgSet += fmt.Sprintf("%s = $%d", column, i+1)
		sqliteSet += fmt.Sprintf("%s = ?", column)
		args = append(args, values[column])
	}
	pgSet += fmt.Sprintf(", UPDATED_AT = $%d", len(columns)+1)
	sqliteSet += ", UPDATED_AT = ?"
	args = append(args, now, id)

	query := dbmodel.DBQuery{
		ID: "CNQ-UPD-" + desc.Name,
		Query: fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d",
			desc.Table, pgSet, desc.IDColumn, len(columns)+2),
		SQLiteQuery: fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?",
			desc.Table, sqliteSet, desc.IDColumn),
	}

	affected, err := dbClient.Execute(query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to update %s record: %w", desc.Name, err)
	}
	return affected > 0, nil
}

// Delete removes a record. Reports whether a record was matched.
func (s *Store) Delete(desc model.EntityDescriptor, id string) (bool, error) {
	dbClient, err := s.getClient()
	if err != nil {
		return false, err
	}

	query := dbmodel.DBQuery{
		ID:          "CNQ-DEL-" + desc.Name,
		Query:       fmt.Sprintf("DELETE FROM %s WHERE %s = $1", desc.Table, desc.IDColumn),
		SQLiteQuery: fmt.Sprintf("DELETE FROM %s WHERE %s = ?", desc.Table, desc.IDColumn),
	}

	affected, err := dbClient.Execute(query, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete %s record: %w", desc.Name, err)
	}
	return affected > 0, nil
}

// sortedColumns returns the value columns in sorted order so generated
// statements are deterministic.
func sortedColumns(values map[string]interface{}) []string {
	columns := make([]string, 0, len(values))
	for column := range values {
		columns = append(columns, column)
	}
	sort.Strings(columns)
	return columns
}
