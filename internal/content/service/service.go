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

// Package service implements the managed content operations: paginated and
// filtered listings plus CRUD over the entity registry.
package service

import (
	"strconv"
	"strings"

	"github.com/pixelforge/beacon/internal/content/constants"
	"github.com/pixelforge/beacon/internal/content/model"
	"github.com/pixelforge/beacon/internal/content/store"
	"github.com/pixelforge/beacon/internal/system/cache"
	sysconst "github.com/pixelforge/beacon/internal/system/constants"
	"github.com/pixelforge/beacon/internal/system/error/serviceerror"
	"github.com/pixelforge/beacon/internal/system/log"
	"github.com/pixelforge/beacon/internal/system/utils"
)

const loggerComponentName = "ContentService"

// ServiceInterface defines the managed content contract. Payload and filter
// keys use the API's snake_case form and map onto table columns.
type ServiceInterface interface {
	ListRecords(entity string, rawFilters map[string]string, limit, offset int) (
		*model.RecordList, *serviceerror.ServiceError)
	GetRecord(entity, id string) (model.Record, *serviceerror.ServiceError)
	CreateRecord(entity string, payload map[string]interface{}) (
		model.Record, *serviceerror.ServiceError)
	UpdateRecord(entity, id string, payload map[string]interface{}) (
		model.Record, *serviceerror.ServiceError)
	DeleteRecord(entity, id string) *serviceerror.ServiceError
}

// Service is the default implementation of ServiceInterface.
type Service struct {
	store       store.StoreInterface
	recordCache cache.CacheInterface[model.Record]
}

// NewService creates a new content service backed by the given store.
func NewService(contentStore store.StoreInterface) ServiceInterface {
	return &Service{
		store:       contentStore,
		recordCache: cache.GetCache[model.Record](constants.ContentCacheName),
	}
}

// ListRecords returns a page of records of an entity. Filters are validated
// against the entity's filterable columns; the page size is clamped to the
// server maximum.
func (s *Service) ListRecords(entity string, rawFilters map[string]string,
	limit, offset int) (*model.RecordList, *serviceerror.ServiceError) {
	desc, svcErr := resolveEntity(entity)
	if svcErr != nil {
		return nil, svcErr
	}

	filters := make(map[string]interface{}, len(rawFilters))
	for key, value := range rawFilters {
		column := strings.ToUpper(utils.SanitizeString(key))
		if !desc.IsFilterColumn(column) {
			return nil, &constants.ErrorInvalidFilter
		}
		filters[column] = coerceFilterValue(value)
	}

	if limit <= 0 {
		limit = sysconst.DefaultPageSize
	}
	if limit > sysconst.MaxPageSize {
		limit = sysconst.MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	records, err := s.store.List(*desc, filters, limit, offset)
	if err != nil {
		return nil, s.serverError("Failed to list content records", err)
	}
	total, err := s.store.Count(*desc, filters)
	if err != nil {
		return nil, s.serverError("Failed to count content records", err)
	}

	return &model.RecordList{
		TotalResults: total,
		Count:        len(records),
		Records:      records,
	}, nil
}

// GetRecord retrieves one record of an entity, serving from the cache when warm.
func (s *Service) GetRecord(entity, id string) (model.Record, *serviceerror.ServiceError) {
	desc, svcErr := resolveEntity(entity)
	if svcErr != nil {
		return nil, svcErr
	}

	cacheKey := recordCacheKey(desc.Name, id)
	if record, found := s.recordCache.Get(cacheKey); found {
		return record, nil
	}

	record, err := s.store.GetByID(*desc, id)
	if err != nil {
		return nil, s.serverError("Failed to get content record", err)
	}
	if record == nil {
		return nil, &constants.ErrorRecordNotFound
	}

	if err := s.recordCache.Set(cacheKey, record); err != nil {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
			Warn("Failed to cache content record", log.Error(err))
	}
	return record, nil
}

// CreateRecord inserts a new record from the writable fields of the payload.
func (s *Service) CreateRecord(entity string, payload map[string]interface{}) (
	model.Record, *serviceerror.ServiceError) {
	desc, svcErr := resolveEntity(entity)
	if svcErr != nil {
		return nil, svcErr
	}

	values := writableValues(desc, payload)
	if len(values) == 0 {
		return nil, &constants.ErrorNoWritableFields
	}

	id := utils.GenerateUUID()
	if err := s.store.Create(*desc, id, values); err != nil {
		return nil, s.serverError("Failed to create content record", err)
	}

	record, err := s.store.GetByID(*desc, id)
	if err != nil {
		return nil, s.serverError("Failed to load created content record", err)
	}
	return record, nil
}

// UpdateRecord overwrites the writable fields of a record present in the payload.
func (s *Service) UpdateRecord(entity, id string, payload map[string]interface{}) (
	model.Record, *serviceerror.ServiceError) {
	desc, svcErr := resolveEntity(entity)
	if svcErr != nil {
		return nil, svcErr
	}

	values := writableValues(desc, payload)
	if len(values) == 0 {
		return nil, &constants.ErrorNoWritableFields
	}

	matched, err := s.store.Update(*desc, id, values)
	if err != nil {
		return nil, s.serverError("Failed to update content record", err)
	}
	if !matched {
		return nil, &constants.ErrorRecordNotFound
	}

	s.recordCache.Delete(recordCacheKey(desc.Name, id))

	record, err := s.store.GetByID(*desc, id)
	if err != nil {
		return nil, s.serverError("Failed to load updated content record", err)
	}
	return record, nil
}

// DeleteRecord removes a record of an entity.
func (s *Service) DeleteRecord(entity, id string) *serviceerror.ServiceError {
	desc, svcErr := resolveEntity(entity)
	if svcErr != nil {
		return svcErr
	}

	matched, err := s.store.Delete(*desc, id)
	if err != nil {
		return s.serverError("Failed to delete content record", err)
	}
	if !matched {
		return &constants.ErrorRecordNotFound
	}

	s.recordCache.Delete(recordCacheKey(desc.Name, id))
	return nil
}

func (s *Service) serverError(message string, err error) *serviceerror.ServiceError {
	log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
		Error(message, log.Error(err))
	return &constants.ErrorInternalServerError
}

func resolveEntity(entity string) (*model.EntityDescriptor, *serviceerror.ServiceError) {
	desc, ok := constants.Entities[entity]
	if !ok {
		return nil, &constants.ErrorUnknownEntity
	}
	return &desc, nil
}

func recordCacheKey(entity, id string) cache.CacheKey {
	return cache.CacheKey{Key: entity + ":" + id}
}

// writableValues maps the payload's snake_case keys onto the entity's
// writable columns, dropping everything else.
func writableValues(desc *model.EntityDescriptor,
	payload map[string]interface{}) map[string]interface{} {
	values := make(map[string]interface{}, len(payload))
	for key, value := range payload {
		column := strings.ToUpper(key)
		if desc.IsWritableColumn(column) {
			values[column] = value
		}
	}
	return values
}

// coerceFilterValue converts a query string filter into the value type the
// column most likely holds.
func coerceFilterValue(value string) interface{} {
	switch value {
	case "true":
		return true
	case "false":
		return false
	}
	if parsed, err := strconv.Atoi(value); err == nil {
		return parsed
	}
	return value
}
