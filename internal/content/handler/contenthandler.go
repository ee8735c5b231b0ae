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

// Package handler exposes the managed content API over HTTP.
package handler

import (
	"net/http"
	"strconv"

	"github.com/pixelforge/beacon/internal/content/constants"
	"github.com/pixelforge/beacon/internal/content/service"
	"github.com/pixelforge/beacon/internal/system/error/apierror"
	"github.com/pixelforge/beacon/internal/system/error/serviceerror"
	"github.com/pixelforge/beacon/internal/system/utils"
)

// ContentHandler handles the managed content API requests.
type ContentHandler struct {
	contentService service.ServiceInterface
}

// NewContentHandler creates a new content handler over the given service.
func NewContentHandler(contentService service.ServiceInterface) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
	}
}

// HandleContentListRequest lists records of a content entity. Query parameters
// other than limit and offset are treated as column filters.
func (h *ContentHandler) HandleContentListRequest(w http.ResponseWriter, r *http.Request) {
	entity := r.PathValue("entity")

	limit := 0
	offset := 0
	filters := make(map[string]string)
	for key, values := range r.URL.Query() {
		if len(values) == 0 {
			continue
		}
		switch key {
		case "limit":
			limit, _ = strconv.Atoi(values[0])
		case "offset":
			offset, _ = strconv.Atoi(values[0])
		default:
			filters[key] = values[0]
		}
	}

	list, svcErr := h.contentService.ListRecords(entity, filters, limit, offset)
	if svcErr != nil {
		writeServiceError(w, svcErr)
		return
	}

	utils.WriteJSON(w, http.StatusOK, list)
}

// HandleContentPostRequest creates a record of a content entity.
func (h *ContentHandler) HandleContentPostRequest(w http.ResponseWriter, r *http.Request) {
	entity := r.PathValue("entity")

	payload, err := utils.DecodeJSONBody[map[string]interface{}](r)
	if err != nil {
		writeServiceError(w, &constants.ErrorInvalidRequestFormat)
		return
	}

	record, svcErr := h.contentService.CreateRecord(entity, *payload)
	if svcErr != nil {
		writeServiceError(w, svcErr)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, record)
}

// HandleContentGetRequest retrieves one record of a content entity.
func (h *ContentHandler) HandleContentGetRequest(w http.ResponseWriter, r *http.Request) {
	entity := r.PathValue("entity")
	id := r.PathValue("id")

	record, svcErr := h.contentService.GetRecord(entity, id)
	if svcErr != nil {
		writeServiceError(w, svcErr)
		return
	}

	utils.WriteJSON(w, http.StatusOK, record)
}

// HandleContentPatchRequest updates the provided fields of a record.
func (h *ContentHandler) HandleContentPatchRequest(w http.ResponseWriter, r *http.Request) {
	entity := r.PathValue("entity")
	id := r.PathValue("id")

	payload, err := utils.DecodeJSONBody[map[string]interface{}](r)
	if err != nil {
		writeServiceError(w, &constants.ErrorInvalidRequestFormat)
		return
	}

	record, svcErr := h.contentService.UpdateRecord(entity, id, *payload)
	if svcErr != nil {
		writeServiceError(w, svcErr)
		return
	}

	utils.WriteJSON(w, http.StatusOK, record)
}

// HandleContentDeleteRequest deletes a record of a content entity.
func (h *ContentHandler) HandleContentDeleteRequest(w http.ResponseWriter, r *http.Request) {
	entity := r.PathValue("entity")
	id := r.PathValue("id")

	if svcErr := h.contentService.DeleteRecord(entity, id); svcErr != nil {
		writeServiceError(w, svcErr)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeServiceError maps a service error to its HTTP status and writes the
// API error response.
func writeServiceError(w http.ResponseWriter, svcErr *serviceerror.ServiceError) {
	utils.WriteJSONError(w, statusForServiceError(svcErr), apierror.ErrorResponse{
		Code:        svcErr.Code,
		Message:     svcErr.Error,
		Description: svcErr.ErrorDescription,
	})
}

func statusForServiceError(svcErr *serviceerror.ServiceError) int {
	if svcErr.Type == serviceerror.ServerErrorType {
		return http.StatusInternalServerError
	}
	switch svcErr.Code {
	case constants.ErrorUnknownEntity.Code, constants.ErrorRecordNotFound.Code:
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}
