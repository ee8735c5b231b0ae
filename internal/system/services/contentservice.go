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

package services

import (
	"net/http"

	"github.com/pixelforge/beacon/internal/content/handler"
	"github.com/pixelforge/beacon/internal/content/service"
	"github.com/pixelforge/beacon/internal/content/store"
	"github.com/pixelforge/beacon/internal/system/database/provider"
	"github.com/pixelforge/beacon/internal/system/middleware"
)

// ContentService defines the service for handling managed content API requests.
type ContentService struct {
	contentHandler *handler.ContentHandler
}

// NewContentService creates a new instance of ContentService.
func NewContentService(mux *http.ServeMux) ServiceInterface {
	contentService := service.NewService(store.NewStore(provider.GetDBProvider()))

	instance := &ContentService{
		contentHandler: handler.NewContentHandler(contentService),
	}
	instance.RegisterRoutes(mux)

	return instance
}

// RegisterRoutes registers the routes for the ContentService.
func (s *ContentService) RegisterRoutes(mux *http.ServeMux) {
	opts1 := middleware.CORSOptions{
		AllowedMethods:   "GET, POST",
		AllowedHeaders:   "Content-Type, Authorization",
		AllowCredentials: true,
	}
	mux.HandleFunc(middleware.WithCORS("OPTIONS /content/{entity}",
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}, opts1))
	mux.HandleFunc(middleware.WithCORS("GET /content/{entity}",
		s.contentHandler.HandleContentListRequest, opts1))
	mux.HandleFunc(middleware.WithCORS("POST /content/{entity}",
		s.contentHandler.HandleContentPostRequest, opts1))

	opts2 := middleware.CORSOptions{
		AllowedMethods:   "GET, PATCH, DELETE",
		AllowedHeaders:   "Content-Type, Authorization",
		AllowCredentials: true,
	}
	mux.HandleFunc(middleware.WithCORS("OPTIONS /content/{entity}/{id}",
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}, opts2))
	mux.HandleFunc(middleware.WithCORS("GET /content/{entity}/{id}",
		s.contentHandler.HandleContentGetRequest, opts2))
	mux.HandleFunc(middleware.WithCORS("PATCH /content/{entity}/{id}",
		s.contentHandler.HandleContentPatchRequest, opts2))
	mux.HandleFunc(middleware.WithCORS("DELETE /content/{entity}/{id}",
		s.contentHandler.HandleContentDeleteRequest, opts2))
}
