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

// Package constants defines constants for the managed content API.
package constants

import (
	"github.com/pixelforge/beacon/internal/content/model"
	"github.com/pixelforge/beacon/internal/system/error/serviceerror"
)

// ContentCacheName is the cache name for content records.
const ContentCacheName = "contentRecords"

// Entities is the registry of managed content entities keyed by their URL segment.
var Entities = map[string]model.EntityDescriptor{
	"pricing-plans": {
		Name:     "pricing-plans",
		Table:    "PRICING_PLAN",
		IDColumn: "PLAN_ID",
		WritableColumns: []string{"NAME", "DESCRIPTION", "PRICE", "CURRENCY", "BILLING_PERIOD",
			"SERVICE_TYPE", "FEATURES", "IS_POPULAR", "IS_ACTIVE", "DISPLAY_ORDER"},
		FilterColumns: []string{"SERVICE_TYPE", "IS_ACTIVE", "IS_POPULAR", "BILLING_PERIOD"},
		OrderBy:       "DISPLAY_ORDER",
	},
	"features": {
		Name:            "features",
		Table:           "FEATURE",
		IDColumn:        "FEATURE_ID",
		WritableColumns: []string{"TITLE", "DESCRIPTION", "ICON", "CATEGORY", "IS_ACTIVE", "DISPLAY_ORDER"},
		FilterColumns:   []string{"CATEGORY", "IS_ACTIVE"},
		OrderBy:         "DISPLAY_ORDER",
	},
	"testimonials": {
		Name:     "testimonials",
		Table:    "TESTIMONIAL",
		IDColumn: "TESTIMONIAL_ID",
		WritableColumns: []string{"AUTHOR_NAME", "AUTHOR_TITLE", "COMPANY", "CONTENT", "RATING",
			"AVATAR_URL", "IS_FEATURED", "IS_ACTIVE", "DISPLAY_ORDER"},
		FilterColumns: []string{"IS_FEATURED", "IS_ACTIVE", "COMPANY"},
		OrderBy:       "DISPLAY_ORDER",
	},
	"faqs": {
		Name:            "faqs",
		Table:           "FAQ",
		IDColumn:        "FAQ_ID",
		WritableColumns: []string{"QUESTION", "ANSWER", "CATEGORY", "IS_ACTIVE", "DISPLAY_ORDER"},
		FilterColumns:   []string{"CATEGORY", "IS_ACTIVE"},
		OrderBy:         "DISPLAY_ORDER",
	},
	"contact-info": {
		Name:            "contact-info",
		Table:           "CONTACT_INFO",
		IDColumn:        "CONTACT_ID",
		WritableColumns: []string{"CONTACT_TYPE", "CONTACT_VALUE", "LABEL", "IS_ACTIVE", "DISPLAY_ORDER"},
		FilterColumns:   []string{"CONTACT_TYPE", "IS_ACTIVE"},
		OrderBy:         "DISPLAY_ORDER",
	},
	"site-settings": {
		Name:            "site-settings",
		Table:           "SITE_SETTING",
		IDColumn:        "SETTING_ID",
		WritableColumns: []string{"SETTING_KEY", "SETTING_VALUE", "VALUE_TYPE", "IS_ACTIVE"},
		FilterColumns:   []string{"SETTING_KEY", "VALUE_TYPE", "IS_ACTIVE"},
		OrderBy:         "SETTING_KEY",
	},
	"hero-sections": {
		Name:     "hero-sections",
		Table:    "HERO_SECTION",
		IDColumn: "HERO_ID",
		WritableColumns: []string{"HEADLINE", "SUBHEADLINE", "CTA_TEXT", "CTA_VARIANT",
			"SECONDARY_CTA_TEXT", "SECONDARY_CTA_VARIANT", "BACKGROUND_VIDEO", "IS_ACTIVE"},
		FilterColumns: []string{"IS_ACTIVE"},
		OrderBy:       "CREATED_AT",
	},
	"process-steps": {
		Name:     "process-steps",
		Table:    "PROCESS_STEP",
		IDColumn: "PROCESS_STEP_ID",
		WritableColumns: []string{"STEP_NUMBER", "TITLE", "DESCRIPTION", "ICON", "DETAILS",
			"IS_ACTIVE", "DISPLAY_ORDER"},
		FilterColumns: []string{"IS_ACTIVE", "STEP_NUMBER"},
		OrderBy:       "DISPLAY_ORDER",
	},
	"addon-services": {
		Name:     "addon-services",
		Table:    "ADDON_SERVICE",
		IDColumn: "ADDON_ID",
		WritableColumns: []string{"NAME", "DESCRIPTION", "PRICE", "CURRENCY", "SERVICE_TYPE",
			"IS_ACTIVE", "DISPLAY_ORDER"},
		FilterColumns: []string{"SERVICE_TYPE", "IS_ACTIVE"},
		OrderBy:       "DISPLAY_ORDER",
	},
}

// Client errors for content operations.
var (
	// ErrorUnknownEntity is returned when the requested entity is not managed.
	ErrorUnknownEntity = serviceerror.ServiceError{
		Code:             "CNT-1001",
		Type:             serviceerror.ClientErrorType,
		Error:            "Unknown content entity",
		ErrorDescription: "The requested content entity does not exist",
	}
	// ErrorRecordNotFound is returned when no record exists for the given identifier.
	ErrorRecordNotFound = serviceerror.ServiceError{
		Code:             "CNT-1002",
		Type:             serviceerror.ClientErrorType,
		Error:            "Record not found",
		ErrorDescription: "No content record exists for the provided id",
	}
	// ErrorInvalidRequestFormat is returned when the request body cannot be decoded.
	ErrorInvalidRequestFormat = serviceerror.ServiceError{
		Code:             "CNT-1003",
		Type:             serviceerror.ClientErrorType,
		Error:            "Invalid request format",
		ErrorDescription: "The request body is malformed",
	}
	// ErrorInvalidFilter is returned when a listing filter targets an unsupported column.
	ErrorInvalidFilter = serviceerror.ServiceError{
		Code:             "CNT-1004",
		Type:             serviceerror.ClientErrorType,
		Error:            "Invalid filter",
		ErrorDescription: "The listing cannot be filtered on the requested attribute",
	}
	// ErrorNoWritableFields is returned when a write carries no known fields.
	ErrorNoWritableFields = serviceerror.ServiceError{
		Code:             "CNT-1005",
		Type:             serviceerror.ClientErrorType,
		Error:            "No writable fields",
		ErrorDescription: "The request body contains no fields that can be written",
	}
)

// Server errors for content operations.
var (
	// ErrorInternalServerError is a generic server side failure.
	ErrorInternalServerError = serviceerror.ServiceError{
		Code:             "CNT-5001",
		Type:             serviceerror.ServerErrorType,
		Error:            "Internal server error",
		ErrorDescription: "An unexpected error occurred while processing the request",
	}
)
