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

// Package schema bootstraps the content and runtime database schemas at startup.
package schema

import (
	"fmt"

	"github.com/pixelforge/beacon/internal/system/database/client"
	"github.com/pixelforge/beacon/internal/system/database/model"
	"github.com/pixelforge/beacon/internal/system/log"
)

// contentTables holds the DDL for the managed site content tables.
var contentTables = []model.DBQuery{
	{
		ID: "SCH-CNT-01",
		Query: `CREATE TABLE IF NOT EXISTS PRICING_PLAN (
			PLAN_ID VARCHAR(36) PRIMARY KEY,
			NAME VARCHAR(255) NOT NULL,
			DESCRIPTION TEXT,
			PRICE INTEGER NOT NULL DEFAULT 0,
			CURRENCY VARCHAR(10) NOT NULL DEFAULT 'USD',
			BILLING_PERIOD VARCHAR(20),
			SERVICE_TYPE VARCHAR(50),
			FEATURES TEXT,
			IS_POPULAR BOOLEAN NOT NULL DEFAULT FALSE,
			IS_ACTIVE BOOLEAN NOT NULL DEFAULT TRUE,
			DISPLAY_ORDER INTEGER NOT NULL DEFAULT 0,
			CREATED_AT TIMESTAMP NOT NULL,
			UPDATED_AT TIMESTAMP NOT NULL
		)`,
	},
	{
		ID: "SCH-CNT-02",
		Query: `CREATE TABLE IF NOT EXISTS FEATURE (
			FEATURE_ID VARCHAR(36) PRIMARY KEY,
			TITLE VARCHAR(255) NOT NULL,
			DESCRIPTION TEXT,
			ICON VARCHAR(100),
			CATEGORY VARCHAR(100),
			IS_ACTIVE BOOLEAN NOT NULL DEFAULT TRUE,
			DISPLAY_ORDER INTEGER NOT NULL DEFAULT 0,
			CREATED_AT TIMESTAMP NOT NULL,
			UPDATED_AT TIMESTAMP NOT NULL
		)`,
	},
	{
		ID: "SCH-CNT-03",
		Query: `CREATE TABLE IF NOT EXISTS TESTIMONIAL (
			TESTIMONIAL_ID VARCHAR(36) PRIMARY KEY,
			AUTHOR_NAME VARCHAR(255) NOT NULL,
			AUTHOR_TITLE VARCHAR(255),
			COMPANY VARCHAR(255),
			CONTENT TEXT NOT NULL,
			RATING INTEGER NOT NULL DEFAULT 5,
			AVATAR_URL TEXT,
			IS_FEATURED BOOLEAN NOT NULL DEFAULT FALSE,
			IS_ACTIVE BOOLEAN NOT NULL DEFAULT TRUE,
			DISPLAY_ORDER INTEGER NOT NULL DEFAULT 0,
			CREATED_AT TIMESTAMP NOT NULL,
			UPDATED_AT TIMESTAMP NOT NULL
		)`,
	},
	{
		ID: "SCH-CNT-04",
		Query: `CREATE TABLE IF NOT EXISTS FAQ (
			FAQ_ID VARCHAR(36) PRIMARY KEY,
			QUESTION TEXT NOT NULL,
			ANSWER TEXT NOT NULL,
			CATEGORY VARCHAR(100),
			IS_ACTIVE BOOLEAN NOT NULL DEFAULT TRUE,
			DISPLAY_ORDER INTEGER NOT NULL DEFAULT 0,
			CREATED_AT TIMESTAMP NOT NULL,
			UPDATED_AT TIMESTAMP NOT NULL
		)`,
	},
	{
		ID: "SCH-CNT-05",
		Query: `CREATE TABLE IF NOT EXISTS CONTACT_INFO (
			CONTACT_ID VARCHAR(36) PRIMARY KEY,
			CONTACT_TYPE VARCHAR(50) NOT NULL,
			CONTACT_VALUE TEXT NOT NULL,
			LABEL VARCHAR(255),
			IS_ACTIVE BOOLEAN NOT NULL DEFAULT TRUE,
			DISPLAY_ORDER INTEGER NOT NULL DEFAULT 0,
			CREATED_AT TIMESTAMP NOT NULL,
			UPDATED_AT TIMESTAMP NOT NULL
		)`,
	},
	{
		ID: "SCH-CNT-06",
		Query: `CREATE TABLE IF NOT EXISTS SITE_SETTING (
			SETTING_ID VARCHAR(36) PRIMARY KEY,
			SETTING_KEY VARCHAR(255) NOT NULL UNIQUE,
			SETTING_VALUE TEXT,
			VALUE_TYPE VARCHAR(20) NOT NULL DEFAULT 'string',
			IS_ACTIVE BOOLEAN NOT NULL DEFAULT TRUE,
			CREATED_AT TIMESTAMP NOT NULL,
			UPDATED_AT TIMESTAMP NOT NULL
		)`,
	},
	{
		ID: "SCH-CNT-07",
		Query: `CREATE TABLE IF NOT EXISTS ADDON_SERVICE (
			ADDON_ID VARCHAR(36) PRIMARY KEY,
			NAME VARCHAR(255) NOT NULL,
			DESCRIPTION TEXT,
			PRICE INTEGER NOT NULL DEFAULT 0,
			CURRENCY VARCHAR(10) NOT NULL DEFAULT 'USD',
			SERVICE_TYPE VARCHAR(50),
			IS_ACTIVE BOOLEAN NOT NULL DEFAULT TRUE,
			DISPLAY_ORDER INTEGER NOT NULL DEFAULT 0,
			CREATED_AT TIMESTAMP NOT NULL,
			UPDATED_AT TIMESTAMP NOT NULL
		)`,
	},
	{
		ID: "SCH-CNT-08",
		Query: `CREATE TABLE IF NOT EXISTS HERO_SECTION (
			HERO_ID VARCHAR(36) PRIMARY KEY,
			HEADLINE TEXT NOT NULL,
			SUBHEADLINE TEXT NOT NULL,
			CTA_TEXT VARCHAR(100) NOT NULL DEFAULT 'Get Started',
			CTA_VARIANT VARCHAR(20) NOT NULL DEFAULT 'default',
			SECONDARY_CTA_TEXT VARCHAR(100),
			SECONDARY_CTA_VARIANT VARCHAR(20),
			BACKGROUND_VIDEO VARCHAR(500),
			IS_ACTIVE BOOLEAN NOT NULL DEFAULT TRUE,
			CREATED_AT TIMESTAMP NOT NULL,
			UPDATED_AT TIMESTAMP NOT NULL
		)`,
	},
	{
		ID: "SCH-CNT-09",
		Query: `CREATE TABLE IF NOT EXISTS PROCESS_STEP (
			PROCESS_STEP_ID VARCHAR(36) PRIMARY KEY,
			STEP_NUMBER INTEGER NOT NULL,
			TITLE VARCHAR(200) NOT NULL,
			DESCRIPTION TEXT NOT NULL,
			ICON VARCHAR(100),
			DETAILS TEXT,
			IS_ACTIVE BOOLEAN NOT NULL DEFAULT TRUE,
			DISPLAY_ORDER INTEGER NOT NULL DEFAULT 0,
			CREATED_AT TIMESTAMP NOT NULL,
			UPDATED_AT TIMESTAMP NOT NULL
		)`,
	},
}

// runtimeTables holds the DDL for the onboarding flow tables.
var runtimeTables = []model.DBQuery{
	{
		ID: "SCH-RUN-01",
		Query: `CREATE TABLE IF NOT EXISTS ONBOARDING_STEP (
			STEP_ID VARCHAR(36) PRIMARY KEY,
			STEP_NUMBER INTEGER NOT NULL,
			STEP_NAME VARCHAR(50) NOT NULL,
			TITLE VARCHAR(255),
			DESCRIPTION TEXT,
			REQUIRED_FIELDS TEXT,
			OPTIONAL_FIELDS TEXT,
			VALIDATION_SCHEMA TEXT,
			SERVICE_TYPES TEXT,
			SKIP_CONDITIONS TEXT,
			NEXT_STEP_CONDITIONS TEXT,
			IS_CONDITIONAL BOOLEAN NOT NULL DEFAULT FALSE,
			BACK_ALLOWED BOOLEAN NOT NULL DEFAULT TRUE,
			DISPLAY_ORDER INTEGER NOT NULL DEFAULT 0,
			PROGRESS_WEIGHT INTEGER NOT NULL DEFAULT 1,
			ESTIMATED_TIME INTEGER NOT NULL DEFAULT 0,
			IS_ACTIVE BOOLEAN NOT NULL DEFAULT TRUE,
			IS_REQUIRED BOOLEAN NOT NULL DEFAULT TRUE,
			CREATED_AT TIMESTAMP NOT NULL,
			UPDATED_AT TIMESTAMP NOT NULL
		)`,
	},
	{
		ID: "SCH-RUN-02",
		Query: `CREATE TABLE IF NOT EXISTS STEP_PROGRESS (
			PROGRESS_ID VARCHAR(36) PRIMARY KEY,
			SESSION_ID VARCHAR(36) NOT NULL,
			STEP_ID VARCHAR(36) NOT NULL,
			STEP_NUMBER INTEGER NOT NULL,
			STEP_NAME VARCHAR(50) NOT NULL,
			STATUS VARCHAR(20) NOT NULL DEFAULT 'pending',
			STEP_DATA TEXT,
			VALIDATION_ERRORS TEXT,
			USER_INPUT TEXT,
			STARTED_AT TIMESTAMP,
			COMPLETED_AT TIMESTAMP,
			EXITED_AT TIMESTAMP,
			TIME_SPENT INTEGER,
			ATTEMPT_COUNT INTEGER NOT NULL DEFAULT 1,
			PREVIOUS_STEP_ID VARCHAR(36),
			NEXT_STEP_ID VARCHAR(36),
			NAVIGATION_HISTORY TEXT,
			USER_AGENT TEXT,
			DEVICE_TYPE VARCHAR(20),
			VERSION INTEGER NOT NULL DEFAULT 1,
			CREATED_AT TIMESTAMP NOT NULL,
			UPDATED_AT TIMESTAMP NOT NULL,
			UNIQUE (SESSION_ID, STEP_ID)
		)`,
	},
	{
		ID: "SCH-RUN-03",
		Query: `CREATE TABLE IF NOT EXISTS ONBOARDING_ANALYTICS (
			ANALYTICS_ID VARCHAR(36) PRIMARY KEY,
			SESSION_ID VARCHAR(36) NOT NULL UNIQUE,
			SERVICE_TYPE VARCHAR(50) NOT NULL,
			TOTAL_STEPS INTEGER NOT NULL DEFAULT 0,
			COMPLETED_STEPS INTEGER NOT NULL DEFAULT 0,
			SKIPPED_STEPS INTEGER NOT NULL DEFAULT 0,
			ERROR_STEPS INTEGER NOT NULL DEFAULT 0,
			TOTAL_TIME_SPENT INTEGER NOT NULL DEFAULT 0,
			AVERAGE_STEP_TIME INTEGER NOT NULL DEFAULT 0,
			FASTEST_STEP VARCHAR(50),
			SLOWEST_STEP VARCHAR(50),
			COMPLETION_RATE INTEGER NOT NULL DEFAULT 0,
			CONVERSION_STATUS VARCHAR(20) NOT NULL DEFAULT 'in_progress',
			ABANDONED_AT VARCHAR(50),
			BACK_NAVIGATION_COUNT INTEGER NOT NULL DEFAULT 0,
			ERROR_COUNT INTEGER NOT NULL DEFAULT 0,
			RETRY_COUNT INTEGER NOT NULL DEFAULT 0,
			PERFORMANCE_SCORE INTEGER,
			USER_EXPERIENCE_SCORE INTEGER,
			TECHNICAL_ISSUES TEXT,
			CURRENT_STEP_ID VARCHAR(36),
			DEVICE_TYPE VARCHAR(20),
			USER_AGENT TEXT,
			REFERRER_URL TEXT,
			VERSION INTEGER NOT NULL DEFAULT 1,
			CREATED_AT TIMESTAMP NOT NULL,
			UPDATED_AT TIMESTAMP NOT NULL
		)`,
	},
	{
		ID:    "SCH-RUN-04",
		Query: `CREATE INDEX IF NOT EXISTS IDX_STEP_PROGRESS_SESSION ON STEP_PROGRESS (SESSION_ID)`,
	},
	{
		ID:    "SCH-RUN-05",
		Query: `CREATE INDEX IF NOT EXISTS IDX_ANALYTICS_CREATED_AT ON ONBOARDING_ANALYTICS (CREATED_AT)`,
	},
}

// BootstrapContent creates the content tables if they do not already exist.
func BootstrapContent(dbClient client.DBClientInterface) error {
	return execute(dbClient, contentTables, "content")
}

// BootstrapRuntime creates the onboarding runtime tables if they do not already exist.
func BootstrapRuntime(dbClient client.DBClientInterface) error {
	return execute(dbClient, runtimeTables, "runtime")
}

func execute(dbClient client.DBClientInterface, queries []model.DBQuery, dbName string) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "SchemaBootstrap"))

	for _, query := range queries {
		if _, err := dbClient.Execute(query); err != nil {
			return fmt.Errorf("failed to execute schema statement %s against %s database: %w",
				query.GetID(), dbName, err)
		}
	}

	logger.Debug("Schema bootstrap completed", log.String("database", dbName))
	return nil
}
