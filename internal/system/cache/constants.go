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

package cache

// cacheType defines the type of cache implementation.
type cacheType string

const (
	cacheTypeInMemory cacheType = "inmemory"
)

const (
	// defaultCacheSize is the maximum number of entries when not configured.
	defaultCacheSize = 1000
	// defaultCacheTTL is the entry time to live in seconds when not configured.
	defaultCacheTTL = 300
	// defaultCleanupInterval is the expired entry sweep interval in seconds.
	defaultCleanupInterval = 300
)
