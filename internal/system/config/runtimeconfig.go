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

package config

import "sync"

// BeaconRuntime holds the runtime configuration for the Beacon server.
type BeaconRuntime struct {
	BeaconHome string `yaml:"beacon_home"`
	Config     Config `yaml:"config"`
}

var (
	runtimeConfig *BeaconRuntime
	once          sync.Once
)

// InitializeBeaconRuntime initializes the BeaconRuntime configuration.
func InitializeBeaconRuntime(beaconHome string, config *Config) error {
	once.Do(func() {
		runtimeConfig = &BeaconRuntime{
			BeaconHome: beaconHome,
			Config:     *config,
		}
	})

	return nil
}

// GetBeaconRuntime returns the BeaconRuntime configuration.
func GetBeaconRuntime() *BeaconRuntime {
	if runtimeConfig == nil {
		panic("BeaconRuntime is not initialized")
	}
	return runtimeConfig
}

// ResetBeaconRuntime resets the BeaconRuntime.
// This should only be used in tests to reset the singleton state.
func ResetBeaconRuntime() {
	runtimeConfig = nil
	once = sync.Once{}
}
