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

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
	tempDir string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()
}

func (suite *ConfigTestSuite) writeConfigFile(name, content string) string {
	path := filepath.Join(suite.tempDir, name)
	err := os.WriteFile(path, []byte(content), 0600)
	assert.NoError(suite.T(), err)
	return path
}

func (suite *ConfigTestSuite) TestLoadConfigSuccess() {
	content := `
server:
  hostname: "localhost"
  port: 8095
  http_only: true

database:
  content:
    type: "sqlite"
    path: "repository/database/content.db"
    options: "journal_mode=WAL&busy_timeout=5000"
  runtime:
    type: "postgres"
    hostname: "localhost"
    port: 5432
    name: "runtimedb"
    username: "beacon"
    password: "secret"
    sslmode: "disable"
    max_open_conns: 10

cache:
  disabled: false
  type: "inmemory"
  size: 500
  ttl: 300
  properties:
    - name: "stepCatalog"
      size: 100
      ttl: 600

onboarding:
  summary_window_days: 30

cors:
  allowed_origins:
    - "https://example.com"
`
	path := suite.writeConfigFile("deployment.yaml", content)

	cfg, err := LoadConfig(path)
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), cfg)

	assert.Equal(suite.T(), "localhost", cfg.Server.Hostname)
	assert.Equal(suite.T(), 8095, cfg.Server.Port)
	assert.True(suite.T(), cfg.Server.HTTPOnly)

	assert.Equal(suite.T(), "sqlite", cfg.Database.Content.Type)
	assert.Equal(suite.T(), "repository/database/content.db", cfg.Database.Content.Path)
	assert.Equal(suite.T(), "postgres", cfg.Database.Runtime.Type)
	assert.Equal(suite.T(), 5432, cfg.Database.Runtime.Port)
	assert.Equal(suite.T(), 10, cfg.Database.Runtime.MaxOpenConns)

	assert.False(suite.T(), cfg.Cache.Disabled)
	assert.Equal(suite.T(), 300, cfg.Cache.TTL)
	assert.Len(suite.T(), cfg.Cache.Properties, 1)
	assert.Equal(suite.T(), "stepCatalog", cfg.Cache.Properties[0].Name)

	assert.Equal(suite.T(), 30, cfg.Onboarding.SummaryWindowDays)
	assert.Equal(suite.T(), []string{"https://example.com"}, cfg.CORS.AllowedOrigins)
}

func (suite *ConfigTestSuite) TestLoadConfigFileNotFound() {
	cfg, err := LoadConfig(filepath.Join(suite.tempDir, "missing.yaml"))
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), cfg)
}

func (suite *ConfigTestSuite) TestLoadConfigInvalidYAML() {
	path := suite.writeConfigFile("invalid.yaml", "server: [not: valid")
	cfg, err := LoadConfig(path)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), cfg)
}

func (suite *ConfigTestSuite) TestLoadConfigEmptyFile() {
	path := suite.writeConfigFile("empty.yaml", "")
	cfg, err := LoadConfig(path)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), cfg)
}

func (suite *ConfigTestSuite) TestRuntimeConfigLifecycle() {
	ResetBeaconRuntime()
	defer ResetBeaconRuntime()

	assert.Panics(suite.T(), func() {
		_ = GetBeaconRuntime()
	})

	cfg := &Config{Server: ServerConfig{Hostname: "localhost", Port: 8095}}
	err := InitializeBeaconRuntime("/opt/beacon", cfg)
	assert.NoError(suite.T(), err)

	runtime := GetBeaconRuntime()
	assert.Equal(suite.T(), "/opt/beacon", runtime.BeaconHome)
	assert.Equal(suite.T(), 8095, runtime.Config.Server.Port)

	// Second initialization is a no-op.
	err = InitializeBeaconRuntime("/other", &Config{})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "/opt/beacon", GetBeaconRuntime().BeaconHome)
}
