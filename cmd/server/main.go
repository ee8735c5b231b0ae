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

// Package main is the entry point for starting the Beacon server.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/pixelforge/beacon/internal/onboarding/catalog"
	"github.com/pixelforge/beacon/internal/system/config"
	"github.com/pixelforge/beacon/internal/system/database/provider"
	"github.com/pixelforge/beacon/internal/system/database/schema"
	"github.com/pixelforge/beacon/internal/system/log"
	"github.com/pixelforge/beacon/internal/system/managers"
)

func main() {
	logger := log.GetLogger()

	beaconHome := getBeaconHome(logger)

	cfg := initBeaconConfigurations(logger, beaconHome)
	if cfg == nil {
		logger.Fatal("Failed to initialize configurations")
	}

	initDatabases(logger)

	mux := initMultiplexer(logger)
	if mux == nil {
		logger.Fatal("Failed to initialize multiplexer")
	}

	if cfg.Server.HTTPOnly {
		logger.Info("TLS is not enabled, starting server without TLS")
		startHTTPServer(logger, cfg, mux)
	} else {
		startTLSServer(logger, cfg, mux, beaconHome)
	}
}

// getBeaconHome retrieves and returns the Beacon home directory.
func getBeaconHome(logger *log.Logger) string {
	// Parse project directory from command line arguments.
	projectHome := ""
	projectHomeFlag := flag.String("beaconHome", "", "Path to Beacon home directory")
	flag.Parse()

	if *projectHomeFlag != "" {
		logger.Info("Using beaconHome from command line argument", log.String("beaconHome", *projectHomeFlag))
		projectHome = *projectHomeFlag
	} else {
		// If no command line argument is provided, use the current working directory.
		dir, dirErr := os.Getwd()
		if dirErr != nil {
			logger.Fatal("Failed to get current working directory", log.Error(dirErr))
		}
		projectHome = dir
	}

	return projectHome
}

// initBeaconConfigurations initializes the Beacon configurations.
func initBeaconConfigurations(logger *log.Logger, beaconHome string) *config.Config {
	// Load the configurations.
	configFilePath := path.Join(beaconHome, "repository/conf/deployment.yaml")
	cfg, err := config.LoadConfig(configFilePath)
	if err != nil {
		logger.Fatal("Failed to load configurations", log.Error(err))
	}

	// Initialize runtime configurations.
	if err := config.InitializeBeaconRuntime(beaconHome, cfg); err != nil {
		logger.Fatal("Failed to initialize beacon runtime", log.Error(err))
	}

	return cfg
}

// initDatabases bootstraps the database schemas and seeds the step catalog.
func initDatabases(logger *log.Logger) {
	dbProvider := provider.GetDBProvider()

	contentClient, err := dbProvider.GetDBClient(provider.DBNameContent)
	if err != nil {
		logger.Fatal("Failed to get content database client", log.Error(err))
	}
	if err := schema.BootstrapContent(contentClient); err != nil {
		logger.Fatal("Failed to bootstrap content database schema", log.Error(err))
	}

	runtimeClient, err := dbProvider.GetDBClient(provider.DBNameRuntime)
	if err != nil {
		logger.Fatal("Failed to get runtime database client", log.Error(err))
	}
	if err := schema.BootstrapRuntime(runtimeClient); err != nil {
		logger.Fatal("Failed to bootstrap runtime database schema", log.Error(err))
	}

	if err := catalog.EnsureDefaultSteps(catalog.NewStore(dbProvider)); err != nil {
		logger.Fatal("Failed to seed the onboarding step catalog", log.Error(err))
	}
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer(logger *log.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux)

	// Register the services.
	err := serviceManager.RegisterServices()
	if err != nil {
		logger.Fatal("Failed to register the services", log.Error(err))
	}

	return mux
}

// startTLSServer starts the HTTPS server with TLS configuration.
func startTLSServer(logger *log.Logger, cfg *config.Config, mux *http.ServeMux, beaconHome string) {
	server, serverAddr := createHTTPServer(logger, cfg, mux)

	certFile := path.Join(beaconHome, cfg.Security.CertFile)
	keyFile := path.Join(beaconHome, cfg.Security.KeyFile)

	logger.Info("Beacon server started (HTTPS)...", log.String("address", serverAddr))

	if err := server.ListenAndServeTLS(certFile, keyFile); err != nil {
		logger.Fatal("Failed to serve requests", log.Error(err))
	}
}

// startHTTPServer starts the HTTP server without TLS.
func startHTTPServer(logger *log.Logger, cfg *config.Config, mux *http.ServeMux) {
	server, serverAddr := createHTTPServer(logger, cfg, mux)

	logger.Info("Beacon server started (HTTP)...", log.String("address", serverAddr))

	if err := server.ListenAndServe(); err != nil {
		logger.Fatal("Failed to serve HTTP requests", log.Error(err))
	}
}

// createHTTPServer creates and configures an HTTP server with common settings.
func createHTTPServer(logger *log.Logger, cfg *config.Config, mux *http.ServeMux) (*http.Server, string) {
	// Wrap the multiplexer with AccessLogHandler.
	wrappedMux := log.AccessLogHandler(logger, mux)

	// Build the server address using hostname and port from the configurations.
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Hostname, cfg.Server.Port)

	server := &http.Server{
		Addr:              serverAddr,
		Handler:           wrappedMux,
		ReadHeaderTimeout: 10 * time.Second, // Mitigate Slowloris attacks
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return server, serverAddr
}
