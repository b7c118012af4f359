// Package config provides centralized configuration management for the
// station report tool. It handles loading configuration from multiple
// sources, validation, and the fixed workbook constants (column and sheet
// names) that the report contract depends on.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file (stationreport.yaml)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern STATIONS_* for namespacing:
//
//	STATIONS_REPORT_INPUT_FILE=/data/KidStationsDocs.xlsx
//	STATIONS_REPORT_OUTPUT_FILE=/data/analysis.xlsx
//	STATIONS_REPORT_HEADER_ROW=1
//	STATIONS_LOGGING_LEVEL=debug
//	STATIONS_TELEMETRY_ENABLE_TRACING=true
//
// # Path Management
//
// Paths resolves data/input, data/reports and logs relative to the
// executable, never the working directory:
//
//	paths, err := config.GetPaths()
//	input := paths.DefaultInputFile()
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
