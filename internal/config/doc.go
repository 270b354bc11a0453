// Package config provides centralized configuration management for the
// allocation analyzer. It handles loading configuration from multiple
// sources, validation, and provides a type-safe API for accessing
// configuration values throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration file (etfgeo.yaml)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern ETFGEO_* for namespacing:
//
//	ETFGEO_INPUT_FILE=eimi_holdings.csv
//	ETFGEO_OUTPUT_FORMAT=json
//	ETFGEO_LOGGING_LEVEL=debug
//	ETFGEO_CLASSIFICATION_FAVOR_EQUITY=true
//
// The classification policy deserves a note: by default, rows with
// ambiguous cash evidence are excluded from the equity aggregate
// (conservative bias toward accurate country attribution). Setting
// favor_equity flips that bias for rows whose only evidence is a bare
// currency-code token.
package config
