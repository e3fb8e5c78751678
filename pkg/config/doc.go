// Package config provides configuration for sparse column tables and the
// sparsecol CLI.
//
// A Config holds the default policy columns fall back to for rows without a
// value, the logger settings, whether metrics are collected, and column
// tuning such as the dense materialization warning threshold.
//
// # Loading
//
//	cfg, err := config.Load("sparsetable.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	col := column.NewIntColumn(cfg.ColumnOptions()...)
//
// Load starts from NewConfig, overlays the YAML file, then environment
// variables. File contents may reference the environment with ${VAR_NAME}.
// Every key can be overridden by an environment variable with the
// SPARSETABLE_ prefix and dots replaced by underscores:
//
//	SPARSETABLE_DEFAULTS_INT=-1
//	SPARSETABLE_LOGGING_LEVEL=debug
//	SPARSETABLE_COLUMN_MATERIALIZE_WARN_ROWS=1000000
//
// # File Format
//
//	defaults:
//	  int: -1
//	  string: "n/a"
//	  bytes: [0]
//	  chars: [0]
//	logging:
//	  level: info
//	  encoding: console
//	metrics:
//	  enabled: true
//	column:
//	  materialize_warn_rows: 16777216
package config
