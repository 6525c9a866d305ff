// Package config loads runtime configuration for ticketsys.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional file selected with -c or -config. Files ending in .yaml or
//     .yml are read as YAML, anything else as JSON. Keys missing from the
//     file keep their previous value.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// (*Config).Validate checks the merged result.
//
// Supported flags
//
//	-n int      directory capacity (slots)
//	-x string   slot hash: xxhash or fnv1a
//	-l string   log level: debug, info, warn, error
//	-f string   log format: text or json
//	-w int      slow command warning threshold (milliseconds, 0 disables)
//
// # File schema
//
//	capacity: 200003
//	hash: xxhash
//	log_level: info
//	log_format: text
//	slow_command_threshold: 100ms
//
// Durations accept strings like "100ms" or integer nanoseconds.
package config
