// Package config provides configuration loading, merging, and validation
// facilities for the go-identity server.
//
// Configuration is assembled from multiple sources. For every field the first
// source providing a non-zero value wins:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry point is [GetStructuredConfig].
package config
