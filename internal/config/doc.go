// Package config defines the run configuration for bucketcrypt.
//
// A [Config] is assembled in three layers: built-in defaults, an optional
// YAML file, and explicit command-line flags ([Overrides]). The result is
// checked by [Config.Validate] before any request is sent to the storage
// service, so a bad page size or an unknown cipher never costs a network
// call.
package config
