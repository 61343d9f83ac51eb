// Package config defines the configuration for a simulation run.
//
// Regardless of how beaconsim is started, directly from Go code or as a
// standalone process from the command line, it uses the Config object defined
// in this package to store and forward configuration options. On top of these
// options, beaconsim relies on a data directory, defined by Config.DataDir,
// where the command line looks for an optional configuration file:
//
//  beaconsim.toml // simulation parameters, overridden by command-line flags
//
// The data directory also hosts the Badger database of run reports when the
// store option is enabled.
package config
