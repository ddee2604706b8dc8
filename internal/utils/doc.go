// Package utils holds the CLI's ambient plumbing: ConfigurationLoader layers
// embedded defaults, configuration files and PULLSTRATEGY_ environment
// variables through Viper, and LoggerFactory builds zap loggers that write to
// stderr and, optionally, to a rotating log file.
package utils
