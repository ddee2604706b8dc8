// Package cli constructs the pullstrategy command-line interface: a single
// Cobra root command backed by the Viper configuration loader and zap
// logging, plus the exit-code mapping used by main.
package cli
