// Package ui renders command lifecycle events as human-readable console lines.
//
// Structured diagnostics keep flowing through zap fields; this package only
// decides how a git invocation reads to the operator and at which level.
package ui
