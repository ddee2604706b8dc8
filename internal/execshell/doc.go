// Package execshell provides structured helpers for invoking external tools.
//
// ShellExecutor wraps a CommandRunner with zap diagnostics and lifecycle
// events, OSCommandRunner executes processes through os/exec, and
// CommandMessageFormatter turns git invocations into operator-facing text.
package execshell
