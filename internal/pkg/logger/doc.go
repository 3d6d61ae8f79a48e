// Package logger provides the process-wide Logger used by the CLI, the
// services and the repositories. Console output is rendered with tint,
// file output is JSON rotated by lumberjack.
package logger
