// Package logger provides structured logging on top of zerolog.
//
// A Logger is built once from the logging configuration and passed to
// every component that needs it; there is no package-level logger. Output
// goes to a human-readable console writer, optionally teed into a file.
// Nop() returns a silent logger for tests.
package logger
