// Package logger provides structured logging for the application.
//
// It configures a log/slog JSON logger from ServerConfig and carries
// request-scoped loggers through context.Context so handlers and services
// log with the request's trace ID attached.
package logger
