// Package api adapts HTTP requests to the chart and user services: it
// decodes and validates payloads, calls the services and maps their errors
// to status codes and safe messages.
package api
