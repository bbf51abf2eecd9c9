// Package observability provides structured logging, operation spans, and
// Prometheus metrics for the LinkyBoard API.
//
// This package implements:
//   - Structured logging with contextual fields (zap-based)
//   - Scoped operation spans with success/error outcomes
//   - AI-operation spans with token-usage accounting
//   - Prometheus-compatible metrics collection and text exposition
//
// The registry is an explicit dependency, not a global: construct one per
// process (or per test) and pass it to the Tracker and middleware.
package observability
