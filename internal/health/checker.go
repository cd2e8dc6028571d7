// Package health implements the checks behind `chief doctor`.
//
// The package follows the standard health check pattern with:
//   - Checker interface for pluggable health checks
//   - Result type with status, message, and details
//   - Status enum (Healthy, Degraded, Unhealthy)
//
// Example usage:
//
//	manager := health.NewManager()
//	manager.AddChecker(health.NewGitChecker(g))
//	manager.AddChecker(health.NewControlDirChecker(paths))
//
//	report := manager.Check(ctx)
//	for _, c := range report.Checks {
//	    log.Info("Health check", "name", c.Name, "status", c.Result.Status)
//	}
package health

import (
	"context"
	"time"
)

// Checker defines the interface for health checks.
type Checker interface {
	// Name returns the unique name of this health check.
	// Should be lowercase with hyphens (e.g., "git-binary", "control-dir").
	Name() string

	// Check performs the health check and returns the result.
	// It should respect the context deadline and return quickly.
	Check(ctx context.Context) *Result
}

// Status represents the health check status.
type Status string

const (
	// StatusHealthy indicates the checked component is fully operational.
	StatusHealthy Status = "healthy"

	// StatusDegraded indicates chief works but something needs attention,
	// such as a stale current-worktree pointer.
	StatusDegraded Status = "degraded"

	// StatusUnhealthy indicates chief cannot work until the problem is fixed.
	StatusUnhealthy Status = "unhealthy"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// Result represents the result of a health check.
type Result struct {
	Status  Status                 `json:"status" yaml:"status"`
	Message string                 `json:"message" yaml:"message"`
	Details map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty"`
	Latency time.Duration          `json:"latency" yaml:"latency"`
}

// NewResult creates a new health check result with the given status and message.
func NewResult(status Status, message string) *Result {
	return &Result{
		Status:  status,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// WithDetail adds a detail to the result and returns the result for chaining.
func (r *Result) WithDetail(key string, value interface{}) *Result {
	r.Details[key] = value
	return r
}

// WithLatency sets the latency and returns the result for chaining.
func (r *Result) WithLatency(latency time.Duration) *Result {
	r.Latency = latency
	return r
}

// Healthy creates a healthy result with the given message.
func Healthy(message string) *Result {
	return NewResult(StatusHealthy, message)
}

// Degraded creates a degraded result with the given message.
func Degraded(message string) *Result {
	return NewResult(StatusDegraded, message)
}

// Unhealthy creates an unhealthy result with the given message.
func Unhealthy(message string) *Result {
	return NewResult(StatusUnhealthy, message)
}
