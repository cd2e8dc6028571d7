package health

import (
	"context"
	"sync"
	"time"
)

// Manager coordinates health checks and aggregates results.
// It runs checks in parallel with timeouts and reports them in the order
// they were added.
type Manager struct {
	checkers []Checker
	timeout  time.Duration
	mu       sync.RWMutex
}

// NamedResult pairs a checker name with its result.
type NamedResult struct {
	Name   string  `json:"name" yaml:"name"`
	Result *Result `json:"result" yaml:"result"`
}

// Report is the outcome of running every registered check.
type Report struct {
	Status Status        `json:"status" yaml:"status"`
	Checks []NamedResult `json:"checks" yaml:"checks"`
}

// NewManager creates a new health check manager with default 5-second timeout.
func NewManager() *Manager {
	return &Manager{
		checkers: make([]Checker, 0),
		timeout:  5 * time.Second,
	}
}

// WithTimeout sets a custom timeout for health checks.
func (m *Manager) WithTimeout(timeout time.Duration) *Manager {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeout = timeout
	return m
}

// AddChecker registers a new health checker.
func (m *Manager) AddChecker(checker Checker) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkers = append(m.checkers, checker)
}

// Check runs all registered health checks in parallel.
// Each check runs with a timeout to prevent hanging.
func (m *Manager) Check(ctx context.Context) Report {
	m.mu.RLock()
	checkers := make([]Checker, len(m.checkers))
	copy(checkers, m.checkers)
	timeout := m.timeout
	m.mu.RUnlock()

	checks := make([]NamedResult, len(checkers))
	wg := sync.WaitGroup{}

	for i, checker := range checkers {
		wg.Add(1)
		go func(i int, c Checker) {
			defer wg.Done()

			checkCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			start := time.Now()
			result := c.Check(checkCtx)
			if result == nil {
				result = Unhealthy("check returned no result")
			}
			if result.Latency == 0 {
				result.Latency = time.Since(start)
			}

			// each goroutine owns its slot
			checks[i] = NamedResult{Name: c.Name(), Result: result}
		}(i, checker)
	}

	wg.Wait()
	return Report{Status: OverallStatus(checks), Checks: checks}
}

// OverallStatus determines the overall health from individual results:
// unhealthy if any check is unhealthy, else degraded if any is degraded.
func OverallStatus(checks []NamedResult) Status {
	hasDegraded := false
	for _, c := range checks {
		switch c.Result.Status {
		case StatusUnhealthy:
			return StatusUnhealthy
		case StatusDegraded:
			hasDegraded = true
		}
	}

	if hasDegraded {
		return StatusDegraded
	}
	return StatusHealthy
}

// CheckNames returns the names of all registered checkers.
func (m *Manager) CheckNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, len(m.checkers))
	for i, checker := range m.checkers {
		names[i] = checker.Name()
	}
	return names
}

// Count returns the number of registered checkers.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.checkers)
}
