package checks

import (
	"fmt"
	"time"

	"github.com/raven-betanet/elfhdr/internal/elfheader"
)

// HeaderCheck defines the interface that all header checks must implement
type HeaderCheck interface {
	// ID returns the unique identifier for this check (e.g., "ident-class")
	ID() string

	// Description returns a short description of what this check validates
	Description() string

	// Execute runs the check against a decoded header
	Execute(v *elfheader.View) CheckResult
}

// CheckStatus represents the possible outcomes of a check
type CheckStatus string

const (
	StatusPass CheckStatus = "pass"
	StatusFail CheckStatus = "fail"
	StatusSkip CheckStatus = "skip"
)

// CheckResult contains the outcome of a check execution
type CheckResult struct {
	ID          string                 `json:"id"`
	Description string                 `json:"description"`
	Status      CheckStatus            `json:"status"`
	Message     string                 `json:"message"`
	Details     map[string]interface{} `json:"details,omitempty"`
	Duration    time.Duration          `json:"duration"`
}

// CheckRegistry manages an ordered collection of checks
type CheckRegistry struct {
	checks []HeaderCheck
	index  map[string]int
}

// NewCheckRegistry creates a new check registry
func NewCheckRegistry() *CheckRegistry {
	return &CheckRegistry{
		index: make(map[string]int),
	}
}

// Register adds a check to the registry. IDs must be unique.
func (r *CheckRegistry) Register(check HeaderCheck) error {
	if _, exists := r.index[check.ID()]; exists {
		return fmt.Errorf("check %s already registered", check.ID())
	}
	r.index[check.ID()] = len(r.checks)
	r.checks = append(r.checks, check)
	return nil
}

// Get retrieves a check by ID
func (r *CheckRegistry) Get(id string) (HeaderCheck, bool) {
	i, exists := r.index[id]
	if !exists {
		return nil, false
	}
	return r.checks[i], true
}

// List returns all registered checks in registration order
func (r *CheckRegistry) List() []HeaderCheck {
	checks := make([]HeaderCheck, len(r.checks))
	copy(checks, r.checks)
	return checks
}

// CheckRunner executes checks
type CheckRunner struct {
	registry *CheckRegistry
}

// NewCheckRunner creates a new check runner
func NewCheckRunner(registry *CheckRegistry) *CheckRunner {
	return &CheckRunner{
		registry: registry,
	}
}

// CheckReport contains the results of running multiple checks
type CheckReport struct {
	File    string        `json:"file"`
	Results []CheckResult `json:"results"`
	Summary CheckSummary  `json:"summary"`
}

// CheckSummary contains summary statistics for a check report
type CheckSummary struct {
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// RunAll executes all registered checks against a decoded header
func (r *CheckRunner) RunAll(file string, v *elfheader.View) *CheckReport {
	return r.run(file, v, r.registry.List())
}

// RunSelected executes specific checks by ID; unknown IDs are an error
func (r *CheckRunner) RunSelected(file string, v *elfheader.View, checkIDs []string) (*CheckReport, error) {
	selected := make([]HeaderCheck, 0, len(checkIDs))
	for _, id := range checkIDs {
		check, exists := r.registry.Get(id)
		if !exists {
			return nil, fmt.Errorf("unknown check: %s", id)
		}
		selected = append(selected, check)
	}
	return r.run(file, v, selected), nil
}

func (r *CheckRunner) run(file string, v *elfheader.View, checks []HeaderCheck) *CheckReport {
	results := make([]CheckResult, 0, len(checks))
	for _, check := range checks {
		start := time.Now()
		result := check.Execute(v)
		result.ID = check.ID()
		result.Description = check.Description()
		result.Duration = time.Since(start)
		results = append(results, result)
	}

	return &CheckReport{
		File:    file,
		Results: results,
		Summary: calculateSummary(results),
	}
}

// calculateSummary calculates summary statistics from check results
func calculateSummary(results []CheckResult) CheckSummary {
	summary := CheckSummary{Total: len(results)}

	for _, result := range results {
		switch result.Status {
		case StatusPass:
			summary.Passed++
		case StatusFail:
			summary.Failed++
		case StatusSkip:
			summary.Skipped++
		}
	}

	return summary
}
