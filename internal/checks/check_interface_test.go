package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raven-betanet/elfhdr/internal/elfheader"
)

type stubCheck struct {
	id     string
	status CheckStatus
}

func (s *stubCheck) ID() string          { return s.id }
func (s *stubCheck) Description() string { return "stub " + s.id }
func (s *stubCheck) Execute(v *elfheader.View) CheckResult {
	return CheckResult{Status: s.status, Message: "stubbed"}
}

func TestCheckRegistry(t *testing.T) {
	registry := NewCheckRegistry()

	require.NoError(t, registry.Register(&stubCheck{id: "b", status: StatusPass}))
	require.NoError(t, registry.Register(&stubCheck{id: "a", status: StatusFail}))
	require.NoError(t, registry.Register(&stubCheck{id: "c", status: StatusSkip}))

	err := registry.Register(&stubCheck{id: "a"})
	assert.EqualError(t, err, "check a already registered")

	check, ok := registry.Get("a")
	require.True(t, ok)
	assert.Equal(t, "a", check.ID())

	_, ok = registry.Get("zzz")
	assert.False(t, ok)

	var ids []string
	for _, c := range registry.List() {
		ids = append(ids, c.ID())
	}
	assert.Equal(t, []string{"b", "a", "c"}, ids)
}

func TestCheckRunner_RunAll(t *testing.T) {
	registry := NewCheckRegistry()
	require.NoError(t, registry.Register(&stubCheck{id: "one", status: StatusPass}))
	require.NoError(t, registry.Register(&stubCheck{id: "two", status: StatusFail}))
	require.NoError(t, registry.Register(&stubCheck{id: "three", status: StatusSkip}))
	require.NoError(t, registry.Register(&stubCheck{id: "four", status: StatusPass}))

	report := NewCheckRunner(registry).RunAll("/bin/true", nil)

	assert.Equal(t, "/bin/true", report.File)
	assert.Equal(t, CheckSummary{Total: 4, Passed: 2, Failed: 1, Skipped: 1}, report.Summary)
	require.Len(t, report.Results, 4)
	assert.Equal(t, "one", report.Results[0].ID)
	assert.Equal(t, "stub one", report.Results[0].Description)
	assert.Equal(t, StatusFail, report.Results[1].Status)
}

func TestCheckRunner_RunSelected(t *testing.T) {
	registry := NewCheckRegistry()
	require.NoError(t, registry.Register(&stubCheck{id: "one", status: StatusPass}))
	require.NoError(t, registry.Register(&stubCheck{id: "two", status: StatusFail}))

	runner := NewCheckRunner(registry)

	report, err := runner.RunSelected("x", nil, []string{"two"})
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.Equal(t, 1, report.Summary.Failed)

	_, err = runner.RunSelected("x", nil, []string{"one", "missing"})
	assert.EqualError(t, err, "unknown check: missing")
}

func TestNewDefaultRegistry(t *testing.T) {
	registry := NewDefaultRegistry()
	assert.Len(t, registry.List(), len(DefaultChecks()))

	seen := map[string]bool{}
	for _, c := range registry.List() {
		assert.False(t, seen[c.ID()], "duplicate id %s", c.ID())
		seen[c.ID()] = true
		assert.NotEmpty(t, c.Description())
	}
}
