// Package chain sequences pairwise comparisons across an ordered list of
// contract versions and aggregates them into one pass/fail picture.
//
// The version list and the label→file resolution are both injected, so the
// orchestrator can be driven from project configuration in production and
// from synthetic chains in tests. There is no fail-fast: a transition that
// cannot be evaluated is recorded as skipped and the remaining transitions
// still run, so one invocation reports the whole chain.
package chain

import (
	"path/filepath"

	"apicompat/internal/diff"
	"apicompat/internal/loader"
)

// DefaultVersions is the chain validated when no project configuration
// overrides it.
var DefaultVersions = []string{"v1", "v2", "v3", "v4"}

// Resolver returns the conventional label→file mapping under specRoot:
// <specRoot>/<version>/current/openapi.yaml.
func Resolver(specRoot string) func(version string) string {
	return func(version string) string {
		return filepath.Join(specRoot, version, "current", "openapi.yaml")
	}
}

// Validator runs the whole chain. Versions must be in release order.
type Validator struct {
	Versions []string
	Resolve  func(version string) string
}

// Transition is the outcome of comparing one adjacent version pair.
type Transition struct {
	From       string
	To         string
	Skipped    bool
	SkipReason string
	Diff       diff.Result
}

// Criticals returns the number of CRITICAL findings in this transition.
func (t Transition) Criticals() int {
	return t.Diff.CountBySeverity()[diff.Critical]
}

// Passed reports whether this transition was evaluated and found free of
// critical changes.
func (t Transition) Passed() bool {
	return !t.Skipped && t.Criticals() == 0
}

// Result aggregates all transitions of one chain run, in chain order.
type Result struct {
	Transitions []Transition
}

// Criticals returns the total CRITICAL count across all transitions.
func (r Result) Criticals() int {
	total := 0
	for _, t := range r.Transitions {
		total += t.Criticals()
	}
	return total
}

// Skipped returns how many transitions could not be evaluated.
func (r Result) Skipped() int {
	n := 0
	for _, t := range r.Transitions {
		if t.Skipped {
			n++
		}
	}
	return n
}

// Passed reports whether every evaluated transition is critical-free.
// Skipped transitions are surfaced separately and do not fail the chain.
func (r Result) Passed() bool {
	return r.Criticals() == 0
}

// Validate compares each adjacent version pair in order. A load or
// resolution failure marks that transition skipped with the reason and the
// run continues.
func (v *Validator) Validate() Result {
	var res Result
	for i := 0; i+1 < len(v.Versions); i++ {
		from, to := v.Versions[i], v.Versions[i+1]
		res.Transitions = append(res.Transitions, v.compare(from, to))
	}
	return res
}

func (v *Validator) compare(from, to string) Transition {
	t := Transition{From: from, To: to}
	old, err := loader.Load(v.Resolve(from))
	if err != nil {
		t.Skipped = true
		t.SkipReason = err.Error()
		return t
	}
	new, err := loader.Load(v.Resolve(to))
	if err != nil {
		t.Skipped = true
		t.SkipReason = err.Error()
		return t
	}
	t.Diff = diff.Compare(old, new)
	return t
}
