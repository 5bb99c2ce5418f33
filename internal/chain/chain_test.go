package chain

import (
	"os"
	"path/filepath"
	"testing"
)

const orderSpecFull = `openapi: 3.0.3
info:
  title: orders API
  version: "1.0"
paths:
  /orders:
    post:
      parameters:
        - name: customer
          in: query
          required: true
          schema:
            type: string
      responses:
        '201':
          description: created
        '400':
          description: bad request
`

// orderSpecNoCustomer drops the required customer parameter.
const orderSpecNoCustomer = `openapi: 3.0.3
info:
  title: orders API
  version: "2.0"
paths:
  /orders:
    post:
      responses:
        '201':
          description: created
        '400':
          description: bad request
`

// writeVersion lays out root/<version>/current/openapi.yaml.
func writeVersion(t *testing.T, root, version, content string) {
	t.Helper()
	dir := filepath.Join(root, version, "current")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "openapi.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// TestValidateChain walks a three-version chain where only the v2→v3
// transition removes a required parameter: v1→v2 passes, v2→v3 fails with
// one critical, and the chain as a whole fails.
func TestValidateChain(t *testing.T) {
	root := t.TempDir()
	writeVersion(t, root, "v1", orderSpecFull)
	writeVersion(t, root, "v2", orderSpecFull)
	writeVersion(t, root, "v3", orderSpecNoCustomer)

	v := Validator{
		Versions: []string{"v1", "v2", "v3"},
		Resolve:  Resolver(root),
	}
	res := v.Validate()

	if len(res.Transitions) != 2 {
		t.Fatalf("got %d transitions, want 2", len(res.Transitions))
	}
	first := res.Transitions[0]
	if first.From != "v1" || first.To != "v2" || !first.Passed() {
		t.Errorf("v1→v2 = %+v, want PASS", first)
	}
	second := res.Transitions[1]
	if second.Passed() {
		t.Errorf("v2→v3 passed, want FAIL: %+v", second)
	}
	if got := second.Criticals(); got != 1 {
		t.Errorf("v2→v3 criticals = %d, want 1", got)
	}
	if res.Passed() {
		t.Error("chain passed, want overall FAILED")
	}
	if res.Criticals() != 1 {
		t.Errorf("chain criticals = %d, want 1", res.Criticals())
	}
}

// TestValidateChainIdenticalVersions verifies a chain of identical
// documents passes with zero findings.
func TestValidateChainIdenticalVersions(t *testing.T) {
	root := t.TempDir()
	for _, ver := range []string{"v1", "v2", "v3"} {
		writeVersion(t, root, ver, orderSpecFull)
	}

	v := Validator{Versions: []string{"v1", "v2", "v3"}, Resolve: Resolver(root)}
	res := v.Validate()
	if !res.Passed() || res.Criticals() != 0 {
		t.Errorf("chain of identical versions failed: %+v", res)
	}
	for _, tr := range res.Transitions {
		if !tr.Diff.Empty() {
			t.Errorf("%s→%s produced findings: %+v", tr.From, tr.To, tr.Diff.Changes)
		}
	}
}

// TestValidateChainMissingVersion verifies a missing contract file skips
// the transitions that need it (with the reason recorded) but does not
// abort the run: later transitions are still evaluated.
func TestValidateChainMissingVersion(t *testing.T) {
	root := t.TempDir()
	writeVersion(t, root, "v1", orderSpecFull)
	// v2 deliberately absent.
	writeVersion(t, root, "v3", orderSpecFull)
	writeVersion(t, root, "v4", orderSpecNoCustomer)

	v := Validator{
		Versions: []string{"v1", "v2", "v3", "v4"},
		Resolve:  Resolver(root),
	}
	res := v.Validate()

	if len(res.Transitions) != 3 {
		t.Fatalf("got %d transitions, want 3", len(res.Transitions))
	}
	for i := 0; i < 2; i++ {
		tr := res.Transitions[i]
		if !tr.Skipped {
			t.Errorf("%s→%s not skipped despite missing v2", tr.From, tr.To)
		}
		if tr.SkipReason == "" {
			t.Errorf("%s→%s skipped without a reason", tr.From, tr.To)
		}
	}
	last := res.Transitions[2]
	if last.Skipped {
		t.Errorf("v3→v4 skipped, want evaluated: %s", last.SkipReason)
	}
	if last.Criticals() != 1 {
		t.Errorf("v3→v4 criticals = %d, want 1", last.Criticals())
	}
	if res.Skipped() != 2 {
		t.Errorf("Skipped() = %d, want 2", res.Skipped())
	}
	if res.Passed() {
		t.Error("chain passed despite critical in v3→v4")
	}
}

// TestResolverConvention verifies the label→file convention.
func TestResolverConvention(t *testing.T) {
	got := Resolver("api-specs")("v2")
	want := filepath.Join("api-specs", "v2", "current", "openapi.yaml")
	if got != want {
		t.Errorf("Resolver path = %q, want %q", got, want)
	}
}

// TestDefaultVersions pins the built-in chain used when no configuration
// overrides it.
func TestDefaultVersions(t *testing.T) {
	want := []string{"v1", "v2", "v3", "v4"}
	if len(DefaultVersions) != len(want) {
		t.Fatalf("DefaultVersions = %v, want %v", DefaultVersions, want)
	}
	for i := range want {
		if DefaultVersions[i] != want[i] {
			t.Errorf("DefaultVersions[%d] = %s, want %s", i, DefaultVersions[i], want[i])
		}
	}
}
