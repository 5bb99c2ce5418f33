// Package diff walks two contract documents and reports every structural
// change that can break an existing client.
//
// Compare is a pure function of its two immutable inputs: no shared state,
// no I/O, and the same inputs always produce the same ordered result. Output
// order follows the old document's path declaration order, then the fixed
// method order, then parameter declaration order, then sorted response codes.
package diff

import (
	"fmt"
	"sort"

	"apicompat/internal/contract"
)

// ChangeType is the closed enumeration of detectable breaking changes.
type ChangeType string

const (
	RemovedEndpoint       ChangeType = "REMOVED_ENDPOINT"
	ChangedEndpointMethod ChangeType = "CHANGED_ENDPOINT_METHOD"
	RemovedParameter      ChangeType = "REMOVED_PARAMETER"
	AddedRequiredParam    ChangeType = "ADDED_REQUIRED_PARAMETER"
	ChangedParameterType  ChangeType = "CHANGED_PARAMETER_TYPE"
	RemovedResponseCode   ChangeType = "REMOVED_RESPONSE_CODE"
)

// BreakingChange is a single finding. Value object: created here, never
// mutated afterward.
type BreakingChange struct {
	Type        ChangeType
	Path        string // "/users" for endpoint removal, "POST /users" otherwise
	Description string
	Severity    Severity
}

// Result is the ordered list of findings from one old/new comparison.
type Result struct {
	Changes []BreakingChange
}

// Empty reports whether the comparison found no breaking changes.
func (r Result) Empty() bool { return len(r.Changes) == 0 }

// HasCritical reports whether any finding is CRITICAL.
func (r Result) HasCritical() bool {
	for _, c := range r.Changes {
		if c.Severity == Critical {
			return true
		}
	}
	return false
}

// CountBySeverity returns finding counts keyed by severity.
func (r Result) CountBySeverity() map[Severity]int {
	counts := make(map[Severity]int)
	for _, c := range r.Changes {
		counts[c.Severity]++
	}
	return counts
}

// Compare walks old and new and collects breaking changes. Additions of any
// kind (new paths, operations, optional parameters, response codes) are
// never findings.
func Compare(old, new *contract.Document) Result {
	var res Result
	for _, entry := range old.Paths {
		newItem := new.Item(entry.Path)
		if newItem == nil {
			// A removed path is reported once; its operations, parameters
			// and responses are not reported separately.
			res.Changes = append(res.Changes, BreakingChange{
				Type:        RemovedEndpoint,
				Path:        entry.Path,
				Description: fmt.Sprintf("endpoint removed: %s", entry.Path),
				Severity:    Critical,
			})
			continue
		}
		for _, m := range contract.Methods {
			oldOp, ok := entry.Item.Ops[m]
			if !ok {
				continue
			}
			ref := fmt.Sprintf("%s %s", m, entry.Path)
			newOp, ok := newItem.Ops[m]
			if !ok {
				// A removed operation short-circuits parameter and response
				// comparison for this method; sibling methods still run.
				res.Changes = append(res.Changes, BreakingChange{
					Type:        ChangedEndpointMethod,
					Path:        ref,
					Description: fmt.Sprintf("operation removed: %s", ref),
					Severity:    Critical,
				})
				continue
			}
			compareOperations(&res, ref, oldOp, newOp)
		}
	}
	return res
}

// compareOperations diffs one operation pair: parameters first, then
// response codes.
func compareOperations(res *Result, ref string, old, new *contract.Operation) {
	for _, p := range old.Params {
		np := new.Param(p.In, p.Name)
		if np == nil {
			res.Changes = append(res.Changes, removedParameter(ref, p))
			continue
		}
		if !p.Required && np.Required {
			res.Changes = append(res.Changes, BreakingChange{
				Type:        AddedRequiredParam,
				Path:        ref,
				Description: fmt.Sprintf("%s parameter %q is now required", p.In, p.Name),
				Severity:    High,
			})
		}
		if p.SchemaType != np.SchemaType {
			res.Changes = append(res.Changes, BreakingChange{
				Type:        ChangedParameterType,
				Path:        ref,
				Description: fmt.Sprintf("%s parameter %q type changed from %q to %q", p.In, p.Name, p.SchemaType, np.SchemaType),
				Severity:    High,
			})
		}
	}

	codes := make([]string, 0, len(old.Responses))
	for code := range old.Responses {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		if _, ok := new.Responses[code]; !ok {
			res.Changes = append(res.Changes, BreakingChange{
				Type:        RemovedResponseCode,
				Path:        ref,
				Description: fmt.Sprintf("response code %s removed", code),
				Severity:    RemovedResponseSeverity(code),
			})
		}
	}

	res.Changes = append(res.Changes, compareSchemas(ref, old, new)...)
}

func removedParameter(ref string, p contract.Parameter) BreakingChange {
	kind := "optional"
	if p.Required {
		kind = "required"
	}
	return BreakingChange{
		Type:        RemovedParameter,
		Path:        ref,
		Description: fmt.Sprintf("%s %s parameter %q removed", kind, p.In, p.Name),
		Severity:    RemovedParameterSeverity(p.Required),
	}
}

// compareSchemas would diff request/response body shapes. Body schemas are
// not modeled, so it finds nothing; compatibility checking covers the
// contract surface (paths, operations, parameters, response codes) only.
func compareSchemas(ref string, old, new *contract.Operation) []BreakingChange {
	return nil
}
