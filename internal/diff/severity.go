package diff

// severity.go holds the classification policy that maps a change and its
// context to a severity tier. The policy is conservative: when in doubt it errs
// toward the higher tier, because a missed breaking change costs more than a
// false alarm in a CI gate.
//
//	REMOVED_ENDPOINT                          → CRITICAL
//	CHANGED_ENDPOINT_METHOD                   → CRITICAL
//	REMOVED_PARAMETER      (was required)     → CRITICAL
//	REMOVED_PARAMETER      (was optional)     → HIGH
//	ADDED_REQUIRED_PARAMETER                  → HIGH
//	CHANGED_PARAMETER_TYPE                    → HIGH
//	REMOVED_RESPONSE_CODE  (2xx code)         → CRITICAL
//	REMOVED_RESPONSE_CODE  (other)            → MEDIUM

import "strings"

// Severity is a four-level ordinal: Critical > High > Medium > Low.
type Severity string

const (
	Critical Severity = "CRITICAL"
	High     Severity = "HIGH"
	Medium   Severity = "MEDIUM"
	Low      Severity = "LOW"
)

// Severities lists all tiers in descending order. Report sections follow
// this order.
var Severities = []Severity{Critical, High, Medium, Low}

// RemovedParameterSeverity classifies the removal of a parameter: losing a
// required input breaks every caller, losing an optional one breaks only
// callers that sent it.
func RemovedParameterSeverity(wasRequired bool) Severity {
	if wasRequired {
		return Critical
	}
	return High
}

// RemovedResponseSeverity classifies the removal of a response code: a
// success code is part of every client's happy path, an error code is not.
func RemovedResponseSeverity(code string) Severity {
	if strings.HasPrefix(code, "2") {
		return Critical
	}
	return Medium
}
