// Copyright 2023 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

import "fmt"

// InvalidInputError reports malformed input: duplicate identifiers,
// duplicate entries in a total-order list, ranks that are not
// positive, negative capacities, or preference data whose
// representation does not fit the selected variant.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "stablematch: invalid input: " + e.Reason
}

// IncompletePreferenceError reports a missing rank under a variant
// that requires complete preference lists.
type IncompletePreferenceError struct {
	Participant string
	Candidate   string
}

func (e *IncompletePreferenceError) Error() string {
	return fmt.Sprintf("stablematch: %s does not rank %s but the variant requires complete preferences",
		e.Participant, e.Candidate)
}

// NoStableMatchingError reports that the instance admits no stable
// matching under the selected variant. This is an expected outcome
// for ties and incomplete lists, not a solver defect.
type NoStableMatchingError struct {
	Variant Variant
}

func (e *NoStableMatchingError) Error() string {
	return "stablematch: no stable matching exists under " + e.Variant.String()
}

// BackendError reports that the constraint backend failed for a
// reason unrelated to feasibility.
type BackendError struct {
	Err error
}

func (e *BackendError) Error() string {
	return "stablematch: backend: " + e.Err.Error()
}

func (e *BackendError) Unwrap() error { return e.Err }
