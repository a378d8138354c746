// Copyright 2023 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stablematch computes and validates matchings between two
// sides of ranked participants. It covers the classic stable marriage
// problem, its variants with tied ranks and incomplete lists, and a
// capacity-aware weighted optimization that trades stability for
// aggregate preference satisfaction.
package stablematch

import "time"

// Variant selects the preference semantics of one solve.
type Variant int

const (
	// TotalOrder is the classic stable marriage problem: every
	// participant ranks the whole opposite side in a strict order.
	TotalOrder Variant = iota
	// RankedTies allows equal ranks, complete lists still required.
	RankedTies
	// PartialTies allows equal ranks and missing candidates; an
	// absent candidate is unacceptable.
	PartialTies
	// WeightedOptimize maximizes blended preference scores under
	// capacity bounds, without stability constraints.
	WeightedOptimize
)

func (v Variant) String() string {
	switch v {
	case TotalOrder:
		return "total_order"
	case RankedTies:
		return "ranked_ties"
	case PartialTies:
		return "partial_ties"
	case WeightedOptimize:
		return "weighted_optimize"
	}
	return "unknown"
}

// Participant is one member of either side. Max is the maximum number
// of simultaneous matches, honored by WeightedOptimize only; zero
// means 1.
type Participant struct {
	ID  string `json:"id"`
	Max int    `json:"max,omitempty"`
}

// Pair matches one proposer-side participant with one receiver-side
// participant.
type Pair struct {
	Proposer string `json:"proposer"`
	Receiver string `json:"receiver"`
}

// Matching is the set of matched pairs produced by one solve. It is
// read-only after construction.
type Matching []Pair

// BlockingPair is a proposer and a receiver, not matched to each
// other, who each strictly prefer the other over their current
// assignment. Any blocking pair makes a matching unstable.
type BlockingPair struct {
	Proposer string `json:"proposer"`
	Receiver string `json:"receiver"`
}

// Result is the durable artifact of one solve: the matching, the
// variant it was produced under and, for WeightedOptimize, the
// achieved objective value.
type Result struct {
	Variant   Variant  `json:"variant"`
	Pairs     Matching `json:"pairs"`
	Objective *float64 `json:"objective,omitempty"`
}

// Options tunes one Solve call. The zero value is ready to use.
type Options struct {
	// Weight blends proposer against receiver preference in
	// WeightedOptimize scores, in [0, 1]. 1 ignores receiver
	// preference, 0 ignores proposer preference. Nil means 0.5.
	Weight *float64 `json:"weight,omitempty"`

	// ExactlyOne forces exactly one match per participant in
	// WeightedOptimize instead of the capacity bounds.
	ExactlyOne bool `json:"exactly_one,omitempty"`

	// Backend forces the constraint backend for TotalOrder instances,
	// which otherwise run deferred acceptance directly.
	Backend bool `json:"backend,omitempty"`

	// Timeout advisorily bounds the backend search. Zero means no
	// bound.
	Timeout time.Duration `json:"-"`

	// When set, Solve prints model and search progress.
	Verbose bool `json:"-"`

	weight float64
}

const defaultWeight = 0.5

func (o *Options) init() error {
	if o.Weight == nil {
		o.weight = defaultWeight
	} else {
		o.weight = *o.Weight
		if o.weight < 0.0 || o.weight > 1.0 {
			return &InvalidInputError{Reason: "weight must be in [0, 1]"}
		}
	}
	return nil
}
