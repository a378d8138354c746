// Copyright 2023 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

import (
	"fmt"
	"sort"

	"github.com/someonegg/stablematch/pbmodel"
)

// Solve computes a matching between proposers and receivers under the
// variant's semantics. For the three stability variants the returned
// objective is nil and the matching is stable; for WeightedOptimize
// the objective is the achieved total score and the matching may be
// unstable. Inputs are validated eagerly; on error no matching is
// returned.
func Solve(variant Variant, proposers, receivers []Participant,
	proposerPrefs, receiverPrefs Prefs, opts *Options) (Matching, *float64, error) {

	o := opts
	if o == nil {
		o = &Options{}
	}
	if err := o.init(); err != nil {
		return nil, nil, err
	}

	pIDs, pMax, err := checkSide("proposer", proposers)
	if err != nil {
		return nil, nil, err
	}
	rIDs, rMax, err := checkSide("receiver", receivers)
	if err != nil {
		return nil, nil, err
	}

	if !proposerPrefs.kindFits(variant) || !receiverPrefs.kindFits(variant) {
		return nil, nil, &InvalidInputError{
			Reason: "preference representation does not fit variant " + variant.String(),
		}
	}

	complete := variant == TotalOrder || variant == RankedTies
	pp, err := proposerPrefs.bind(pIDs, rIDs, complete)
	if err != nil {
		return nil, nil, err
	}
	rp, err := receiverPrefs.bind(rIDs, pIDs, complete)
	if err != nil {
		return nil, nil, err
	}

	// Deferred acceptance is always feasible for strict total orders
	// and much cheaper than the backend, so it is the default there.
	if variant == TotalOrder && !o.Backend {
		return runDeferred(pIDs, rIDs, pp, rp), nil, nil
	}

	f := newFormulation(pIDs, rIDs, pp, rp)
	if variant == WeightedOptimize {
		f.buildWeighted(o.weight, o.ExactlyOne, pMax, rMax)
	} else {
		f.buildStability(variant)
	}

	if o.Verbose {
		fmt.Printf("%v: proposers: %v, receivers: %v, vars: %v, constrs: %v\n",
			variant, len(pIDs), len(rIDs), f.model.NumVars(), f.model.NumConstrs())
	}

	a, err := f.model.Solve(o.Timeout, o.Verbose)
	if err != nil {
		switch {
		case err == pbmodel.ErrInfeasible && variant == WeightedOptimize:
			return nil, nil, &InvalidInputError{Reason: "capacity constraints are infeasible"}
		case err == pbmodel.ErrInfeasible:
			return nil, nil, &NoStableMatchingError{Variant: variant}
		default:
			return nil, nil, &BackendError{Err: err}
		}
	}

	m := f.extract(a)
	if variant != WeightedOptimize {
		return m, nil, nil
	}

	objective := 0.0
	for _, pair := range m {
		objective += pairScore(pp, rp, pair.Proposer, pair.Receiver, o.weight)
	}
	if o.Verbose {
		fmt.Printf("%v: matched: %v, objective: %v\n", variant, len(m), objective)
	}
	return m, &objective, nil
}

func checkSide(side string, ps []Participant) ([]string, map[string]int, error) {
	if len(ps) == 0 {
		return nil, nil, &InvalidInputError{Reason: "no participants on the " + side + " side"}
	}

	ids := make([]string, 0, len(ps))
	maxes := make(map[string]int, len(ps))
	for _, p := range ps {
		if p.ID == "" {
			return nil, nil, &InvalidInputError{Reason: side + " with empty ID"}
		}
		if _, dup := maxes[p.ID]; dup {
			return nil, nil, &InvalidInputError{Reason: "duplicate " + side + " " + p.ID}
		}
		if p.Max < 0 {
			return nil, nil, &InvalidInputError{
				Reason: fmt.Sprintf("capacity of %s %s must be positive", side, p.ID),
			}
		}
		max := p.Max
		if max == 0 {
			max = 1
		}
		ids = append(ids, p.ID)
		maxes[p.ID] = max
	}
	sort.Strings(ids)
	return ids, maxes, nil
}
