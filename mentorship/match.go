// Copyright 2023 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mentorship

import (
	"fmt"

	"github.com/someonegg/stablematch"
)

// Match pairs bigs with littles under the matcher's variant. Bigs
// propose. The result always carries the matching; blocking pairs are
// reported alongside so WeightedOptimize callers can see what
// stability they traded away.
func (m *Matcher) Match(bigs []Big, littles []Little,
	bigPrefs, littlePrefs PrefData) (*stablematch.Result, []stablematch.BlockingPair, Summary, error) {

	var summ Summary
	summ.Bigs = len(bigs)
	summ.Littles = len(littles)

	proposers := make([]stablematch.Participant, len(bigs))
	for i, b := range bigs {
		proposers[i] = stablematch.Participant{ID: b.Name, Max: b.Max}
	}
	receivers := make([]stablematch.Participant, len(littles))
	for i, l := range littles {
		receivers[i] = stablematch.Participant{ID: l.Name, Max: l.Max}
	}

	pp, err := bigPrefs.Prefs(m.Variant)
	if err != nil {
		return nil, nil, summ, fmt.Errorf("big preferences: %w", err)
	}
	rp, err := littlePrefs.Prefs(m.Variant)
	if err != nil {
		return nil, nil, summ, fmt.Errorf("little preferences: %w", err)
	}

	opts := &stablematch.Options{
		Weight:     m.Weight,
		ExactlyOne: m.ExactlyOne,
		Verbose:    m.Verbose,
	}
	pairs, objective, err := stablematch.Solve(m.Variant, proposers, receivers, pp, rp, opts)
	if err != nil {
		return nil, nil, summ, err
	}

	blocking, err := stablematch.DetectInstabilities(pairs, pp, rp, m.Variant)
	if err != nil {
		return nil, nil, summ, err
	}

	summ.Matched = len(pairs)
	summ.Unmatched = countUnmatched(proposers, receivers, pairs)
	summ.Blocking = len(blocking)
	summ.Objective = objective

	if m.Verbose {
		fmt.Printf("bigs: %v, littles: %v, matched: %v, unmatched: %v, blocking: %v\n",
			summ.Bigs, summ.Littles, summ.Matched, summ.Unmatched, summ.Blocking)
	}

	result := &stablematch.Result{
		Variant:   m.Variant,
		Pairs:     pairs,
		Objective: objective,
	}
	return result, blocking, summ, nil
}

func (d PrefData) Prefs(v stablematch.Variant) (stablematch.Prefs, error) {
	if d.Lists != nil && d.Ranks != nil {
		return stablematch.Prefs{}, fmt.Errorf("preference data sets both lists and ranks")
	}
	switch v {
	case stablematch.TotalOrder:
		if d.Lists == nil {
			return stablematch.Prefs{}, fmt.Errorf("variant %v needs list preferences", v)
		}
		return stablematch.ListPrefs(d.Lists), nil
	case stablematch.RankedTies:
		if d.Ranks == nil {
			return stablematch.Prefs{}, fmt.Errorf("variant %v needs rank preferences", v)
		}
		return stablematch.RankPrefs(d.Ranks), nil
	case stablematch.PartialTies:
		if d.Ranks == nil {
			return stablematch.Prefs{}, fmt.Errorf("variant %v needs rank preferences", v)
		}
		return stablematch.PartialPrefs(d.Ranks), nil
	case stablematch.WeightedOptimize:
		// Lenient: either representation works, missing ranks score
		// zero quality.
		if d.Lists != nil {
			return stablematch.ListPrefs(d.Lists), nil
		}
		if d.Ranks != nil {
			return stablematch.PartialPrefs(d.Ranks), nil
		}
	}
	return stablematch.Prefs{}, fmt.Errorf("empty preference data")
}

func countUnmatched(proposers, receivers []stablematch.Participant, pairs stablematch.Matching) int {
	matched := make(map[string]bool, 2*len(pairs))
	for _, pair := range pairs {
		matched["p:"+pair.Proposer] = true
		matched["r:"+pair.Receiver] = true
	}
	n := 0
	for _, p := range proposers {
		if !matched["p:"+p.ID] {
			n++
		}
	}
	for _, r := range receivers {
		if !matched["r:"+r.ID] {
			n++
		}
	}
	return n
}
