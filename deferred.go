// Copyright 2023 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

import "sort"

// DeferredAcceptance runs proposer-proposing deferred acceptance
// (Gale-Shapley) on strict total-order preferences and returns the
// unique proposer-optimal stable matching. It needs no constraint
// backend and always succeeds on valid input.
func DeferredAcceptance(proposerPrefs, receiverPrefs Prefs) (Matching, error) {
	if proposerPrefs.kind != kindList || receiverPrefs.kind != kindList {
		return nil, &InvalidInputError{Reason: "deferred acceptance requires total-order preferences"}
	}

	pIDs := proposerPrefs.owners()
	rIDs := receiverPrefs.owners()
	if len(pIDs) == 0 || len(rIDs) == 0 {
		return nil, &InvalidInputError{Reason: "deferred acceptance requires participants on both sides"}
	}

	pp, err := proposerPrefs.bind(pIDs, rIDs, true)
	if err != nil {
		return nil, err
	}
	rp, err := receiverPrefs.bind(rIDs, pIDs, true)
	if err != nil {
		return nil, err
	}

	return runDeferred(pIDs, rIDs, pp, rp), nil
}

// runDeferred is the algorithm core. Every proposer proposes down its
// list; a receiver holds the best proposal seen so far and releases
// the displaced proposer back into the queue. Terminates after at
// most len(proposers)*len(receivers) proposals; the queue discipline
// does not affect the resulting matching, only the iteration count.
func runDeferred(proposers, receivers []string, pp, rp *rankTable) Matching {
	lists := make(map[string][]string, len(proposers))
	for _, p := range proposers {
		lists[p] = orderedCandidates(pp, p, receivers)
	}

	queue := append([]string(nil), proposers...)
	cursor := make(map[string]int, len(proposers))
	holds := make(map[string]string, len(receivers)) // receiver -> proposer

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		list := lists[p]
		if cursor[p] >= len(list) {
			// List exhausted: p stays unmatched. Only reachable when
			// the sides differ in size.
			continue
		}
		r := list[cursor[p]]
		cursor[p]++

		cur, held := holds[r]
		if !held {
			holds[r] = p
			continue
		}
		// Strict total order, so plain < on ranks decides.
		if rp.RankOf(r, p) < rp.RankOf(r, cur) {
			holds[r] = p
			queue = append(queue, cur)
		} else {
			queue = append(queue, p)
		}
	}

	m := make(Matching, 0, len(holds))
	for r, p := range holds {
		m = append(m, Pair{Proposer: p, Receiver: r})
	}
	m.Sort()
	return m
}

// orderedCandidates lists the candidates owner ranks, most preferred
// first.
func orderedCandidates(t *rankTable, owner string, candidates []string) []string {
	var ranked []string
	for _, c := range candidates {
		if t.Acceptable(owner, c) {
			ranked = append(ranked, c)
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		return t.RankOf(owner, ranked[i]) < t.RankOf(owner, ranked[j])
	})
	return ranked
}
