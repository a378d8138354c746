// Copyright 2023 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

import (
	"fmt"
	"sort"
)

// DetectInstabilities returns every blocking pair of the matching
// under the variant's preference semantics, sorted by proposer then
// receiver. A pair blocks when both sides strictly prefer each other
// over their current assignment; the strict test applies to every
// variant, including the ones whose stability constraints compare
// weakly. Sides are taken from the preference data.
func DetectInstabilities(m Matching, proposerPrefs, receiverPrefs Prefs, variant Variant) ([]BlockingPair, error) {
	pp, rp, err := bindPair(proposerPrefs, receiverPrefs, variant)
	if err != nil {
		return nil, err
	}
	if err := validateMatching(m, pp, rp, variant); err != nil {
		return nil, err
	}

	pMatches := make(map[string][]string)
	rMatches := make(map[string][]string)
	for _, pair := range m {
		pMatches[pair.Proposer] = append(pMatches[pair.Proposer], pair.Receiver)
		rMatches[pair.Receiver] = append(rMatches[pair.Receiver], pair.Proposer)
	}

	// Complete-list variants only consider pairs where both sides are
	// matched; with partial lists an unmatched participant ranks its
	// assignment at the sentinel and can be part of a blocking pair.
	includeUnmatched := variant == PartialTies || variant == WeightedOptimize

	pIDs := proposerPrefs.owners()
	rIDs := receiverPrefs.owners()

	var blocking []BlockingPair
	for _, p := range pIDs {
		if !includeUnmatched && len(pMatches[p]) == 0 {
			continue
		}
		pHeld := worstRank(pp, p, pMatches[p])
		for _, r := range rIDs {
			if !pp.Acceptable(p, r) {
				continue
			}
			if matchedTo(pMatches[p], r) {
				continue
			}
			if !includeUnmatched && len(rMatches[r]) == 0 {
				continue
			}
			rHeld := worstRank(rp, r, rMatches[r])
			if pp.RankOf(p, r) < pHeld && rp.RankOf(r, p) < rHeld {
				blocking = append(blocking, BlockingPair{Proposer: p, Receiver: r})
			}
		}
	}

	sort.Slice(blocking, func(i, j int) bool {
		if blocking[i].Proposer != blocking[j].Proposer {
			return blocking[i].Proposer < blocking[j].Proposer
		}
		return blocking[i].Receiver < blocking[j].Receiver
	})
	return blocking, nil
}

func bindPair(proposerPrefs, receiverPrefs Prefs, variant Variant) (pp, rp *rankTable, err error) {
	if !proposerPrefs.kindFits(variant) || !receiverPrefs.kindFits(variant) {
		return nil, nil, &InvalidInputError{
			Reason: "preference representation does not fit variant " + variant.String(),
		}
	}
	pIDs := proposerPrefs.owners()
	rIDs := receiverPrefs.owners()
	complete := variant == TotalOrder || variant == RankedTies
	if pp, err = proposerPrefs.bind(pIDs, rIDs, complete); err != nil {
		return nil, nil, err
	}
	if rp, err = receiverPrefs.bind(rIDs, pIDs, complete); err != nil {
		return nil, nil, err
	}
	return pp, rp, nil
}

// validateMatching rejects matchings that pair unknown participants,
// pair participants who do not rank each other, or break the
// variant's cardinality bounds.
func validateMatching(m Matching, pp, rp *rankTable, variant Variant) error {
	pCount := make(map[string]int)
	rCount := make(map[string]int)
	seen := make(map[Pair]bool, len(m))

	// WeightedOptimize never requires mutual acceptability (missing
	// ranks merely score zero), and its capacity bounds live on the
	// participants, not the preference data. Only duplicates are
	// rejected there.
	lenient := variant == WeightedOptimize

	for _, pair := range m {
		if seen[pair] {
			return &InvalidInputError{
				Reason: fmt.Sprintf("matching pairs %s with %s twice", pair.Proposer, pair.Receiver),
			}
		}
		seen[pair] = true
		if lenient {
			continue
		}
		if _, ok := pp.ranks[pair.Proposer]; !ok {
			return &InvalidInputError{Reason: "matching names unknown proposer " + pair.Proposer}
		}
		if _, ok := rp.ranks[pair.Receiver]; !ok {
			return &InvalidInputError{Reason: "matching names unknown receiver " + pair.Receiver}
		}
		if !pp.Acceptable(pair.Proposer, pair.Receiver) || !rp.Acceptable(pair.Receiver, pair.Proposer) {
			return &InvalidInputError{
				Reason: fmt.Sprintf("matched pair %s-%s is not mutually acceptable", pair.Proposer, pair.Receiver),
			}
		}
		pCount[pair.Proposer]++
		rCount[pair.Receiver]++
	}

	if lenient {
		return nil
	}
	for p, n := range pCount {
		if n > 1 {
			return &InvalidInputError{Reason: "proposer " + p + " is matched more than once"}
		}
	}
	for r, n := range rCount {
		if n > 1 {
			return &InvalidInputError{Reason: "receiver " + r + " is matched more than once"}
		}
	}
	return nil
}

// worstRank is the owner's rank of its least preferred current match,
// or the sentinel when unmatched.
func worstRank(t *rankTable, owner string, matches []string) int {
	worst := t.sentinel
	for i, c := range matches {
		if r := t.RankOf(owner, c); i == 0 || r > worst {
			worst = r
		}
	}
	return worst
}

func matchedTo(matches []string, c string) bool {
	for _, m := range matches {
		if m == c {
			return true
		}
	}
	return false
}
