// Copyright 2023 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

import (
	"fmt"
	"sort"
)

type prefKind int

const (
	kindList prefKind = iota
	kindRanked
	kindPartial
)

// Prefs holds the raw preference data of one side, in one of three
// representations. Construct with ListPrefs, RankPrefs or
// PartialPrefs; validation happens when the data is bound to a
// concrete instance.
type Prefs struct {
	kind  prefKind
	lists map[string][]string
	ranks map[string]map[string]int
}

// ListPrefs builds preferences from strict total orders: for each
// participant, candidates from most to least preferred. Used by the
// TotalOrder variant.
func ListPrefs(lists map[string][]string) Prefs {
	return Prefs{kind: kindList, lists: lists}
}

// RankPrefs builds preferences from complete rank maps: for each
// participant, a positive rank per candidate, lower is better, equal
// ranks denote indifference. Used by the RankedTies variant.
func RankPrefs(ranks map[string]map[string]int) Prefs {
	return Prefs{kind: kindRanked, ranks: ranks}
}

// PartialPrefs builds preferences from partial rank maps: like
// RankPrefs, but an absent candidate is unacceptable rather than
// least preferred. Used by the PartialTies variant.
func PartialPrefs(ranks map[string]map[string]int) Prefs {
	return Prefs{kind: kindPartial, ranks: ranks}
}

// owners returns the participants the preference data mentions,
// sorted.
func (p Prefs) owners() []string {
	var ids []string
	if p.kind == kindList {
		for id := range p.lists {
			ids = append(ids, id)
		}
	} else {
		for id := range p.ranks {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func (p Prefs) kindFits(v Variant) bool {
	switch v {
	case TotalOrder:
		return p.kind == kindList
	case RankedTies:
		return p.kind == kindRanked
	case PartialTies:
		return p.kind == kindPartial
	case WeightedOptimize:
		return true
	}
	return false
}

// rankTable is the uniform query surface over one side's bound
// preferences. Ranks are 1-based; sentinel, one past the candidate
// count, stands for unranked/unacceptable and compares worse than
// every real rank.
type rankTable struct {
	ranks    map[string]map[string]int
	sentinel int
}

// bind validates the raw data against a concrete instance and builds
// the rank table. owners is the owning side, candidates the opposite
// side; complete requires every owner to rank every candidate.
func (p Prefs) bind(owners, candidates []string, complete bool) (*rankTable, error) {
	candSet := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		candSet[c] = true
	}

	t := &rankTable{
		ranks:    make(map[string]map[string]int, len(owners)),
		sentinel: len(candidates) + 1,
	}

	for _, owner := range owners {
		var ranks map[string]int
		var err error
		if p.kind == kindList {
			ranks, err = bindList(owner, p.lists[owner], candSet)
		} else {
			ranks, err = bindRanks(owner, p.ranks[owner], candSet, len(candidates))
		}
		if err != nil {
			return nil, err
		}
		if complete {
			if len(ranks) == 0 {
				return nil, &InvalidInputError{
					Reason: fmt.Sprintf("%s has an empty preference list but the variant requires complete preferences", owner),
				}
			}
			for _, c := range candidates {
				if _, ok := ranks[c]; !ok {
					return nil, &IncompletePreferenceError{Participant: owner, Candidate: c}
				}
			}
		}
		t.ranks[owner] = ranks
	}

	return t, nil
}

func bindList(owner string, list []string, candSet map[string]bool) (map[string]int, error) {
	ranks := make(map[string]int, len(list))
	for i, c := range list {
		if !candSet[c] {
			return nil, &InvalidInputError{
				Reason: fmt.Sprintf("%s ranks unknown candidate %s", owner, c),
			}
		}
		if _, dup := ranks[c]; dup {
			return nil, &InvalidInputError{
				Reason: fmt.Sprintf("%s ranks %s twice", owner, c),
			}
		}
		ranks[c] = i + 1
	}
	return ranks, nil
}

func bindRanks(owner string, in map[string]int, candSet map[string]bool, ncand int) (map[string]int, error) {
	ranks := make(map[string]int, len(in))
	for c, r := range in {
		if !candSet[c] {
			return nil, &InvalidInputError{
				Reason: fmt.Sprintf("%s ranks unknown candidate %s", owner, c),
			}
		}
		if r <= 0 || r > ncand {
			return nil, &InvalidInputError{
				Reason: fmt.Sprintf("%s ranks %s at %d, want 1..%d", owner, c, r, ncand),
			}
		}
		ranks[c] = r
	}
	return ranks, nil
}

// RankOf returns owner p's rank of candidate c, or the sentinel when
// c is absent from p's list.
func (t *rankTable) RankOf(p, c string) int {
	if r, ok := t.ranks[p][c]; ok {
		return r
	}
	return t.sentinel
}

// PrefersOrEqual reports whether p ranks a at least as well as b.
// Ties compare equal.
func (t *rankTable) PrefersOrEqual(p, a, b string) bool {
	return t.RankOf(p, a) <= t.RankOf(p, b)
}

// Acceptable reports whether p ranks c at all.
func (t *rankTable) Acceptable(p, c string) bool {
	return t.RankOf(p, c) != t.sentinel
}
