// Copyright 2023 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

import (
	"math"

	"github.com/someonegg/stablematch/pbmodel"
)

// scoreScale converts blended preference scores to the integer
// weights the backend optimizes. Participant counts are at most a few
// hundred, so scaled weights stay small.
const scoreScale = 1000

// formulation turns one instance into a boolean model: one decision
// variable per candidate pair, cardinality constraints per
// participant and, for the stability variants, one stability clause
// per pair. A formulation is built fresh per solve and discarded
// afterwards.
type formulation struct {
	model     *pbmodel.Model
	vars      map[Pair]pbmodel.Var
	proposers []string
	receivers []string
	pp, rp    *rankTable
}

func newFormulation(proposers, receivers []string, pp, rp *rankTable) *formulation {
	return &formulation{
		model:     pbmodel.New(),
		vars:      make(map[Pair]pbmodel.Var, len(proposers)*len(receivers)),
		proposers: proposers,
		receivers: receivers,
		pp:        pp,
		rp:        rp,
	}
}

// buildStability emits the constraint system whose feasible points
// are exactly the stable matchings of the variant.
func (f *formulation) buildStability(variant Variant) {
	partial := variant == PartialTies

	for _, p := range f.proposers {
		for _, r := range f.receivers {
			// Unacceptable pairs carry no variable under partial
			// lists: they can neither be matched nor block.
			if partial && !f.mutual(p, r) {
				continue
			}
			f.vars[Pair{Proposer: p, Receiver: r}] = f.model.NewBool()
		}
	}

	for _, p := range f.proposers {
		row := f.proposerVars(p)
		if partial {
			if len(row) > 0 {
				f.model.AddAtMost(row, 1)
			}
		} else {
			f.model.AddExactly(row, 1)
		}
	}
	for _, r := range f.receivers {
		col := f.receiverVars(r)
		if partial {
			if len(col) > 0 {
				f.model.AddAtMost(col, 1)
			}
		} else {
			f.model.AddExactly(col, 1)
		}
	}

	// TotalOrder compares strictly; with ties a participant matched at
	// an equal rank cannot be part of a blocking pair, so the
	// comparison is weak.
	strict := variant == TotalOrder

	for _, p := range f.proposers {
		for _, r := range f.receivers {
			x, ok := f.vars[Pair{Proposer: p, Receiver: r}]
			if !ok {
				continue
			}

			pBetter := f.model.NewBool()
			f.model.AddOrEquiv(pBetter, f.betterForProposer(p, r, strict))

			rBetter := f.model.NewBool()
			f.model.AddOrEquiv(rBetter, f.betterForReceiver(r, p, strict))

			// (p,r) is matched, or one side holds someone it likes
			// better (at least as well, with ties).
			f.model.AddClause(int(x), int(pBetter), int(rBetter))
		}
	}
}

// buildWeighted emits capacity constraints and the blended preference
// objective. No stability clauses: the result may legitimately be
// unstable.
func (f *formulation) buildWeighted(weight float64, exactlyOne bool, proposerMax, receiverMax map[string]int) {
	for _, p := range f.proposers {
		for _, r := range f.receivers {
			f.vars[Pair{Proposer: p, Receiver: r}] = f.model.NewBool()
		}
	}

	for _, p := range f.proposers {
		row := f.proposerVars(p)
		if exactlyOne {
			f.model.AddExactly(row, 1)
		} else {
			f.model.AddAtLeast(row, 1)
			f.model.AddAtMost(row, proposerMax[p])
		}
	}
	for _, r := range f.receivers {
		col := f.receiverVars(r)
		if exactlyOne {
			f.model.AddExactly(col, 1)
		} else {
			f.model.AddAtLeast(col, 1)
			f.model.AddAtMost(col, receiverMax[r])
		}
	}

	for _, p := range f.proposers {
		for _, r := range f.receivers {
			s := pairScore(f.pp, f.rp, p, r, weight)
			f.model.Maximize(f.vars[Pair{Proposer: p, Receiver: r}], int(math.Round(s*scoreScale)))
		}
	}
}

// pairScore blends both sides' normalized preference strength:
// rank 1 maps to the maximum quality, the sentinel to zero, linearly
// in between.
func pairScore(pp, rp *rankTable, p, r string, weight float64) float64 {
	qp := float64(pp.sentinel - pp.RankOf(p, r))
	qr := float64(rp.sentinel - rp.RankOf(r, p))
	return weight*qp + (1-weight)*qr
}

// betterForProposer collects the decision variables of p matched to a
// receiver it prefers to r: strictly, or at least as well when strict
// is false.
func (f *formulation) betterForProposer(p, r string, strict bool) []pbmodel.Var {
	bound := f.pp.RankOf(p, r)
	var better []pbmodel.Var
	for _, r2 := range f.receivers {
		x, ok := f.vars[Pair{Proposer: p, Receiver: r2}]
		if !ok {
			continue
		}
		rank := f.pp.RankOf(p, r2)
		if rank < bound || (!strict && rank == bound) {
			better = append(better, x)
		}
	}
	return better
}

func (f *formulation) betterForReceiver(r, p string, strict bool) []pbmodel.Var {
	bound := f.rp.RankOf(r, p)
	var better []pbmodel.Var
	for _, p2 := range f.proposers {
		x, ok := f.vars[Pair{Proposer: p2, Receiver: r}]
		if !ok {
			continue
		}
		rank := f.rp.RankOf(r, p2)
		if rank < bound || (!strict && rank == bound) {
			better = append(better, x)
		}
	}
	return better
}

func (f *formulation) mutual(p, r string) bool {
	return f.pp.Acceptable(p, r) && f.rp.Acceptable(r, p)
}

func (f *formulation) proposerVars(p string) []pbmodel.Var {
	var row []pbmodel.Var
	for _, r := range f.receivers {
		if x, ok := f.vars[Pair{Proposer: p, Receiver: r}]; ok {
			row = append(row, x)
		}
	}
	return row
}

func (f *formulation) receiverVars(r string) []pbmodel.Var {
	var col []pbmodel.Var
	for _, p := range f.proposers {
		if x, ok := f.vars[Pair{Proposer: p, Receiver: r}]; ok {
			col = append(col, x)
		}
	}
	return col
}

// extract reads the matched pairs out of a satisfying assignment,
// sorted by proposer then receiver.
func (f *formulation) extract(a pbmodel.Assignment) Matching {
	var m Matching
	for pair, x := range f.vars {
		if a.True(x) {
			m = append(m, pair)
		}
	}
	m.Sort()
	return m
}
