// Copyright 2023 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectInstabilities(t *testing.T) {
	t.Run("UnstableTotalOrder", func(t *testing.T) {
		// Ishaan holds his last choice and Swapneel prefers Ishaan to
		// her current partner, so (Ishaan, Swapneel) blocks.
		m := Matching{
			{Proposer: "Ishaan", Receiver: "Kevin"},
			{Proposer: "Cindy", Receiver: "Swapneel"},
			{Proposer: "Thomas", Receiver: "Zora"},
		}
		blocking, err := DetectInstabilities(m, smpBigPrefs(), smpLittlePrefs(), TotalOrder)
		require.NoError(t, err)
		require.Equal(t, []BlockingPair{{Proposer: "Ishaan", Receiver: "Swapneel"}}, blocking)
	})

	t.Run("Idempotent", func(t *testing.T) {
		m := Matching{
			{Proposer: "Ishaan", Receiver: "Kevin"},
			{Proposer: "Cindy", Receiver: "Swapneel"},
			{Proposer: "Thomas", Receiver: "Zora"},
		}
		first, err := DetectInstabilities(m, smpBigPrefs(), smpLittlePrefs(), TotalOrder)
		require.NoError(t, err)
		second, err := DetectInstabilities(m, smpBigPrefs(), smpLittlePrefs(), TotalOrder)
		require.NoError(t, err)
		require.Equal(t, first, second)
	})

	t.Run("TiesCompareEqual", func(t *testing.T) {
		// Ishaan ranks Swapneel and Zora both at 1: holding Zora, he
		// cannot strictly improve by switching to Swapneel.
		m := Matching{
			{Proposer: "Ishaan", Receiver: "Zora"},
			{Proposer: "Cindy", Receiver: "Kevin"},
			{Proposer: "Thomas", Receiver: "Swapneel"},
		}
		blocking, err := DetectInstabilities(m, smtBigPrefs(), smtLittlePrefs(), RankedTies)
		require.NoError(t, err)
		require.Empty(t, blocking)
	})

	t.Run("PartialUnmatchedBlocks", func(t *testing.T) {
		// Ishaan and Zora are both unmatched and rank each other, so
		// they block even without current partners.
		m := Matching{
			{Proposer: "Thomas", Receiver: "Swapneel"},
			{Proposer: "Cindy", Receiver: "Kevin"},
		}
		blocking, err := DetectInstabilities(m, smtiBigPrefs(), smtiLittlePrefs(), PartialTies)
		require.NoError(t, err)
		require.Equal(t, []BlockingPair{{Proposer: "Ishaan", Receiver: "Zora"}}, blocking)
	})

	t.Run("PartialUnmatchedStable", func(t *testing.T) {
		// Kevin is unacceptable to Ishaan, so leaving both unmatched
		// produces no blocking pair among them.
		pp := PartialPrefs(map[string]map[string]int{
			"Ishaan": {"Swapneel": 1},
			"Cindy":  {"Kevin": 1, "Swapneel": 2},
		})
		rp := PartialPrefs(map[string]map[string]int{
			"Swapneel": {"Ishaan": 1, "Cindy": 2},
			"Kevin":    {"Cindy": 1, "Ishaan": 2},
		})
		m := Matching{
			{Proposer: "Cindy", Receiver: "Kevin"},
			{Proposer: "Ishaan", Receiver: "Swapneel"},
		}
		blocking, err := DetectInstabilities(m, pp, rp, PartialTies)
		require.NoError(t, err)
		require.Empty(t, blocking)
	})

	t.Run("ForcedUnacceptablePairRejected", func(t *testing.T) {
		// Ishaan does not rank Kevin; a matching pairing them is
		// invalid input, not merely unstable.
		m := Matching{{Proposer: "Ishaan", Receiver: "Kevin"}}
		_, err := DetectInstabilities(m, smtiBigPrefs(), smtiLittlePrefs(), PartialTies)
		var invalid *InvalidInputError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("DuplicatePairRejected", func(t *testing.T) {
		m := Matching{
			{Proposer: "Ishaan", Receiver: "Swapneel"},
			{Proposer: "Ishaan", Receiver: "Swapneel"},
		}
		_, err := DetectInstabilities(m, smtiBigPrefs(), smtiLittlePrefs(), PartialTies)
		var invalid *InvalidInputError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("MatchedTwiceRejected", func(t *testing.T) {
		m := Matching{
			{Proposer: "Ishaan", Receiver: "Swapneel"},
			{Proposer: "Ishaan", Receiver: "Zora"},
		}
		_, err := DetectInstabilities(m, smtiBigPrefs(), smtiLittlePrefs(), PartialTies)
		var invalid *InvalidInputError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("WeightedMayBeUnstable", func(t *testing.T) {
		// The weighted variant trades stability away; the detector
		// still reports what it gave up, with capacities respected.
		bigs := []Participant{{ID: "Ishaan"}, {ID: "Cindy", Max: 2}, {ID: "Thomas"}}
		littles := participants("Swapneel", "Zora", "Kevin", "Morgan")
		bigPrefs := ListPrefs(map[string][]string{
			"Ishaan": {"Swapneel", "Zora", "Kevin", "Morgan"},
			"Cindy":  {"Zora", "Swapneel", "Morgan", "Kevin"},
			"Thomas": {"Kevin", "Morgan", "Swapneel", "Zora"},
		})
		littlePrefs := ListPrefs(map[string][]string{
			"Swapneel": {"Ishaan", "Cindy", "Thomas"},
			"Zora":     {"Cindy", "Ishaan", "Thomas"},
			"Kevin":    {"Thomas", "Ishaan", "Cindy"},
			"Morgan":   {"Thomas", "Cindy", "Ishaan"},
		})
		m, _, err := Solve(WeightedOptimize, bigs, littles, bigPrefs, littlePrefs, nil)
		require.NoError(t, err)

		blocking, err := DetectInstabilities(m, bigPrefs, littlePrefs, WeightedOptimize)
		require.NoError(t, err)
		// Morgan would rather have Thomas, but Thomas holds his first
		// choice: no blocking pairs in this instance.
		require.Empty(t, blocking)
	})
}
