// Copyright 2023 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func smpBigPrefs() Prefs {
	return ListPrefs(map[string][]string{
		"Ishaan": {"Swapneel", "Zora", "Kevin"},
		"Cindy":  {"Kevin", "Swapneel", "Zora"},
		"Thomas": {"Zora", "Kevin", "Swapneel"},
	})
}

func smpLittlePrefs() Prefs {
	return ListPrefs(map[string][]string{
		"Swapneel": {"Thomas", "Ishaan", "Cindy"},
		"Zora":     {"Cindy", "Thomas", "Ishaan"},
		"Kevin":    {"Ishaan", "Cindy", "Thomas"},
	})
}

func TestDeferredAcceptance(t *testing.T) {
	t.Run("FirstChoicesAvailable", func(t *testing.T) {
		// Every proposer has a distinct first choice, so the
		// proposer-optimal matching hands each of them exactly that.
		m, err := DeferredAcceptance(smpBigPrefs(), smpLittlePrefs())
		require.NoError(t, err)
		require.Equal(t, Matching{
			{Proposer: "Cindy", Receiver: "Kevin"},
			{Proposer: "Ishaan", Receiver: "Swapneel"},
			{Proposer: "Thomas", Receiver: "Zora"},
		}, m)

		blocking, err := DetectInstabilities(m, smpBigPrefs(), smpLittlePrefs(), TotalOrder)
		require.NoError(t, err)
		require.Empty(t, blocking)
	})

	t.Run("WithDisplacement", func(t *testing.T) {
		pp := ListPrefs(map[string][]string{
			"a": {"x", "y"},
			"b": {"x", "y"},
		})
		rp := ListPrefs(map[string][]string{
			"x": {"b", "a"},
			"y": {"a", "b"},
		})
		// Both propose to x first; x keeps b and a falls through to y.
		m, err := DeferredAcceptance(pp, rp)
		require.NoError(t, err)
		require.Equal(t, Matching{
			{Proposer: "a", Receiver: "y"},
			{Proposer: "b", Receiver: "x"},
		}, m)

		blocking, err := DetectInstabilities(m, pp, rp, TotalOrder)
		require.NoError(t, err)
		require.Empty(t, blocking)
	})

	t.Run("ProposerOptimality", func(t *testing.T) {
		// Swapping the roles can only improve the new proposer side,
		// rank-wise, over what it got as the receiver side.
		forward, err := DeferredAcceptance(smpBigPrefs(), smpLittlePrefs())
		require.NoError(t, err)
		backward, err := DeferredAcceptance(smpLittlePrefs(), smpBigPrefs())
		require.NoError(t, err)

		littles := smpLittlePrefs()
		rIDs := littles.owners()
		bIDs := smpBigPrefs().owners()
		tab, err := littles.bind(rIDs, bIDs, true)
		require.NoError(t, err)

		fwd := make(map[string]string) // little -> big
		for _, pair := range forward {
			fwd[pair.Receiver] = pair.Proposer
		}
		for _, pair := range backward {
			got := tab.RankOf(pair.Proposer, pair.Receiver)
			had := tab.RankOf(pair.Proposer, fwd[pair.Proposer])
			require.LessOrEqual(t, got, had,
				"little %s worse off when proposing", pair.Proposer)
		}
	})

	t.Run("MoreProposersThanReceivers", func(t *testing.T) {
		pp := ListPrefs(map[string][]string{
			"a": {"x"},
			"b": {"x"},
			"c": {"x"},
		})
		rp := ListPrefs(map[string][]string{
			"x": {"c", "b", "a"},
		})
		m, err := DeferredAcceptance(pp, rp)
		require.NoError(t, err)
		require.Equal(t, Matching{{Proposer: "c", Receiver: "x"}}, m)
	})

	t.Run("RequiresTotalOrders", func(t *testing.T) {
		_, err := DeferredAcceptance(
			RankPrefs(map[string]map[string]int{"a": {"x": 1}}),
			ListPrefs(map[string][]string{"x": {"a"}}),
		)
		var invalid *InvalidInputError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("RequiresCompleteLists", func(t *testing.T) {
		pp := ListPrefs(map[string][]string{
			"a": {"x"},
			"b": {"x", "y"},
		})
		rp := ListPrefs(map[string][]string{
			"x": {"a", "b"},
			"y": {"a", "b"},
		})
		_, err := DeferredAcceptance(pp, rp)
		var incomplete *IncompletePreferenceError
		require.ErrorAs(t, err, &incomplete)
	})
}
