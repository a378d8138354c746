// Copyright 2023 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResultRoundTrip(t *testing.T) {
	t.Run("PairOrderIrrelevant", func(t *testing.T) {
		objective := 12.5
		shuffled := &Result{
			Variant: WeightedOptimize,
			Pairs: Matching{
				{Proposer: "Thomas", Receiver: "Kevin"},
				{Proposer: "Cindy", Receiver: "Zora"},
				{Proposer: "Ishaan", Receiver: "Swapneel"},
				{Proposer: "Cindy", Receiver: "Morgan"},
			},
			Objective: &objective,
		}

		data, err := shuffled.Marshal()
		require.NoError(t, err)

		parsed, err := UnmarshalResult(data)
		require.NoError(t, err)
		require.Equal(t, WeightedOptimize, parsed.Variant)
		require.NotNil(t, parsed.Objective)
		require.InDelta(t, objective, *parsed.Objective, 1e-9)
		require.Equal(t, Matching{
			{Proposer: "Cindy", Receiver: "Morgan"},
			{Proposer: "Cindy", Receiver: "Zora"},
			{Proposer: "Ishaan", Receiver: "Swapneel"},
			{Proposer: "Thomas", Receiver: "Kevin"},
		}, parsed.Pairs)

		// Serializing the parsed result reproduces the same bytes.
		again, err := parsed.Marshal()
		require.NoError(t, err)
		require.Equal(t, data, again)
	})

	t.Run("NoObjective", func(t *testing.T) {
		r := &Result{
			Variant: TotalOrder,
			Pairs:   Matching{{Proposer: "a", Receiver: "x"}},
		}
		data, err := r.Marshal()
		require.NoError(t, err)
		require.NotContains(t, string(data), "objective")

		parsed, err := UnmarshalResult(data)
		require.NoError(t, err)
		require.Nil(t, parsed.Objective)
		require.Equal(t, r.Pairs, parsed.Pairs)
	})

	t.Run("VariantTags", func(t *testing.T) {
		for v, name := range map[Variant]string{
			TotalOrder:       "total_order",
			RankedTies:       "ranked_ties",
			PartialTies:      "partial_ties",
			WeightedOptimize: "weighted_optimize",
		} {
			require.Equal(t, name, v.String())
			parsed, err := ParseVariant(name)
			require.NoError(t, err)
			require.Equal(t, v, parsed)
		}
		_, err := ParseVariant("roommates")
		var invalid *InvalidInputError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("EmptyParticipantRejected", func(t *testing.T) {
		_, err := UnmarshalResult([]byte(`{"variant":"total_order","pairs":[{"proposer":"","receiver":"x"}]}`))
		var invalid *InvalidInputError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("UnknownVariantRejected", func(t *testing.T) {
		_, err := UnmarshalResult([]byte(`{"variant":"roommates","pairs":[]}`))
		require.Error(t, err)
	})
}
