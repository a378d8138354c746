// Copyright 2023 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

var variantNames = map[Variant]string{
	TotalOrder:       "total_order",
	RankedTies:       "ranked_ties",
	PartialTies:      "partial_ties",
	WeightedOptimize: "weighted_optimize",
}

// ParseVariant is the inverse of Variant.String.
func ParseVariant(s string) (Variant, error) {
	for v, name := range variantNames {
		if name == s {
			return v, nil
		}
	}
	return 0, &InvalidInputError{Reason: "unknown variant " + s}
}

func (v Variant) MarshalJSON() ([]byte, error) {
	name, ok := variantNames[v]
	if !ok {
		return nil, fmt.Errorf("stablematch: cannot marshal variant %d", int(v))
	}
	return json.Marshal(name)
}

func (v *Variant) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseVariant(name)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Sort orders the pairs by proposer then receiver, the canonical
// order of every matching this package produces or serializes.
func (m Matching) Sort() {
	sort.Slice(m, func(i, j int) bool {
		if m[i].Proposer != m[j].Proposer {
			return m[i].Proposer < m[j].Proposer
		}
		return m[i].Receiver < m[j].Receiver
	})
}

// Encode writes the result as JSON in canonical pair order.
func (r *Result) Encode(w io.Writer) error {
	canon := &Result{
		Variant:   r.Variant,
		Pairs:     append(Matching(nil), r.Pairs...),
		Objective: r.Objective,
	}
	canon.Pairs.Sort()

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "   ")
	return encoder.Encode(canon)
}

// Marshal returns the result as canonical JSON bytes.
func (r *Result) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeResult parses a result previously produced by Encode. The
// pair set round-trips losslessly regardless of order.
func DecodeResult(rd io.Reader) (*Result, error) {
	var r Result
	decoder := json.NewDecoder(rd)
	if err := decoder.Decode(&r); err != nil {
		return nil, err
	}
	for _, pair := range r.Pairs {
		if pair.Proposer == "" || pair.Receiver == "" {
			return nil, &InvalidInputError{Reason: "matching record with empty participant"}
		}
	}
	r.Pairs.Sort()
	return &r, nil
}

// UnmarshalResult parses a result from JSON bytes.
func UnmarshalResult(data []byte) (*Result, error) {
	return DecodeResult(bytes.NewReader(data))
}
