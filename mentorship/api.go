// Copyright 2023 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mentorship uses stablematch to pair bigs with littles.
package mentorship

import "github.com/someonegg/stablematch"

// Big is a mentor-side participant.
type Big struct {
	Name string `json:"name"`
	Max  int    `json:"max,omitempty"`
}

// Little is a mentee-side participant.
type Little struct {
	Name string `json:"name"`
	Max  int    `json:"max,omitempty"`
}

// PrefData carries one side's preferences in JSON form. Exactly one
// field is set: Lists for strict total orders, Ranks for rank maps
// (complete or partial, depending on the variant).
type PrefData struct {
	Lists map[string][]string       `json:"lists,omitempty"`
	Ranks map[string]map[string]int `json:"ranks,omitempty"`
}

// Matcher solves big/little instances.
type Matcher struct {
	Variant stablematch.Variant `json:"variant"`

	// Weight blends big against little preference for
	// WeightedOptimize, in [0, 1]. When nil, 0.5.
	Weight *float64 `json:"weight,omitempty"`

	// ExactlyOne forces one match per participant for
	// WeightedOptimize.
	ExactlyOne bool `json:"exactly_one,omitempty"`

	Verbose bool `json:"vv,omitempty"`
}

// Summary describes one match run.
type Summary struct {
	Bigs      int      `json:"bigs"`
	Littles   int      `json:"littles"`
	Matched   int      `json:"matched"`
	Unmatched int      `json:"unmatched"`
	Blocking  int      `json:"blocking"`
	Objective *float64 `json:"objective,omitempty"`
}
