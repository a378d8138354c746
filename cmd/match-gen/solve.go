// Copyright 2023 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/someonegg/stablematch"
	"github.com/someonegg/stablematch/mentorship"
)

// Problem is the JSON shape of one matching instance.
type Problem struct {
	Variant     stablematch.Variant `json:"variant"`
	Bigs        []mentorship.Big    `json:"bigs"`
	Littles     []mentorship.Little `json:"littles"`
	BigPrefs    mentorship.PrefData `json:"big_prefs"`
	LittlePrefs mentorship.PrefData `json:"little_prefs"`
	Weight      *float64            `json:"weight,omitempty"`
	ExactlyOne  bool                `json:"exactly_one,omitempty"`
}

func doSolve(problemFile, matchingFile string, weight *float64, verbose bool) error {
	problem, err := loadProblem(problemFile)
	if err != nil {
		return fmt.Errorf("load problem file failed: %w", err)
	}
	if weight == nil {
		weight = problem.Weight
	}

	matcher := &mentorship.Matcher{
		Variant:    problem.Variant,
		Weight:     weight,
		ExactlyOne: problem.ExactlyOne,
		Verbose:    verbose,
	}

	result, blocking, summ, err := matcher.Match(problem.Bigs, problem.Littles,
		problem.BigPrefs, problem.LittlePrefs)
	if err != nil {
		return err
	}
	fmt.Printf("%+v\n", summ)
	for _, bp := range blocking {
		fmt.Println("blocking:", bp.Proposer, "-", bp.Receiver)
	}

	if err := writeResult(matchingFile, result); err != nil {
		return fmt.Errorf("write matching file failed: %w", err)
	}
	return nil
}

func doCheck(problemFile, matchingFile string) error {
	problem, err := loadProblem(problemFile)
	if err != nil {
		return fmt.Errorf("load problem file failed: %w", err)
	}

	data, err := os.ReadFile(matchingFile)
	if err != nil {
		return fmt.Errorf("load matching file failed: %w", err)
	}
	result, err := stablematch.UnmarshalResult(data)
	if err != nil {
		return fmt.Errorf("parse matching file failed: %w", err)
	}

	bigPrefs, err := problem.BigPrefs.Prefs(result.Variant)
	if err != nil {
		return fmt.Errorf("big preferences: %w", err)
	}
	littlePrefs, err := problem.LittlePrefs.Prefs(result.Variant)
	if err != nil {
		return fmt.Errorf("little preferences: %w", err)
	}

	blocking, err := stablematch.DetectInstabilities(result.Pairs, bigPrefs, littlePrefs, result.Variant)
	if err != nil {
		return err
	}
	if len(blocking) == 0 {
		fmt.Println("stable:", len(result.Pairs), "pairs")
		return nil
	}
	for _, bp := range blocking {
		fmt.Println("blocking:", bp.Proposer, "-", bp.Receiver)
	}
	return fmt.Errorf("%d blocking pairs", len(blocking))
}

func loadProblem(file string) (*Problem, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var problem Problem
	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&problem); err != nil {
		return nil, err
	}
	return &problem, nil
}

func writeResult(file string, result *stablematch.Result) error {
	var buf bytes.Buffer
	if err := result.Encode(&buf); err != nil {
		return err
	}
	return os.WriteFile(file, buf.Bytes(), 0644)
}
