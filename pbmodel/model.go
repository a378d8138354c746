// Copyright 2023 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pbmodel provides a small boolean model with linear
// (pseudo-boolean) constraints and an optional linear objective,
// solved by gophersat.
package pbmodel

import (
	"errors"
	"time"

	"github.com/crillab/gophersat/solver"
)

var (
	// ErrInfeasible is returned by Solve when no assignment satisfies
	// the constraints.
	ErrInfeasible = errors.New("pbmodel: infeasible")
	// ErrTimeout is returned by Solve when the deadline passed before
	// the search finished.
	ErrTimeout = errors.New("pbmodel: timeout")
)

// Var identifies one boolean variable of a Model. Vars are positive;
// the negation of v in a clause is -v.
type Var int

// Model accumulates variables and constraints, then solves once.
// A Model is built fresh per problem and must not be reused after
// Solve.
type Model struct {
	nvars      int
	constrs    []solver.PBConstr
	objVars    []Var
	objWeights []int
}

func New() *Model {
	return &Model{}
}

// NewBool adds a fresh boolean variable.
func (m *Model) NewBool() Var {
	m.nvars++
	return Var(m.nvars)
}

// NumVars reports how many variables the model holds.
func (m *Model) NumVars() int { return m.nvars }

// NumConstrs reports how many constraints the model holds.
func (m *Model) NumConstrs() int { return len(m.constrs) }

// AddClause requires at least one of the literals to hold. A negative
// literal -v stands for the negation of v.
func (m *Model) AddClause(lits ...int) {
	m.constrs = append(m.constrs, solver.GtEq(lits, nil, 1))
}

// AddAtLeast requires at least k of the vars to be true.
func (m *Model) AddAtLeast(vars []Var, k int) {
	m.constrs = append(m.constrs, solver.GtEq(varLits(vars), nil, k))
}

// AddAtMost requires at most k of the vars to be true.
func (m *Model) AddAtMost(vars []Var, k int) {
	if k >= len(vars) {
		return
	}
	neg := make([]int, len(vars))
	for i, v := range vars {
		neg[i] = -int(v)
	}
	m.constrs = append(m.constrs, solver.GtEq(neg, nil, len(vars)-k))
}

// AddExactly requires exactly k of the vars to be true.
func (m *Model) AddExactly(vars []Var, k int) {
	m.AddAtLeast(vars, k)
	m.AddAtMost(vars, k)
}

// AddOrEquiv ties aux to the disjunction of vars as a hard logical
// equivalence: aux is true iff at least one of vars is true. With no
// vars, aux is forced false.
func (m *Model) AddOrEquiv(aux Var, vars []Var) {
	if len(vars) == 0 {
		m.AddClause(-int(aux))
		return
	}
	lits := make([]int, 0, len(vars)+1)
	lits = append(lits, -int(aux))
	for _, v := range vars {
		lits = append(lits, int(v))
	}
	m.AddClause(lits...)
	for _, v := range vars {
		m.AddClause(-int(v), int(aux))
	}
}

// Maximize adds weight to the objective whenever v is true. Weights
// must be non-negative; zero-weight terms are dropped. Calling
// Maximize at least once switches Solve from feasibility search to
// optimization.
func (m *Model) Maximize(v Var, weight int) {
	if weight <= 0 {
		return
	}
	m.objVars = append(m.objVars, v)
	m.objWeights = append(m.objWeights, weight)
}

// Assignment holds the value of every variable of a solved model.
type Assignment []bool

// True reports whether v is true in the assignment.
func (a Assignment) True(v Var) bool { return a[int(v)-1] }

// Solve searches for a satisfying assignment, the best one when an
// objective was set. The timeout is advisory: when positive and
// exceeded, Solve returns ErrTimeout while the underlying search is
// abandoned to finish in the background.
func (m *Model) Solve(timeout time.Duration, verbose bool) (Assignment, error) {
	if timeout <= 0 {
		return m.solve(verbose)
	}

	type outcome struct {
		a   Assignment
		err error
	}
	ch := make(chan outcome, 1)
	go func() {
		a, err := m.solve(verbose)
		ch <- outcome{a, err}
	}()

	select {
	case out := <-ch:
		return out.a, out.err
	case <-time.After(timeout):
		return nil, ErrTimeout
	}
}

func (m *Model) solve(verbose bool) (Assignment, error) {
	pb := solver.ParsePBConstrs(m.constrs)
	if len(m.objVars) > 0 {
		// Minimizing the weight of false objective vars maximizes the
		// weight of true ones.
		lits := make([]solver.Lit, len(m.objVars))
		for i, v := range m.objVars {
			lits[i] = solver.IntToLit(int32(-v))
		}
		pb.SetCostFunc(lits, m.objWeights)
	}
	s := solver.New(pb)
	s.Verbose = verbose

	if len(m.objVars) > 0 {
		if cost := s.Minimize(); cost < 0 {
			return nil, ErrInfeasible
		}
		return m.extract(s)
	}

	switch s.Solve() {
	case solver.Sat:
		return m.extract(s)
	case solver.Unsat:
		return nil, ErrInfeasible
	default:
		return nil, errors.New("pbmodel: search was interrupted")
	}
}

func (m *Model) extract(s *solver.Solver) (Assignment, error) {
	model := s.Model()
	if len(model) < m.nvars {
		// Vars that appear in no constraint are free; extend with false.
		ext := make([]bool, m.nvars)
		copy(ext, model)
		model = ext
	}
	return Assignment(model), nil
}

func varLits(vars []Var) []int {
	lits := make([]int, len(vars))
	for i, v := range vars {
		lits[i] = int(v)
	}
	return lits
}
