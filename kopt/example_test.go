// Package kopt_test examples: deterministic instances with a stable
// // Output: block.
package kopt_test

import (
	"fmt"

	"github.com/katalvlaran/lkh/construct"
	"github.com/katalvlaran/lkh/kopt"
	"github.com/katalvlaran/lkh/matrix"
)

// ExampleNewLK improves a crossed tour on the unit square with its centre.
func ExampleNewLK() {
	m, _ := matrix.FromPoints([]matrix.Point{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0.5, Y: 0.5},
	})
	e, err := kopt.NewLK(m, []int{0, 2, 1, 3, 4},
		kopt.WithCandidateSize(4), kopt.WithBridge(kopt.BridgeExhaustive, false))
	if err != nil {
		fmt.Println(err)
		return
	}
	length, _ := e.Optimize()
	fmt.Printf("%.4f\n", length)
	// Output: 4.4142
}

// ExamplePrepareLKH runs the alpha pipeline once and starts LKH from a
// greedy tour.
func ExamplePrepareLKH() {
	pts := []matrix.Point{
		{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 2},
		{X: 4, Y: 4}, {X: 2, Y: 4}, {X: 0, Y: 4}, {X: 0, Y: 2},
	}
	m, _ := matrix.FromPoints(pts)
	prep, err := kopt.PrepareLKH(m, kopt.WithCandidateSize(4))
	if err != nil {
		fmt.Println(err)
		return
	}
	start, _, _ := construct.Greedy(m, 0)
	e, _ := kopt.NewLKH(m, start, prep)
	length, _ := e.Optimize()
	fmt.Printf("bound <= length: %v, length %.1f\n", prep.Bound <= length+1e-6, length)
	// Output: bound <= length: true, length 16.0
}
