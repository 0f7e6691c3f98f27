// Copyright (c) 2012 by Christoph Hack <christoph@tux21b.org>
// All rights reserved. Distributed under the Simplified BSD License.

// Package jetan implements the Jetan rules engine: a 10x10 board, eight
// piece types per side, and the capability-composition movement model.
package jetan

import "fmt"

// BoardSize is the width and height of the Jetan board.
const BoardSize = 10

// Square is a single board position. Squares are value-typed and comparable
// with ==, which makes them usable as map keys and lets two boards be
// compared piece-by-piece.
type Square struct {
	Row, Col int
}

// Delta is a relative movement, e.g. one step north-east is Delta{-1, 1}.
type Delta struct {
	DRow, DCol int
}

// Orthogonal and diagonal direction sets shared by several capabilities.
var (
	Ortho = []Delta{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

	Diagonal = []Delta{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
)

// OrthoDiagonal returns a fresh slice combining Ortho and Diagonal, safe for
// a caller to hold onto without aliasing the package-level slices.
func OrthoDiagonal() []Delta {
	out := make([]Delta, 0, len(Ortho)+len(Diagonal))
	out = append(out, Ortho...)
	out = append(out, Diagonal...)
	return out
}

// NewSquare validates that (row, col) lies on the board.
func NewSquare(row, col int) (Square, error) {
	if row < 0 || row >= BoardSize || col < 0 || col >= BoardSize {
		return Square{}, fmt.Errorf("jetan: square (%d,%d) is outside the %dx%d board", row, col, BoardSize, BoardSize)
	}
	return Square{Row: row, Col: col}, nil
}

// InBounds reports whether the square lies on the board.
func (s Square) InBounds() bool {
	return s.Row >= 0 && s.Row < BoardSize && s.Col >= 0 && s.Col < BoardSize
}

// Add returns the square reached by applying delta to s. The second return
// value is false when the result would fall off the board.
func (s Square) Add(d Delta) (Square, bool) {
	next := Square{Row: s.Row + d.DRow, Col: s.Col + d.DCol}
	if !next.InBounds() {
		return Square{}, false
	}
	return next, true
}

// Less gives squares a stable row-major ordering.
func (s Square) Less(o Square) bool {
	if s.Row != o.Row {
		return s.Row < o.Row
	}
	return s.Col < o.Col
}

func (s Square) String() string {
	return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
}

func containsSquare(path []Square, sq Square) bool {
	for _, p := range path {
		if p == sq {
			return true
		}
	}
	return false
}

func appendCopy(path []Square, sq Square) []Square {
	out := make([]Square, len(path)+1)
	copy(out, path)
	out[len(path)] = sq
	return out
}
