// Copyright (c) 2012 by Christoph Hack <christoph@tux21b.org>
// All rights reserved. Distributed under the Simplified BSD License.

package jetan

import "fmt"

// initialPlacement is one entry of the standard Jetan starting position.
type initialPlacement struct {
	Type  PieceType
	Color Color
	Row   int
	Col   int
}

// standardSetup is the standard starting position, ported square-for-square
// from the original prototype's INITIAL_BOARD_SETUP.
var standardSetup = []initialPlacement{
	{Warrior, Orange, 9, 0},
	{Padwar, Orange, 9, 1},
	{Dwar, Orange, 9, 2},
	{Flier, Orange, 9, 3},
	{Princess, Orange, 9, 4},
	{Chief, Orange, 9, 5},
	{Flier, Orange, 9, 6},
	{Dwar, Orange, 9, 7},
	{Padwar, Orange, 9, 8},
	{Warrior, Orange, 9, 9},
	{Thoat, Orange, 8, 0},
	{Panthan, Orange, 8, 1},
	{Panthan, Orange, 8, 2},
	{Panthan, Orange, 8, 3},
	{Panthan, Orange, 8, 4},
	{Panthan, Orange, 8, 5},
	{Panthan, Orange, 8, 6},
	{Panthan, Orange, 8, 7},
	{Panthan, Orange, 8, 8},
	{Thoat, Black, 8, 9},
	{Warrior, Black, 0, 0},
	{Padwar, Black, 0, 1},
	{Dwar, Black, 0, 2},
	{Flier, Black, 0, 3},
	{Princess, Black, 0, 4},
	{Chief, Black, 0, 5},
	{Flier, Black, 0, 6},
	{Dwar, Black, 0, 7},
	{Padwar, Black, 0, 8},
	{Warrior, Black, 0, 9},
	{Thoat, Black, 1, 0},
	{Panthan, Black, 1, 1},
	{Panthan, Black, 1, 2},
	{Panthan, Black, 1, 3},
	{Panthan, Black, 1, 4},
	{Panthan, Black, 1, 5},
	{Panthan, Black, 1, 6},
	{Panthan, Black, 1, 7},
	{Panthan, Black, 1, 8},
	{Thoat, Black, 1, 9},
}

// InitialBoard returns a fresh board in the standard Jetan starting
// position, with freshly minted piece ids of the form "<color>-<n>".
func InitialBoard() *Board {
	counters := map[Color]int{Orange: 0, Black: 0}
	pieces := make([]*Piece, 0, len(standardSetup))
	for _, pl := range standardSetup {
		counters[pl.Color]++
		id := fmt.Sprintf("%s-%d", pl.Color.Lower(), counters[pl.Color])
		pieces = append(pieces, NewPiece(id, pl.Type, pl.Color, Square{Row: pl.Row, Col: pl.Col}))
	}
	return NewBoard(pieces)
}
