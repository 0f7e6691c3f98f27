// Copyright (c) 2012 by Christoph Hack <christoph@tux21b.org>
// All rights reserved. Distributed under the Simplified BSD License.

package jetan

import "strings"

// Color is one of the two sides. Orange moves first.
type Color int

const (
	Orange Color = iota
	Black
)

func (c Color) String() string {
	if c == Orange {
		return "ORANGE"
	}
	return "BLACK"
}

// Opponent returns the other color.
func (c Color) Opponent() Color {
	if c == Orange {
		return Black
	}
	return Orange
}

// Lower returns the color's lowercase wire form, used in result strings
// like "chief_capture_orange".
func (c Color) Lower() string {
	return strings.ToLower(c.String())
}

// ParseColor parses the case-insensitive wire form of a color.
func ParseColor(s string) (Color, bool) {
	switch strings.ToUpper(s) {
	case "ORANGE":
		return Orange, true
	case "BLACK":
		return Black, true
	default:
		return 0, false
	}
}

// PieceType enumerates the eight Jetan piece kinds.
type PieceType int

const (
	Panthan PieceType = iota
	Chief
	Princess
	Padwar
	Warrior
	Thoat
	Dwar
	Flier
)

var pieceTypeNames = [...]string{"Panthan", "Chief", "Princess", "Padwar", "Warrior", "Thoat", "Dwar", "Flier"}

func (t PieceType) String() string {
	if int(t) < 0 || int(t) >= len(pieceTypeNames) {
		return "Unknown"
	}
	return pieceTypeNames[t]
}

// ParsePieceType parses the case-insensitive wire form of a piece type.
func ParsePieceType(s string) (PieceType, bool) {
	for i, name := range pieceTypeNames {
		if strings.EqualFold(name, s) {
			return PieceType(i), true
		}
	}
	return 0, false
}

// Piece is a single live piece on the board. HasEscape is only meaningful
// for the Princess: it starts true and is consumed the first time she plays
// a move only reachable through PrincessEscape (see capability.go).
type Piece struct {
	ID        string
	Type      PieceType
	Color     Color
	Square    Square
	HasEscape bool
}

// NewPiece constructs a piece, setting HasEscape for Princesses.
func NewPiece(id string, t PieceType, c Color, sq Square) *Piece {
	return &Piece{
		ID:        id,
		Type:      t,
		Color:     c,
		Square:    sq,
		HasEscape: t == Princess,
	}
}

// Clone returns a copy of the piece; Board.Clone uses it so a cloned board
// shares no pieces with the original.
func (p *Piece) Clone() *Piece {
	cp := *p
	return &cp
}
