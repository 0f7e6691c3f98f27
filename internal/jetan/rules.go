// Copyright (c) 2012 by Christoph Hack <christoph@tux21b.org>
// All rights reserved. Distributed under the Simplified BSD License.

package jetan

import "fmt"

type capabilityKey struct {
	Type  PieceType
	Color Color
}

// panthanOrange allows the five directions that do not increase the column
// (forward, backward, sideways toward column 0, and the two diagonals on
// that side); panthanBlack mirrors it, allowing the five that do not
// decrease the column.
var (
	panthanOrange = []Delta{{-1, 0}, {-1, -1}, {0, -1}, {1, -1}, {1, 0}}
	panthanBlack  = []Delta{{-1, 0}, {-1, 1}, {0, 1}, {1, 1}, {1, 0}}
)

// capabilitiesByType is the static (PieceType, Color) -> capability-list
// table described in §4.D / §9 ("a static table keyed by (PieceType,
// Color)"), rather than virtual dispatch on a piece class hierarchy.
var capabilitiesByType = map[capabilityKey][]Capability{
	{Panthan, Black}:   {Stepper(panthanBlack, 1)},
	{Panthan, Orange}:  {Stepper(panthanOrange, 1)},
	{Chief, Black}:     {Stepper(OrthoDiagonal(), 3)},
	{Chief, Orange}:    {Stepper(OrthoDiagonal(), 3)},
	{Warrior, Black}:   {Stepper(Ortho, 2)},
	{Warrior, Orange}:  {Stepper(Ortho, 2)},
	{Padwar, Black}:    {Stepper(Diagonal, 2)},
	{Padwar, Orange}:   {Stepper(Diagonal, 2)},
	{Dwar, Black}:      {Stepper(Ortho, 3)},
	{Dwar, Orange}:     {Stepper(Ortho, 3)},
	{Flier, Black}:     {Jumper(Diagonal, 3)},
	{Flier, Orange}:    {Jumper(Diagonal, 3)},
	{Thoat, Black}:     {ThoatMovement()},
	{Thoat, Orange}:    {ThoatMovement()},
	{Princess, Black}:  {JumperNoCapture(OrthoDiagonal(), 3), PrincessEscapeCapability()},
	{Princess, Orange}: {JumperNoCapture(OrthoDiagonal(), 3), PrincessEscapeCapability()},
}

// CapabilitiesFor returns the capability list for a (type, color) pair.
func CapabilitiesFor(t PieceType, c Color) []Capability {
	return capabilitiesByType[capabilityKey{t, c}]
}

// AllPaths returns every path produced by every capability of piece on
// board, without deduplicating by destination. Used directly by the
// capability-count-law tests in §8.
func AllPaths(piece *Piece, board *Board) [][]Square {
	var out [][]Square
	for _, cap := range CapabilitiesFor(piece.Type, piece.Color) {
		out = append(out, cap.Paths(piece, board)...)
	}
	return out
}

// RawDestinations is the deduplicated set of final squares over every path
// the piece's capabilities produce, with no Princess-specific filtering.
// This is what ThreatenedSquares uses to compute enemy reach.
func RawDestinations(piece *Piece, board *Board) []Square {
	seen := make(map[Square]struct{})
	var out []Square
	for _, path := range AllPaths(piece, board) {
		dst := path[len(path)-1]
		if _, ok := seen[dst]; !ok {
			seen[dst] = struct{}{}
			out = append(out, dst)
		}
	}
	return out
}

// LegalDestinations is RawDestinations further filtered, for the Princess
// only, to exclude any square threatened by the opposing side (she cannot
// enter check in this variant, mirroring §4.E).
func LegalDestinations(piece *Piece, board *Board) []Square {
	raw := RawDestinations(piece, board)
	if piece.Type != Princess {
		return raw
	}
	threatened := board.ThreatenedSquares(piece.Color)
	filtered := raw[:0:0]
	for _, sq := range raw {
		if _, bad := threatened[sq]; !bad {
			filtered = append(filtered, sq)
		}
	}
	return filtered
}

// ValidateMove reports whether moving pieceID to "to" is legal on board:
// the destination must appear among the mover's legal destinations.
func ValidateMove(board *Board, pieceID string, to Square) error {
	piece := board.PieceByID(pieceID)
	if piece == nil {
		return errIllegalMove("no piece with that id")
	}
	if !containsSquare(LegalDestinations(piece, board), to) {
		return errIllegalMove(fmt.Sprintf("%s at %s cannot reach %s", piece.Type, piece.Square, to))
	}
	return nil
}

// CaptureTermination reports the terminal result string produced when a
// piece of capturedType/capturedColor is captured, if any (only the Chief
// and Princess end the game).
func CaptureTermination(capturedType PieceType, capturedColor Color) (string, bool) {
	winner := capturedColor.Opponent()
	switch capturedType {
	case Chief:
		return fmt.Sprintf("chief_capture_%s", winner.Lower()), true
	case Princess:
		return fmt.Sprintf("princess_capture_%s", winner.Lower()), true
	default:
		return "", false
	}
}
