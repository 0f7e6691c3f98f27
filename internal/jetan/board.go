// Copyright (c) 2012 by Christoph Hack <christoph@tux21b.org>
// All rights reserved. Distributed under the Simplified BSD License.

package jetan

// Board holds the set of live pieces for a single game. At most one piece
// occupies any given square; the caller (the coordinator) is responsible for
// only ever constructing boards that satisfy that invariant.
type Board struct {
	pieces []*Piece
}

// NewBoard builds a board from an initial piece list. The slice is copied,
// so the caller may reuse or discard it afterwards.
func NewBoard(pieces []*Piece) *Board {
	cp := make([]*Piece, len(pieces))
	copy(cp, pieces)
	return &Board{pieces: cp}
}

// Clone returns a board with its own copies of every piece, so mutating the
// clone (or the original) never affects the other.
func (b *Board) Clone() *Board {
	cp := make([]*Piece, len(b.pieces))
	for i, p := range b.pieces {
		cp[i] = p.Clone()
	}
	return &Board{pieces: cp}
}

// Pieces returns the live pieces. The slice is owned by the board; callers
// must not mutate it.
func (b *Board) Pieces() []*Piece {
	return b.pieces
}

// PieceAt returns the piece occupying sq, or nil if the square is empty.
func (b *Board) PieceAt(sq Square) *Piece {
	for _, p := range b.pieces {
		if p.Square == sq {
			return p
		}
	}
	return nil
}

// PieceByID returns the piece with the given id, or nil.
func (b *Board) PieceByID(id string) *Piece {
	for _, p := range b.pieces {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (b *Board) removePiece(id string) {
	for i, p := range b.pieces {
		if p.ID == id {
			b.pieces = append(b.pieces[:i], b.pieces[i+1:]...)
			return
		}
	}
}

// ThreatenedSquares is the union, over every enemy piece except the enemy
// Princess, of its raw destinations. The Princess is excluded because she
// cannot capture.
func (b *Board) ThreatenedSquares(color Color) map[Square]struct{} {
	threatened := make(map[Square]struct{})
	enemy := color.Opponent()
	for _, p := range b.pieces {
		if p.Color != enemy || p.Type == Princess {
			continue
		}
		for _, sq := range RawDestinations(p, b) {
			threatened[sq] = struct{}{}
		}
	}
	return threatened
}

// MoveDiff describes the structural effect of a single applied move,
// sufficient to replay a board from a prior snapshot.
type MoveDiff struct {
	MovedPieceID   string
	To             Square
	CapturedID     string
	CapturedType   PieceType
	CapturedColor  Color
	Captured       bool
	EscapeConsumed bool
}

// ApplyMove moves the piece identified by pieceID to "to", validating
// legality (including the Princess threatened-square rule) first. It
// mutates the board in place and returns the diff describing the change.
func (b *Board) ApplyMove(pieceID string, to Square) (MoveDiff, error) {
	piece := b.PieceByID(pieceID)
	if piece == nil {
		return MoveDiff{}, errIllegalMove("no such piece")
	}
	if !containsSquare(LegalDestinations(piece, b), to) {
		return MoveDiff{}, errIllegalMove("destination is not reachable by this piece")
	}

	var diff MoveDiff
	if captured := b.PieceAt(to); captured != nil {
		diff.Captured = true
		diff.CapturedID = captured.ID
		diff.CapturedType = captured.Type
		diff.CapturedColor = captured.Color
		b.removePiece(captured.ID)
	}

	if isEscapeMove(piece, to, b) {
		piece.HasEscape = false
		diff.EscapeConsumed = true
	}

	piece.Square = to
	diff.MovedPieceID = piece.ID
	diff.To = to
	return diff, nil
}

// illegalMoveError is a small sentinel distinguishing rules-level rejections
// from programming errors; the coordinator turns it into a BadAction.
type illegalMoveError struct{ msg string }

func (e *illegalMoveError) Error() string { return e.msg }

func errIllegalMove(msg string) error { return &illegalMoveError{msg: msg} }

// IsIllegalMove reports whether err was produced by ApplyMove/validation
// rejecting a move as not legal, as opposed to a different kind of failure.
func IsIllegalMove(err error) bool {
	_, ok := err.(*illegalMoveError)
	return ok
}

// isEscapeMove reports whether reaching "to" from piece's square requires
// the Princess's once-per-game escape capability, i.e. the square is not
// also reachable via her ordinary JumperNoCapture movement.
func isEscapeMove(piece *Piece, to Square, board *Board) bool {
	if piece.Type != Princess || !piece.HasEscape {
		return false
	}
	ordinary := JumperNoCapture(OrthoDiagonal(), 3)
	for _, path := range ordinary.Paths(piece, board) {
		if path[len(path)-1] == to {
			return false
		}
	}
	return true
}
