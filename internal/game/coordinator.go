// Copyright (c) 2012 by Christoph Hack <christoph@tux21b.org>
// All rights reserved. Distributed under the Simplified BSD License.

package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DDiggs91/Jetan/internal/jetan"
)

// CreateOptions mirrors create_game's inputs: a variant tag (currently
// ignored, reserved for future Jetan variants per spec Non-goals) and the
// per-game clock configuration.
type CreateOptions struct {
	Variant string
	Time    TimeConfig
}

// Snapshot is the read-only view returned by GetSnapshot and CreateGame.
type Snapshot struct {
	GameID  string
	Version int
	State   StateView
}

// JoinResult is the response shape for join_game.
type JoinResult struct {
	Seat string
}

// ControlResult is the response shape for apply_control.
type ControlResult struct {
	Result string
	Winner string
}

// LegalResult is the response shape for legal_destinations.
type LegalResult struct {
	Version     int
	From        SquareView
	Destination []SquareView
}

// MoveRequest is a shape-validated move payload; the HTTP boundary is
// responsible for parsing JSON into this before it reaches the coordinator.
type MoveRequest struct {
	Action string
	From   SquareView
	To     SquareView
	Tags   map[string]any
}

// MoveResult is the response shape for apply_move.
type MoveResult struct {
	Applied bool
	Version int
	Diff    Diff
	Events  []Event
	Clocks  Clocks
}

// DiffsResult is the response shape for get_diffs.
type DiffsResult struct {
	FromVersion int
	ToVersion   int
	Diffs       []Diff
}

// Coordinator is the injectable lifecycle manager described in spec §9: a
// table-level lock guards the game map itself, each Record guards its own
// mutation with its own mutex.
type Coordinator struct {
	tableMu sync.RWMutex
	games   map[string]*Record

	logger              *zap.SugaredLogger
	defaultInitialSec   int
	idempotencyCapacity int
}

// NewCoordinator builds a Coordinator. defaultInitialSec is used when a
// caller's CreateOptions.Time.InitialSec is zero; idempotencyCapacity bounds
// each game's idempotency LRU per §9.
func NewCoordinator(logger *zap.SugaredLogger, defaultInitialSec, idempotencyCapacity int) *Coordinator {
	return &Coordinator{
		games:               make(map[string]*Record),
		logger:              logger,
		defaultInitialSec:   defaultInitialSec,
		idempotencyCapacity: idempotencyCapacity,
	}
}

func (c *Coordinator) lookup(gameID string) (*Record, *Error) {
	c.tableMu.RLock()
	defer c.tableMu.RUnlock()
	r, ok := c.games[gameID]
	if !ok {
		return nil, newError(KindBadAction, "unknown game %q", gameID)
	}
	return r, nil
}

// CreateGame installs INITIAL_BOARD, version 0, ORANGE to move, empty seats,
// and clocks at the configured initial allotment.
func (c *Coordinator) CreateGame(opts CreateOptions) Snapshot {
	timeCfg := opts.Time
	if timeCfg.InitialSec <= 0 {
		timeCfg.InitialSec = c.defaultInitialSec
	}

	id := "g_" + uuid.NewString()
	rec := newRecord(id, timeCfg, c.idempotencyCapacity)

	c.tableMu.Lock()
	c.games[id] = rec
	c.tableMu.Unlock()

	c.logger.Infow("game created", "gameId", id, "initialSec", timeCfg.InitialSec)

	return Snapshot{GameID: id, Version: rec.Version, State: rec.snapshot()}
}

// GetSnapshot is read-only; per §5 it does not need the record's write
// lock, only a read lock against concurrent mutation of the fields it
// touches.
func (c *Coordinator) GetSnapshot(gameID string) (Snapshot, *Error) {
	rec, err := c.lookup(gameID)
	if err != nil {
		return Snapshot{}, err
	}
	rec.mu.RLock()
	defer rec.mu.RUnlock()
	return Snapshot{GameID: rec.ID, Version: rec.Version, State: rec.snapshot()}, nil
}

// JoinGame atomically claims a seat. An empty seat value is a no-op query.
func (c *Coordinator) JoinGame(gameID string, seat string, occupant string) (JoinResult, *Error) {
	rec, err := c.lookup(gameID)
	if err != nil {
		return JoinResult{}, err
	}
	if seat == "" {
		return JoinResult{Seat: ""}, nil
	}

	color, ok := jetan.ParseColor(seat)
	if !ok {
		return JoinResult{}, newError(KindBadAction, "invalid seat %q", seat)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	switch color {
	case jetan.Orange:
		if rec.Seats.Orange != "" {
			return JoinResult{}, newError(KindSeatError, "orange seat already occupied")
		}
		rec.Seats.Orange = occupant
	case jetan.Black:
		if rec.Seats.Black != "" {
			return JoinResult{}, newError(KindSeatError, "black seat already occupied")
		}
		rec.Seats.Black = occupant
	}

	c.logger.Infow("seat claimed", "gameId", gameID, "seat", seat)
	return JoinResult{Seat: seat}, nil
}

// ApplyControl resolves only "resign"; the other control actions are
// recognized but rejected as BadAction (draw negotiation has no semantics
// in this implementation).
func (c *Coordinator) ApplyControl(gameID string, action string) (ControlResult, *Error) {
	rec, err := c.lookup(gameID)
	if err != nil {
		return ControlResult{}, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.Result != "" {
		return ControlResult{}, newError(KindFinished, "game %q is already finished", gameID)
	}

	switch action {
	case "resign":
		loser := rec.ToMove
		winner := loser.Opponent()
		rec.Result = "resign_" + loser.Lower()
		rec.Events = append(rec.Events, Event{
			Type:    EventResign,
			Version: rec.Version,
			Payload: map[string]any{"loser": loser.String(), "winner": winner.String()},
		})
		c.logger.Infow("resignation", "gameId", gameID, "loser", loser.String())
		return ControlResult{Result: rec.Result, Winner: winner.String()}, nil
	case "offer_draw", "accept_draw", "decline_draw":
		return ControlResult{}, newError(KindBadAction, "draw negotiation is not implemented")
	default:
		return ControlResult{}, newError(KindBadAction, "unknown control action %q", action)
	}
}

// LegalDestinations delegates to the rules engine for real, per the
// resolved Open Question overriding the prototype's stub.
func (c *Coordinator) LegalDestinations(gameID string, from jetan.Square) (LegalResult, *Error) {
	rec, err := c.lookup(gameID)
	if err != nil {
		return LegalResult{}, err
	}

	rec.mu.RLock()
	defer rec.mu.RUnlock()

	piece := rec.Board.PieceAt(from)
	dests := []SquareView{}
	if piece != nil {
		for _, sq := range jetan.LegalDestinations(piece, rec.Board) {
			dests = append(dests, toSquareView(sq))
		}
	}
	return LegalResult{Version: rec.Version, From: toSquareView(from), Destination: dests}, nil
}

// ApplyMove implements spec §4.G's ten-step apply_move algorithm.
func (c *Coordinator) ApplyMove(gameID string, expectedVersion int, req MoveRequest, idemKey string) (MoveResult, *Error) {
	rec, err := c.lookup(gameID)
	if err != nil {
		return MoveResult{}, err
	}

	// Step 1: idempotency replay happens before the lock, same as a cache
	// read in front of the critical section.
	if idemKey != "" {
		if cached, ok := rec.idempotency.Get(idemKey); ok {
			return MoveResult{Applied: true, Version: cached.Version, Diff: cached.Diff, Events: cached.Events, Clocks: cached.Clocks}, nil
		}
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.Result != "" {
		return MoveResult{}, newError(KindFinished, "game %q is already finished", gameID)
	}

	// Step 3: version check.
	if rec.Version != expectedVersion {
		return MoveResult{}, newErrorWithHints(KindConflict, map[string]any{"version": rec.Version}, "expected version %d, have %d", expectedVersion, rec.Version)
	}

	// Step 4: clock tick.
	now := time.Now()
	elapsed := int(now.Sub(rec.LastTurnStartedAt).Seconds())
	if elapsed < 0 {
		elapsed = 0
	}
	remaining := c.clockFor(rec, rec.ToMove) - elapsed
	if remaining < 0 {
		remaining = 0
	}
	c.setClockFor(rec, rec.ToMove, remaining)
	if remaining == 0 {
		loser := rec.ToMove
		rec.Result = "timeout_" + loser.Lower()
		rec.Events = append(rec.Events, Event{
			Type:    EventTimeout,
			Version: rec.Version,
			Payload: map[string]any{"loser": loser.String()},
		})
		return MoveResult{}, newError(KindFinished, "clock expired for %s", loser.String())
	}

	// Step 5: payload validation.
	if req.Action != "move" {
		return MoveResult{}, newError(KindBadAction, "unsupported action %q", req.Action)
	}
	from := req.From.toSquare()
	to := req.To.toSquare()
	if !from.InBounds() || !to.InBounds() {
		return MoveResult{}, newError(KindBadAction, "square out of range")
	}
	piece := rec.Board.PieceAt(from)
	if piece == nil {
		return MoveResult{}, newError(KindBadAction, "no piece at %s", from)
	}
	if piece.Color != rec.ToMove {
		return MoveResult{}, newError(KindBadAction, "it is not %s's turn", piece.Color)
	}

	// Steps 6-7: legality and the structural diff.
	moveDiff, merr := rec.Board.ApplyMove(piece.ID, to)
	if merr != nil {
		return MoveResult{}, newError(KindBadAction, "%v", merr)
	}

	diff := Diff{Moved: []MovedEntry{{ID: piece.ID, To: toSquareView(to)}}}
	if moveDiff.Captured {
		diff.Removed = []string{moveDiff.CapturedID}
	}
	if moveDiff.EscapeConsumed {
		flagKey := "princessEscapedOrange"
		if piece.Color == jetan.Black {
			flagKey = "princessEscapedBlack"
		}
		rec.Flags[flagKey] = true
		diff.Flags = map[string]bool{flagKey: true}
	}

	events := []Event{}
	moveEvent := Event{
		Type:    EventMove,
		Version: rec.Version + 1,
		Payload: map[string]any{"from": from.String(), "to": to.String(), "pieceId": piece.ID},
	}
	rec.Events = append(rec.Events, moveEvent)
	events = append(events, moveEvent)

	if moveDiff.EscapeConsumed {
		escapeEvent := Event{
			Type:    EventPrincessEscape,
			Version: rec.Version + 1,
			Payload: map[string]any{"pieceId": piece.ID},
		}
		rec.Events = append(rec.Events, escapeEvent)
		events = append(events, escapeEvent)
	}

	// Step 8: termination.
	if moveDiff.Captured {
		if winnerTag, terminal := jetan.CaptureTermination(moveDiff.CapturedType, moveDiff.CapturedColor); terminal {
			rec.Result = winnerTag
		}
	}

	// Step 9: commit.
	rec.Diffs = append(rec.Diffs, diff)
	rec.Version++
	if rec.Result == "" {
		rec.ToMove = rec.ToMove.Opponent()
	}
	rec.LastTurnStartedAt = now

	clocksCopy := rec.clocksCopy()
	if idemKey != "" {
		rec.idempotency.Add(idemKey, idemEntry{Version: rec.Version, Diff: diff, Events: events, Clocks: clocksCopy})
	}

	c.logger.Infow("move applied", "gameId", gameID, "version", rec.Version, "pieceId", piece.ID)
	if rec.Result != "" {
		c.logger.Infow("game finished", "gameId", gameID, "result", rec.Result)
	}

	return MoveResult{Applied: true, Version: rec.Version, Diff: diff, Events: events, Clocks: clocksCopy}, nil
}

func (c *Coordinator) clockFor(rec *Record, color jetan.Color) int {
	if color == jetan.Orange {
		return rec.Clocks.Orange
	}
	return rec.Clocks.Black
}

func (c *Coordinator) setClockFor(rec *Record, color jetan.Color, value int) {
	if color == jetan.Orange {
		rec.Clocks.Orange = value
	} else {
		rec.Clocks.Black = value
	}
}

// GetDiffs implements get_diffs's range-check-then-slice contract.
func (c *Coordinator) GetDiffs(gameID string, sinceVersion int) (DiffsResult, *Error) {
	rec, err := c.lookup(gameID)
	if err != nil {
		return DiffsResult{}, err
	}

	rec.mu.RLock()
	defer rec.mu.RUnlock()

	if sinceVersion < 0 || sinceVersion > rec.Version {
		return DiffsResult{}, newErrorWithHints(KindConflict, map[string]any{"need": "snapshot", "version": rec.Version}, "since=%d is out of range for version %d", sinceVersion, rec.Version)
	}
	if sinceVersion == rec.Version {
		return DiffsResult{FromVersion: sinceVersion, ToVersion: sinceVersion, Diffs: []Diff{}}, nil
	}

	slice := make([]Diff, rec.Version-sinceVersion)
	copy(slice, rec.Diffs[sinceVersion:rec.Version])
	return DiffsResult{FromVersion: sinceVersion, ToVersion: rec.Version, Diffs: slice}, nil
}
