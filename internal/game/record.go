// Copyright (c) 2012 by Christoph Hack <christoph@tux21b.org>
// All rights reserved. Distributed under the Simplified BSD License.

// Package game implements the per-game authoritative state machine: version
// counters, the append-only diff/event log, seat occupancy, naive clock
// accounting, and the coordinator that mutates all of it under optimistic
// concurrency.
package game

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/DDiggs91/Jetan/internal/jetan"
)

// SquareView is the wire representation of jetan.Square.
type SquareView struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func toSquareView(sq jetan.Square) SquareView {
	return SquareView{Row: sq.Row, Col: sq.Col}
}

func (s SquareView) toSquare() jetan.Square {
	return jetan.Square{Row: s.Row, Col: s.Col}
}

// PieceView is the wire representation of a jetan.Piece.
type PieceView struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	Color     string     `json:"color"`
	Square    SquareView `json:"square"`
	HasEscape bool       `json:"hasEscape,omitempty"`
}

func toPieceView(p *jetan.Piece) PieceView {
	return PieceView{
		ID:        p.ID,
		Type:      p.Type.String(),
		Color:     p.Color.String(),
		Square:    toSquareView(p.Square),
		HasEscape: p.Type == jetan.Princess && p.HasEscape,
	}
}

// StateView is the JSON shape of GameRecord.state.
type StateView struct {
	Pieces []PieceView     `json:"pieces"`
	ToMove string          `json:"toMove"`
	Result string          `json:"result,omitempty"`
	Flags  map[string]bool `json:"flags"`
}

func boardSnapshot(board *jetan.Board, toMove jetan.Color, result string, flags map[string]bool) StateView {
	pieces := board.Pieces()
	views := make([]PieceView, 0, len(pieces))
	for _, p := range pieces {
		views = append(views, toPieceView(p))
	}
	flagsCopy := make(map[string]bool, len(flags))
	for k, v := range flags {
		flagsCopy[k] = v
	}
	return StateView{Pieces: views, ToMove: toMove.String(), Result: result, Flags: flagsCopy}
}

// MovedEntry records that a piece moved to a new square.
type MovedEntry struct {
	ID string     `json:"id"`
	To SquareView `json:"to"`
}

// Diff is the structural change a single applied move makes to the board,
// per spec §3: enough to replay a board from any prior snapshot.
type Diff struct {
	Added   []PieceView     `json:"added"`
	Removed []string        `json:"removed"`
	Moved   []MovedEntry    `json:"moved"`
	Flags   map[string]bool `json:"flags,omitempty"`
}

// EventType enumerates the append-only event log's record types.
type EventType string

const (
	EventMove           EventType = "move"
	EventResign         EventType = "resign"
	EventPrincessEscape EventType = "princess_escape"
	EventTimeout        EventType = "timeout"
)

// Event is a single append-only structured record.
type Event struct {
	Type    EventType      `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
	Version int            `json:"v"`
}

// TimeConfig is the per-game clock configuration. IncrementSec is accepted
// and stored but never applied while ticking clocks (spec §9: "Clock
// increment semantics ... are accepted but ignored").
type TimeConfig struct {
	InitialSec   int `json:"initialSec"`
	IncrementSec int `json:"incrementSec"`
}

// Clocks is the naive seconds-remaining-per-side snapshot handed back to
// callers.
type Clocks struct {
	Orange int `json:"orange"`
	Black  int `json:"black"`
}

// Seats tracks which (opaque) occupant, if any, holds each seat.
type Seats struct {
	Orange string `json:"orange,omitempty"`
	Black  string `json:"black,omitempty"`
}

type idemEntry struct {
	Version int
	Diff    Diff
	Events  []Event
	Clocks  Clocks
}

// Record is the authoritative per-game state, §3's GameRecord. Every field
// below is guarded by mu except ID and idempotency, which are set once at
// creation; the idempotency LRU does its own locking and is read without mu.
type Record struct {
	mu sync.RWMutex

	ID      string
	Version int
	Board   *jetan.Board
	ToMove  jetan.Color
	Result  string
	Flags   map[string]bool

	Seats  Seats
	Clocks Clocks
	Time   TimeConfig

	LastTurnStartedAt time.Time

	Diffs  []Diff
	Events []Event

	idempotency *lru.Cache[string, idemEntry]
}

func newRecord(id string, time_ TimeConfig, idempotencyCapacity int) *Record {
	if idempotencyCapacity <= 0 {
		idempotencyCapacity = 128
	}
	cache, _ := lru.New[string, idemEntry](idempotencyCapacity)
	return &Record{
		ID:      id,
		Version: 0,
		Board:   jetan.InitialBoard(),
		ToMove:  jetan.Orange,
		Flags: map[string]bool{
			"princessEscapedOrange": false,
			"princessEscapedBlack":  false,
		},
		Clocks:            Clocks{Orange: time_.InitialSec, Black: time_.InitialSec},
		Time:              time_,
		LastTurnStartedAt: time.Now(),
		idempotency:       cache,
	}
}

func (r *Record) snapshot() StateView {
	return boardSnapshot(r.Board, r.ToMove, r.Result, r.Flags)
}

func (r *Record) clocksCopy() Clocks {
	return r.Clocks
}
