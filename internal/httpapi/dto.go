// Copyright (c) 2012 by Christoph Hack <christoph@tux21b.org>
// All rights reserved. Distributed under the Simplified BSD License.

// Package httpapi wires the game coordinator to the outside world: JSON
// request/response shaping, route dispatch, and status-code mapping for the
// versioned /api/v1/games surface.
package httpapi

import "github.com/DDiggs91/Jetan/internal/game"

type createGameRequest struct {
	Variant string `json:"variant"`
	Time    struct {
		InitialSec   int `json:"initialSec"`
		IncrementSec int `json:"incrementSec"`
	} `json:"time"`
	Seats struct {
		Orange string `json:"orange"`
		Black  string `json:"black"`
	} `json:"seats"`
}

type gameSnapshotResponse struct {
	GameID  string         `json:"gameId"`
	Version int            `json:"version"`
	State   game.StateView `json:"state"`
}

type joinGameRequest struct {
	Seat string `json:"seat"`
}

type joinGameResponse struct {
	Seat string `json:"seat"`
}

type controlRequest struct {
	Action string `json:"action"`
}

type controlResponse struct {
	Result string `json:"result"`
	Winner string `json:"winner,omitempty"`
}

type legalResponse struct {
	From        game.SquareView   `json:"from"`
	Destination []game.SquareView `json:"destinations"`
	Version     int               `json:"version"`
}

type moveRequestBody struct {
	Action string          `json:"action"`
	From   game.SquareView `json:"from"`
	To     game.SquareView `json:"to"`
	Tags   map[string]any  `json:"tags,omitempty"`
}

type moveResponse struct {
	Applied bool         `json:"applied"`
	Version int          `json:"version"`
	Diff    game.Diff    `json:"diff"`
	Events  []game.Event `json:"events"`
	Clocks  game.Clocks  `json:"clocks"`
}

type diffsResponse struct {
	FromVersion int         `json:"fromVersion"`
	ToVersion   int         `json:"toVersion"`
	Diffs       []game.Diff `json:"diffs"`
}

type errorBody struct {
	Error errorPayload `json:"error"`
}

type errorPayload struct {
	Kind    string         `json:"kind"`
	Message string         `json:"message"`
	Hints   map[string]any `json:"hints,omitempty"`
}

func snapshotToResponse(s game.Snapshot) gameSnapshotResponse {
	return gameSnapshotResponse{GameID: s.GameID, Version: s.Version, State: s.State}
}
