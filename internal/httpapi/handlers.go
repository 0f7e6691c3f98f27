// Copyright (c) 2012 by Christoph Hack <christoph@tux21b.org>
// All rights reserved. Distributed under the Simplified BSD License.

package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/DDiggs91/Jetan/internal/game"
	"github.com/DDiggs91/Jetan/internal/jetan"
)

type handlers struct {
	coord *Coordinator
}

// Coordinator is the subset of *game.Coordinator the HTTP layer depends on,
// kept as an interface so handler tests can fake it without a real
// coordinator.
type Coordinator interface {
	CreateGame(opts game.CreateOptions) game.Snapshot
	GetSnapshot(gameID string) (game.Snapshot, *game.Error)
	JoinGame(gameID, seat, occupant string) (game.JoinResult, *game.Error)
	ApplyControl(gameID, action string) (game.ControlResult, *game.Error)
	LegalDestinations(gameID string, from jetan.Square) (game.LegalResult, *game.Error)
	ApplyMove(gameID string, expectedVersion int, req game.MoveRequest, idemKey string) (game.MoveResult, *game.Error)
	GetDiffs(gameID string, sinceVersion int) (game.DiffsResult, *game.Error)
}

func (h *handlers) createGame(c *gin.Context) {
	var req createGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, badAction("malformed create game body: %v", err))
		return
	}

	snap := h.coord.CreateGame(game.CreateOptions{
		Variant: req.Variant,
		Time:    game.TimeConfig{InitialSec: req.Time.InitialSec, IncrementSec: req.Time.IncrementSec},
	})

	c.Header("ETag", strconv.Itoa(snap.Version))
	c.JSON(http.StatusCreated, snapshotToResponse(snap))
}

func (h *handlers) getSnapshot(c *gin.Context) {
	snap, err := h.coord.GetSnapshot(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Header("ETag", strconv.Itoa(snap.Version))
	c.JSON(http.StatusOK, snapshotToResponse(snap))
}

func (h *handlers) joinGame(c *gin.Context) {
	var req joinGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, badAction("malformed join body: %v", err))
		return
	}

	result, err := h.coord.JoinGame(c.Param("id"), req.Seat, clientIdentity(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, joinGameResponse{Seat: result.Seat})
}

func (h *handlers) applyControl(c *gin.Context) {
	var req controlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, badAction("malformed control body: %v", err))
		return
	}

	result, err := h.coord.ApplyControl(c.Param("id"), req.Action)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, controlResponse{Result: result.Result, Winner: result.Winner})
}

func (h *handlers) legalDestinations(c *gin.Context) {
	row, rerr := strconv.Atoi(c.Query("row"))
	col, cerr := strconv.Atoi(c.Query("col"))
	if rerr != nil || cerr != nil {
		fail(c, badAction("row and col query parameters must be integers"))
		return
	}
	from, ferr := jetan.NewSquare(row, col)
	if ferr != nil {
		fail(c, badAction("square out of range: %v", ferr))
		return
	}

	result, err := h.coord.LegalDestinations(c.Param("id"), from)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, legalResponse{From: result.From, Destination: result.Destination, Version: result.Version})
}

// applyMove requires If-Match per §6; its absence is a 428 precondition
// failure, distinct from the Kind taxonomy, so it's written directly rather
// than routed through errorMiddleware.
func (h *handlers) applyMove(c *gin.Context) {
	ifMatch := c.GetHeader("If-Match")
	if ifMatch == "" {
		c.JSON(428, errorBody{Error: errorPayload{Kind: "PreconditionRequired", Message: "If-Match header is required on move submissions"}})
		c.Abort()
		return
	}
	expectedVersion, verr := strconv.Atoi(ifMatch)
	if verr != nil {
		fail(c, badAction("If-Match must be an integer version: %v", verr))
		return
	}

	var body moveRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, badAction("malformed move body: %v", err))
		return
	}

	result, err := h.coord.ApplyMove(c.Param("id"), expectedVersion, game.MoveRequest{
		Action: body.Action,
		From:   body.From,
		To:     body.To,
		Tags:   body.Tags,
	}, c.GetHeader("Idempotency-Key"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, moveResponse{Applied: result.Applied, Version: result.Version, Diff: result.Diff, Events: result.Events, Clocks: result.Clocks})
}

func (h *handlers) getDiffs(c *gin.Context) {
	since := 0
	if raw := c.Query("since"); raw != "" {
		parsed, perr := strconv.Atoi(raw)
		if perr != nil {
			fail(c, badAction("since must be an integer version: %v", perr))
			return
		}
		since = parsed
	}

	result, err := h.coord.GetDiffs(c.Param("id"), since)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, diffsResponse{FromVersion: result.FromVersion, ToVersion: result.ToVersion, Diffs: result.Diffs})
}

// clientIdentity is an opaque occupant tag; this implementation has no
// authentication layer (Non-goal), so it's derived from the remote address.
func clientIdentity(c *gin.Context) string {
	return c.ClientIP()
}

func badAction(format string, args ...any) *game.Error {
	return game.NewBoundaryError(game.KindBadAction, format, args...)
}
