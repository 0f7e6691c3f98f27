package game

import (
	"testing"

	"go.uber.org/zap"

	"github.com/DDiggs91/Jetan/internal/jetan"
)

func testCoordinator(t *testing.T) *Coordinator {
	t.Helper()
	logger := zap.NewNop().Sugar()
	return NewCoordinator(logger, 600, 128)
}

func TestCreateGameStartsAtVersionZeroWithFortyPieces(t *testing.T) {
	c := testCoordinator(t)
	snap := c.CreateGame(CreateOptions{Time: TimeConfig{InitialSec: 600}})
	if snap.Version != 0 {
		t.Fatalf("expected version 0, got %d", snap.Version)
	}
	if len(snap.State.Pieces) != 40 {
		t.Fatalf("expected 40 pieces, got %d", len(snap.State.Pieces))
	}
	if snap.State.ToMove != "ORANGE" {
		t.Fatalf("expected ORANGE to move first, got %s", snap.State.ToMove)
	}
}

func TestApplyMoveIncrementsVersionAndFlipsToMove(t *testing.T) {
	c := testCoordinator(t)
	snap := c.CreateGame(CreateOptions{Time: TimeConfig{InitialSec: 600}})

	legal, lerr := c.LegalDestinations(snap.GameID, jetan.Square{Row: 8, Col: 1})
	if lerr != nil {
		t.Fatalf("legal destinations failed: %v", lerr)
	}
	if len(legal.Destination) == 0 {
		t.Fatal("expected the orange panthan at (8,1) to have at least one destination")
	}

	res, err := c.ApplyMove(snap.GameID, 0, MoveRequest{
		Action: "move",
		From:   SquareView{Row: 8, Col: 1},
		To:     legal.Destination[0],
	}, "")
	if err != nil {
		t.Fatalf("apply move failed: %v", err)
	}
	if res.Version != 1 {
		t.Fatalf("expected version 1, got %d", res.Version)
	}

	after, gerr := c.GetSnapshot(snap.GameID)
	if gerr != nil {
		t.Fatalf("snapshot failed: %v", gerr)
	}
	if after.State.ToMove != "BLACK" {
		t.Fatalf("expected BLACK to move after orange's move, got %s", after.State.ToMove)
	}
}

func TestApplyMoveRejectsStaleVersion(t *testing.T) {
	c := testCoordinator(t)
	snap := c.CreateGame(CreateOptions{Time: TimeConfig{InitialSec: 600}})

	legal, _ := c.LegalDestinations(snap.GameID, jetan.Square{Row: 8, Col: 1})
	_, err := c.ApplyMove(snap.GameID, 0, MoveRequest{
		Action: "move", From: SquareView{Row: 8, Col: 1}, To: legal.Destination[0],
	}, "")
	if err != nil {
		t.Fatalf("first move should have succeeded: %v", err)
	}

	legal2, _ := c.LegalDestinations(snap.GameID, jetan.Square{Row: 1, Col: 1})
	_, err = c.ApplyMove(snap.GameID, 0, MoveRequest{
		Action: "move", From: SquareView{Row: 1, Col: 1}, To: legal2.Destination[0],
	}, "")
	if err == nil {
		t.Fatal("expected a stale-version move to fail")
	}
	if err.Kind != KindConflict {
		t.Fatalf("expected Conflict, got %s", err.Kind)
	}
}

func TestApplyMoveIsIdempotentUnderSameKey(t *testing.T) {
	c := testCoordinator(t)
	snap := c.CreateGame(CreateOptions{Time: TimeConfig{InitialSec: 600}})
	legal, _ := c.LegalDestinations(snap.GameID, jetan.Square{Row: 8, Col: 1})

	req := MoveRequest{Action: "move", From: SquareView{Row: 8, Col: 1}, To: legal.Destination[0]}

	first, err := c.ApplyMove(snap.GameID, 0, req, "idem-1")
	if err != nil {
		t.Fatalf("first apply failed: %v", err)
	}
	second, err := c.ApplyMove(snap.GameID, 0, req, "idem-1")
	if err != nil {
		t.Fatalf("second apply (replay) failed: %v", err)
	}
	if first.Version != second.Version {
		t.Fatalf("replayed move returned a different version: %d vs %d", first.Version, second.Version)
	}

	final, _ := c.GetSnapshot(snap.GameID)
	if final.Version != 1 {
		t.Fatalf("expected exactly one committed version, got %d", final.Version)
	}
}

func TestResignFinishesGameAndRejectsFurtherMoves(t *testing.T) {
	c := testCoordinator(t)
	snap := c.CreateGame(CreateOptions{Time: TimeConfig{InitialSec: 600}})

	res, err := c.ApplyControl(snap.GameID, "resign")
	if err != nil {
		t.Fatalf("resign failed: %v", err)
	}
	if res.Result != "resign_orange" || res.Winner != "BLACK" {
		t.Fatalf("unexpected resign result: %+v", res)
	}

	legal, _ := c.LegalDestinations(snap.GameID, jetan.Square{Row: 8, Col: 1})
	_, err = c.ApplyMove(snap.GameID, 0, MoveRequest{
		Action: "move", From: SquareView{Row: 8, Col: 1}, To: legal.Destination[0],
	}, "")
	if err == nil || err.Kind != KindFinished {
		t.Fatalf("expected Finished on a move after resignation, got %v", err)
	}
}

func TestGetDiffsRejectsOutOfRangeSince(t *testing.T) {
	c := testCoordinator(t)
	snap := c.CreateGame(CreateOptions{Time: TimeConfig{InitialSec: 600}})

	_, err := c.GetDiffs(snap.GameID, 5)
	if err == nil || err.Kind != KindConflict {
		t.Fatalf("expected Conflict for an out-of-range since, got %v", err)
	}

	res, err := c.GetDiffs(snap.GameID, 0)
	if err != nil {
		t.Fatalf("GetDiffs at current version failed: %v", err)
	}
	if len(res.Diffs) != 0 || res.FromVersion != 0 || res.ToVersion != 0 {
		t.Fatalf("expected an empty diff slice at the current version, got %+v", res)
	}
}

func TestGetDiffsReturnsExactSlice(t *testing.T) {
	c := testCoordinator(t)
	snap := c.CreateGame(CreateOptions{Time: TimeConfig{InitialSec: 600}})

	froms := []jetan.Square{{Row: 8, Col: 1}, {Row: 1, Col: 1}, {Row: 8, Col: 2}}
	for i, from := range froms {
		legal, lerr := c.LegalDestinations(snap.GameID, from)
		if lerr != nil || len(legal.Destination) == 0 {
			t.Fatalf("expected a legal destination at step %d: %v", i, lerr)
		}
		if _, err := c.ApplyMove(snap.GameID, i, MoveRequest{
			Action: "move", From: toSquareView(from), To: legal.Destination[0],
		}, ""); err != nil {
			t.Fatalf("move %d failed: %v", i, err)
		}
	}

	result, err := c.GetDiffs(snap.GameID, 1)
	if err != nil {
		t.Fatalf("GetDiffs failed: %v", err)
	}
	if result.FromVersion != 1 || result.ToVersion != 3 || len(result.Diffs) != 2 {
		t.Fatalf("expected fromVersion=1 toVersion=3 with 2 diffs, got %+v", result)
	}
}

func TestJoinGameClaimsSeatOnceAndRejectsDouble(t *testing.T) {
	c := testCoordinator(t)
	snap := c.CreateGame(CreateOptions{Time: TimeConfig{InitialSec: 600}})

	if _, err := c.JoinGame(snap.GameID, "orange", "alice"); err != nil {
		t.Fatalf("first join failed: %v", err)
	}
	if _, err := c.JoinGame(snap.GameID, "orange", "bob"); err == nil || err.Kind != KindSeatError {
		t.Fatalf("expected SeatError on a double-claimed seat, got %v", err)
	}

	empty, err := c.JoinGame(snap.GameID, "", "")
	if err != nil || empty.Seat != "" {
		t.Fatalf("empty seat query should be a no-op, got %+v, %v", empty, err)
	}
}

func TestUnknownGameIsBadAction(t *testing.T) {
	c := testCoordinator(t)
	if _, err := c.GetSnapshot("g_does-not-exist"); err == nil || err.Kind != KindBadAction {
		t.Fatalf("expected BadAction for an unknown game, got %v", err)
	}
}
